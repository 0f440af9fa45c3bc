package presencehandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"presencehub/internal/services/presence"
)

type Handler struct {
	svc presence.IPresenceService
}

func New(svc presence.IPresenceService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms/:id/users", h.users)
}

// users returns the live roster of a room in join order. Rooms are not
// materialized, so an unknown room is an empty roster, not a 404.
func (h *Handler) users(c *gin.Context) {
	users := h.svc.RoomUsers(c.Param("id"))
	c.JSON(http.StatusOK, RoomUsersResponse{Users: users})
}
