package presencehandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencehub/internal/http/presencehandler"
	"presencehub/internal/services/presence"
	"presencehub/internal/session"
)

// nopTransport satisfies presence.Transport for a broker with no live
// websocket connections.
type nopTransport struct{}

func (nopTransport) EmitTo(string, string, any)                  {}
func (nopTransport) BroadcastToRoom(string, string, string, any) {}
func (nopTransport) JoinRoom(string, string)                     {}
func (nopTransport) LeaveRoom(string, string)                    {}

func newEngine(t *testing.T) (*gin.Engine, presence.IPresenceService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := presence.NewPresenceService(session.NewRegistry(), nopTransport{})
	engine := gin.New()
	presencehandler.New(svc).Register(engine)
	return engine, svc
}

func TestRoomUsers(t *testing.T) {
	engine, svc := newEngine(t)
	ctx := context.Background()
	require.NoError(t, svc.Join(ctx, "A", presence.JoinRequest{RoomID: "r1", Username: "alice"}))
	require.NoError(t, svc.Join(ctx, "B", presence.JoinRequest{RoomID: "r1", Username: "bob"}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/r1/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp presencehandler.RoomUsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "alice", resp.Users[0].Username)
	assert.Equal(t, "bob", resp.Users[1].Username)
}

func TestRoomUsersEmptyRoom(t *testing.T) {
	engine, _ := newEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/empty/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[]}`, rec.Body.String())
}
