package presencehandler

import "presencehub/internal/session"

type RoomUsersResponse struct {
	Users []session.Session `json:"users"`
}
