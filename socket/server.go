package socket

import (
	"context"

	socketio "github.com/googollee/go-socket.io"
	log "github.com/sirupsen/logrus"

	"sportmate_server/services"
)

// joinPayload identifies the group room a client wants to enter or leave.
type joinPayload struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

// messagePayload carries one realtime group chat message.
type messagePayload struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// isMember reports whether the user belongs to the group. Every room event
// runs through this gate before any join or broadcast.
func isMember(groupService *services.GroupService, groupID, userID string) bool {
	group, err := groupService.GetGroup(context.Background(), groupID)
	return err == nil && group.HasMember(userID)
}

// NewSocketServer builds the realtime server. Each group is a room; only
// current members may join a room, post into it, or surface presence and
// typing events. Messages are persisted through the chat service before
// broadcast.
func NewSocketServer(groupService *services.GroupService, chatService *services.ChatService) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Printf("🔌 Socket connected: %s", s.ID())
		return nil
	})

	server.OnEvent("/", "join_group", func(s socketio.Conn, p joinPayload) {
		if !isMember(groupService, p.GroupID, p.UserID) {
			s.Emit("error", "you are not a member of this group")
			return
		}
		s.Join(p.GroupID)
		server.BroadcastToRoom("/", p.GroupID, "member_online", p.UserID)
	})

	server.OnEvent("/", "leave_group", func(s socketio.Conn, p joinPayload) {
		s.Leave(p.GroupID)
		if !isMember(groupService, p.GroupID, p.UserID) {
			return
		}
		server.BroadcastToRoom("/", p.GroupID, "member_offline", p.UserID)
	})

	server.OnEvent("/", "send_message", func(s socketio.Conn, p messagePayload) {
		message, err := chatService.SendGroupMessage(context.Background(), p.GroupID, p.UserID, p.Content)
		if err != nil {
			s.Emit("error", err.Error())
			return
		}
		server.BroadcastToRoom("/", p.GroupID, "new_message", message)
	})

	server.OnEvent("/", "typing", func(s socketio.Conn, p joinPayload) {
		if !isMember(groupService, p.GroupID, p.UserID) {
			s.Emit("error", "you are not a member of this group")
			return
		}
		server.BroadcastToRoom("/", p.GroupID, "typing", p.UserID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Printf("🔌 Socket disconnected: %s (%s)", s.ID(), reason)
	})

	return server
}
