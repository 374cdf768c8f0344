package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chatrelay/backend/internal/chathub"
	"chatrelay/backend/internal/models"
)

// CloseAuthFailure is the distinguished close code sent when credential
// resolution fails on the websocket path.
const CloseAuthFailure = 4001

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Lock down in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection and runs the per-connection
// read loop. The counterpart is fixed by the :receiver_id path segment
// for the lifetime of the connection.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	userID, err := h.Auth.Resolve(c.Query("token"))
	if err != nil {
		log.Printf("Websocket auth failed: %v", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseAuthFailure, "Authentication failed"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	userID = models.CanonicalID(userID)
	receiverID := models.CanonicalID(c.Param("receiver_id"))

	client := chathub.NewWebSocketClient(userID, conn)
	client.Run()

	h.Registry.Connect(userID, receiverID, client)
	if err := h.Storage.SetUserOnline(userID); err != nil {
		log.Printf("Error mirroring online state for %s: %v", userID, err)
	}
	h.Broadcaster.BroadcastOnline()

	if err := client.Send(models.ConnectedFrame{
		Type:    models.FrameConnected,
		Message: "Connected to chat with " + receiverID,
		ChatID:  models.ChatID(userID, receiverID),
	}); err != nil {
		log.Printf("Error sending connected frame to %s: %v", userID, err)
	}

	h.readLoop(client, receiverID)

	h.teardown(userID, client)
}

// teardown releases the connection's registration and presence state.
// Only our own registration is removed: a reconnect may have replaced it
// already, and its successor must survive this teardown. The registration
// may also be gone entirely, pruned by a failed send, in which case the
// redis mirror still has to be cleared.
func (h *Handler) teardown(userID string, client chathub.Client) {
	h.Registry.DisconnectClient(userID, client)

	if _, online := h.Registry.Lookup(userID); !online {
		if err := h.Storage.SetUserOffline(userID); err != nil {
			log.Printf("Error mirroring offline state for %s: %v", userID, err)
		}
	}
	h.Broadcaster.BroadcastOnline()
}

// readLoop blocks on inbound frames until the transport reports a
// disconnect or protocol error.
func (h *Handler) readLoop(client *chathub.WebSocketClient, receiverID string) {
	defer client.Close()

	for {
		data, err := client.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message from %s: %v", client.GetUserID(), err)
			}
			return
		}

		h.handleFrame(client, receiverID, data)
	}
}

// handleFrame dispatches one inbound frame. Frames that fail to decode
// as JSON are treated as raw chat text, so bare-bones clients that send
// plain strings keep working. A frame without a type field is treated as
// chat as well.
func (h *Handler) handleFrame(client chathub.Client, connectPeer string, data []byte) {
	userID := client.GetUserID()

	var frame models.InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		if strings.TrimSpace(string(data)) == "" {
			return
		}
		h.routeChat(client, connectPeer, string(data))
		return
	}

	switch frame.Type {
	case models.FramePing:
		if err := client.Send(models.PongFrame{Type: models.FramePong}); err != nil {
			log.Printf("Error sending pong to %s: %v", userID, err)
		}
	case models.FrameChat, "":
		h.routeChat(client, connectPeer, frame.Message)
	default:
		log.Printf("Ignoring unknown frame type %q from %s", frame.Type, userID)
	}
}

// routeChat hands the message to the router. The counterpart comes from
// the registry's routing state, falling back to the connect-time value
// when the registration is already gone. A persistence failure is logged
// and swallowed on this path; the client simply does not see a delivered
// message.
func (h *Handler) routeChat(client chathub.Client, connectPeer, text string) {
	senderID := client.GetUserID()

	receiverID, ok := h.Registry.PeerOf(senderID)
	if !ok {
		receiverID = connectPeer
	}

	res := h.Router.Route(senderID, receiverID, text)
	if res.Status == chathub.StatusError {
		log.Printf("Error routing message from %s to %s: %v", senderID, receiverID, res.Err)
	}
}
