package chathub

import (
	"log"
	"strings"
	"time"

	"chatrelay/backend/internal/models"
	"chatrelay/backend/internal/storage"
)

// RouteStatus is the overall outcome of one routing operation.
type RouteStatus string

const (
	// StatusSuccess means the message was persisted; delivery may or may
	// not have happened (see RouteResult.Delivered).
	StatusSuccess RouteStatus = "success"
	// StatusError means persistence failed and delivery was not attempted.
	StatusError RouteStatus = "error"
	// StatusSkipped means the payload was all whitespace: not persisted,
	// not delivered, not an error.
	StatusSkipped RouteStatus = "skipped"
)

// RouteResult reports what happened to one inbound message.
type RouteResult struct {
	Status    RouteStatus
	Persisted *models.Message
	Delivered bool
	Err       error
}

// Router decides deliver-now vs drop for each inbound message and
// triggers persistence as a side effect. Persistence is the durability
// guarantee; delivery is best-effort on top of it.
type Router struct {
	Registry *Registry
	Storage  storage.Storage

	now func() time.Time
}

func NewRouter(reg *Registry, s storage.Storage) *Router {
	return &Router{
		Registry: reg,
		Storage:  s,
		now:      time.Now,
	}
}

// Route persists a message from sender to receiver and attempts real-time
// delivery. The message is persisted whenever the text is non-empty,
// whether or not the receiver is online; an offline receiver or a dead
// receiver handle never fails the operation.
func (r *Router) Route(senderID, receiverID, text string) RouteResult {
	if strings.TrimSpace(text) == "" {
		return RouteResult{Status: StatusSkipped}
	}

	senderID = models.CanonicalID(senderID)
	receiverID = models.CanonicalID(receiverID)

	msg, err := r.Storage.SaveMessage(senderID, receiverID, text)
	if err != nil {
		return RouteResult{Status: StatusError, Err: err}
	}

	// Event feed for external consumers; a publish failure does not
	// affect the routing outcome.
	if err := r.Storage.PublishMessage(msg.ChatID, *msg); err != nil {
		log.Printf("Error publishing message for chat %s: %v", msg.ChatID, err)
	}

	frame := models.MessageFrame{
		Type:        models.FrameMessage,
		Data:        msg,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		MessageText: text,
		Timestamp:   r.now(),
	}
	delivered := r.Registry.SendTo(receiverID, frame)

	return RouteResult{Status: StatusSuccess, Persisted: msg, Delivered: delivered}
}
