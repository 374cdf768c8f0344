package handler

import (
	"chatrelay/backend/internal/auth"
	"chatrelay/backend/internal/chathub"
	"chatrelay/backend/internal/storage"
)

// Handler wires the HTTP and websocket surface to the chat core.
type Handler struct {
	Registry    *chathub.Registry
	Router      *chathub.Router
	Broadcaster *chathub.Broadcaster
	Storage     storage.Storage
	Auth        *auth.JWTResolver
}

func NewHandler(reg *chathub.Registry, router *chathub.Router, b *chathub.Broadcaster, s storage.Storage, a *auth.JWTResolver) *Handler {
	return &Handler{
		Registry:    reg,
		Router:      router,
		Broadcaster: b,
		Storage:     s,
		Auth:        a,
	}
}
