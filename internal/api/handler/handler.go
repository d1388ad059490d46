// Package handler wires the HTTP surface: account endpoints, chat REST
// routes and the websocket upgrade into the chat core.
package handler

import (
	"github.com/Amirkhan012/Messaging-service/internal/chathub"
	"github.com/Amirkhan012/Messaging-service/internal/config"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

// Handler carries the dependencies shared by all routes.
type Handler struct {
	Store    storage.Storage
	Registry *chathub.Registry
	Notifier chathub.Notifier
	Settings *config.Settings
}

// NewHandler constructs the route handler set.
func NewHandler(store storage.Storage, registry *chathub.Registry,
	notifier chathub.Notifier, settings *config.Settings) *Handler {
	return &Handler{
		Store:    store,
		Registry: registry,
		Notifier: notifier,
		Settings: settings,
	}
}
