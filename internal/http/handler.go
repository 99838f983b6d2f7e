package http

import (
	"media-catalog/internal"
	"media-catalog/internal/auth"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
)

type Handler struct {
	Version string
	AppName string
	router  *mux.Router
	Logger  tools.Logger
	Catalog internal.Catalog
	Tokens  *auth.Tokens
}
