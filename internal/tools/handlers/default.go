package handlers

import (
	"net/http"

	"toolchat/internal/tools"
)

// Options carries what the fetch tool needs from the host application.
type Options struct {
	Client       *http.Client
	ProxyURL     string
	PreviewLimit int
}

// Default returns the built-in tool handlers.
func Default(opts Options) []tools.Handler {
	return []tools.Handler{
		CalculatorHandler{},
		SearchHandler{},
		WebFetchHandler{
			Client:       opts.Client,
			ProxyURL:     opts.ProxyURL,
			PreviewLimit: opts.PreviewLimit,
		},
	}
}
