// Package web implements the HTTP surface: a middleware that serves compiled
// artifacts through the decision engine and passes everything else on.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/resolver"
)

// Resolver is the slice of the decision engine the handler needs.
type Resolver interface {
	Resolve(ctx context.Context, source, output string) (resolver.Resolution, error)
}

// Handler serves GET/HEAD requests for compiled artifacts. Requests that do
// not map into the layout, and requests whose source does not exist, fall
// through to next.
type Handler struct {
	engine Resolver
	layout domain.Layout
	next   http.Handler
	logger ports.Logger
}

// NewHandler creates a Handler. If next is nil, unmatched requests get 404.
func NewHandler(engine Resolver, layout domain.Layout, next http.Handler, logger ports.Logger) *Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return &Handler{
		engine: engine,
		layout: layout,
		next:   next,
		logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.next.ServeHTTP(w, r)
		return
	}

	source, err := h.layout.SourceFor(r.URL.Path)
	if err != nil {
		h.next.ServeHTTP(w, r)
		return
	}

	output, err := h.layout.OutputFor(source)
	if err != nil {
		h.next.ServeHTTP(w, r)
		return
	}

	res, err := h.engine.Resolve(r.Context(), source, output)
	switch {
	case errors.Is(err, domain.ErrSourceNotFound):
		h.next.ServeHTTP(w, r)
		return
	case err != nil:
		h.logger.Error(err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Cache hits, fresh compiles and rendered diagnostics all serve with
	// success status; the content pipeline stays uniform.
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Text)))
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, err := w.Write([]byte(res.Text)); err != nil {
		h.logger.Debug("client went away mid-response", "path", r.URL.Path)
	}
}
