package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"fashion-unlimited/internal/infrastructure/metrics"
	"fashion-unlimited/internal/infrastructure/middleware"
)

// NewRouter wires the try-on routes behind the request logger.
func NewRouter(handler *TryOnHandler, reg *metrics.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(reg))

	r.HandleFunc("/", handler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/tryon", handler.HandleTryOn).Methods(http.MethodPost)
	r.HandleFunc("/analyze", handler.HandleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/api/modes", handler.HandleModes).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	if reg != nil {
		r.HandleFunc("/metrics", reg.HandleText).Methods(http.MethodGet)
	}

	return r
}
