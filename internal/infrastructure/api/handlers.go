package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/application/services"
	"fashion-unlimited/internal/application/usecases"
	"fashion-unlimited/internal/domain/faults"
	domainservices "fashion-unlimited/internal/domain/services"
	"fashion-unlimited/internal/domain/valueobjects"
)

type TryOnHandler struct {
	tryOnUseCase  *usecases.TryOnUseCase
	uploadService *services.UploadService
	backend       string
}

// ModeInfo describes one garment mode for the page's mode toggle.
type ModeInfo struct {
	Mode    valueobjects.GarmentMode   `json:"mode"`
	Subject string                     `json:"subject"`
	Slots   []valueobjects.GarmentSlot `json:"slots"`
}

func NewTryOnHandler(
	tryOnUseCase *usecases.TryOnUseCase,
	uploadService *services.UploadService,
	backend string,
) *TryOnHandler {
	return &TryOnHandler{
		tryOnUseCase:  tryOnUseCase,
		uploadService: uploadService,
		backend:       backend,
	}
}

func (h *TryOnHandler) HandleTryOn(w http.ResponseWriter, r *http.Request) {
	input, err := h.uploadService.ParseFromRequest(w, r)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	output, err := h.tryOnUseCase.Execute(r.Context(), input)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, r, http.StatusOK, map[string]any{
		"success":   true,
		"requestId": output.RequestID,
		"image":     output.Image,
		"mimeType":  output.MimeType,
		"note":      output.Note,
		"analysis":  output.Report,
	})
}

func (h *TryOnHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	input, err := h.uploadService.ParseFromRequest(w, r)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	output, err := h.tryOnUseCase.Analyze(r.Context(), input)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, r, http.StatusOK, map[string]any{
		"success":   true,
		"requestId": output.RequestID,
		"analysis":  output.Report,
	})
}

func (h *TryOnHandler) HandleModes(w http.ResponseWriter, r *http.Request) {
	modes := make([]ModeInfo, 0, len(valueobjects.GarmentModes))
	for _, mode := range valueobjects.GarmentModes {
		modes = append(modes, ModeInfo{
			Mode:    mode,
			Subject: mode.Subject(),
			Slots:   mode.Slots(),
		})
	}

	h.sendJSON(w, r, http.StatusOK, map[string]any{
		"modes":          modes,
		"backend":        h.backend,
		"maxUploadBytes": h.uploadService.MaxUploadBytes(),
	})
}

func (h *TryOnHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// statusFor maps a fault kind to the HTTP status shown to the page.
func statusFor(err error) int {
	switch faults.KindOf(err) {
	case faults.KindValidation:
		return http.StatusBadRequest
	case faults.KindTransport:
		if domainservices.IsQuotaError(err) {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	case faults.KindFormat, faults.KindNoImageProduced:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *TryOnHandler) sendError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	kind := faults.KindOf(err)

	event := log.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = log.Ctx(r.Context()).Error()
	}
	event.Err(err).Str("kind", kind.String()).Int("status", status).Msg("fitting failed")

	h.sendJSON(w, r, status, map[string]any{
		"success": false,
		"kind":    kind.String(),
		"error":   err.Error(),
	})
}

func (h *TryOnHandler) sendJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
	}
}
