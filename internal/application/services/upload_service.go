package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/application/usecases"
	"fashion-unlimited/internal/domain/faults"
	"fashion-unlimited/internal/domain/valueobjects"
)

const (
	DefaultMaxUploadBytes int64 = 20 << 20

	// file parts above this are spooled to temp files while parsing
	defaultMemoryBytes int64 = 8 << 20

	personField = "person"
	modeField   = "mode"
)

// UploadService turns a multipart try-on form into use case input.
type UploadService struct {
	maxUploadBytes int64
	memoryBytes    int64
}

func NewUploadService(maxUploadBytes int64) *UploadService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &UploadService{
		maxUploadBytes: maxUploadBytes,
		memoryBytes:    min(defaultMemoryBytes, maxUploadBytes),
	}
}

func (s *UploadService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// ParseFromRequest reads the mode field, the person file and any garment
// files named after their slot (top, bottom, dress). Slot checks against the
// mode happen when the request entity is built. Spooled temp files are
// removed before it returns.
func (s *UploadService) ParseFromRequest(w http.ResponseWriter, r *http.Request) (usecases.TryOnInput, error) {
	const op = "parse upload"

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.memoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecases.TryOnInput{}, faults.Validation(op, "upload exceeds %d MB", s.maxUploadBytes>>20)
		}
		return usecases.TryOnInput{}, faults.Validation(op, "invalid multipart form: %v", err)
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}()

	input := usecases.TryOnInput{
		Mode:     s.getString(r, modeField, string(valueobjects.ModeWomen)),
		Garments: make(map[valueobjects.GarmentSlot]usecases.ImageUpload),
	}

	person, ok, err := s.getFile(r, personField)
	if err != nil {
		return usecases.TryOnInput{}, faults.Validation(op, "%v", err)
	}
	if !ok {
		return usecases.TryOnInput{}, faults.Validation(op, "person image is required")
	}
	input.Person = person

	for _, slot := range valueobjects.AllSlots {
		garment, ok, err := s.getFile(r, string(slot))
		if err != nil {
			return usecases.TryOnInput{}, faults.Validation(op, "%v", err)
		}
		if ok {
			input.Garments[slot] = garment
		}
	}

	return input, nil
}

func (s *UploadService) getFile(r *http.Request, key string) (usecases.ImageUpload, bool, error) {
	file, header, err := r.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return usecases.ImageUpload{}, false, nil
	}
	if err != nil {
		return usecases.ImageUpload{}, false, fmt.Errorf("failed to read %s image: %w", key, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return usecases.ImageUpload{}, false, fmt.Errorf("failed to read %s image: %w", key, err)
	}
	if len(data) == 0 {
		return usecases.ImageUpload{}, false, nil
	}

	return usecases.ImageUpload{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
	}, true, nil
}

func (s *UploadService) getString(r *http.Request, key, defaultValue string) string {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return defaultValue
	}
	return value
}

