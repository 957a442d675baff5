package repositories

import (
	"context"

	"fashion-unlimited/internal/domain/entities"
)

// ModelResponse is what a generateContent call returned, reduced to the
// parts the pipeline consumes.
type ModelResponse struct {
	Text   string
	Images []*ModelImage
	// PartCount counts every returned part, including ones that were dropped.
	PartCount    int
	FinishReason string
}

type ModelImage struct {
	MimeType string
	Data     []byte
}

// Condition analysis service: returns the raw JSON text of the structured
// response. Implementations map connectivity, auth and non-success statuses
// to faults.Transport.
type ConditionAnalyzer interface {
	Analyze(ctx context.Context, request *entities.ModelRequest) (*ModelResponse, error)

	Close() error
}

// Image synthesis service: returns every part of the first candidate so the
// caller decides which inline image to keep.
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, request *entities.ModelRequest) (*ModelResponse, error)

	Close() error
}

// Both ports are usually served by the same backend client.
type FittingAIService interface {
	ConditionAnalyzer
	ImageSynthesizer
}
