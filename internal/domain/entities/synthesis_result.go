package entities

import (
	"time"

	"fashion-unlimited/internal/domain/valueobjects"
)

// SynthesisResult is the composite produced by the synthesizer for a request.
type SynthesisResult struct {
	requestID TryOnRequestID
	image     *valueobjects.ImageData
	model     string
	note      string
	createdAt time.Time
}

func NewSynthesisResult(requestID TryOnRequestID, image *valueobjects.ImageData, model string) *SynthesisResult {
	return &SynthesisResult{
		requestID: requestID,
		image:     image,
		model:     model,
		createdAt: time.Now(),
	}
}

func (r *SynthesisResult) RequestID() TryOnRequestID {
	return r.requestID
}

func (r *SynthesisResult) Image() *valueobjects.ImageData {
	return r.image
}

func (r *SynthesisResult) Model() string {
	return r.model
}

// Note is any text the model returned alongside the image.
func (r *SynthesisResult) Note() string {
	return r.note
}

func (r *SynthesisResult) SetNote(note string) {
	r.note = note
}

func (r *SynthesisResult) DataURI() string {
	if r.image == nil {
		return ""
	}
	return r.image.DataURI()
}

func (r *SynthesisResult) MimeType() valueobjects.MimeType {
	if r.image == nil {
		return ""
	}
	return r.image.MimeType()
}

func (r *SynthesisResult) CreatedAt() time.Time {
	return r.createdAt
}
