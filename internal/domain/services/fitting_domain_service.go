package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/domain/entities"
	"fashion-unlimited/internal/domain/faults"
	"fashion-unlimited/internal/domain/repositories"
	"fashion-unlimited/internal/domain/valueobjects"
)

const (
	DefaultAnalyzerModel    = "gemini-3-flash-preview"
	DefaultSynthesizerModel = "gemini-2.5-flash-image"
)

type ModelSettings struct {
	AnalyzerModel    string
	SynthesizerModel string
}

type FittingDomainService struct {
	analyzer    repositories.ConditionAnalyzer
	synthesizer repositories.ImageSynthesizer
	models      ModelSettings
}

func NewFittingDomainService(
	analyzer repositories.ConditionAnalyzer,
	synthesizer repositories.ImageSynthesizer,
	models ModelSettings,
) *FittingDomainService {
	if models.AnalyzerModel == "" {
		models.AnalyzerModel = DefaultAnalyzerModel
	}
	if models.SynthesizerModel == "" {
		models.SynthesizerModel = DefaultSynthesizerModel
	}

	return &FittingDomainService{
		analyzer:    analyzer,
		synthesizer: synthesizer,
		models:      models,
	}
}

// BuildAnalysisRequest assembles [instruction, person, top?, bottom?, dress?]
// at temperature zero with the condition report schema attached.
func (s *FittingDomainService) BuildAnalysisRequest(request *entities.TryOnRequest) *entities.ModelRequest {
	modelRequest := entities.NewModelRequest(s.models.AnalyzerModel, 0).
		AddText(analysisInstruction(request.Mode())).
		ExpectJSON(entities.ConditionReportSchema())

	for _, img := range request.OrderedImages() {
		modelRequest.AddImage(img)
	}
	return modelRequest
}

// BuildSynthesisRequest embeds the report's technical prompt and body size in
// the synthesis template and sends the images in the analyzer's order.
func (s *FittingDomainService) BuildSynthesisRequest(
	request *entities.TryOnRequest,
	report *entities.ConditionReport,
) *entities.ModelRequest {
	modelRequest := entities.NewModelRequest(s.models.SynthesizerModel, 0).
		AddText(synthesisInstruction(request.Mode(), report.TechnicalPrompt, report.Size()))

	for _, img := range request.OrderedImages() {
		modelRequest.AddImage(img)
	}
	return modelRequest
}

func (s *FittingDomainService) Analyze(
	ctx context.Context,
	request *entities.TryOnRequest,
) (*entities.ConditionReport, error) {
	const op = "analyze"

	if request == nil {
		return nil, faults.Validation(op, "a person image and at least one garment image are required")
	}

	modelRequest := s.BuildAnalysisRequest(request)
	log.Ctx(ctx).Info().
		Str("request_id", string(request.ID())).
		Str("model", modelRequest.Model()).
		Str("mode", string(request.Mode())).
		Int("images", modelRequest.ImageCount()).
		Msg("analyzing garments")

	resp, err := s.analyzer.Analyze(ctx, modelRequest)
	if err != nil {
		return nil, s.remoteError(op, err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return nil, faults.Format(op, nil, "analyzer returned an empty response (finish reason %q)", resp.FinishReason)
	}

	report, err := entities.ParseConditionReport([]byte(resp.Text))
	if err != nil {
		return nil, faults.Format(op, err, "analyzer response does not match the condition report schema")
	}

	log.Ctx(ctx).Info().
		Str("request_id", string(request.ID())).
		Str("body_size", report.BodySize).
		Str("style_vibe", report.StylingSuggestions.StyleVibe).
		Msg("condition report ready")

	return report, nil
}

func (s *FittingDomainService) Synthesize(
	ctx context.Context,
	request *entities.TryOnRequest,
	report *entities.ConditionReport,
) (*entities.SynthesisResult, error) {
	const op = "synthesize"

	if request == nil {
		return nil, faults.Validation(op, "a person image and at least one garment image are required")
	}
	if report == nil {
		return nil, faults.Validation(op, "a condition report from the analyzer is required before synthesis")
	}
	if err := report.Validate(); err != nil {
		return nil, faults.Validation(op, "condition report cannot drive synthesis: %v", err)
	}

	modelRequest := s.BuildSynthesisRequest(request, report)
	log.Ctx(ctx).Info().
		Str("request_id", string(request.ID())).
		Str("model", modelRequest.Model()).
		Str("body_size", report.BodySize).
		Int("images", modelRequest.ImageCount()).
		Msg("synthesizing try-on image")

	resp, err := s.synthesizer.Synthesize(ctx, modelRequest)
	if err != nil {
		return nil, s.remoteError(op, err)
	}

	for _, part := range resp.Images {
		if part == nil || len(part.Data) == 0 {
			continue
		}

		image, err := valueobjects.NewImageData(part.Data, part.MimeType)
		if err != nil {
			return nil, faults.Format(op, err, "synthesizer returned an undecodable %s image", part.MimeType)
		}

		result := entities.NewSynthesisResult(request.ID(), image, modelRequest.Model())
		result.SetNote(resp.Text)

		log.Ctx(ctx).Info().
			Str("request_id", string(request.ID())).
			Str("mime_type", string(image.MimeType())).
			Int("bytes", image.Size()).
			Msg("try-on image ready")

		return result, nil
	}

	log.Ctx(ctx).Warn().
		Str("request_id", string(request.ID())).
		Int("parts", resp.PartCount).
		Str("finish_reason", resp.FinishReason).
		Str("text", resp.Text).
		Msg("no image data in response")

	return nil, faults.NoImageProduced(op, "model returned %d parts but no inline image data", resp.PartCount)
}

// remoteError keeps faults raised by the adapters and classifies the rest as
// transport failures.
func (s *FittingDomainService) remoteError(op string, err error) error {
	var fault *faults.Error
	isFault := errors.As(err, &fault)

	if IsQuotaError(err) {
		cause := err
		if isFault && fault.Op != "" {
			inner := *fault
			inner.Op = ""
			cause = &inner
		}
		return faults.Transportf(op, cause, "service temporarily unavailable due to high demand")
	}

	if isFault {
		return err
	}
	return faults.Transport(op, err)
}

// IsQuotaError reports whether err came from an exhausted backend quota.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted")
}
