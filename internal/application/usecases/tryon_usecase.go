package usecases

import (
	"context"
	"time"

	"fashion-unlimited/internal/domain/entities"
	"fashion-unlimited/internal/domain/faults"
	"fashion-unlimited/internal/domain/services"
	"fashion-unlimited/internal/domain/valueobjects"
)

// DefaultCallTimeout bounds each remote model call when none is configured.
const DefaultCallTimeout = 90 * time.Second

// Counter receives cycle outcome counts. metrics.Registry satisfies it.
type Counter interface {
	Inc(ctx context.Context, name string, labels map[string]string, n int64)
}

type TryOnUseCase struct {
	domainService *services.FittingDomainService
	callTimeout   time.Duration
	counter       Counter
}

func NewTryOnUseCase(
	domainService *services.FittingDomainService,
	callTimeout time.Duration,
	counter Counter,
) *TryOnUseCase {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &TryOnUseCase{
		domainService: domainService,
		callTimeout:   callTimeout,
		counter:       counter,
	}
}

type ImageUpload struct {
	Data     []byte
	MimeType string
}

type TryOnInput struct {
	Mode     string
	Person   ImageUpload
	Garments map[valueobjects.GarmentSlot]ImageUpload
}

type TryOnOutput struct {
	RequestID entities.TryOnRequestID
	// Image is a data:<mime>;base64,<payload> URI.
	Image    string
	MimeType string
	Note     string
	Report   *entities.ConditionReport
}

type AnalyzeOutput struct {
	RequestID entities.TryOnRequestID
	Report    *entities.ConditionReport
}

// Execute runs one fitting cycle: analysis, then synthesis. The first failure
// ends the cycle.
func (uc *TryOnUseCase) Execute(ctx context.Context, input TryOnInput) (*TryOnOutput, error) {
	request, err := uc.buildRequest(input)
	if err != nil {
		uc.count(ctx, "prepare", err)
		return nil, err
	}

	report, err := uc.analyze(ctx, request)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	result, err := uc.domainService.Synthesize(callCtx, request, report)
	cancel()
	uc.count(ctx, "synthesize", err)
	if err != nil {
		return nil, err
	}

	return &TryOnOutput{
		RequestID: request.ID(),
		Image:     result.DataURI(),
		MimeType:  string(result.MimeType()),
		Note:      result.Note(),
		Report:    report,
	}, nil
}

// Analyze runs only the condition analysis for the uploaded images.
func (uc *TryOnUseCase) Analyze(ctx context.Context, input TryOnInput) (*AnalyzeOutput, error) {
	request, err := uc.buildRequest(input)
	if err != nil {
		uc.count(ctx, "prepare", err)
		return nil, err
	}

	report, err := uc.analyze(ctx, request)
	if err != nil {
		return nil, err
	}

	return &AnalyzeOutput{
		RequestID: request.ID(),
		Report:    report,
	}, nil
}

func (uc *TryOnUseCase) analyze(ctx context.Context, request *entities.TryOnRequest) (*entities.ConditionReport, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	defer cancel()

	report, err := uc.domainService.Analyze(callCtx, request)
	uc.count(ctx, "analyze", err)
	return report, err
}

func (uc *TryOnUseCase) buildRequest(input TryOnInput) (*entities.TryOnRequest, error) {
	const op = "prepare request"

	mode, err := valueobjects.ParseGarmentMode(input.Mode)
	if err != nil {
		return nil, faults.Validation(op, "%v", err)
	}

	if len(input.Person.Data) == 0 {
		return nil, faults.Validation(op, "person image is required")
	}
	personImage, err := valueobjects.NewImageData(input.Person.Data, input.Person.MimeType)
	if err != nil {
		return nil, faults.Validation(op, "invalid person image: %v", err)
	}

	garments := make(map[valueobjects.GarmentSlot]*valueobjects.ImageData, len(input.Garments))
	for slot, upload := range input.Garments {
		if len(upload.Data) == 0 {
			continue
		}
		garmentImage, err := valueobjects.NewImageData(upload.Data, upload.MimeType)
		if err != nil {
			return nil, faults.Validation(op, "invalid %s image: %v", slot, err)
		}
		garments[slot] = garmentImage
	}

	request, err := entities.NewTryOnRequest(mode, personImage, garments)
	if err != nil {
		return nil, faults.Validation(op, "%v", err)
	}
	return request, nil
}

func (uc *TryOnUseCase) count(ctx context.Context, stage string, err error) {
	if uc.counter == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = faults.KindOf(err).String()
	}
	uc.counter.Inc(ctx, "fitting_stage_total", map[string]string{
		"stage":   stage,
		"outcome": outcome,
	}, 1)
}
