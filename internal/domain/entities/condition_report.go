package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fashion-unlimited/internal/domain/valueobjects"
)

// ConditionReport is the analyzer's structured description of the person and
// garments. TechnicalPrompt is passed verbatim to the synthesizer.
type ConditionReport struct {
	GarmentDescription string             `json:"garmentDescription" validate:"required,nonblank"`
	PersonDescription  string             `json:"personDescription" validate:"required,nonblank"`
	BodySize           string             `json:"bodySize" validate:"required,oneof=S M L"`
	TechnicalPrompt    string             `json:"technicalPrompt" validate:"required,nonblank"`
	StylingSuggestions StylingSuggestions `json:"stylingSuggestions" validate:"required"`
}

type StylingSuggestions struct {
	SuggestedPants string `json:"suggestedPants" validate:"required,nonblank"`
	SuggestedShoes string `json:"suggestedShoes" validate:"required,nonblank"`
	SuggestedShirt string `json:"suggestedShirt" validate:"required,nonblank"`
	StyleVibe      string `json:"styleVibe" validate:"required,nonblank"`
}

var reportValidator = newReportValidator()

func newReportValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ParseConditionReport decodes and validates an analyzer response. Unknown
// fields are tolerated; missing or empty required fields are not.
func ParseConditionReport(raw []byte) (*ConditionReport, error) {
	var report ConditionReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("response is not a valid condition report: %w", err)
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}

// Validate reports every missing or malformed field at once.
func (r *ConditionReport) Validate() error {
	if r == nil {
		return errors.New("condition report is nil")
	}

	err := reportValidator.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "ConditionReport.")
		switch fe.Tag() {
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		default:
			problems = append(problems, field+" is required")
		}
	}
	return fmt.Errorf("invalid condition report: %s", strings.Join(problems, "; "))
}

func (r *ConditionReport) Size() valueobjects.BodySize {
	return valueobjects.BodySize(r.BodySize)
}
