package entities

import "fashion-unlimited/internal/domain/valueobjects"

// ModelPart is one element of an outbound model request: either instruction
// text or an image blob.
type ModelPart struct {
	Text  string
	Image *valueobjects.ImageData
}

func (p ModelPart) IsImage() bool {
	return p.Image != nil
}

// SchemaType mirrors the OpenAPI subset the models accept for structured output.
type SchemaType string

const (
	SchemaObject SchemaType = "OBJECT"
	SchemaString SchemaType = "STRING"
)

type ResponseSchema struct {
	Type       SchemaType
	Properties map[string]*ResponseSchema
	// Ordering keeps generated JSON stable across calls.
	Ordering []string
	Required []string
	Enum     []string
}

// ModelRequest is a provider-neutral generateContent call.
type ModelRequest struct {
	model       string
	parts       []ModelPart
	temperature float32
	schema      *ResponseSchema
}

func NewModelRequest(model string, temperature float32) *ModelRequest {
	return &ModelRequest{
		model:       model,
		temperature: temperature,
	}
}

func (r *ModelRequest) AddText(text string) *ModelRequest {
	r.parts = append(r.parts, ModelPart{Text: text})
	return r
}

func (r *ModelRequest) AddImage(image *valueobjects.ImageData) *ModelRequest {
	r.parts = append(r.parts, ModelPart{Image: image})
	return r
}

// ExpectJSON constrains the response to application/json matching schema.
func (r *ModelRequest) ExpectJSON(schema *ResponseSchema) *ModelRequest {
	r.schema = schema
	return r
}

func (r *ModelRequest) Model() string {
	return r.model
}

func (r *ModelRequest) Parts() []ModelPart {
	return r.parts
}

func (r *ModelRequest) Temperature() float32 {
	return r.temperature
}

func (r *ModelRequest) Schema() *ResponseSchema {
	return r.schema
}

func (r *ModelRequest) ImageCount() int {
	n := 0
	for _, p := range r.parts {
		if p.IsImage() {
			n++
		}
	}
	return n
}

// ConditionReportSchema is the declared response shape of the analyzer.
func ConditionReportSchema() *ResponseSchema {
	str := func() *ResponseSchema { return &ResponseSchema{Type: SchemaString} }
	sizes := make([]string, len(valueobjects.BodySizes))
	for i, s := range valueobjects.BodySizes {
		sizes[i] = s.String()
	}

	styling := []string{"suggestedPants", "suggestedShoes", "suggestedShirt", "styleVibe"}
	top := []string{"garmentDescription", "personDescription", "bodySize", "technicalPrompt", "stylingSuggestions"}

	return &ResponseSchema{
		Type: SchemaObject,
		Properties: map[string]*ResponseSchema{
			"garmentDescription": str(),
			"personDescription":  str(),
			"bodySize":           {Type: SchemaString, Enum: sizes},
			"technicalPrompt":    str(),
			"stylingSuggestions": {
				Type: SchemaObject,
				Properties: map[string]*ResponseSchema{
					"suggestedPants": str(),
					"suggestedShoes": str(),
					"suggestedShirt": str(),
					"styleVibe":      str(),
				},
				Ordering: styling,
				Required: styling,
			},
		},
		Ordering: top,
		Required: top,
	}
}
