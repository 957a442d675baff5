package external

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog/log"

	"fashion-unlimited/internal/domain/entities"
	"fashion-unlimited/internal/domain/faults"
	"fashion-unlimited/internal/domain/repositories"
)

// VertexAIService serves both model calls through Vertex AI on the project's
// regional endpoint.
type VertexAIService struct {
	clients repositories.VertexAIClientPool
}

func NewVertexAIService(clients repositories.VertexAIClientPool) repositories.FittingAIService {
	return &VertexAIService{
		clients: clients,
	}
}

func (s *VertexAIService) Analyze(ctx context.Context, request *entities.ModelRequest) (*repositories.ModelResponse, error) {
	return s.generate(ctx, "analyze", request)
}

func (s *VertexAIService) Synthesize(ctx context.Context, request *entities.ModelRequest) (*repositories.ModelResponse, error) {
	return s.generate(ctx, "synthesize", request)
}

func (s *VertexAIService) Close() error {
	return s.clients.Close()
}

func (s *VertexAIService) generate(
	ctx context.Context,
	op string,
	request *entities.ModelRequest,
) (*repositories.ModelResponse, error) {
	client, err := s.clients.GetVertexAIClient(ctx)
	if err != nil {
		return nil, faults.Transportf(op, err, "vertex client unavailable")
	}

	model := client.GenerativeModel(request.Model())
	configureVertexModel(model, request)

	log.Ctx(ctx).Debug().
		Str("backend", "vertex").
		Str("model", request.Model()).
		Int("parts", len(request.Parts())).
		Bool("json", request.Schema() != nil).
		Msg("generateContent")

	resp, err := model.GenerateContent(ctx, toVertexParts(request.Parts())...)
	if err != nil {
		return nil, faults.Transportf(op, err, "vertex AI request failed")
	}

	out := fromVertexResponse(resp)
	log.Ctx(ctx).Debug().
		Str("backend", "vertex").
		Int("parts", out.PartCount).
		Int("images", len(out.Images)).
		Str("finish_reason", out.FinishReason).
		Msg("generateContent response")

	return out, nil
}

func configureVertexModel(model *genai.GenerativeModel, request *entities.ModelRequest) {
	model.SetTemperature(request.Temperature())
	model.SetCandidateCount(1)
	if schema := request.Schema(); schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = toVertexSchema(schema)
	}
}

func toVertexParts(parts []entities.ModelPart) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.IsImage() {
			out = append(out, genai.Blob{
				MIMEType: string(part.Image.MimeType()),
				Data:     part.Image.Data(),
			})
			continue
		}
		out = append(out, genai.Text(part.Text))
	}
	return out
}

func toVertexSchema(schema *entities.ResponseSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:     vertexType(schema.Type),
		Required: schema.Required,
		Enum:     schema.Enum,
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toVertexSchema(prop)
		}
	}
	return out
}

func vertexType(t entities.SchemaType) genai.Type {
	switch t {
	case entities.SchemaObject:
		return genai.TypeObject
	case entities.SchemaString:
		return genai.TypeString
	default:
		return genai.TypeUnspecified
	}
}

// fromVertexResponse reads the first candidate only.
func fromVertexResponse(resp *genai.GenerateContentResponse) *repositories.ModelResponse {
	out := &repositories.ModelResponse{}
	if resp == nil {
		return out
	}

	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockedReasonUnspecified {
			out.FinishReason = "BLOCKED_" + wireEnum(fb.BlockReason.String(), "BlockedReason")
		}
		return out
	}

	candidate := resp.Candidates[0]
	out.FinishReason = wireEnum(candidate.FinishReason.String(), "FinishReason")
	if candidate.Content == nil {
		return out
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		out.PartCount++

		switch p := part.(type) {
		case genai.Blob:
			out.Images = append(out.Images, &repositories.ModelImage{MimeType: p.MIMEType, Data: p.Data})
		case genai.Text:
			text.WriteString(string(p))
		default:
			log.Debug().Str("part", fmt.Sprintf("%T", part)).Msg("ignoring vertex response part")
		}
	}
	out.Text = text.String()

	return out
}

// wireEnum turns a Go enum name such as FinishReasonMaxTokens into the API
// wire form MAX_TOKENS. The unspecified value maps to the empty string.
func wireEnum(name, prefix string) string {
	name = strings.TrimPrefix(name, prefix)
	if name == "" || name == "Unspecified" {
		return ""
	}

	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
