package external

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"fashion-unlimited/internal/domain/entities"
	"fashion-unlimited/internal/domain/faults"
	"fashion-unlimited/internal/domain/repositories"
)

// GeminiAIService serves both model calls through the Gemini API.
type GeminiAIService struct {
	clients repositories.GenAIClientPool
}

func NewGeminiAIService(clients repositories.GenAIClientPool) repositories.FittingAIService {
	return &GeminiAIService{
		clients: clients,
	}
}

func (s *GeminiAIService) Analyze(ctx context.Context, request *entities.ModelRequest) (*repositories.ModelResponse, error) {
	return s.generate(ctx, "analyze", request)
}

func (s *GeminiAIService) Synthesize(ctx context.Context, request *entities.ModelRequest) (*repositories.ModelResponse, error) {
	return s.generate(ctx, "synthesize", request)
}

func (s *GeminiAIService) Close() error {
	return s.clients.Close()
}

func (s *GeminiAIService) generate(
	ctx context.Context,
	op string,
	request *entities.ModelRequest,
) (*repositories.ModelResponse, error) {
	client, err := s.clients.GetGenAIClient(ctx)
	if err != nil {
		return nil, faults.Transportf(op, err, "gemini client unavailable")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(toGenAIParts(request.Parts()), genai.RoleUser),
	}

	log.Ctx(ctx).Debug().
		Str("backend", "gemini").
		Str("model", request.Model()).
		Int("parts", len(request.Parts())).
		Bool("json", request.Schema() != nil).
		Msg("generateContent")

	resp, err := client.Models.GenerateContent(ctx, request.Model(), contents, toGenAIConfig(request))
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, faults.Transportf(op, err, "gemini API returned status %d %s", apiErr.Code, apiErr.Status)
		}
		return nil, faults.Transport(op, err)
	}

	out := fromGenAIResponse(resp)
	log.Ctx(ctx).Debug().
		Str("backend", "gemini").
		Int("parts", out.PartCount).
		Int("images", len(out.Images)).
		Str("finish_reason", out.FinishReason).
		Msg("generateContent response")

	return out, nil
}

func toGenAIParts(parts []entities.ModelPart) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.IsImage() {
			out = append(out, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: string(part.Image.MimeType()),
					Data:     part.Image.Data(),
				},
			})
			continue
		}
		out = append(out, genai.NewPartFromText(part.Text))
	}
	return out
}

func toGenAIConfig(request *entities.ModelRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(request.Temperature()),
	}
	if schema := request.Schema(); schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenAISchema(schema)
	}
	return config
}

func toGenAISchema(schema *entities.ResponseSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:             genai.Type(schema.Type),
		Required:         schema.Required,
		PropertyOrdering: schema.Ordering,
		Enum:             schema.Enum,
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}

// fromGenAIResponse reads the first candidate only.
func fromGenAIResponse(resp *genai.GenerateContentResponse) *repositories.ModelResponse {
	out := &repositories.ModelResponse{}
	if resp == nil {
		return out
	}

	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			out.FinishReason = "BLOCKED_" + string(fb.BlockReason)
		}
		return out
	}

	candidate := resp.Candidates[0]
	out.FinishReason = string(candidate.FinishReason)
	if candidate.Content == nil {
		return out
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		out.PartCount++

		switch {
		case part.InlineData != nil:
			out.Images = append(out.Images, &repositories.ModelImage{
				MimeType: part.InlineData.MIMEType,
				Data:     part.InlineData.Data,
			})
		case part.Thought:
			// thought summaries are not answer text
		case part.Text != "":
			text.WriteString(part.Text)
		}
	}
	out.Text = text.String()

	return out
}

