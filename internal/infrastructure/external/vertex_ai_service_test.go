package external

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashion-unlimited/internal/domain/entities"
	"fashion-unlimited/internal/domain/faults"
)

type failingVertexPool struct{}

func (failingVertexPool) GetVertexAIClient(ctx context.Context) (*genai.Client, error) {
	return nil, errors.New("failed to find default credentials")
}

func (failingVertexPool) Close() error {
	return nil
}

func TestToVertexParts_KeepsOrder(t *testing.T) {
	person, top := testImage(t), testImage(t)
	request := entities.NewModelRequest("gemini-3-flash-preview", 0).
		AddText("instruction").
		AddImage(person).
		AddImage(top)

	parts := toVertexParts(request.Parts())
	require.Len(t, parts, 3)
	assert.Equal(t, genai.Text("instruction"), parts[0])

	for _, part := range parts[1:] {
		blob, ok := part.(genai.Blob)
		require.True(t, ok)
		assert.Equal(t, "image/png", blob.MIMEType)
		assert.Equal(t, person.Data(), blob.Data)
	}
}

func TestConfigureVertexModel(t *testing.T) {
	t.Run("structured analysis", func(t *testing.T) {
		model := &genai.GenerativeModel{}
		configureVertexModel(model, entities.NewModelRequest("m", 0).ExpectJSON(entities.ConditionReportSchema()))

		require.NotNil(t, model.Temperature)
		assert.Zero(t, *model.Temperature)
		assert.Equal(t, "application/json", model.ResponseMIMEType)
		require.NotNil(t, model.ResponseSchema)
		assert.Equal(t, genai.TypeObject, model.ResponseSchema.Type)
		assert.Equal(t, []string{"S", "M", "L"}, model.ResponseSchema.Properties["bodySize"].Enum)
		assert.Equal(t, genai.TypeString, model.ResponseSchema.Properties["technicalPrompt"].Type)
	})

	t.Run("image synthesis", func(t *testing.T) {
		model := &genai.GenerativeModel{}
		configureVertexModel(model, entities.NewModelRequest("m", 0))

		assert.Empty(t, model.ResponseMIMEType)
		assert.Nil(t, model.ResponseSchema)
	})
}

func TestFromVertexResponse(t *testing.T) {
	png := testImage(t)

	t.Run("text and image parts", func(t *testing.T) {
		resp := fromVertexResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonStop,
				Content: &genai.Content{Parts: []genai.Part{
					genai.Text("Here is "),
					genai.Blob{MIMEType: "image/png", Data: png.Data()},
					genai.Text("the look."),
				}},
			}},
		})

		assert.Equal(t, "Here is the look.", resp.Text)
		assert.Equal(t, 3, resp.PartCount)
		require.Len(t, resp.Images, 1)
		assert.Equal(t, png.Data(), resp.Images[0].Data)
		assert.Equal(t, "STOP", resp.FinishReason)
	})

	t.Run("blocked prompt", func(t *testing.T) {
		resp := fromVertexResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockedReasonSafety},
		})
		assert.Zero(t, resp.PartCount)
		assert.Equal(t, "BLOCKED_SAFETY", resp.FinishReason)
	})

	t.Run("finish reason uses wire name", func(t *testing.T) {
		resp := fromVertexResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
		})
		assert.Equal(t, "MAX_TOKENS", resp.FinishReason)
	})

	t.Run("nil response", func(t *testing.T) {
		assert.Empty(t, fromVertexResponse(nil).Images)
	})
}

func TestWireEnum(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"FinishReasonStop", "FinishReason", "STOP"},
		{"FinishReasonMaxTokens", "FinishReason", "MAX_TOKENS"},
		{"FinishReasonProhibitedContent", "FinishReason", "PROHIBITED_CONTENT"},
		{"FinishReasonSPII", "FinishReason", "SPII"},
		{"FinishReasonUnspecified", "FinishReason", ""},
		{"BlockedReasonSafety", "BlockedReason", "SAFETY"},
		{"BlockedReasonBlocklist", "BlockedReason", "BLOCKLIST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wireEnum(tt.name, tt.prefix))
		})
	}
}

func TestVertexAIService_ClientUnavailable(t *testing.T) {
	service := NewVertexAIService(failingVertexPool{})

	_, err := service.Synthesize(context.Background(), entities.NewModelRequest("m", 0).AddText("x"))
	assert.ErrorIs(t, err, faults.ErrTransport)
	assert.ErrorContains(t, err, "default credentials")
	assert.NoError(t, service.Close())
}
