package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_ConfigureModel(t *testing.T) {
	model := &genai.GenerativeModel{}
	parts := configureModel(model, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be a chef"},
			{Role: RoleUser, Content: "dinner please"},
		},
		Temperature:  0.2,
		JSONResponse: true,
	}, 2048)

	assert.Equal(t, []genai.Part{genai.Text("dinner please")}, parts)
	require.NotNil(t, model.SystemInstruction)
	assert.Equal(t, []genai.Part{genai.Text("be a chef")}, model.SystemInstruction.Parts)
	assert.Equal(t, "application/json", model.ResponseMIMEType)
	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.2, *model.Temperature, 1e-6)
	require.NotNil(t, model.MaxOutputTokens)
	assert.Equal(t, int32(2048), *model.MaxOutputTokens)
}

func TestGemini_ConfigureModelPlainText(t *testing.T) {
	model := &genai.GenerativeModel{}
	parts := configureModel(model, CompletionRequest{
		Messages:  []Message{{Role: RoleUser, Content: "summarize"}},
		MaxTokens: 500,
	}, 2048)

	assert.Len(t, parts, 1)
	assert.Empty(t, model.ResponseMIMEType)
	assert.Nil(t, model.SystemInstruction)
	assert.Equal(t, int32(500), *model.MaxOutputTokens)
}

func TestGemini_ResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"days":`), genai.Text(`[]}`)}},
		}},
	}
	assert.Equal(t, `{"days":[]}`, responseText(resp))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(nil))
}
