package oracle

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

type geminiOracle struct {
	client *genai.Client
	model  string
}

// NewGemini returns an Oracle backed by the Gemini API. Responses are
// requested as JSON at temperature zero.
func NewGemini(ctx context.Context, apiKey, model string) (Oracle, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &geminiOracle{client: client, model: model}, nil
}

func (o *geminiOracle) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Models.GenerateContent(
		ctx,
		o.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
