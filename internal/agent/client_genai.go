package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GenAIClient generates persona messages with the Gemini API.
type GenAIClient struct {
	client *genai.Client
	model  string
}

func NewGenAIClient(ctx context.Context, apiKey, model string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{client: client, model: model}, nil
}

func (c *GenAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return Response{}, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return Response{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return Response{}, fmt.Errorf("empty model response")
	}

	return parseResponse(text), nil
}

// buildPrompt turns the structured request into the persona instruction.
// The model is asked for JSON but plain text is tolerated on parse.
func buildPrompt(req Request) (string, error) {
	var b strings.Builder
	switch PersonaFor(req.Mode) {
	case PersonaAdvisor:
		b.WriteString("You are an infrastructure advisor for a focus-garden app. ")
		b.WriteString("Given the player's architecture, suggest one next component. ")
	default:
		b.WriteString("You are a friendly focus coach. ")
		b.WriteString("React briefly to the player's recent focus activity. ")
	}
	b.WriteString("Reply as JSON with fields: message, tone, suggestedDuration, suggestedItem, reasoning.\n")
	b.WriteString("Interaction: " + string(req.Mode) + "\n")

	var payload any
	switch {
	case req.Session != nil:
		payload = req.Session
	case req.Architecture != nil:
		payload = req.Architecture
	default:
		return b.String(), nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode agent context: %w", err)
	}
	b.WriteString("Context: ")
	b.Write(data)
	return b.String(), nil
}

// parseResponse accepts the model's JSON shape, with or without a code
// fence, and falls back to treating the whole reply as the message.
func parseResponse(text string) Response {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var resp Response
	if err := json.Unmarshal([]byte(trimmed), &resp); err == nil && resp.Message != "" {
		return resp
	}
	return Response{Message: strings.TrimSpace(text)}
}
