package ai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

const defaultLLMBaseURL = "https://api.groq.com/openai/v1"

// CheckInPrompt is the request sent to the text-understanding service
type CheckInPrompt struct {
	Transcript     string
	PriorThemes    []string
	PriorScore     *float64
	PriorDirection string
	DisplayName    string
}

// OpenAITextClient talks to any OpenAI-compatible chat completion API
type OpenAITextClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAITextClient creates a client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewOpenAITextClient(cfg *config.LLMConfig) *OpenAITextClient {
	var (
		apiKey  string
		baseURL string
		model   = "llama-3.1-70b-versatile"
		temp    float32 = 0.3
		tokens          = 1200
		timeout         = 20 * time.Second
	)
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.Temperature > 0 {
			temp = cfg.Temperature
		}
		if cfg.MaxTokens > 0 {
			tokens = cfg.MaxTokens
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	if baseURL == "" {
		baseURL = os.Getenv("LLM_BASE_URL")
		if baseURL == "" {
			baseURL = defaultLLMBaseURL
		}
	}

	oc := openai.DefaultConfig(apiKey)
	oc.BaseURL = strings.TrimRight(baseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAITextClient{
		client:      openai.NewClientWithConfig(oc),
		model:       model,
		temperature: temp,
		maxTokens:   tokens,
	}
}

// AnalyzeCheckIn sends the transcript and context and returns the raw JSON content
func (c *OpenAITextClient) AnalyzeCheckIn(ctx context.Context, p CheckInPrompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: checkInSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildCheckInMessage(p)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

const checkInSystemPrompt = `You analyse short wellbeing check-in conversations with students.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "summary": string,             // two or three sentences addressed to the user
  "themes": [string],            // up to 5 short topics
  "keywords": [string],          // up to 8 words or short phrases
  "positive_drivers": [string],  // things helping the user's wellbeing
  "negative_drivers": [string],  // things weighing on the user's wellbeing
  "risk_level": "none" | "mild" | "moderate" | "high",
  "risk_reasons": [string],
  "mood_rating": integer 1-10,
  "text_score": number 0-100,    // overall wellbeing, 50 is neutral
  "uncertainty": number 0-1
}
Use "high" risk only for explicit self-harm or suicidal ideation.`

func buildCheckInMessage(p CheckInPrompt) string {
	var sb strings.Builder
	if p.DisplayName != "" {
		sb.WriteString(fmt.Sprintf("User: %s\n", p.DisplayName))
	}
	if len(p.PriorThemes) > 0 {
		sb.WriteString(fmt.Sprintf("Themes from previous check-in: %s\n", strings.Join(p.PriorThemes, ", ")))
	}
	if p.PriorScore != nil {
		sb.WriteString(fmt.Sprintf("Previous score: %.0f\n", *p.PriorScore))
	}
	if p.PriorDirection != "" {
		sb.WriteString(fmt.Sprintf("Previous direction of change: %s\n", p.PriorDirection))
	}
	sb.WriteString("\nTranscript:\n")
	sb.WriteString(p.Transcript)
	return sb.String()
}
