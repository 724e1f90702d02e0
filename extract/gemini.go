package extract

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/seatflow/onboard/onboarding"
)

const defaultModel = "models/gemini-2.5-flash"

// Gemini backs the extraction port with the Gemini API. One request per
// turn: the step guide and state snapshot go in, a JSON patch comes out.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewGemini creates the client. The model name and per-call timeout are
// optional; zero values pick the defaults.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Extract implements onboarding.Extractor. Transport failures, timeouts
// and malformed responses all surface as errors; the orchestrator treats
// every one of them as an empty patch and re-asks.
func (g *Gemini) Extract(ctx context.Context, step onboarding.Step, userText string, state *onboarding.State) (*onboarding.Patch, error) {
	g.mu.RLock()
	closed := g.closed
	g.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("extractor is closed")
	}

	// The store name needs no model: the reply is the value.
	if step == onboarding.StepStoreName {
		name := strings.TrimSpace(userText)
		if name == "" {
			return &onboarding.Patch{}, nil
		}
		return &onboarding.Patch{StoreName: &name}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(step, userText, state)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.2),
			TopP:             genai.Ptr[float32](0.9),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := resp.Text()
	log.Printf("📥 extractor raw response (%s): %s", step, raw)

	return DecodePatch(raw), nil
}

// Close marks the extractor unusable.
func (g *Gemini) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}
