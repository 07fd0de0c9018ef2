// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package extract

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/platform-engineering-labs/opswish/pkg/config"
	"github.com/platform-engineering-labs/opswish/pkg/intent"
)

// extractionPrompt instructs the model to emit exactly the three labeled
// fields pkg/intent parses. Ambiguous commands default to a resource group
// at the model level; unmatched kinds still normalize to Unknown here.
const extractionPrompt = `You are an Azure cloud assistant.
Your job is to extract deployment information from user commands related to Azure resource creation.

Supported resource types:
- Resource Group (RG)
- Storage Account
- Web App
- Function App
- Logic App

Your output must be in the following format:

resource_type: <resource-type>
name: <resource-name>
location: <azure-region>

Rules:
- Always lowercase resource_type
- Only include one resource per response
- No explanations, just return data in exact format
- If unclear, default to "resource group"`

// Gemini extracts intents with a Google Gemini model.
type Gemini struct {
	model llms.Model
}

// NewGemini builds an extractor over the configured Gemini model.
func NewGemini(ctx context.Context, cfg *config.Config) (*Gemini, error) {
	opts := []googleai.Option{
		googleai.WithAPIKey(cfg.GoogleAPIKey),
	}
	if cfg.GeminiModel != "" {
		opts = append(opts, googleai.WithDefaultModel(cfg.GeminiModel))
	}

	model, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{model: model}, nil
}

// Extract sends the command to the model and normalizes its completion.
// Transport and auth failures surface as errors; malformed completions
// fail normalization instead of crashing.
func (g *Gemini) Extract(ctx context.Context, command string) (intent.Intent, error) {
	prompt := fmt.Sprintf("%s\n\nCommand:\n%q", extractionPrompt, command)

	resp, err := g.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return intent.Intent{}, fmt.Errorf("intent extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return intent.Intent{}, fmt.Errorf("intent extraction returned no completion")
	}

	rawKind, rawName, rawLocation, err := intent.ParseFields(resp.Choices[0].Content)
	if err != nil {
		return intent.Intent{}, err
	}

	return intent.Normalize(rawKind, rawName, rawLocation)
}
