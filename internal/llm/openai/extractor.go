// Package openaiextractor implements llm.Extractor using the OpenAI
// Chat Completions API in JSON-object mode.
package openaiextractor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vcatlas/vcatlas/internal/llm"
	"github.com/vcatlas/vcatlas/internal/vc"
)

// recordKeys lists the keys the model must return, in record order.
var recordKeys = []string{"vc_name", "contacts", "industries", "investment_rounds"}

// Config holds extractor configuration.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, useful for testing against a
	// mock server.
	BaseURL string
}

// Extractor sends page text to the OpenAI API with a fixed extraction
// instruction and decodes the JSON reply into a vc.Record.
type Extractor struct {
	client openai.Client
	model  openai.ChatModel
}

// New creates an Extractor. The API key is required.
func New(cfg Config) (*Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4_1Mini
	}
	return &Extractor{client: openai.NewClient(opts...), model: model}, nil
}

// Extract runs one chat completion over the text blob. The blob is sent
// as-is, unbounded; very large pages are at the mercy of the model's
// input limits. Every failure mode collapses into llm.ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, text string) (vc.Record, error) {
	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return vc.Record{}, fmt.Errorf("%w: chat completion: %v", llm.ErrExtraction, err)
	}
	if len(completion.Choices) == 0 {
		return vc.Record{}, fmt.Errorf("%w: empty completion", llm.ErrExtraction)
	}
	return decodeRecord(completion.Choices[0].Message.Content)
}

// decodeRecord enforces the response contract: a JSON object carrying
// exactly the four record keys, with scalar values tolerated for the
// three list fields.
func decodeRecord(content string) (vc.Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return vc.Record{}, fmt.Errorf("%w: malformed response: %v", llm.ErrExtraction, err)
	}
	for _, key := range recordKeys {
		if _, ok := raw[key]; !ok {
			return vc.Record{}, fmt.Errorf("%w: response missing key %q", llm.ErrExtraction, key)
		}
	}
	var record vc.Record
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return vc.Record{}, fmt.Errorf("%w: decode record: %v", llm.ErrExtraction, err)
	}
	if record.VCName == "" {
		return vc.Record{}, fmt.Errorf("%w: empty vc_name", llm.ErrExtraction)
	}
	return record, nil
}
