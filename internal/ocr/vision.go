// Package ocr obtains text or structured data from document images and PDFs,
// via a vision model, a local tesseract binary, or the PDF text layer.
package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/belegflow/backend/internal/extraction"
	"github.com/belegflow/backend/internal/record"
)

// VisionClient sends document images to an OpenAI vision model and returns
// the structured JSON payload the model was prompted to produce.
type VisionClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	log       zerolog.Logger
}

// NewVisionClient builds a client for the given API key. Model defaults to
// gpt-4o-mini when empty.
func NewVisionClient(apiKey, model string, log zerolog.Logger) *VisionClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &VisionClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: 1000,
		log:       log.With().Str("component", "vision").Logger(),
	}
}

// ExtractStructured asks the vision model to read the document and answer
// with JSON. The decoded payload is an object for receipts and an array for
// bank statements; the raw model text comes along for text-cascade fallback.
func (c *VisionClient) ExtractStructured(ctx context.Context, imageData []byte, mimeType string, docType record.DocumentType, language string) (any, string, error) {
	system, user := promptsFor(docType, language)

	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: user,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, "", classifyAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, "", &extraction.Error{
			Code:    extraction.ErrOCRUnavailable,
			Message: "vision response contained no choices",
			Method:  "vision",
		}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug().Int("content_len", len(content)).Str("doc_type", string(docType)).Msg("vision response received")

	payload, err := ExtractJSONPayload(content)
	if err != nil {
		// The raw text still feeds the regex cascade downstream.
		c.log.Warn().Err(err).Msg("vision response is not parseable JSON")
		return nil, content, nil
	}
	return payload, content, nil
}

// classifyAPIError maps transport and API errors onto the extraction error
// taxonomy so the retry layer can tell transient from permanent failures.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return &extraction.Error{
				Code:      extraction.ErrOCRRateLimited,
				Message:   "vision API rate limited",
				Method:    "vision",
				Retryable: true,
				Cause:     err,
			}
		case apiErr.HTTPStatusCode >= 500:
			return &extraction.Error{
				Code:      extraction.ErrOCRUnavailable,
				Message:   "vision API unavailable",
				Method:    "vision",
				Retryable: true,
				Cause:     err,
			}
		}
		return &extraction.Error{
			Code:    extraction.ErrOCRUnavailable,
			Message: "vision API request rejected",
			Method:  "vision",
			Cause:   err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &extraction.Error{
			Code:      extraction.ErrOCRTimeout,
			Message:   "vision API timed out",
			Method:    "vision",
			Retryable: true,
			Cause:     err,
		}
	}
	return &extraction.Error{
		Code:      extraction.ErrOCRUnavailable,
		Message:   "vision API unreachable",
		Method:    "vision",
		Retryable: true,
		Cause:     err,
	}
}
