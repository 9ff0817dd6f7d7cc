package extraction

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/belegflow/backend/internal/record"
)

// Service runs the full text-to-records pipeline: document-type detection,
// the strategy cascade and per-record validation.
type Service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("component", "extraction").Logger()}
}

// Result carries the extracted records along with how they were produced.
type Result struct {
	DocumentType record.DocumentType       `json:"dokument_typ"`
	Strategy     string                    `json:"strategie"`
	Records      []record.AccountingRecord `json:"datensaetze"`
	Warnings     []string                  `json:"warnungen,omitempty"`
}

// FromText runs the extraction cascade over raw OCR text. An empty docType
// triggers keyword detection. An exhausted cascade is reported as
// NO_RECORDS_FOUND so callers can tell "bad document" from "no extractable
// content".
func (s *Service) FromText(ctx context.Context, text string, docType record.DocumentType) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &Error{
			Code:    ErrInvalidDocument,
			Message: "document contains no text",
		}
	}

	if docType == "" {
		docType = DetectDocumentType(text)
	}
	records, strategy := ExtractFromText(text, docType)
	if len(records) == 0 {
		s.log.Warn().Str("doc_type", string(docType)).Msg("extraction cascade exhausted")
		return nil, &Error{
			Code:    ErrNoRecordsFound,
			Message: "no records could be extracted from text",
		}
	}

	result := &Result{
		DocumentType: docType,
		Strategy:     strategy,
		Records:      records,
		Warnings:     collectWarnings(records),
	}
	s.log.Info().
		Str("doc_type", string(docType)).
		Str("strategy", strategy).
		Int("records", len(records)).
		Int("warnings", len(result.Warnings)).
		Msg("text extraction complete")
	return result, nil
}

// FromStructured adapts an already-structured OCR/LLM payload. If the
// adapter rejects everything, the text cascade is the caller's fallback.
func (s *Service) FromStructured(ctx context.Context, payload any, docType record.DocumentType) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := AdaptStructured(payload, docType)
	if len(records) == 0 {
		return nil, &Error{
			Code:    ErrNoRecordsFound,
			Message: "structured payload yielded no usable records",
		}
	}
	if docType == "" {
		docType = guessPayloadType(payload)
	}

	result := &Result{
		DocumentType: docType,
		Strategy:     "structured",
		Records:      records,
		Warnings:     collectWarnings(records),
	}
	s.log.Info().
		Str("doc_type", string(docType)).
		Int("records", len(records)).
		Msg("structured extraction complete")
	return result, nil
}

func collectWarnings(records []record.AccountingRecord) []string {
	var warnings []string
	for i := range records {
		warnings = append(warnings, records[i].Validate()...)
	}
	return warnings
}
