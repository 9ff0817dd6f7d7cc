// Package processor drives uploaded files through OCR and extraction, one
// file at a time, and tracks progress in a session.
package processor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/belegflow/backend/internal/extraction"
	"github.com/belegflow/backend/internal/ocr"
	"github.com/belegflow/backend/internal/record"
	"github.com/belegflow/backend/internal/session"
)

// VisionOCR reads a document image into a structured payload plus raw text.
type VisionOCR interface {
	ExtractStructured(ctx context.Context, imageData []byte, mimeType string, docType record.DocumentType, language string) (any, string, error)
}

// TextOCR reads a document image into plain text.
type TextOCR interface {
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// File is one uploaded document.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Processor runs the per-file pipeline. Vision and text OCR are both
// optional; with neither configured only PDFs with a text layer work.
type Processor struct {
	vision    VisionOCR
	textOCR   TextOCR
	extractor *extraction.Service
	sessions  *session.Store
	retryCfg  extraction.RetryConfig
	log       zerolog.Logger
}

func New(vision VisionOCR, textOCR TextOCR, extractor *extraction.Service, sessions *session.Store, log zerolog.Logger) *Processor {
	return &Processor{
		vision:    vision,
		textOCR:   textOCR,
		extractor: extractor,
		sessions:  sessions,
		retryCfg:  extraction.DefaultVisionRetryConfig,
		log:       log.With().Str("component", "processor").Logger(),
	}
}

// NoDataMessage is the user-facing notice for a batch that produced no
// usable records.
const NoDataMessage = "Keine Daten gefunden. Bitte versuchen Sie es mit einem anderen Bild."

// Summary is the aggregate outcome of a batch.
type Summary struct {
	Session *session.Session          `json:"sitzung"`
	Records []record.AccountingRecord `json:"datensaetze"`
	Totals  record.Totals             `json:"summen"`
	Message string                    `json:"meldung,omitempty"`
}

// Process runs every file through the pipeline sequentially. A failing file
// is recorded with status error and does not stop the rest of the batch.
// docType is a hint applied to every file; empty means detect per file.
func (p *Processor) Process(ctx context.Context, files []File, docType record.DocumentType, language string) (*Summary, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	sess := p.sessions.Create(names)

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state := session.FileState{Filename: f.Name, Status: session.StatusProcessing}
		_ = p.sessions.UpdateFile(sess.ID, i, state)

		result, err := p.processOne(ctx, f, docType, language)
		if err != nil {
			p.log.Warn().Str("file", f.Name).Err(err).Msg("file failed, continuing batch")
			state.Status = session.StatusError
			state.Error = err.Error()
		} else {
			state.Status = session.StatusCompleted
			state.DocumentType = result.DocumentType
			state.Strategy = result.Strategy
			state.Records = result.Records
		}
		_ = p.sessions.UpdateFile(sess.ID, i, state)
	}

	current, err := p.sessions.Get(sess.ID)
	if err != nil {
		return nil, err
	}
	records := current.Records()
	summary := &Summary{
		Session: current,
		Records: records,
		Totals:  record.CalculateTotals(records),
	}
	if len(records) == 0 {
		summary.Message = NoDataMessage
	}
	p.log.Info().
		Str("session_id", sess.ID).
		Int("files", len(files)).
		Int("records", len(records)).
		Msg("batch complete")
	return summary, nil
}

func (p *Processor) processOne(ctx context.Context, f File, docType record.DocumentType, language string) (*extraction.Result, error) {
	data := f.Data
	if len(data) == 0 {
		return nil, &extraction.Error{
			Code:    extraction.ErrInvalidDocument,
			Message: "file is empty",
		}
	}

	if ocr.IsPDF(data) {
		analysis := ocr.AnalyzePDF(data)
		if !analysis.IsScanned && analysis.ExtractedText != "" {
			return p.extractor.FromText(ctx, analysis.ExtractedText, docType)
		}
		p.log.Debug().Str("file", f.Name).Int("pages", analysis.PageCount).Msg("PDF has no usable text layer, treating as scan")
	}

	var visionErr error
	if p.vision != nil {
		result, err := p.extractViaVision(ctx, f, docType, language)
		if err == nil {
			return result, nil
		}
		p.log.Warn().Str("file", f.Name).Err(err).Msg("vision extraction failed")
		if p.textOCR == nil {
			return nil, err
		}
		visionErr = err
	}

	if p.textOCR != nil {
		text, err := p.textOCR.ExtractText(ctx, data)
		if err != nil {
			if visionErr != nil {
				return nil, &extraction.Error{
					Code:    extraction.ErrAllMethodsFail,
					Message: "vision and local OCR both failed",
					Cause:   err,
				}
			}
			return nil, err
		}
		return p.extractor.FromText(ctx, text, docType)
	}

	return nil, &extraction.Error{
		Code:    extraction.ErrOCRUnavailable,
		Message: "no OCR backend configured for image documents",
	}
}

func (p *Processor) extractViaVision(ctx context.Context, f File, docType record.DocumentType, language string) (*extraction.Result, error) {
	type visionOutput struct {
		payload any
		raw     string
	}
	out, err := extraction.WithRetry(ctx, p.retryCfg, func(ctx context.Context) (visionOutput, error) {
		payload, raw, err := p.vision.ExtractStructured(ctx, f.Data, f.MIME, docType, language)
		return visionOutput{payload: payload, raw: raw}, err
	})
	if err != nil {
		return nil, err
	}

	if out.payload != nil {
		result, err := p.extractor.FromStructured(ctx, out.payload, docType)
		if err == nil {
			return result, nil
		}
	}
	// The structured payload was missing or unusable; the raw model text
	// still gets a pass through the regex cascade.
	if out.raw != "" {
		return p.extractor.FromText(ctx, out.raw, docType)
	}
	return nil, &extraction.Error{
		Code:    extraction.ErrNoRecordsFound,
		Message: "vision produced neither structured data nor text",
	}
}
