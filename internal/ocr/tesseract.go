package ocr

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/belegflow/backend/internal/extraction"
)

// Runner lets tests stub the external tesseract binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	log zerolog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		r.log.Error().
			Str("cmd", name).
			Str("args", strings.Join(args, " ")).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("exec failed")
	}
	return out.Bytes(), errb.Bytes(), err
}

// Tesseract extracts plain text from document images with a local tesseract
// install. It is the offline fallback when no vision API key is configured.
type Tesseract struct {
	runner    Runner
	binary    string
	languages string
	log       zerolog.Logger
}

// NewTesseract wires the real binary. Languages default to deu+eng.
func NewTesseract(binary, languages string, log zerolog.Logger) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	if languages == "" {
		languages = "deu+eng"
	}
	return &Tesseract{
		runner:    execRunner{log: log},
		binary:    binary,
		languages: languages,
		log:       log.With().Str("component", "tesseract").Logger(),
	}
}

// NewTesseractWithRunner is the test hook.
func NewTesseractWithRunner(runner Runner, languages string, log zerolog.Logger) *Tesseract {
	t := NewTesseract("", languages, log)
	t.runner = runner
	return t
}

// ExtractText OCRs the given image bytes. The image lands in a temp file
// because tesseract reads from disk.
func (t *Tesseract) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	path := filepath.Join(os.TempDir(), "belegflow-"+uuid.NewString())
	if err := os.WriteFile(path, imageData, 0o600); err != nil {
		return "", &extraction.Error{
			Code:    extraction.ErrOCRUnavailable,
			Message: "cannot stage image for tesseract",
			Method:  "tesseract",
			Cause:   err,
		}
	}
	defer os.Remove(path)

	stdout, stderr, err := t.runner.Run(ctx, t.binary, path, "stdout", "-l", t.languages, "--psm", "6")
	if err != nil {
		return "", &extraction.Error{
			Code:    extraction.ErrOCRUnavailable,
			Message: "tesseract failed: " + strings.TrimSpace(string(stderr)),
			Method:  "tesseract",
			Cause:   err,
		}
	}

	text := strings.TrimSpace(string(stdout))
	t.log.Debug().Int("text_len", len(text)).Msg("tesseract extraction complete")
	if text == "" {
		return "", &extraction.Error{
			Code:    extraction.ErrNoRecordsFound,
			Message: "tesseract produced no text",
			Method:  "tesseract",
		}
	}
	return text, nil
}
