package ocr

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	maxPDFTextBytes = 100 * 1024 // cap extracted text at 100KB
	// Chars per page below which the PDF is treated as a scan that needs
	// image OCR instead of its text layer.
	scannedThreshold = 50
)

// PDFAnalysis is the result of probing a PDF's text layer.
type PDFAnalysis struct {
	PageCount     int
	ExtractedText string
	IsScanned     bool
	Error         error
}

// AnalyzePDF pulls the text layer out of a PDF and judges whether the file
// is a scan. The pdf library panics on some malformed files, so the whole
// analysis is wrapped in recover and degrades to "scanned" on any failure.
func AnalyzePDF(data []byte) (result *PDFAnalysis) {
	result = &PDFAnalysis{
		PageCount: 1,
		IsScanned: true,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic during PDF analysis: %v", r)
			result.IsScanned = true
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Error = fmt.Errorf("open PDF reader: %w", err)
		return result
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		result.Error = fmt.Errorf("extract plain text: %w", err)
		return result
	}
	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxPDFTextBytes)))
	if err != nil {
		result.Error = fmt.Errorf("read plain text: %w", err)
		return result
	}

	result.ExtractedText = strings.TrimSpace(string(textBytes))
	result.IsScanned = isLikelyScanned(result.ExtractedText, result.PageCount)
	return result
}

func isLikelyScanned(text string, pages int) bool {
	if pages <= 0 {
		pages = 1
	}
	return len(text)/pages < scannedThreshold
}

// IsPDF sniffs the magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
