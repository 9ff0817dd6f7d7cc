package ocr

import (
	"strings"
	"testing"
)

func TestAnalyzePDFRejectsGarbage(t *testing.T) {
	result := AnalyzePDF([]byte("definitiv kein PDF"))
	if result.Error == nil {
		t.Error("expected an error for non-PDF input")
	}
	if !result.IsScanned {
		t.Error("IsScanned = false, want conservative true on failure")
	}
}

func TestIsPDF(t *testing.T) {
	if !IsPDF([]byte("%PDF-1.7\n...")) {
		t.Error("IsPDF = false for PDF magic bytes")
	}
	if IsPDF([]byte("PNG")) {
		t.Error("IsPDF = true for non-PDF data")
	}
}

func TestIsLikelyScanned(t *testing.T) {
	if !isLikelyScanned("kurz", 1) {
		t.Error("sparse text should register as scanned")
	}
	dense := strings.Repeat("Kontoauszug Zeile mit Inhalt\n", 20)
	if isLikelyScanned(dense, 1) {
		t.Error("dense text should not register as scanned")
	}
	if !isLikelyScanned(dense, 100) {
		t.Error("dense text spread over many pages should register as scanned")
	}
}
