package extraction

import (
	"testing"

	"github.com/belegflow/backend/internal/record"
)

func TestDetectDocumentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want record.DocumentType
	}{
		{
			"bank statement header",
			"Kontoauszug Nr. 3\nBuchungsdatum Wertstellung Betrag\n01.02.2024 01.02.2024 -50,00",
			record.DocumentTypeBankStatement,
		},
		{
			"receipt with invoice number",
			"REWE Markt GmbH\nRechnungsnummer: 2024-001\nSumme 23,45 EUR\nMwSt 19%",
			record.DocumentTypeReceipt,
		},
		{
			"cash register receipt",
			"Kassenbon\nBrot 2,49\nMilch 1,19\nSumme 3,68\nBar gegeben 5,00",
			record.DocumentTypeReceipt,
		},
		{
			"iban and saldo outweigh summe",
			"IBAN DE89 3704 0044 0532 0130 00\nSaldo 1.024,00\nSumme der Buchungen",
			record.DocumentTypeBankStatement,
		},
		{"empty text defaults to bank statement", "", record.DocumentTypeBankStatement},
		{"no markers defaults to bank statement", "völlig unauffälliger Text", record.DocumentTypeBankStatement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDocumentType(tt.text); got != tt.want {
				t.Errorf("DetectDocumentType = %s, want %s", got, tt.want)
			}
		})
	}
}

// A keyword counts once no matter how often it appears, so repetition cannot
// flip the classification.
func TestDetectDocumentTypeNoDoubleCounting(t *testing.T) {
	text := "summe summe summe summe\nkontoauszug"
	if got := DetectDocumentType(text); got != record.DocumentTypeBankStatement {
		t.Errorf("DetectDocumentType = %s, want %s", got, record.DocumentTypeBankStatement)
	}
}
