package extraction

import (
	"strings"

	"github.com/belegflow/backend/internal/record"
)

// weightedKeyword scores document-type evidence. Strong markers such as
// "kontoauszug" or "rechnungsnummer" outweigh generic vocabulary like
// "bank" or "summe".
type weightedKeyword struct {
	keyword string
	weight  int
}

var bankStatementMarkers = []weightedKeyword{
	{"kontoauszug", 3},
	{"bankauszug", 3},
	{"buchungsdatum", 3},
	{"wertstellung", 3},
	{"account statement", 3},
	{"überweisung", 2},
	{"lastschrift", 2},
	{"gutschrift", 2},
	{"saldo", 2},
	{"valuta", 2},
	{"iban", 2},
	{"bic", 2},
	{"bank", 1},
	{"konto", 1},
	{"buchung", 1},
	{"kontostand", 1},
}

var receiptMarkers = []weightedKeyword{
	{"rechnungsnummer", 3},
	{"quittung", 3},
	{"kassenbon", 3},
	{"belegnummer", 3},
	{"rechnung", 2},
	{"invoice", 2},
	{"beleg", 2},
	{"mwst", 2},
	{"ust-id", 2},
	{"umsatzsteuer", 2},
	{"summe", 1},
	{"gesamtbetrag", 1},
	{"netto", 1},
	{"brutto", 1},
	{"bar", 1},
	{"kasse", 1},
}

func score(lower string, markers []weightedKeyword) int {
	total := 0
	for _, m := range markers {
		if strings.Contains(lower, m.keyword) {
			total += m.weight
		}
	}
	return total
}

// DetectDocumentType classifies raw OCR text as a receipt or a bank
// statement by comparing weighted keyword scores. Ties, including two zero
// scores, resolve to bank-statement.
func DetectDocumentType(text string) record.DocumentType {
	lower := strings.ToLower(text)

	if score(lower, receiptMarkers) > score(lower, bankStatementMarkers) {
		return record.DocumentTypeReceipt
	}
	return record.DocumentTypeBankStatement
}
