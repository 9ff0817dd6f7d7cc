// Package record defines the accounting records produced by extraction and
// consumed by the review and export layers.
package record

import (
	"regexp"
	"strings"
)

// DocumentType identifies which extraction pipeline a document runs through.
type DocumentType string

const (
	DocumentTypeReceipt       DocumentType = "receipt"
	DocumentTypeBankStatement DocumentType = "bank-statement"
)

// Transaction types used on bank-statement records.
const (
	TransactionTransfer    = "Überweisung"
	TransactionDirectDebit = "Lastschrift"
	TransactionCredit      = "Gutschrift"
	TransactionWithdrawal  = "Abhebung"
)

// AccountingRecord is one bookkeeping entry extracted from a document.
// JSON field names match the German wire format of the export layer.
type AccountingRecord struct {
	Date        string  `json:"datum"`
	Amount      float64 `json:"betrag"`
	Description string  `json:"beschreibung"`
	Category    string  `json:"kategorie"`
	SubCategory string  `json:"subkategorie,omitempty"`

	// Receipt fields.
	InvoiceNumber string  `json:"rechnungsnummer,omitempty"`
	CompanyName   string  `json:"unternehmen,omitempty"`
	VATAmount     float64 `json:"mwst_betrag,omitempty"`
	VATRate       float64 `json:"mwst_satz,omitempty"`
	GrossAmount   float64 `json:"betrag_brutto,omitempty"`
	NetAmount     float64 `json:"betrag_netto,omitempty"`
	// VATEstimated marks VAT figures derived from the standard 19% split
	// rather than read off the document.
	VATEstimated bool `json:"mwst_geschaetzt,omitempty"`

	// Bank-statement fields.
	Purpose         string `json:"verwendungszweck,omitempty"`
	CounterAccount  string `json:"gegenkonto,omitempty"`
	TransactionType string `json:"transaktionstyp,omitempty"`
	ValueDate       string `json:"valuta,omitempty"`
}

var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}$`),
	regexp.MustCompile(`^\d{4}[/\-]\d{1,2}[/\-]\d{1,2}$`),
	regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`),
}

// ValidDateShape reports whether s looks like a supported date format.
// It checks shape only; 99.99.9999 passes.
func ValidDateShape(s string) bool {
	for _, re := range dateShapes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Validate returns human-readable problems with the record. An empty slice
// means the record is usable. It never rejects outright; callers decide
// whether to block or warn.
func (r *AccountingRecord) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, "Beschreibung fehlt")
	}
	if r.Amount == 0 {
		errs = append(errs, "Betrag fehlt oder ist 0")
	}
	if r.Date != "" && !ValidDateShape(r.Date) {
		errs = append(errs, "Datum hat ein ungültiges Format")
	}
	return errs
}

// IsUsable reports whether the record survives aggregation filtering:
// a non-zero amount and a non-empty description.
func (r *AccountingRecord) IsUsable() bool {
	return r.Amount != 0 && strings.TrimSpace(r.Description) != ""
}

// Totals holds the aggregate sums over a record list.
type Totals struct {
	TotalAmount float64            `json:"totalAmount"`
	ByCategory  map[string]float64 `json:"byCategory"`
}

// CalculateTotals sums amounts overall and per category.
func CalculateTotals(records []AccountingRecord) Totals {
	t := Totals{ByCategory: make(map[string]float64)}
	for _, r := range records {
		t.TotalAmount += r.Amount
		if r.Category != "" {
			t.ByCategory[r.Category] += r.Amount
		}
	}
	return t
}
