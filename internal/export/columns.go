// Package export renders accounting records as XLSX workbooks or CSV for
// import into bookkeeping software.
package export

import (
	"strconv"

	"github.com/belegflow/backend/internal/record"
)

// baseColumns are always present.
var baseColumns = []string{"Datum", "Betrag", "Beschreibung", "Kategorie", "Subkategorie"}

type optionalColumn struct {
	name    string
	present func(r *record.AccountingRecord) bool
}

// optionalColumns appear only when at least one record carries a value.
// The value date column is deliberately absent from exports.
var optionalColumns = []optionalColumn{
	{"Rechnungsnummer", func(r *record.AccountingRecord) bool { return r.InvoiceNumber != "" }},
	{"Unternehmen", func(r *record.AccountingRecord) bool { return r.CompanyName != "" }},
	{"MWST-Betrag", func(r *record.AccountingRecord) bool { return r.VATAmount != 0 }},
	{"MWST-Satz", func(r *record.AccountingRecord) bool { return r.VATRate != 0 }},
	{"Verwendungszweck", func(r *record.AccountingRecord) bool { return r.Purpose != "" }},
	{"Gegenkonto", func(r *record.AccountingRecord) bool { return r.CounterAccount != "" }},
	{"Transaktionstyp", func(r *record.AccountingRecord) bool { return r.TransactionType != "" }},
	{"Betrag Brutto", func(r *record.AccountingRecord) bool { return r.GrossAmount != 0 }},
	{"Betrag Netto", func(r *record.AccountingRecord) bool { return r.NetAmount != 0 }},
}

// Columns derives the header row for a record set: the base columns plus
// every optional column that at least one record populates.
func Columns(records []record.AccountingRecord) []string {
	columns := append([]string{}, baseColumns...)
	for _, opt := range optionalColumns {
		for i := range records {
			if opt.present(&records[i]) {
				columns = append(columns, opt.name)
				break
			}
		}
	}
	return columns
}

// cellValue renders one column of one record. Numeric zero values and empty
// strings come out as empty cells rather than "0".
func cellValue(r *record.AccountingRecord, column string) any {
	switch column {
	case "Datum":
		return r.Date
	case "Betrag":
		return r.Amount
	case "Beschreibung":
		return r.Description
	case "Kategorie":
		return r.Category
	case "Subkategorie":
		return r.SubCategory
	case "Rechnungsnummer":
		return r.InvoiceNumber
	case "Unternehmen":
		return r.CompanyName
	case "MWST-Betrag":
		return emptyIfZero(r.VATAmount)
	case "MWST-Satz":
		return emptyIfZero(r.VATRate)
	case "Verwendungszweck":
		return r.Purpose
	case "Gegenkonto":
		return r.CounterAccount
	case "Transaktionstyp":
		return r.TransactionType
	case "Betrag Brutto":
		return emptyIfZero(r.GrossAmount)
	case "Betrag Netto":
		return emptyIfZero(r.NetAmount)
	}
	return ""
}

func emptyIfZero(v float64) any {
	if v == 0 {
		return ""
	}
	return v
}

func cellString(r *record.AccountingRecord, column string) string {
	switch v := cellValue(r, column).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
