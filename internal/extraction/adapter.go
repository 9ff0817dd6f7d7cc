package extraction

import (
	"time"

	"github.com/belegflow/backend/internal/record"
)

// AdaptStructured converts an already-decoded JSON payload from a structured
// OCR or LLM response into accounting records. Receipts decode to a single
// object and yield at most one record; bank statements decode to an array of
// transaction objects. When docType is empty, the shape of the payload
// decides which interpretation applies.
func AdaptStructured(payload any, docType record.DocumentType) []record.AccountingRecord {
	if docType == "" {
		docType = guessPayloadType(payload)
	}

	if docType == record.DocumentTypeReceipt {
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil
		}
		if rec, ok := adaptReceipt(obj); ok {
			return []record.AccountingRecord{rec}
		}
		return nil
	}

	var records []record.AccountingRecord
	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if rec, ok := adaptTransaction(obj); ok {
				records = append(records, rec)
			}
		}
	case map[string]any:
		// Some responses wrap the list or return a lone transaction.
		for _, key := range []string{"transactions", "transaktionen"} {
			if list, ok := v[key].([]any); ok {
				return AdaptStructured(list, record.DocumentTypeBankStatement)
			}
		}
		if rec, ok := adaptTransaction(v); ok {
			records = append(records, rec)
		}
	}
	return records
}

// guessPayloadType inspects field names when the caller does not know the
// document type. Receipt-only fields win over transaction-only fields.
func guessPayloadType(payload any) record.DocumentType {
	obj, ok := payload.(map[string]any)
	if !ok {
		return record.DocumentTypeBankStatement
	}
	for _, key := range []string{"rechnungsnummer", "betrag_brutto", "mwst_betrag", "unternehmen"} {
		if _, present := obj[key]; present {
			return record.DocumentTypeReceipt
		}
	}
	return record.DocumentTypeBankStatement
}

// adaptReceipt builds a record from a receipt object. A receipt without a
// usable amount or description is dropped entirely rather than emitted as a
// placeholder row. A missing date falls back to today so the row stays
// importable.
func adaptReceipt(obj map[string]any) (record.AccountingRecord, bool) {
	amount := numberField(obj, "betrag", "betrag_brutto", "amount", "gesamtbetrag")
	description := stringField(obj, "beschreibung", "unternehmen", "description", "company")
	if amount == 0 || description == "" {
		return record.AccountingRecord{}, false
	}

	date := stringField(obj, "datum", "date")
	if date == "" {
		date = time.Now().Format("02.01.2006")
	}

	category := stringField(obj, "kategorie")
	if category == "" {
		category = Classify(description, record.DocumentTypeReceipt)
	}
	subCategory := stringField(obj, "subkategorie")
	if subCategory == "" {
		subCategory = SubCategory(description, category, record.DocumentTypeReceipt)
	}

	rec := record.AccountingRecord{
		Date:          date,
		Amount:        amount,
		Description:   description,
		Category:      category,
		SubCategory:   subCategory,
		InvoiceNumber: stringField(obj, "rechnungsnummer", "invoice_number"),
		CompanyName:   formatCompanyName(stringField(obj, "unternehmen", "company")),
		VATAmount:     numberField(obj, "mwst_betrag", "vat_amount"),
		VATRate:       numberField(obj, "mwst_satz", "vat_rate"),
		GrossAmount:   numberField(obj, "betrag_brutto", "gross_amount"),
		NetAmount:     numberField(obj, "betrag_netto", "net_amount"),
	}
	return rec, true
}

// adaptTransaction builds a record from a bank transaction object. Unlike
// receipts, the description may be empty, but the date must be present.
func adaptTransaction(obj map[string]any) (record.AccountingRecord, bool) {
	date := stringField(obj, "datum", "date", "buchungsdatum")
	amount := numberField(obj, "betrag", "amount")
	if date == "" || amount == 0 {
		return record.AccountingRecord{}, false
	}

	description := stringField(obj, "beschreibung", "verwendungszweck", "description")

	category := stringField(obj, "kategorie")
	if category == "" {
		category = Classify(description, record.DocumentTypeBankStatement)
	}
	subCategory := stringField(obj, "subkategorie")
	if subCategory == "" {
		subCategory = SubCategory(description, category, record.DocumentTypeBankStatement)
	}

	txType := stringField(obj, "transaktionstyp", "transaction_type")
	if txType == "" {
		txType = transactionTypeFor(description)
	}

	rec := record.AccountingRecord{
		Date:            date,
		Amount:          amount,
		Description:     description,
		Category:        category,
		SubCategory:     subCategory,
		Purpose:         stringField(obj, "verwendungszweck", "reference"),
		CounterAccount:  stringField(obj, "gegenkonto", "counter_account"),
		TransactionType: txType,
		ValueDate:       stringField(obj, "valuta", "value_date"),
	}
	return rec, true
}

// stringField returns the first non-empty string among the given keys.
func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// numberField returns the first non-zero numeric value among the given keys.
// LLM responses are inconsistent about numbers versus strings, so string
// values go through the amount parser.
func numberField(obj map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case string:
			if n := ParseAmount(v); n != 0 {
				return n
			}
		}
	}
	return 0
}
