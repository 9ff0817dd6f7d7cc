package extraction

import (
	"testing"

	"github.com/belegflow/backend/internal/record"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"15.01.2024", "15.01.2024"},
		{"5.1.24", "05.01.2024"},
		{"15/01/2024", "15.01.2024"},
		{"15-01-24", "15.01.2024"},
		{"2024-01-15", "15.01.2024"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.input); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractTransactions(t *testing.T) {
	text := "Kontoauszug Januar 2024\n" +
		"15.01.2024 Überweisung für Miete -850,00\n" +
		"16.01.2024 -42,90 REWE Markt Lastschrift\n" +
		"2024-01-17 Gehalt Januar 2.500,00\n" +
		"keine Transaktion auf dieser Zeile\n"

	records := extractTransactions(text)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first.Date != "15.01.2024" {
		t.Errorf("Date = %q, want 15.01.2024", first.Date)
	}
	if first.Amount != -850.00 {
		t.Errorf("Amount = %v, want -850.00", first.Amount)
	}
	if first.Category != "Miete & Pacht" {
		t.Errorf("Category = %q, want Miete & Pacht", first.Category)
	}
	if first.TransactionType != record.TransactionTransfer {
		t.Errorf("TransactionType = %q, want %q", first.TransactionType, record.TransactionTransfer)
	}

	if records[1].TransactionType != record.TransactionDirectDebit {
		t.Errorf("TransactionType = %q, want %q", records[1].TransactionType, record.TransactionDirectDebit)
	}

	third := records[2]
	if third.Date != "17.01.2024" {
		t.Errorf("Date = %q, want 17.01.2024", third.Date)
	}
	if third.Amount != 2500.00 {
		t.Errorf("Amount = %v, want 2500.00", third.Amount)
	}
	if third.Category != "Einnahmen" {
		t.Errorf("Category = %q, want Einnahmen", third.Category)
	}
	// No type keyword in the description, so even an incoming amount stays
	// the generic transfer.
	if third.TransactionType != record.TransactionTransfer {
		t.Errorf("TransactionType = %q, want %q", third.TransactionType, record.TransactionTransfer)
	}
}

func TestExtractTable(t *testing.T) {
	text := "Musterbank AG\n" +
		"Datum\tVerwendungszweck\tBetrag\n" +
		"01.02.2024\tMiete Februar\t-850,00\n" +
		"05.02.2024\tKundenzahlung\t1.200,00\n" +
		"\t\t\n"

	records := extractTable(text)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Description != "Miete Februar" {
		t.Errorf("Description = %q, want Miete Februar", records[0].Description)
	}
	if records[0].TransactionType != record.TransactionDirectDebit {
		t.Errorf("TransactionType = %q, want %q", records[0].TransactionType, record.TransactionDirectDebit)
	}
	if records[1].Amount != 1200.00 {
		t.Errorf("Amount = %v, want 1200.00", records[1].Amount)
	}
	if records[1].TransactionType != record.TransactionCredit {
		t.Errorf("TransactionType = %q, want %q", records[1].TransactionType, record.TransactionCredit)
	}
}

func TestExtractTableNoHeader(t *testing.T) {
	if records := extractTable("nur Fließtext ohne Tabelle"); records != nil {
		t.Errorf("got %d records, want none", len(records))
	}
}

func TestExtractSimple(t *testing.T) {
	text := "irgendwo 01.03.2024 steht 250\nkeine Daten hier"
	records := extractSimple(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Amount != 250 {
		t.Errorf("Amount = %v, want 250", records[0].Amount)
	}
	if records[0].Date != "01.03.2024" {
		t.Errorf("Date = %q, want 01.03.2024", records[0].Date)
	}
}

func TestExtractLineItems(t *testing.T) {
	text := "REWE Markt GmbH\n" +
		"15.03.2024\n" +
		"Brot 2,49\n" +
		"Milch 1,19\n" +
		"Käse 4,99\n" +
		"2,99 Butter\n" +
		"Eier 6 x 0,35\n" +
		"Summe 11,97\n" +
		"MwSt 19% 1,91\n"

	records := extractLineItems(text)
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for _, rec := range records {
		if rec.Date != "15.03.2024" {
			t.Errorf("Date = %q, want 15.03.2024", rec.Date)
		}
		if rec.CompanyName != "Rewe Markt GmbH" {
			t.Errorf("CompanyName = %q, want Rewe Markt GmbH", rec.CompanyName)
		}
		if !rec.VATEstimated {
			t.Error("VATEstimated = false, want true")
		}
		if rec.VATRate != 19 {
			t.Errorf("VATRate = %v, want 19", rec.VATRate)
		}
	}
	if records[0].Description != "Brot" || records[0].Amount != 2.49 {
		t.Errorf("first item = %q/%v, want Brot/2.49", records[0].Description, records[0].Amount)
	}
	if records[0].VATAmount != 0.47 {
		t.Errorf("VATAmount = %v, want 2.49*0.19 rounded to 0.47", records[0].VATAmount)
	}
	if records[0].NetAmount != 2.09 {
		t.Errorf("NetAmount = %v, want 2.49/1.19 rounded to 2.09", records[0].NetAmount)
	}
	if records[3].Description != "Butter" || records[3].Amount != 2.99 {
		t.Errorf("amount-first item = %q/%v, want Butter/2.99", records[3].Description, records[3].Amount)
	}
	if records[4].Description != "Eier" || records[4].Amount != 0.35 {
		t.Errorf("quantity item = %q/%v, want Eier/0.35 unit price", records[4].Description, records[4].Amount)
	}
}

func TestExtractLineItemsSingleItem(t *testing.T) {
	text := "Beleg\n05.03.2024\nEinzelposten 9,99"
	records, strategy := ExtractFromText(text, record.DocumentTypeReceipt)
	if strategy != "line-items" {
		t.Errorf("strategy = %q, want line-items for a single priced line", strategy)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Description != "Einzelposten" || records[0].Amount != 9.99 {
		t.Errorf("item = %q/%v, want Einzelposten/9.99", records[0].Description, records[0].Amount)
	}
}

func TestExtractLineItemsKeepsBrandNames(t *testing.T) {
	text := "Supermarkt\n" +
		"10.03.2024\n" +
		"Barilla Penne 1,89\n" +
		"Rhabarber 2,49\n" +
		"Milch 1,19\n" +
		"Summe 5,57\n"

	records := extractLineItems(text)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Description != "Barilla Penne" {
		t.Errorf("first item = %q, want Barilla Penne", records[0].Description)
	}
	if records[1].Description != "Rhabarber" {
		t.Errorf("second item = %q, want Rhabarber", records[1].Description)
	}
}

func TestExtractSingleReceipt(t *testing.T) {
	text := "Muster GmbH\n" +
		"Rechnungsnummer: RE-2024-007\n" +
		"Datum: 20.03.2024\n" +
		"Netto 100,00\n" +
		"MwSt: 19,00\n" +
		"Gesamtbetrag 119,00\n"

	records := extractSingleReceipt(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Amount != 119.00 {
		t.Errorf("Amount = %v, want the largest amount 119.00", rec.Amount)
	}
	if rec.Date != "20.03.2024" {
		t.Errorf("Date = %q, want 20.03.2024", rec.Date)
	}
	if rec.CompanyName != "Muster GmbH" {
		t.Errorf("CompanyName = %q, want Muster GmbH", rec.CompanyName)
	}
	if rec.InvoiceNumber != "RE-2024-007" {
		t.Errorf("InvoiceNumber = %q, want RE-2024-007", rec.InvoiceNumber)
	}
	if rec.VATEstimated {
		t.Error("VATEstimated = true, want false with a printed VAT amount")
	}
	if rec.VATAmount != 19.00 {
		t.Errorf("VATAmount = %v, want the labeled 19.00", rec.VATAmount)
	}
	if rec.VATRate != 19 {
		t.Errorf("VATRate = %v, want 19", rec.VATRate)
	}
	if rec.NetAmount != 100.00 {
		t.Errorf("NetAmount = %v, want 100.00", rec.NetAmount)
	}
}

func TestExtractSingleReceiptVATFromRate(t *testing.T) {
	text := "Imbiss Quittung\n" +
		"Datum: 01.04.2024\n" +
		"MwSt 7%\n" +
		"Gesamt 10,70\n"

	records := extractSingleReceipt(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.VATEstimated {
		t.Error("VATEstimated = true, want false with an explicit rate")
	}
	if rec.VATRate != 7 {
		t.Errorf("VATRate = %v, want 7", rec.VATRate)
	}
	if rec.NetAmount != 10.00 {
		t.Errorf("NetAmount = %v, want 10.00", rec.NetAmount)
	}
	if rec.VATAmount != 0.70 {
		t.Errorf("VATAmount = %v, want 0.70", rec.VATAmount)
	}
}

func TestExtractSingleReceiptVATEstimated(t *testing.T) {
	text := "Taxi Schmidt\nDatum: 02.04.2024\nBetrag 23,80\n"

	records := extractSingleReceipt(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if !rec.VATEstimated {
		t.Error("VATEstimated = false, want true without any VAT on the document")
	}
	if rec.VATRate != 19 {
		t.Errorf("VATRate = %v, want the assumed 19", rec.VATRate)
	}
}

func TestExtractSingleReceiptNoDate(t *testing.T) {
	if records := extractSingleReceipt("Muster GmbH\nGesamt 50,00"); records != nil {
		t.Errorf("got %d records, want none without a date", len(records))
	}
}

func TestExtractFromTextCascade(t *testing.T) {
	bank := "Kontoauszug\n15.01.2024 Überweisung für Miete -850,00"
	records, strategy := ExtractFromText(bank, record.DocumentTypeBankStatement)
	if strategy != "transaction-lines" {
		t.Errorf("strategy = %q, want transaction-lines", strategy)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	receipt := "Muster GmbH\nDatum: 20.03.2024\nGesamtbetrag 119,00"
	records, strategy = ExtractFromText(receipt, record.DocumentTypeReceipt)
	if strategy != "single-receipt" {
		t.Errorf("strategy = %q, want single-receipt", strategy)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if records, strategy = ExtractFromText("nichts brauchbares", record.DocumentTypeBankStatement); records != nil || strategy != "" {
		t.Errorf("got %d records with strategy %q, want none", len(records), strategy)
	}
}
