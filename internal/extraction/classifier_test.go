package extraction

import (
	"testing"

	"github.com/belegflow/backend/internal/record"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		docType     record.DocumentType
		want        string
	}{
		{"supermarket", "REWE Supermarkt Einkauf", record.DocumentTypeReceipt, "Wareneingang"},
		{"groceries", "Lebensmittel Großhandel", record.DocumentTypeReceipt, "Wareneingang 7%"},
		{"electronics", "Elektronik Zubehör", record.DocumentTypeReceipt, "Wareneingang 19%"},
		{"salary", "Gehalt Januar", record.DocumentTypeBankStatement, "Personalkosten"},
		{"rent", "Miete Januar", record.DocumentTypeBankStatement, "Miete & Pacht"},
		{"phone", "Telefon und Internet", record.DocumentTypeBankStatement, "Telekommunikation"},
		{"train", "Deutsche Bahn Ticket", record.DocumentTypeBankStatement, "Reisekosten"},
		{"restaurant", "Restaurant Zur Post", record.DocumentTypeReceipt, "Verpflegung"},
		{"printer paper", "Papier und Toner", record.DocumentTypeReceipt, "Bürobedarf"},
		{"seminar", "Seminar Buchhaltung Grundlagen", record.DocumentTypeReceipt, "Fortbildung"},
		{"tax office", "Finanzamt München", record.DocumentTypeBankStatement, "Steuern"},
		{"receipt fallback", "Xyz Unbekannt", record.DocumentTypeReceipt, "Betriebsausgaben"},
		{"bank fallback", "Xyz Unbekannt", record.DocumentTypeBankStatement, "Sonstige"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.description, tt.docType); got != tt.want {
				t.Errorf("Classify(%q, %s) = %q, want %q", tt.description, tt.docType, got, tt.want)
			}
		})
	}
}

// Earlier table entries win on overlapping keywords: "Büromaterial" contains
// "material", which belongs to Wareneingang, even though "büromaterial" is
// also a Bürobedarf keyword further down.
func TestClassifyFirstMatchWins(t *testing.T) {
	if got := Classify("Überweisung für Büromaterial", record.DocumentTypeBankStatement); got != "Wareneingang" {
		t.Errorf("Classify = %q, want %q", got, "Wareneingang")
	}
	// "werbung" appears under Betriebsausgaben 19% before Marketing.
	if got := Classify("Werbung Kampagne", record.DocumentTypeReceipt); got != "Betriebsausgaben 19%" {
		t.Errorf("Classify = %q, want %q", got, "Betriebsausgaben 19%")
	}
}

func TestSubCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    string
		docType     record.DocumentType
		want        string
	}{
		{"fuel", "Tankstelle Benzin", "Fahrzeugkosten", record.DocumentTypeReceipt, "Kraftstoff"},
		{"parking", "Parkplatz Gebühr", "Fahrzeugkosten", record.DocumentTypeReceipt, "Parken"},
		{"hotel travel", "Hotel Übernachtung Berlin", "Reisekosten", record.DocumentTypeReceipt, "Hotel"},
		{"internet", "DSL Anschluss", "Telekommunikation", record.DocumentTypeBankStatement, "Internet"},
		{"electricity", "Stromabrechnung", "Energiekosten", record.DocumentTypeBankStatement, "Strom"},
		{"no table receipt", "Irgendwas", "Marketing", record.DocumentTypeReceipt, "Sonstiges"},
		{"no table bank", "Irgendwas", "Marketing", record.DocumentTypeBankStatement, "Banktransaktion"},
		{"no keyword receipt", "Xyz", "Fahrzeugkosten", record.DocumentTypeReceipt, "Sonstiges"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubCategory(tt.description, tt.category, tt.docType)
			if got != tt.want {
				t.Errorf("SubCategory(%q, %q) = %q, want %q", tt.description, tt.category, got, tt.want)
			}
		})
	}
}
