package extraction

import (
	"strings"

	"github.com/belegflow/backend/internal/record"
)

// categoryTable pairs a bookkeeping category with its keyword list.
// Order matters: classification is first-match-wins, so the table is a slice
// rather than a map.
type categoryTable struct {
	category string
	keywords []string
}

// categories is the closed German bookkeeping taxonomy. A description is
// assigned the first category whose keyword list has a case-insensitive
// substring match.
var categories = []categoryTable{
	{"Wareneingang", []string{"wareneingang", "einkauf", "beschaffung", "material", "rohstoffe", "waren", "inventar"}},
	{"Wareneingang 7%", []string{"lebensmittel", "nahrungsmittel", "getränke", "supermarkt", "bäckerei", "metzgerei", "obst", "gemüse"}},
	{"Wareneingang 19%", []string{"elektronik", "technik", "computer", "software", "hardware", "büroausstattung", "möbel"}},
	{"Betriebsausgaben", []string{"büro", "geschäftsausgaben", "betriebskosten", "geschäftsbedarf", "dienstleistungen"}},
	{"Betriebsausgaben 19%", []string{"beratung", "rechtsanwalt", "steuerberater", "buchhalter", "werbung", "marketing"}},
	{"Betriebsausgaben 7%", []string{"transport", "lieferung", "versand", "logistik"}},
	{"Personalkosten", []string{"gehalt", "lohn", "sozialabgaben", "krankenversicherung", "rentenversicherung", "arbeitslosenversicherung"}},
	{"Miete & Pacht", []string{"miete", "pacht", "leasing", "immobilie", "büroraum", "lager", "werkstatt"}},
	{"Versicherungen", []string{"versicherung", "haftpflicht", "betriebshaftpflicht", "sachversicherung", "rechtschutz"}},
	{"Energiekosten", []string{"strom", "gas", "wasser", "heizung", "energie", "versorgung"}},
	{"Telekommunikation", []string{"telefon", "internet", "mobilfunk", "dsl", "festnetz", "handy"}},
	{"Fahrzeugkosten", []string{"tankstelle", "benzin", "diesel", "kraftstoff", "parkplatz", "maut", "versicherung"}},
	{"Reisekosten", []string{"hotel", "übernachtung", "flug", "bahn", "db", "deutsche bahn", "ticket", "reise"}},
	{"Verpflegung", []string{"restaurant", "café", "imbiss", "gastronomie", "verpflegung", "mahlzeit"}},
	{"Bürobedarf", []string{"papier", "drucker", "toner", "büromaterial", "schreibwaren", "ordner"}},
	{"Fortbildung", []string{"schulung", "seminar", "fortbildung", "weiterbildung", "kurs", "training"}},
	{"Marketing", []string{"werbung", "marketing", "pr", "public relations", "plakat", "flyer", "website"}},
	{"Einnahmen", []string{"umsatz", "einnahmen", "erlös", "verkauf", "rechnung", "zahlung", "überweisung"}},
	{"Zinsen", []string{"zinsen", "habenzinsen", "sollzinsen", "kreditzinsen"}},
	{"Steuern", []string{"mwst", "umsatzsteuer", "vorsteuer", "steuer", "finanzamt", "steuerbescheid"}},
	{"Sonstige", []string{"diverses", "sonstiges", "andere", "misc", "various"}},
}

// subCategoryEntry pairs a sub-category with its keyword list, ordered.
type subCategoryEntry struct {
	subCategory string
	keywords    []string
}

// subCategories refines a chosen category. Not every category has a table.
var subCategories = map[string][]subCategoryEntry{
	"Wareneingang": {
		{"Rohstoffe", []string{"rohstoffe", "material", "grundstoffe"}},
		{"Handelswaren", []string{"handelswaren", "waren", "produkte"}},
		{"Verpackung", []string{"verpackung", "karton", "folie"}},
		{"Hilfsstoffe", []string{"hilfsstoffe", "chemikalien", "zusätze"}},
	},
	"Wareneingang 7%": {
		{"Lebensmittel", []string{"lebensmittel", "nahrungsmittel", "essen", "trinken"}},
		{"Getränke", []string{"getränke", "wasser", "saft", "kaffee"}},
		{"Frische Produkte", []string{"obst", "gemüse", "frisch", "bio"}},
	},
	"Wareneingang 19%": {
		{"Elektronik", []string{"elektronik", "computer", "laptop", "tablet", "smartphone"}},
		{"Software", []string{"software", "programm", "app", "lizenz"}},
		{"Büroausstattung", []string{"büroausstattung", "möbel", "stuhl", "tisch"}},
		{"Technik", []string{"technik", "hardware", "gerät", "maschine"}},
	},
	"Betriebsausgaben": {
		{"Bürobedarf", []string{"bürobedarf", "papier", "drucker", "toner"}},
		{"Dienstleistungen", []string{"dienstleistungen", "service", "wartung"}},
		{"Beratung", []string{"beratung", "consulting", "experte"}},
		{"Geschäftsbedarf", []string{"geschäftsbedarf", "bedarf", "zubehör"}},
	},
	"Betriebsausgaben 19%": {
		{"Rechtsberatung", []string{"rechtsanwalt", "anwalt", "rechtsberatung"}},
		{"Steuerberatung", []string{"steuerberater", "buchhalter", "steuerberatung"}},
		{"Werbung", []string{"werbung", "marketing", "pr", "public relations"}},
		{"Beratung", []string{"beratung", "consulting", "experte"}},
	},
	"Betriebsausgaben 7%": {
		{"Transport", []string{"transport", "lieferung", "versand", "spedition"}},
		{"Logistik", []string{"logistik", "lager", "warehouse"}},
		{"Kurier", []string{"kurier", "express", "dhl", "ups"}},
	},
	"Verpflegung": {
		{"Restaurant", []string{"restaurant", "gastronomie", "imbiss"}},
		{"Café", []string{"café", "kaffee", "bäckerei"}},
		{"Hotel", []string{"hotel", "übernachtung", "frühstück"}},
		{"Catering", []string{"catering", "verpflegung", "mahlzeit"}},
	},
	"Fahrzeugkosten": {
		{"Kraftstoff", []string{"kraftstoff", "benzin", "diesel", "tankstelle"}},
		{"Parken", []string{"parken", "parkplatz", "parkhaus"}},
		{"Versicherung", []string{"versicherung", "kfz", "auto"}},
		{"Wartung", []string{"wartung", "reparatur", "werkstatt"}},
	},
	"Reisekosten": {
		{"Hotel", []string{"hotel", "übernachtung", "unterkunft"}},
		{"Transport", []string{"transport", "bahn", "flug", "bus"}},
		{"Verpflegung", []string{"verpflegung", "essen", "mahlzeit"}},
		{"Sonstiges", []string{"sonstiges", "diverses", "andere"}},
	},
	"Telekommunikation": {
		{"Internet", []string{"internet", "dsl", "wlan", "wifi"}},
		{"Telefon", []string{"telefon", "festnetz", "handy", "mobilfunk"}},
		{"Software", []string{"software", "app", "programm"}},
		{"Hardware", []string{"hardware", "router", "modem"}},
	},
	"Energiekosten": {
		{"Strom", []string{"strom", "elektrizität", "elektro"}},
		{"Gas", []string{"gas", "heizung", "wärme"}},
		{"Wasser", []string{"wasser", "abwasser", "versorgung"}},
		{"Sonstiges", []string{"sonstiges", "diverses", "andere"}},
	},
}

// Classify maps a free-text description to a bookkeeping category.
// First matching table entry wins; with no match, receipts fall back to
// Betriebsausgaben and everything else to Sonstige.
func Classify(description string, docType record.DocumentType) string {
	lower := strings.ToLower(description)

	for _, entry := range categories {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}

	if docType == record.DocumentTypeReceipt {
		return "Betriebsausgaben"
	}
	return "Sonstige"
}

// SubCategory refines an already-chosen category using that category's own
// keyword table. Falls back to Sonstiges for receipts and Banktransaktion
// for bank statements when nothing matches or the category has no table.
func SubCategory(description, category string, docType record.DocumentType) string {
	lower := strings.ToLower(description)

	for _, entry := range subCategories[category] {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.subCategory
			}
		}
	}

	if docType == record.DocumentTypeBankStatement {
		return "Banktransaktion"
	}
	return "Sonstiges"
}
