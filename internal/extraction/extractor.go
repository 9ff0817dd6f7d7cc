package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/belegflow/backend/internal/record"
)

// Strategy is one attempt at turning raw text into records. Strategies run
// in order and the first one to produce records wins.
type Strategy struct {
	Name string
	Run  func(text string) []record.AccountingRecord
}

// StrategiesFor returns the ordered extraction cascade for a document type.
// Receipts try itemized lines before falling back to a whole-document read;
// bank statements try structured transaction lines, then tabular layout,
// then a last-resort line scan.
func StrategiesFor(docType record.DocumentType) []Strategy {
	if docType == record.DocumentTypeReceipt {
		return []Strategy{
			{Name: "line-items", Run: extractLineItems},
			{Name: "single-receipt", Run: extractSingleReceipt},
		}
	}
	return []Strategy{
		{Name: "transaction-lines", Run: extractTransactions},
		{Name: "table", Run: extractTable},
		{Name: "simple", Run: extractSimple},
	}
}

// ExtractFromText runs the cascade for docType and reports which strategy
// produced the records. The strategy name is empty when nothing matched.
func ExtractFromText(text string, docType record.DocumentType) ([]record.AccountingRecord, string) {
	for _, s := range StrategiesFor(docType) {
		if records := s.Run(text); len(records) > 0 {
			return records, s.Name
		}
	}
	return nil, ""
}

type fieldOrder int

const (
	dateDescAmount fieldOrder = iota
	dateAmountDesc
)

type linePattern struct {
	re    *regexp.Regexp
	order fieldOrder
}

var dateForms = []string{
	`\d{1,2}\.\d{1,2}\.\d{2,4}`,
	`\d{1,2}/\d{1,2}/\d{2,4}`,
	`\d{1,2}-\d{1,2}-\d{2,4}`,
	`\d{4}-\d{1,2}-\d{1,2}`,
}

var amountForms = []string{
	`[+-]?\d{1,3}(?:\.\d{3})*,\d{2}`,
	`[+-]?\d+\.\d{2}`,
}

// linePatterns covers every combination of date form, amount form and field
// order seen on German bank statements. German-style amounts come first so
// "1.234,56" is never split at the thousands separator.
var linePatterns = buildLinePatterns()

func buildLinePatterns() []linePattern {
	var patterns []linePattern
	for _, d := range dateForms {
		for _, a := range amountForms {
			patterns = append(patterns,
				linePattern{
					re:    regexp.MustCompile(`^(` + d + `)\s+(.+?)\s+(` + a + `)\s*€?$`),
					order: dateDescAmount,
				},
				linePattern{
					re:    regexp.MustCompile(`^(` + d + `)\s+(` + a + `)\s+(.+)$`),
					order: dateAmountDesc,
				},
			)
		}
	}
	return patterns
}

var (
	dateToken   = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[./\-]\d{1,2}[./\-]\d{2,4}`)
	amountToken = regexp.MustCompile(`[+-]?\d{1,3}(?:\.\d{3})*,\d{2}|[+-]?\d+\.\d{2}`)
	numberToken = regexp.MustCompile(`[+-]?\d+(?:[.,]\d+)?`)
)

// normalizeDate converts any supported date token to DD.MM.YYYY.
func normalizeDate(raw string) string {
	parts := regexp.MustCompile(`[./\-]`).Split(raw, -1)
	if len(parts) != 3 {
		return raw
	}
	if len(parts[0]) == 4 {
		return normalizeDateParts(parts[2], parts[1], parts[0])
	}
	return normalizeDateParts(parts[0], parts[1], parts[2])
}

// extractTransactions parses one transaction per line using the full pattern
// set, with a loose date-plus-amount scan for lines none of the patterns fit.
func extractTransactions(text string) []record.AccountingRecord {
	var records []record.AccountingRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, ok := matchTransactionLine(line)
		if !ok {
			rec, ok = looseTransactionLine(line)
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func matchTransactionLine(line string) (record.AccountingRecord, bool) {
	for _, p := range linePatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var amountRaw, description string
		switch p.order {
		case dateDescAmount:
			description, amountRaw = m[2], m[3]
		case dateAmountDesc:
			amountRaw, description = m[2], m[3]
		}
		amount := ParseAmount(amountRaw)
		if amount == 0 {
			continue
		}
		return buildTransaction(normalizeDate(m[1]), amount, description), true
	}
	return record.AccountingRecord{}, false
}

// looseTransactionLine accepts any line carrying both a date and an amount
// token, treating whatever is left as the description.
func looseTransactionLine(line string) (record.AccountingRecord, bool) {
	date := dateToken.FindString(line)
	if date == "" {
		return record.AccountingRecord{}, false
	}
	rest := strings.Replace(line, date, "", 1)
	amountRaw := amountToken.FindString(rest)
	if amountRaw == "" {
		return record.AccountingRecord{}, false
	}
	amount := ParseAmount(amountRaw)
	if amount == 0 {
		return record.AccountingRecord{}, false
	}
	description := CleanText(strings.Replace(rest, amountRaw, "", 1))
	if description == "" {
		return record.AccountingRecord{}, false
	}
	return buildTransaction(normalizeDate(date), amount, description), true
}

func buildTransaction(date string, amount float64, description string) record.AccountingRecord {
	description = CleanText(description)
	category := transactionCategory(description)
	return record.AccountingRecord{
		Date:            date,
		Amount:          amount,
		Description:     description,
		Category:        category,
		SubCategory:     SubCategory(description, category, record.DocumentTypeBankStatement),
		TransactionType: transactionTypeFor(description),
	}
}

// transactionCategory applies a handful of strong bank-statement signals
// before the general keyword tables get a shot.
func transactionCategory(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "gehalt", "lohn", "salary"):
		return "Einnahmen"
	case containsAny(lower, "miete", "rent"):
		return "Miete & Pacht"
	case containsAny(lower, "versicherung", "insurance"):
		return "Versicherungen"
	case containsAny(lower, "steuer", "tax"):
		return "Steuern"
	case containsAny(lower, "gebühr", "fee"):
		return "Betriebsausgaben"
	}
	return Classify(description, record.DocumentTypeBankStatement)
}

// transactionTypeFor infers the booking type from description keywords.
// Without a keyword the type stays the generic transfer; only the table and
// simple strategies, which see no usable description, fall back to the sign
// of the amount.
func transactionTypeFor(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny(lower, "lastschrift", "debit"):
		return record.TransactionDirectDebit
	case containsAny(lower, "gutschrift", "credit", "einzahlung"):
		return record.TransactionCredit
	case containsAny(lower, "abhebung", "withdrawal"):
		return record.TransactionWithdrawal
	}
	return record.TransactionTransfer
}

func containsAny(lower string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var tableHeaderKeywords = []string{
	"datum", "betrag", "buchung", "verwendungszweck", "beschreibung", "soll", "haben", "valuta",
}

var columnSplit = regexp.MustCompile(`\t|\s{2,}`)

// extractTable handles statements laid out as whitespace-separated columns
// under a recognizable header row. Column roles come from the header names.
func extractTable(text string) []record.AccountingRecord {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	var header []string
	for i, line := range lines {
		lower := strings.ToLower(line)
		hits := 0
		for _, k := range tableHeaderKeywords {
			if strings.Contains(lower, k) {
				hits++
			}
		}
		if hits >= 2 {
			headerIdx = i
			header = columnSplit.Split(strings.TrimSpace(lower), -1)
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	dateCol, amountCol, descCol := -1, -1, -1
	for i, name := range header {
		switch {
		case strings.Contains(name, "datum") || strings.Contains(name, "buchung"):
			if dateCol < 0 {
				dateCol = i
			}
		case strings.Contains(name, "betrag") || strings.Contains(name, "soll") || strings.Contains(name, "haben"):
			if amountCol < 0 {
				amountCol = i
			}
		case strings.Contains(name, "verwendungszweck") || strings.Contains(name, "beschreibung"):
			descCol = i
		}
	}
	if dateCol < 0 || amountCol < 0 {
		return nil
	}

	var records []record.AccountingRecord
	for _, line := range lines[headerIdx+1:] {
		cols := columnSplit.Split(strings.TrimSpace(line), -1)
		if len(cols) <= amountCol || len(cols) <= dateCol {
			continue
		}
		date := dateToken.FindString(cols[dateCol])
		amount := ParseAmount(cols[amountCol])
		if date == "" || amount == 0 {
			continue
		}
		description := ""
		if descCol >= 0 && descCol < len(cols) {
			description = CleanText(cols[descCol])
		}
		if description == "" {
			description = "Transaktion"
		}
		txType := record.TransactionDirectDebit
		if amount > 0 {
			txType = record.TransactionCredit
		}
		records = append(records, record.AccountingRecord{
			Date:            normalizeDate(date),
			Amount:          amount,
			Description:     description,
			Category:        "Banktransaktion",
			SubCategory:     record.TransactionTransfer,
			TransactionType: txType,
		})
	}
	return records
}

// extractSimple is the last resort for bank statements: any line with a date
// and a number becomes a transaction, with a generic description when the
// line offers nothing else.
func extractSimple(text string) []record.AccountingRecord {
	var records []record.AccountingRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		date := dateToken.FindString(line)
		if date == "" {
			continue
		}
		rest := strings.Replace(line, date, "", 1)
		amountRaw := numberToken.FindString(rest)
		if amountRaw == "" {
			continue
		}
		amount := ParseAmount(amountRaw)
		if amount == 0 {
			continue
		}
		description := CleanText(strings.Replace(rest, amountRaw, "", 1))
		if description == "" {
			description = "Transaktion"
		}
		txType := record.TransactionDirectDebit
		if amount > 0 {
			txType = record.TransactionCredit
		}
		records = append(records, record.AccountingRecord{
			Date:            normalizeDate(date),
			Amount:          amount,
			Description:     description,
			Category:        "Banktransaktion",
			SubCategory:     record.TransactionTransfer,
			TransactionType: txType,
		})
	}
	return records
}

var (
	// Priced positions come in three line shapes: "2 x" quantity prefix
	// before the unit price, label then amount, and amount then label.
	lineItemQtyPattern    = regexp.MustCompile(`^(.+?)\s+\d+\s*x\s*([+-]?\d{1,3}(?:\.\d{3})*,\d{2}|[+-]?\d+\.\d{2})\s*€?\s*$`)
	lineItemPattern       = regexp.MustCompile(`^(.+?)\s+([+-]?\d{1,3}(?:\.\d{3})*,\d{2}|[+-]?\d+\.\d{2})\s*€?\s*$`)
	lineItemAmountPattern = regexp.MustCompile(`^([+-]?\d{1,3}(?:\.\d{3})*,\d{2}|[+-]?\d+\.\d{2})\s*€?\s+(.+)$`)
	// Lines that carry totals or tax summaries rather than purchasable items.
	lineItemSkip = []string{"summe", "gesamt", "total", "mwst", "ust"}
)

// extractLineItems reads an itemized receipt, one priced position per line.
// Each position becomes its own record with an estimated 19% VAT split.
func extractLineItems(text string) []record.AccountingRecord {
	date := ""
	if raw := dateToken.FindString(text); raw != "" {
		date = normalizeDate(raw)
	}
	if date == "" {
		date = time.Now().Format("02.01.2006")
	}
	company := ""
	if m := companyPattern.FindStringSubmatch(text); m != nil {
		company = formatCompanyName(m[1])
	}

	var records []record.AccountingRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || containsAny(strings.ToLower(line), lineItemSkip...) {
			continue
		}
		description, amount := matchLineItem(line)
		if description == "" || amount == 0 {
			continue
		}
		records = append(records, record.AccountingRecord{
			Date:         date,
			Amount:       amount,
			Description:  description,
			Category:     "Betriebsausgaben",
			SubCategory:  "Material",
			CompanyName:  company,
			VATRate:      19,
			VATAmount:    round2(amount * 0.19),
			NetAmount:    round2(amount / 1.19),
			GrossAmount:  amount,
			VATEstimated: true,
		})
	}
	return records
}

// matchLineItem tries the item line shapes in order and returns the cleaned
// description plus parsed amount, or zero values when the line is not a
// priced position.
func matchLineItem(line string) (string, float64) {
	if m := lineItemQtyPattern.FindStringSubmatch(line); m != nil {
		return CleanText(m[1]), ParseAmount(m[2])
	}
	if m := lineItemPattern.FindStringSubmatch(line); m != nil {
		return CleanText(m[1]), ParseAmount(m[2])
	}
	if m := lineItemAmountPattern.FindStringSubmatch(line); m != nil {
		return CleanText(m[2]), ParseAmount(m[1])
	}
	return "", 0
}

var (
	companyPattern = regexp.MustCompile(`([A-ZÄÖÜ][A-Za-zÄÖÜäöüß&.,\- ]{1,40}?(?:GmbH & Co\. KG|GmbH|AG|KG|OHG|e\.V\.|UG|Co\.|Inc\.|Ltd\.))`)
	invoicePattern = regexp.MustCompile(`(?i)(?:rechnungs-?nr\.?|rechnungsnummer|invoice\s*(?:no\.?|number)|beleg-?nr\.?)[:\s]*([A-Za-z0-9][A-Za-z0-9\-/]*)`)
	vatRatePattern = regexp.MustCompile(`(?i)(?:mwst|ust|vat|steuer)[^\d%]*(\d{1,2}(?:[.,]\d+)?)\s*%`)
	// A VAT amount printed next to its label, in either order.
	vatAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mwst|ust|steuer|vat)\s*[:=]?\s*(\d+[.,]\d{2})`),
		regexp.MustCompile(`(?i)(\d+[.,]\d{2})\s*(?:mwst|ust|steuer|vat)`),
	}
)

// extractSingleReceipt treats the whole document as one purchase. The total
// is taken as the largest amount on the receipt, which beats trying to tell
// apart subtotal, tax and total lines on noisy OCR output.
func extractSingleReceipt(text string) []record.AccountingRecord {
	amount := 0.0
	for _, raw := range amountToken.FindAllString(text, -1) {
		if v := ParseAmount(raw); v > amount {
			amount = v
		}
	}
	date := ""
	if raw := dateToken.FindString(text); raw != "" {
		date = normalizeDate(raw)
	}
	if amount == 0 || date == "" {
		return nil
	}

	company := ""
	if m := companyPattern.FindStringSubmatch(text); m != nil {
		company = formatCompanyName(CleanText(m[1]))
	}
	description := company
	if description == "" {
		description = firstMeaningfulLine(text)
	}
	if description == "" {
		return nil
	}

	invoiceNumber := ""
	if m := invoicePattern.FindStringSubmatch(text); m != nil {
		invoiceNumber = m[1]
	}

	vatAmount := 0.0
	for _, p := range vatAmountPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			vatAmount = ParseAmount(m[1])
			break
		}
	}
	vatRate := 0.0
	if m := vatRatePattern.FindStringSubmatch(text); m != nil {
		vatRate = ParseAmount(m[1])
	}

	// A VAT figure read off the document beats deriving one from the rate;
	// the 19% estimate is the last resort and is flagged as such.
	estimated := false
	var net float64
	if vatAmount != 0 {
		if vatRate == 0 {
			vatRate = 19
		}
		net = round2(amount - vatAmount)
	} else {
		estimated = vatRate == 0
		if estimated {
			vatRate = 19
		}
		net = round2(amount / (1 + vatRate/100))
		vatAmount = round2(amount - net)
	}

	category := Classify(description, record.DocumentTypeReceipt)
	return []record.AccountingRecord{{
		Date:          date,
		Amount:        amount,
		Description:   description,
		Category:      category,
		SubCategory:   SubCategory(description, category, record.DocumentTypeReceipt),
		InvoiceNumber: invoiceNumber,
		CompanyName:   company,
		VATRate:       vatRate,
		VATAmount:     vatAmount,
		NetAmount:     net,
		GrossAmount:   amount,
		VATEstimated:  estimated,
	}}
}

func firstMeaningfulLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = CleanText(line)
		if len(line) >= 3 && !dateToken.MatchString(line) {
			if runes := []rune(line); len(runes) > 50 {
				line = string(runes[:50])
			}
			return line
		}
	}
	return ""
}

func round2(v float64) float64 {
	return float64(int64(v*100+sign(v)*0.5)) / 100
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
