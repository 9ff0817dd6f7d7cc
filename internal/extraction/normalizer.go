// Package extraction turns raw OCR text or structured OCR/LLM responses into
// accounting records.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	currencyChars = regexp.MustCompile(`[€£$\s]`)
	leadingFloat  = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?`)
	multiSpace    = regexp.MustCompile(`\s+`)
	strayChars    = regexp.MustCompile(`[^a-zA-Z0-9_äöüßÄÖÜ\s\-.,$€£]`)
)

// ParseAmount parses a monetary string into a float, handling the German
// convention of comma as decimal and dot as thousands separator:
// "1.234,56" and "1234.56" both yield 1234.56. Unparseable input yields 0
// rather than an error; callers treat 0 as absent.
func ParseAmount(s string) float64 {
	cleaned := currencyChars.ReplaceAllString(s, "")

	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		// German format: 1.234,56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case strings.Contains(cleaned, ","):
		parts := strings.Split(cleaned, ",")
		if frac := parts[len(parts)-1]; len(frac) <= 2 {
			// Decimal comma
			cleaned = strings.Join(parts[:len(parts)-1], "") + "." + frac
		} else {
			// Thousands separator
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	m := leadingFloat.FindString(cleaned)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// CleanText collapses whitespace and strips characters that are neither word
// characters, German umlauts, nor common punctuation/currency symbols.
func CleanText(s string) string {
	s = strayChars.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeDateParts canonicalizes day/month/year strings to DD.MM.YYYY,
// zero-padding and expanding 2-digit years with a 20 prefix.
func normalizeDateParts(day, month, year string) string {
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(year) == 2 {
		year = "20" + year
	}
	return day + "." + month + "." + year
}

var germanTitle = cases.Title(language.German)

// formatCompanyName tidies an OCR-extracted company name: collapses
// whitespace, title-cases shouty all-caps words, caps the length at 50.
func formatCompanyName(raw string) string {
	cleaned := strings.TrimSpace(multiSpace.ReplaceAllString(raw, " "))

	words := strings.Fields(cleaned)
	for i, word := range words {
		if len(word) > 2 && word == strings.ToUpper(word) {
			words[i] = germanTitle.String(strings.ToLower(word))
		}
	}

	result := strings.Join(words, " ")
	if runes := []rune(result); len(runes) > 50 {
		result = string(runes[:50])
	}
	return result
}
