package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/belegflow/backend/internal/record"
)

func sampleRecords() []record.AccountingRecord {
	return []record.AccountingRecord{
		{
			Date:        "15.01.2024",
			Amount:      -150.00,
			Description: "Überweisung für Büromaterial",
			Category:    "Bürobedarf",
			SubCategory: "Sonstiges",
			Purpose:     "Miete 01/2024",
		},
		{
			Date:          "20.01.2024",
			Amount:        119.00,
			Description:   "Druckerpapier",
			Category:      "Bürobedarf",
			InvoiceNumber: "RE-2024-001",
			CompanyName:   "Muster GmbH",
			VATAmount:     19.00,
			VATRate:       19,
			GrossAmount:   119.00,
			NetAmount:     100.00,
		},
	}
}

func TestColumns(t *testing.T) {
	columns := Columns(sampleRecords())

	assert.Equal(t, []string{"Datum", "Betrag", "Beschreibung", "Kategorie", "Subkategorie"}, columns[:5])
	assert.Contains(t, columns, "Rechnungsnummer")
	assert.Contains(t, columns, "Unternehmen")
	assert.Contains(t, columns, "Verwendungszweck")
	assert.NotContains(t, columns, "Gegenkonto")
	assert.NotContains(t, columns, "Transaktionstyp")
}

func TestColumnsBaseOnly(t *testing.T) {
	records := []record.AccountingRecord{
		{Date: "01.01.2024", Amount: 10, Description: "x", Category: "Sonstige"},
	}
	assert.Equal(t, baseColumns, Columns(records))
}

func TestWriteCSV(t *testing.T) {
	data, err := WriteCSV(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Datum", header[0])
	assert.Equal(t, "15.01.2024", rows[1][0])
	assert.Equal(t, "-150", rows[1][1])
	assert.Equal(t, "Überweisung für Büromaterial", rows[1][2])

	// The optional VAT cell is empty for the record that has no VAT data.
	idx := -1
	for i, name := range header {
		if name == "MWST-Betrag" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "", rows[1][idx])
	assert.Equal(t, "19", rows[2][idx])
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Datum", rows[0][0])
	assert.Equal(t, "15.01.2024", rows[1][0])
	assert.Equal(t, "Druckerpapier", rows[2][2])
}

func TestWriteCSVEmpty(t *testing.T) {
	data, err := WriteCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, baseColumns, rows[0])
}
