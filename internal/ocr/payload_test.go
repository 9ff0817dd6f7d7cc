package ocr

import (
	"errors"
	"testing"
)

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
		isArray bool
		wantErr bool
	}{
		{"bare object", `{"betrag": 119.00}`, false, false},
		{"bare array", `[{"betrag": -5.0}]`, true, false},
		{"object with prose", "Hier ist das Ergebnis:\n{\"betrag\": 10}\nViel Erfolg!", false, false},
		{"fenced json", "```json\n{\"betrag\": 10}\n```", false, false},
		{"array wins over braces inside", `[{"a": 1}, {"b": 2}]`, true, false},
		{"no json at all", "leider keine Daten erkennbar", false, true},
		{"broken json", `{"betrag": `, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ExtractJSONPayload(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSONPayload) {
					t.Fatalf("err = %v, want ErrNoJSONPayload", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, gotArray := payload.([]any)
			if gotArray != tt.isArray {
				t.Errorf("array = %v, want %v", gotArray, tt.isArray)
			}
		})
	}
}
