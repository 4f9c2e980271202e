package errors

import (
	"strings"
	"testing"
)

func TestValidateChoice(t *testing.T) {
	allowed := []string{"svg", "png", "dot"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"exact", "svg", false},
		{"uppercase", "PNG", false},
		{"last", "dot", false},

		{"empty", "", true},
		{"unknown", "bmp", true},
		{"with dot prefix", ".svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChoice(ErrCodeInvalidFormat, "format", tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChoice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateChoice(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateChoiceMessage(t *testing.T) {
	err := ValidateChoice(ErrCodeInvalidEngine, "engine", "spring", []string{"dot", "neato"})
	if err == nil {
		t.Fatal("ValidateChoice() should fail")
	}
	if !strings.Contains(err.Error(), "dot, neato") {
		t.Errorf("error should list allowed values: %v", err)
	}
}

func TestValidateInputText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "abba", false},
		{"unicode", "αβγ", false},

		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
