// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jaspar

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name unchanged", "GATA1", "GATA1"},
		{"slash and colon", "A:B/C", "A-B-C"},
		{"backslash", `TF\alpha`, "TF-alpha"},
		{"all illegal characters", `a\b/c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"surrounding whitespace trimmed", "  FOXA1  ", "FOXA1"},
		{"interior whitespace kept", "NFKB p65", "NFKB p65"},
		{"heterodimer double colon", "EWSR1::FLI1", "EWSR1--FLI1"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPFMFilename(t *testing.T) {
	tests := []struct {
		name     string
		matrixID string
		tfName   string
		want     string
	}{
		{"simple", "MA0035.4", "GATA1", "MA0035.4_GATA1.pfm"},
		{"name with slash", "MA0099.3", "FOS::JUN", "MA0099.3_FOS--JUN.pfm"},
		{"name with spaces", "MA0001.1", "  AGL3 ", "MA0001.1_AGL3.pfm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PFMFilename(tt.matrixID, tt.tfName); got != tt.want {
				t.Errorf("PFMFilename(%q, %q) = %q, want %q", tt.matrixID, tt.tfName, got, tt.want)
			}
		})
	}
}
