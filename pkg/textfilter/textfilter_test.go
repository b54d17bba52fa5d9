package textfilter

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"shire", "Shire"},
		{"west_gate_of_moria", "West Gate Of Moria"},
		{"mountdoom", "Mount Doom"},
		{"amonhen", "Amon Hen"},
		{"blackgate", "The Black Gate"},
		{"caradhras_pass", "The Pass of Caradhras"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.key); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}
