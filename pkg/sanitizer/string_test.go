package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Alex Morgan  ",
			want:  "Alex Morgan",
		},
		{
			name:  "multiple spaces between words",
			input: "Alex    Morgan",
			want:  "Alex Morgan",
		},
		{
			name:  "tabs and newlines",
			input: "Alex\t\nMorgan",
			want:  "Alex Morgan",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " José Álvarez-Smith ",
			want:  "José Álvarez-Smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	input := "  Alex   Morgan  "
	once := NormalizeName(input)
	twice := NormalizeName(once)
	if once != twice {
		t.Errorf("NormalizeName is not idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID("  item-42  "); got != "item-42" {
		t.Errorf("NormalizeID = %q, want %q", got, "item-42")
	}
}
