package sanitizer

import (
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing", "  MG Road  ", "MG Road"},
		{"internal runs collapse", "MG   Road,\t\tBengaluru", "MG Road, Bengaluru"},
		{"already clean", "MG Road", "MG Road"},
		{"idempotent", "MG Road", TrimAndNormalize(TrimAndNormalize("  MG   Road "))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipeline(t *testing.T) {
	p := Pipeline{TrimAndNormalize, NormalizeAddress}
	if got := p.Apply("  12   Main St "); got != "12 Main St" {
		t.Errorf("Pipeline.Apply = %q", got)
	}
}
