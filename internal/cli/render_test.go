package cli

import "testing"

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input extension", "", "glycolysis.json", "glycolysis"},
		{"output with format extension", "map.svg", "doc.json", "map"},
		{"output without extension", "map", "doc.json", "map"},
		{"output with unrelated extension", "map.final", "doc.json", "map.final"},
		{"nested input path", "", "out/doc.json", "out/doc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}
