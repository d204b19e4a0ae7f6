package export

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"plain", "My Cut", 0, "My Cut"},
		{"slashes replaced", "a/b\\c", 0, "a_b_c"},
		{"control stripped", "ti\x00tle\n", 0, "title"},
		{"unicode kept", "Résumé 作品", 0, "Résumé 作品"},
		{"truncated by runes", "abcdef", 4, "abcd"},
		{"allowed punctuation", "Take 2 (final), v1.0_x-y", 0, "Take 2 (final), v1.0_x-y"},
		{"trimmed", "  padded  ", 0, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("SanitizeName(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
