package probe

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare domain", "example.com", "https://example.com", true},
		{"http passthrough", "http://x.io", "http://x.io", true},
		{"https passthrough", "https://example.com/path?q=1", "https://example.com/path?q=1", true},
		{"surrounding whitespace", "  example.com \t", "https://example.com", true},
		{"subdomain with path", "www.example.co.uk/page", "https://www.example.co.uk/page", true},
		{"not a url", "not a url!!", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   \t ", "", false},
		{"single word", "localhost", "", false},
		{"numeric tld rejected", "example.123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
