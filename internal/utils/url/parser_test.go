package urlutil

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://example.com", true},
		{"http://example.com/page?q=1", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateURL(%q) error = %v, want valid=%v", tt.url, err, tt.valid)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://example.com/shop/", "/img/logo.png", "https://example.com/img/logo.png"},
		{"https://example.com/shop/", "item.html", "https://example.com/shop/item.html"},
		{"https://example.com", "https://cdn.example.com/a.css", "https://cdn.example.com/a.css"},
	}

	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
