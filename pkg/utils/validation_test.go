package utils

import "testing"

func TestValidateURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  https://www.ebay.com/str/gadgethub ", "https://www.ebay.com/str/gadgethub", false},
		{"http://example.com", "http://example.com", false},
		{"", "", true},
		{"ebay.com/str/x", "", true},
		{"ftp://example.com", "", true},
		{"https://", "", true},
		{"://bad", "", true},
	}
	for _, c := range cases {
		got, err := ValidateURL(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ValidateURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLooksLikeEbayStore(t *testing.T) {
	if !LooksLikeEbayStore("https://www.ebay.com/str/gadgethub") {
		t.Error("expected store URL to match")
	}
	if LooksLikeEbayStore("ebay.com") {
		t.Error("short fragment must not match")
	}
	if LooksLikeEbayStore("https://www.amazon.com/stores/page/ABC") {
		t.Error("non-eBay URL must not match")
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := TruncateText("hello world", 8); got != "hello..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateText("héllo wörld", 8); got != "héllo..." {
		t.Errorf("got %q", got)
	}
}
