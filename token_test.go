package courier

import "testing"

func TestToken_IsWildcard(t *testing.T) {
	if !Wildcard.IsWildcard() {
		t.Error("expected Wildcard to be wildcard")
	}
	if !Token("").IsWildcard() {
		t.Error("expected empty token to be wildcard")
	}
	if Token("alpha").IsWildcard() {
		t.Error("expected non-empty token to not be wildcard")
	}
}

func TestToken_Matches(t *testing.T) {
	tests := []struct {
		name  string
		sub   Token
		send  Token
		match bool
	}{
		{"both wildcard", Wildcard, Wildcard, true},
		{"wildcard subscription, specific send", Wildcard, Token("alpha"), true},
		{"specific subscription, wildcard send", Token("alpha"), Wildcard, true},
		{"same specific token", Token("alpha"), Token("alpha"), true},
		{"different specific tokens", Token("alpha"), Token("beta"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Matches(tt.send); got != tt.match {
				t.Errorf("Token(%q).Matches(%q) = %v, want %v", tt.sub, tt.send, got, tt.match)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	if got := Token("alpha").String(); got != "alpha" {
		t.Errorf("expected 'alpha', got %q", got)
	}
	if got := Wildcard.String(); got != "<wildcard>" {
		t.Errorf("expected '<wildcard>', got %q", got)
	}
}
