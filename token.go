package courier

// Token is an optional filter tag carried by subscriptions and sends.
// Tokens have equality semantics only; there is no ordering.
type Token string

// Wildcard is the empty token. It matches every token on the other side
// of a delivery.
const Wildcard Token = ""

// IsWildcard reports whether t is the wildcard token.
func (t Token) IsWildcard() bool {
	return t == Wildcard
}

// Matches reports whether a subscription holding t receives a send tagged
// with other. Either side being the wildcard matches; otherwise the two
// tokens must be equal.
func (t Token) Matches(other Token) bool {
	return t.IsWildcard() || other.IsWildcard() || t == other
}

// String returns the token's underlying value.
func (t Token) String() string {
	if t.IsWildcard() {
		return "<wildcard>"
	}
	return string(t)
}
