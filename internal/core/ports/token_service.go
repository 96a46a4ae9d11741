package ports

// TokenService issues and validates the opaque signed bearer tokens that
// authenticate API requests.
type TokenService interface {
	// Issue encodes the user id and an expiry into a signed token.
	Issue(userID string) (string, error)
	// Validate verifies signature and expiry and returns the embedded user
	// id. Any malformed, tampered, or expired token yields
	// domain.ErrInvalidToken, never a partial identity.
	Validate(token string) (string, error)
}
