package security

import "time"

const (
	// TokenScopeManage grants access to back-office mutations.
	TokenScopeManage = "manage"
	// TokenScopeRead grants read-only access to admin views.
	TokenScopeRead = "read"
)

// Maker makes a new token
type Maker interface {

	// CreateToken creates a new token for a subject, duration and scope
	CreateToken(subject string, duration time.Duration, scope string) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not
	VerifyToken(token string) (*Payload, error)
}
