package models

import "time"

// Token is the persisted record of an issued bearer token, keyed by the exact
// serialized token string. ExpiresAt always equals the expiry encoded inside
// the token itself. Revoked only ever transitions false to true; records are
// never deleted by the API.
type Token struct {
	Value     string     `db:"value" json:"value"`
	OwnerID   string     `db:"owner_id" json:"owner_id"`
	IssuedAt  time.Time  `db:"issued_at" json:"issued_at"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}
