package models

import (
	"time"
)

// Signed identity token issued for a user uid
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
