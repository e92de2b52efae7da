package models

import (
	"time"

	"github.com/google/uuid"
)

// User record as stored in the user directory.
// UID is generated by the store at creation time and never changes.
type User struct {
	UID            uuid.UUID
	Username       string // always lowercase
	DisplayName    string
	HashedPassword string
	PhotoURL       string
	Bio            string
	FollowersCount int32
	FollowingCount int32
	IsOnline       bool
	LastSeen       time.Time
	CreatedAt      time.Time
}
