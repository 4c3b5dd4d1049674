package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account known to the identity provider.
// Email is the identity string the provider hands us for every request.
type User struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
