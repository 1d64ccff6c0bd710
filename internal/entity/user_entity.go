package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a credential record. The bcrypt hash is the only sensitive field
// retained; there is no profile beyond the login identity.
type User struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"uniqueIndex"`
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
