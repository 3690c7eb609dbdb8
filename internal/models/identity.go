package models

import (
	"time"

	"gorm.io/datatypes"
)

// Identity is the identity provider's own record: credentials plus the
// custom claims mirrored onto issued tokens. Kept separate from Account
// so authentication state and role/approval state cannot silently merge.
type Identity struct {
	UID          string            `gorm:"type:uuid;primaryKey" json:"uid"`
	Email        string            `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string            `gorm:"not null" json:"-"`
	DisplayName  string            `gorm:"size:255" json:"displayName"`
	Claims       datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"claims"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (Identity) TableName() string { return "identities" }
