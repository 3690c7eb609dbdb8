package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation records an invitation e-mail an admin sent, for auditing.
type Invitation struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email           string    `gorm:"size:255;not null;index" json:"email"`
	RegistrationURL string    `gorm:"type:text;not null" json:"registrationUrl"`
	Role            string    `gorm:"size:20;not null" json:"role"`
	SentBy          string    `gorm:"size:36;not null" json:"sentBy"`
	SentByName      string    `gorm:"size:255" json:"sentByName"`
	SentAt          time.Time `gorm:"not null" json:"sentAt"`
	Status          string    `gorm:"size:20;not null;default:'sent'" json:"status"`
}

func (Invitation) TableName() string { return "invitations" }
