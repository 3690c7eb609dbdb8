package models

import "time"

// RegistrationLink is a single-use, expiring token that gates self-service
// sign-up and carries the role the invitee is applying for.
type RegistrationLink struct {
	Token         string     `gorm:"size:64;primaryKey" json:"token"`
	CreatedBy     string     `gorm:"size:36;not null" json:"createdBy"`
	RequestedRole string     `gorm:"size:20;not null;default:'viewer'" json:"requestedRole"`
	ExpiresAt     time.Time  `gorm:"not null;index" json:"expiresAt"`
	Used          bool       `gorm:"not null;default:false" json:"used"`
	UsedBy        *string    `gorm:"size:36" json:"usedBy"`
	UsedAt        *time.Time `json:"usedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (RegistrationLink) TableName() string { return "registration_links" }
