package models

import (
	"time"
)

// Roles a user account can hold. Admin implies adjudicator and viewer
// capabilities; the reverse never holds.
const (
	RoleAdmin       = "admin"
	RoleAdjudicator = "adjudicator"
	RoleViewer      = "viewer"
	RolePending     = "pending"
)

// Account approval states. Role is only authoritative while the account
// is approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidRole reports whether role is one of the fixed role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAdjudicator, RoleViewer, RolePending:
		return true
	}
	return false
}

// Account is the system-of-record user document. UID matches the
// identity provider's UID for the same person.
type Account struct {
	UID             string     `gorm:"type:uuid;primaryKey" json:"uid"`
	Email           string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	DisplayName     string     `gorm:"size:255" json:"displayName"`
	PhoneNumber     string     `gorm:"size:50" json:"phoneNumber"`
	Company         string     `gorm:"size:255" json:"company"`
	Description     string     `gorm:"type:text" json:"description"`
	ProfilePicture  string     `gorm:"type:text" json:"profilePicture"`
	Role            string     `gorm:"size:20;not null;default:'pending';index" json:"role"`
	RequestedRole   string     `gorm:"size:20" json:"requestedRole"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AddedBy         string     `gorm:"size:36" json:"addedBy"`
	AddedByName     string     `gorm:"size:255" json:"addedByName"`
	ApprovedBy      *string    `gorm:"size:36" json:"approvedBy"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedBy      *string    `gorm:"size:36" json:"rejectedBy"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	RejectionReason string     `gorm:"type:text" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Account) TableName() string { return "users" }

// CanAccess reports whether the account has any granted capability.
func (a *Account) CanAccess() bool {
	return a.Status == StatusApproved
}
