package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity actions recorded by the account lifecycle.
const (
	ActionApplicationApproved = "application_approved"
	ActionApplicationRejected = "application_rejected"
	ActionRoleAssigned        = "role_assigned"
)

// ActivityLog is an append-only audit entry for account lifecycle
// transitions.
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	ActorID   string    `gorm:"size:36;not null" json:"actorId"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
