package models

import "time"

// FinalDecision is the admin's terminal verdict for an application.
// Keyed by application id, so a repeat finalization replaces the prior
// record outright.
type FinalDecision struct {
	ApplicationID   string    `gorm:"size:64;primaryKey" json:"applicationId"`
	Decision        string    `gorm:"size:20;not null" json:"decision"`
	DecidedBy       string    `gorm:"size:36;not null" json:"decidedBy"`
	DecidedByName   string    `gorm:"size:255" json:"decidedByName"`
	DecidedAt       time.Time `gorm:"not null" json:"decidedAt"`
	ApplicantEmail  string    `gorm:"size:255;not null" json:"applicantEmail"`
	ApplicantName   string    `gorm:"size:255;not null" json:"applicantName"`
	CompanyName     string    `gorm:"size:255;not null" json:"companyName"`
	RejectionReason string    `gorm:"type:text" json:"rejectionReason,omitempty"`
}

func (FinalDecision) TableName() string { return "final_decisions" }
