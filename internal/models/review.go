package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Decision values an adjudicator or admin can record.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// ScoreCriteria is the fixed set of scoring criteria. Every submitted
// score set must contain exactly these keys, each valued 1..5.
var ScoreCriteria = []string{
	"technologyReadiness",
	"innovationProblemSolving",
	"businessPerformance",
	"socialEconomicImpact",
	"resilienceAdaptability",
}

// MaxTotalScore is the highest achievable total (five criteria x 5).
const MaxTotalScore = 25

// Review is one adjudicator's scored verdict on one application. The
// (application_id, adjudicator_id) pair is unique; resubmission updates
// the existing row.
type Review struct {
	ID                       uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicationID            string            `gorm:"size:64;not null;uniqueIndex:idx_adjudications_app_adjudicator" json:"applicationId"`
	AdjudicatorID            string            `gorm:"size:36;not null;uniqueIndex:idx_adjudications_app_adjudicator;index" json:"adjudicatorId"`
	AdjudicatorName          string            `gorm:"size:255" json:"adjudicatorName"`
	AdjudicatorEmail         string            `gorm:"size:255" json:"adjudicatorEmail"`
	AdjudicatorProfilePicture string           `gorm:"type:text" json:"adjudicatorProfilePicture"`
	Decision                 string            `gorm:"size:20;not null" json:"decision"`
	Comments                 string            `gorm:"type:text" json:"comments"`
	Scores                   datatypes.JSONMap `gorm:"type:jsonb" json:"scores"`
	TotalScore               int               `json:"totalScore"`
	ScorePercentage          int               `json:"scorePercentage"`
	ReviewedAt               time.Time         `gorm:"not null;index" json:"reviewedAt"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

func (Review) TableName() string { return "adjudications" }
