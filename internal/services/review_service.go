package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/models"
	"github.com/msme-awards/adjudication-api/internal/store"
	"gorm.io/datatypes"
)

// ReviewService owns adjudicator scoring. One review per
// (application, adjudicator) pair; resubmission updates in place.
type ReviewService struct {
	reviews store.Reviews
	now     func() time.Time
}

func NewReviewService(reviews store.Reviews) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

// Submit validates and upserts a review, returning the stored review's
// id and computed score percentage.
func (s *ReviewService) Submit(adjudicator *models.Account, req *dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	if req.ApplicationID == "" || req.Decision == "" || req.Comments == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	decision := strings.ToLower(req.Decision)
	if decision != models.DecisionApproved && decision != models.DecisionRejected {
		return nil, fmt.Errorf(`%w: decision must be either "approved" or "rejected"`, ErrInvalidInput)
	}

	totalScore := 0
	var scores datatypes.JSONMap
	if req.Scores != nil {
		if err := validateScores(req.Scores); err != nil {
			return nil, err
		}
		scores = datatypes.JSONMap{}
		for criterion, score := range req.Scores {
			scores[criterion] = score
			totalScore += score
		}
	}
	scorePercentage := int(math.Round(float64(totalScore) / models.MaxTotalScore * 100))

	now := s.now()
	existing, err := s.reviews.FindByApplicationAndAdjudicator(req.ApplicationID, adjudicator.UID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.reviews.Update(existing.ID.String(), reviewFields(adjudicator, decision, req.Comments, scores, totalScore, scorePercentage, now)); err != nil {
			return nil, err
		}
		return &dto.SubmitReviewResponse{
			Success:         true,
			Message:         "Review updated successfully",
			ReviewID:        existing.ID.String(),
			ScorePercentage: scorePercentage,
		}, nil
	}

	review := &models.Review{
		ApplicationID:             req.ApplicationID,
		AdjudicatorID:             adjudicator.UID,
		AdjudicatorName:           adjudicator.DisplayName,
		AdjudicatorEmail:          adjudicator.Email,
		AdjudicatorProfilePicture: adjudicator.ProfilePicture,
		Decision:                  decision,
		Comments:                  req.Comments,
		Scores:                    scores,
		TotalScore:                totalScore,
		ScorePercentage:           scorePercentage,
		ReviewedAt:                now,
	}
	err = s.reviews.Create(review)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a create race against a concurrent submission by the
		// same adjudicator; retry as an update of the winner's row.
		winner, findErr := s.reviews.FindByApplicationAndAdjudicator(req.ApplicationID, adjudicator.UID)
		if findErr != nil {
			return nil, findErr
		}
		if err := s.reviews.Update(winner.ID.String(), reviewFields(adjudicator, decision, req.Comments, scores, totalScore, scorePercentage, now)); err != nil {
			return nil, err
		}
		return &dto.SubmitReviewResponse{
			Success:         true,
			Message:         "Review updated successfully",
			ReviewID:        winner.ID.String(),
			ScorePercentage: scorePercentage,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &dto.SubmitReviewResponse{
		Success:         true,
		Message:         "Review submitted successfully",
		ReviewID:        review.ID.String(),
		ScorePercentage: scorePercentage,
	}, nil
}

// GetMine returns the adjudicator's review for an application, or nil
// when none exists. An absent review is a valid state, not an error.
func (s *ReviewService) GetMine(adjudicatorID, applicationID string) (*models.Review, error) {
	review, err := s.reviews.FindByApplicationAndAdjudicator(applicationID, adjudicatorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) MyReviews(adjudicatorID string) ([]models.Review, error) {
	return s.reviews.ListByAdjudicator(adjudicatorID)
}

// ListForApplication returns all reviews for an application plus the
// decision tally. An empty set is valid and yields a zero summary.
func (s *ReviewService) ListForApplication(applicationID string) ([]models.Review, *dto.ReviewSummary, error) {
	reviews, err := s.reviews.ListByApplication(applicationID)
	if err != nil {
		return nil, nil, err
	}

	summary := &dto.ReviewSummary{Total: len(reviews)}
	for _, r := range reviews {
		switch r.Decision {
		case models.DecisionApproved:
			summary.Approved++
		case models.DecisionRejected:
			summary.Rejected++
		}
	}
	return reviews, summary, nil
}

// CountsByApplication maps application ids to how many reviews each has
// received.
func (s *ReviewService) CountsByApplication() (map[string]int64, error) {
	return s.reviews.CountsByApplication()
}

// AllData returns every review, for the viewer dashboard.
func (s *ReviewService) AllData() ([]models.Review, error) {
	return s.reviews.ListAll()
}

func validateScores(scores map[string]int) error {
	if len(scores) != len(models.ScoreCriteria) {
		return fmt.Errorf("%w: scores must cover exactly the %d criteria", ErrInvalidInput, len(models.ScoreCriteria))
	}
	for _, criterion := range models.ScoreCriteria {
		score, ok := scores[criterion]
		if !ok || score < 1 || score > 5 {
			return fmt.Errorf("%w: invalid score for %s, must be between 1 and 5", ErrInvalidInput, criterion)
		}
	}
	return nil
}

func reviewFields(adjudicator *models.Account, decision, comments string, scores datatypes.JSONMap, totalScore, scorePercentage int, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"adjudicator_name":            adjudicator.DisplayName,
		"adjudicator_email":           adjudicator.Email,
		"adjudicator_profile_picture": adjudicator.ProfilePicture,
		"decision":                    decision,
		"comments":                    comments,
		"scores":                      scores,
		"total_score":                 totalScore,
		"score_percentage":            scorePercentage,
		"reviewed_at":                 now,
	}
}
