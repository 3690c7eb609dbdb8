package dto

import "time"

// ErrorResponse is the uniform failure envelope. ErrorCode carries the
// machine-readable sub-code on authentication failures.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode,omitempty"`
	Details   string `json:"details,omitempty"`
}

type RegistrationLinkResponse struct {
	Success         bool      `json:"success"`
	RegistrationURL string    `json:"registrationUrl"`
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type VerifyLinkResponse struct {
	Valid         bool   `json:"valid"`
	RequestedRole string `json:"requestedRole"`
}

type SignUpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UID     string `json:"uid"`
}

type StatusResponse struct {
	UID            string `json:"uid"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	PhoneNumber    string `json:"phoneNumber"`
	Company        string `json:"company"`
	Description    string `json:"description"`
	ProfilePicture string `json:"profilePicture"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	CanAccess      bool   `json:"canAccess"`
}

type SubmitReviewResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ReviewID        string `json:"reviewId"`
	ScorePercentage int    `json:"scorePercentage"`
}

// ReviewSummary tallies decisions across an application's reviews.
type ReviewSummary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type LoginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    StatusResponse `json:"user"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
