// Package services holds the lifecycle logic: registration links,
// account approval, adjudicator reviews, final decisions, invitations.
// Each service takes its collaborators as interfaces so tests can run
// against in-memory doubles.
package services

import "errors"

var (
	ErrAccountNotFound = errors.New("user not found")
	ErrLinkNotFound    = errors.New("invalid registration link")
	ErrLinkAlreadyUsed = errors.New("registration link already used")
	ErrLinkExpired     = errors.New("registration link expired")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
)
