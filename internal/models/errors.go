package models

import "errors"

// Custom errors
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoMarket       = errors.New("fixture has no home or away price")
	ErrInvalidProfile = errors.New("invalid team profile")
	ErrInvalidFixture = errors.New("invalid fixture")
	ErrUnknownModel   = errors.New("unknown model")
	ErrInvalidWeights = errors.New("invalid model weights")
)
