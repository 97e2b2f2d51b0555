package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("utilisateur non connecté")
	ErrNoSession        = errors.New("no stored session")
	ErrNoRefreshToken   = errors.New("refresh token manquant")
	ErrNoLastPrediction = errors.New("no prediction available")
	ErrNoPendingCheckIn = errors.New("no pending check-in")
)
