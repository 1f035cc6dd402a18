package services

import "gamelibrary/webapp/pkg/apperrors"

var (
	ErrNameNotUnique   = apperrors.Conflict("Username already exists")
	ErrUnknownUser     = apperrors.NotFound("user", nil)
	ErrAuthentication  = apperrors.Unauthorized("Password does not match", nil)
	ErrGameNotFound    = apperrors.NotFound("game", nil)
	ErrAlreadyReviewed = apperrors.Conflict("You have already reviewed this game")
)
