package domain

import "errors"

var (
	ErrValidation    = errors.New("invalid request")
	ErrImageDecode   = errors.New("image decode failed")
	ErrConfiguration = errors.New("missing configuration")
	ErrTransaction   = errors.New("transaction failed")
	ErrNoExportedArt = errors.New("no exported art found")
)
