package domain

import "errors"

var (
	ErrModelNotInstalled     = errors.New("linguistic model not installed")
	ErrModelManifestNotFound = errors.New("model manifest not found")
	ErrInvalidIntentTable    = errors.New("invalid intent table")
	ErrSecretNotFound        = errors.New("secret not found")
)
