package constants

import "errors"

// Configuration errors.
var (
	ErrNoCommunityConfigured = errors.New("no community configured, use 'communet login' to add one")
	ErrHelperFileNotFound    = errors.New("helper configuration file not found")
	ErrUnknownOutputFormat   = errors.New("unknown output format")
)

// Authentication errors.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available")
	ErrNotAuthenticated   = errors.New("not authenticated, use 'communet login' to authenticate first")
)

// Validation errors.
var (
	ErrBoardIDRequired    = errors.New("board ID is required")
	ErrCategoryIDRequired = errors.New("category ID is required")
	ErrMessageIDRequired  = errors.New("message ID is required")
	ErrUserIDRequired     = errors.New("user ID is required")
	ErrSubjectRequired    = errors.New("message subject is required")
	ErrQueryRequired      = errors.New("LiQL query is required")
)
