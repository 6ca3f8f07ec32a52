package errors

import "errors"

var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrCategoryUnknown = errors.New("unknown upload category")
)
