package constant

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrProfileNotFound    = errors.New("buyer profile not found")
)

// Business error codes carried inside the response envelope. These go
// out with HTTP 200, the client branches on the code.
const (
	ErrCodeTranscriptTooShort = "TRANSCRIPT_TOO_SHORT"
	ErrCodeNoPreferences      = "NO_PREFERENCES"
	ErrCodeValidation         = "VALIDATION_ERROR"
)
