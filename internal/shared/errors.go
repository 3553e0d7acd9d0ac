package shared

import "fmt"

var (
	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrRetryExhausted = fmt.Errorf("retry attempts exhausted")
	ErrBadPayload     = fmt.Errorf("malformed server payload")

	// Selection errors
	ErrEmptySelection   = fmt.Errorf("no playlists selected")
	ErrSelectionAborted = fmt.Errorf("selection aborted")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
