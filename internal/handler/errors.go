package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Session operation error messages
	ErrMsgStartSessionFailed = "Failed to start session"
	ErrMsgEndSessionFailed   = "Failed to end session"

	// Shop operation error messages
	ErrMsgPurchaseFailed = "Failed to purchase item"
	ErrMsgUpgradeFailed  = "Failed to upgrade component"

	// Canvas operation error messages
	ErrMsgPlaceFailed   = "Failed to place component"
	ErrMsgConnectFailed = "Failed to connect components"

	// State operation error messages
	ErrMsgGetStateFailed  = "Failed to load state"
	ErrMsgSaveStateFailed = "Failed to save state"
	ErrMsgExportFailed    = "Failed to export snapshot"
	ErrMsgImportFailed    = "Failed to import snapshot"

	// Persona operation error messages
	ErrMsgCoachMessageFailed = "Failed to fetch coach message"
)
