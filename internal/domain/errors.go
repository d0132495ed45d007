package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User / state errors
	ErrMsgUserNotFound = "user not found"

	// Catalog errors
	ErrMsgItemNotFound = "item not found"

	// Purchase errors
	ErrMsgAlreadyOwned        = "item already owned"
	ErrMsgPrerequisitesNotMet = "prerequisites not met"
	ErrMsgInsufficientCredits = "insufficient credits"

	// Timer errors
	ErrMsgTimerAlreadyActive = "a session is already active"
	ErrMsgNoActiveTimer      = "no active session"
	ErrMsgInvalidDuration    = "duration must be positive"

	// Canvas errors
	ErrMsgNotOwned           = "item not owned"
	ErrMsgComponentNotFound  = "component not found"
	ErrMsgInvalidPlacement   = "invalid placement"
	ErrMsgCanvasFull         = "no free space on the canvas"
	ErrMsgDuplicateEdge      = "components are already connected"
	ErrMsgConnectionRejected = "connection not permitted"

	// Upgrade errors
	ErrMsgMaxTierReached = "component is already at max tier"

	// Snapshot errors
	ErrMsgInvalidSnapshot = "invalid snapshot"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrAlreadyOwned        = errors.New(ErrMsgAlreadyOwned)
	ErrPrerequisitesNotMet = errors.New(ErrMsgPrerequisitesNotMet)
	ErrInsufficientCredits = errors.New(ErrMsgInsufficientCredits)

	ErrTimerAlreadyActive = errors.New(ErrMsgTimerAlreadyActive)
	ErrNoActiveTimer      = errors.New(ErrMsgNoActiveTimer)
	ErrInvalidDuration    = errors.New(ErrMsgInvalidDuration)

	ErrNotOwned           = errors.New(ErrMsgNotOwned)
	ErrComponentNotFound  = errors.New(ErrMsgComponentNotFound)
	ErrInvalidPlacement   = errors.New(ErrMsgInvalidPlacement)
	ErrCanvasFull         = errors.New(ErrMsgCanvasFull)
	ErrDuplicateEdge      = errors.New(ErrMsgDuplicateEdge)
	ErrConnectionRejected = errors.New(ErrMsgConnectionRejected)

	ErrMaxTierReached = errors.New(ErrMsgMaxTierReached)

	ErrInvalidSnapshot = errors.New(ErrMsgInvalidSnapshot)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
