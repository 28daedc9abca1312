package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Activity errors
	ErrMsgActivityNotFound    = "no running activity"
	ErrMsgConflictingActivity = "another activity is already running"
	ErrMsgToolRequired        = "required tool is not equipped"
	ErrMsgSessionTooLong      = "session length exceeds maximum"

	// Reference errors
	ErrMsgItemNotFound        = "item not found"
	ErrMsgVocationNotFound    = "unknown vocation"
	ErrMsgDestinationNotFound = "unknown destination"

	// Inventory errors
	ErrMsgInventoryFull       = "inventory is full"
	ErrMsgCapacityShrinkLoss  = "items could not be relocated"
	ErrMsgInventoryNotFound   = "inventory not found"
	ErrMsgInvalidCapacity     = "invalid capacity"

	// XP errors
	ErrMsgTrackNotFound = "unknown experience track"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Activity errors
	ErrActivityNotFound    = errors.New(ErrMsgActivityNotFound)
	ErrConflictingActivity = errors.New(ErrMsgConflictingActivity)
	ErrToolRequired        = errors.New(ErrMsgToolRequired)
	ErrSessionTooLong      = errors.New(ErrMsgSessionTooLong)

	// Reference errors
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrVocationNotFound    = errors.New(ErrMsgVocationNotFound)
	ErrDestinationNotFound = errors.New(ErrMsgDestinationNotFound)

	// Inventory errors
	// ErrInventoryFull is informational only: grants degrade to partial fills and
	// report the surplus, they never fail the operation.
	ErrInventoryFull      = errors.New(ErrMsgInventoryFull)
	ErrCapacityShrinkLoss = errors.New(ErrMsgCapacityShrinkLoss)
	ErrInventoryNotFound  = errors.New(ErrMsgInventoryNotFound)
	ErrInvalidCapacity    = errors.New(ErrMsgInvalidCapacity)

	// XP errors
	ErrTrackNotFound = errors.New(ErrMsgTrackNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
