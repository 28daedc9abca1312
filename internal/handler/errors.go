package handler

// Generic HTTP error messages for client responses.
// These intentionally avoid exposing internal error details. Handlers and
// tests reference these constants to stay consistent.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidKindParam  = "Invalid kind. Valid options: vocation, travel"

	// Activity operation error messages
	ErrMsgStartVocationFailed = "Failed to start vocation"
	ErrMsgStartTravelFailed   = "Failed to start travel"
	ErrMsgActivityStatusFail  = "Failed to get activity status"
	ErrMsgStopActivityFailed  = "Failed to stop activity"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed   = "Failed to get inventory"
	ErrMsgGetEquipmentFailed   = "Failed to get equipment"
	ErrMsgEquipmentApplyFailed = "Failed to apply equipment change"

	// User management error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgGetUserFailed      = "Failed to get user"
	ErrMsgGetTracksFailed    = "Failed to get experience tracks"
)

// Success messages returned in JSON responses
const (
	MsgUserRegisteredSuccess = "User registered successfully"
)
