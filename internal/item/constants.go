package item

// Configuration file locations
const (
	// ConfigPath is the default item catalog file
	ConfigPath = "configs/items.json"

	// SchemaPath is the JSON schema the catalog is validated against
	SchemaPath = "configs/schemas/items.schema.json"
)

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read items config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse items config: %w"
)

// Validation error format strings used with error wrapping
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"

	ErrFmtItemAtIndexEmptyKey = "%w: item at index %d has empty item_key"
	ErrFmtItemEmptyName       = "%w: item '%s' has empty display_name"
	ErrFmtItemNegativeStack   = "%w: item '%s' has negative max_stack_size"
	ErrFmtItemNegativeBonus   = "%w: item '%s' has negative capacity_bonus"
	ErrFmtItemUnknownSlot     = "%w: item '%s' has unknown equip_slot '%s'"
)

// Sync operation messages
const (
	ErrMsgUpsertItemFailed = "failed to upsert item '%s': %w"

	LogMsgSyncCompleted = "Item catalog sync completed"
)
