package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/repository"
	"github.com/nymstead/wayfarer/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateItemKey = errors.New("duplicate item key")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Config represents the JSON item catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`

	Items []Def `json:"items"`
}

// Def is a single item template definition in the JSON catalog
type Def struct {
	ItemKey       string            `json:"item_key"`
	DisplayName   string            `json:"display_name"`
	Description   string            `json:"description,omitempty"`
	Stackable     bool              `json:"stackable"`
	MaxStackSize  int               `json:"max_stack_size"`
	EquipSlot     string            `json:"equip_slot,omitempty"`
	CapacityBonus int               `json:"capacity_bonus,omitempty"`
	Stats         []domain.ItemStat `json:"stats,omitempty"`
}

// Loader handles loading, validating and syncing the item catalog
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Item) (*SyncResult, error)
}

// SyncResult reports the outcome of a catalog sync
type SyncResult struct {
	ItemsUpserted int
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses an item catalog JSON file
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Schema validation first so structural errors surface with locations
	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// knownSlots lists the equip slots the engine understands.
var knownSlots = map[string]bool{
	string(domain.SlotAxe):     true,
	string(domain.SlotPickaxe): true,
	string(domain.SlotRod):     true,
	string(domain.SlotSickle):  true,
	string(domain.SlotBack):    true,
	string(domain.SlotBelt):    true,
}

// Validate checks the catalog for semantic errors the schema cannot express
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	seen := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		def := &config.Items[i]
		if err := l.validateDef(i, def, seen); err != nil {
			return err
		}
	}

	return nil
}

func (l *itemLoader) validateDef(index int, def *Def, seen map[string]bool) error {
	if def.ItemKey == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmptyKey, ErrInvalidConfig, index)
	}

	if seen[def.ItemKey] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateItemKey, def.ItemKey)
	}
	seen[def.ItemKey] = true

	if def.DisplayName == "" {
		return fmt.Errorf(ErrFmtItemEmptyName, ErrInvalidConfig, def.ItemKey)
	}
	if def.MaxStackSize < 0 {
		return fmt.Errorf(ErrFmtItemNegativeStack, ErrInvalidConfig, def.ItemKey)
	}
	if def.CapacityBonus < 0 {
		return fmt.Errorf(ErrFmtItemNegativeBonus, ErrInvalidConfig, def.ItemKey)
	}
	if def.EquipSlot != "" && !knownSlots[def.EquipSlot] {
		return fmt.Errorf(ErrFmtItemUnknownSlot, ErrInvalidConfig, def.ItemKey, def.EquipSlot)
	}

	return nil
}

// SyncToDatabase upserts every catalog entry. The upsert is idempotent, so
// re-running a sync against an unchanged file is harmless.
func (l *itemLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Item) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	result := &SyncResult{}
	for _, def := range config.Items {
		tpl := def.toDomain()
		if err := repo.UpsertItem(ctx, &tpl); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailed, def.ItemKey, err)
		}
		result.ItemsUpserted++
	}

	log.Info(LogMsgSyncCompleted, "upserted", result.ItemsUpserted)
	return result, nil
}

func (d *Def) toDomain() domain.Item {
	return domain.Item{
		Key:           d.ItemKey,
		DisplayName:   d.DisplayName,
		Description:   d.Description,
		Stackable:     d.Stackable,
		MaxStackSize:  d.MaxStackSize,
		EquipSlot:     domain.EquipSlot(d.EquipSlot),
		CapacityBonus: d.CapacityBonus,
		Stats:         d.Stats,
	}
}
