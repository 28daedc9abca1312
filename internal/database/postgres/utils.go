package postgres

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nymstead/wayfarer/internal/domain"
)

// marshalSlots serializes the slot array for the JSONB column. Nil entries
// are preserved: slot positions are meaningful.
func marshalSlots(slots []*domain.Stack) ([]byte, error) {
	if slots == nil {
		slots = []*domain.Stack{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slots: %w", err)
	}
	return data, nil
}

func unmarshalSlots(data []byte) ([]*domain.Stack, error) {
	var slots []*domain.Stack
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
	}
	return slots, nil
}

func marshalEquipment(equipment domain.EquipmentSnapshot) ([]byte, error) {
	if equipment == nil {
		equipment = domain.EquipmentSnapshot{}
	}
	data, err := json.Marshal(equipment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal equipment: %w", err)
	}
	return data, nil
}

func unmarshalEquipment(data []byte) (domain.EquipmentSnapshot, error) {
	equipment := domain.EquipmentSnapshot{}
	if len(data) == 0 {
		return equipment, nil
	}
	if err := json.Unmarshal(data, &equipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
	}
	return equipment, nil
}

func marshalStats(stats []domain.ItemStat) ([]byte, error) {
	if stats == nil {
		stats = []domain.ItemStat{}
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}
	return data, nil
}

func unmarshalStats(data []byte) ([]domain.ItemStat, error) {
	var stats []domain.ItemStat
	if len(data) == 0 {
		return stats, nil
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return stats, nil
}

// numericToBigInt converts a NUMERIC column value to a big integer.
// Experience totals are always whole numbers, so a fractional value is a
// data error.
func numericToBigInt(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid || n.Int == nil {
		return new(big.Int), nil
	}
	value := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		mult := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil)
		value.Mul(value, mult)
	case n.Exp < 0:
		div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-n.Exp)), nil)
		rem := new(big.Int)
		value.QuoRem(value, div, rem)
		if rem.Sign() != 0 {
			return nil, fmt.Errorf("experience value is not an integer")
		}
	}
	return value, nil
}

// bigIntToNumeric converts a big integer to a NUMERIC column value
func bigIntToNumeric(value *big.Int) pgtype.Numeric {
	if value == nil {
		value = new(big.Int)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(value), Exp: 0, Valid: true}
}
