package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVocationTag(t *testing.T) {
	v := GetValidator()

	type req struct {
		Vocation string `validate:"required,vocation"`
	}

	t.Run("known vocations pass", func(t *testing.T) {
		for key := range ValidVocations {
			assert.NoError(t, v.ValidateStruct(req{Vocation: key}), key)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.NoError(t, v.ValidateStruct(req{Vocation: "Woodcutting"}))
	})

	t.Run("unknown vocation fails", func(t *testing.T) {
		err := v.ValidateStruct(req{Vocation: "alchemy"})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "Invalid vocation", fields["vocation"])
	})

	t.Run("empty falls to required", func(t *testing.T) {
		err := v.ValidateStruct(req{})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "This field is required", fields["vocation"])
	})
}

func TestValidateActivityKindTag(t *testing.T) {
	v := GetValidator()

	type req struct {
		Kind string `validate:"required,activitykind"`
	}

	assert.NoError(t, v.ValidateStruct(req{Kind: "vocation"}))
	assert.NoError(t, v.ValidateStruct(req{Kind: "travel"}))

	err := v.ValidateStruct(req{Kind: "siege"})
	require.Error(t, err)
	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid activity kind", fields["kind"])
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("max length", func(t *testing.T) {
		type req struct {
			Username string `validate:"max=5"`
		}
		err := v.ValidateStruct(req{Username: "much-too-long"})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "Must be at most 5 characters", fields["username"])
	})

	t.Run("excluded characters", func(t *testing.T) {
		type req struct {
			Username string `validate:"excludesall=<>"`
		}
		err := v.ValidateStruct(req{Username: "<Rowan>"})
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "Contains invalid characters", fields["username"])
	})
}
