package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nymstead/wayfarer/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError},
		{"activity not found", domain.ErrActivityNotFound, http.StatusNotFound, ErrMsgNoRunningActivityError},
		{"conflicting activity", domain.ErrConflictingActivity, http.StatusConflict, ErrMsgConflictingActivityError},
		{"tool required", domain.ErrToolRequired, http.StatusBadRequest, ErrMsgToolRequiredError},
		{"vocation not found", domain.ErrVocationNotFound, http.StatusBadRequest, ErrMsgVocationNotFoundError},
		{"destination not found", domain.ErrDestinationNotFound, http.StatusBadRequest, ErrMsgDestinationNotFoundError},
		{"item not found", domain.ErrItemNotFound, http.StatusBadRequest, ErrMsgItemNotFoundError},
		{"track not found", domain.ErrTrackNotFound, http.StatusBadRequest, ErrMsgTrackNotFoundError},
		{"invalid capacity", domain.ErrInvalidCapacity, http.StatusBadRequest, ErrMsgInvalidCapacityError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, msg)
		})
	}
}

func TestMapServiceErrorUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("failed to start session: %w",
		fmt.Errorf("%w: equip an axe first", domain.ErrToolRequired))

	status, msg := mapServiceErrorToUserMessage(wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrMsgToolRequiredError, msg)
}

func TestMapServiceErrorFreeFormMessages(t *testing.T) {
	t.Run("short messages pass through", func(t *testing.T) {
		status, msg := mapServiceErrorToUserMessage(errors.New("catalog reload in progress"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "catalog reload in progress", msg)
	})

	t.Run("long messages are replaced", func(t *testing.T) {
		status, msg := mapServiceErrorToUserMessage(errors.New(strings.Repeat("x", 300)))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, ErrMsgGenericServerError, msg)
	})
}
