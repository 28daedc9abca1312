package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/activity"
	"github.com/nymstead/wayfarer/internal/domain"
)

// fakeActivityService implements activity.Service with overridable funcs.
type fakeActivityService struct {
	startVocationFn func(ctx context.Context, userID string, key domain.VocationKey) (*domain.ActivityStatus, error)
	startTravelFn   func(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error)
	statusFn        func(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error)
	stopFn          func(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error)
}

func (f *fakeActivityService) StartVocation(ctx context.Context, userID string, key domain.VocationKey) (*domain.ActivityStatus, error) {
	return f.startVocationFn(ctx, userID, key)
}

func (f *fakeActivityService) StartTravel(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error) {
	return f.startTravelFn(ctx, userID, destinationKey)
}

func (f *fakeActivityService) Status(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
	return f.statusFn(ctx, userID, kind)
}

func (f *fakeActivityService) Stop(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
	return f.stopFn(ctx, userID, kind)
}

func (f *fakeActivityService) Vocations() []activity.VocationSpec {
	return []activity.VocationSpec{{
		Key:             domain.VocationWoodcutting,
		DisplayName:     "Woodcutting",
		ResourceKey:     "oak_log",
		BaseUnitSeconds: 30,
		ToolSlot:        domain.SlotAxe,
		UnitXP:          12,
	}}
}

func (f *fakeActivityService) Destinations() []activity.DestinationSpec {
	return []activity.DestinationSpec{{
		Key:           "emberfall",
		DisplayName:   "Emberfall Keep",
		TravelSeconds: 300,
		ArrivalXP:     10,
	}}
}

func runningStatus(kind domain.ActivityKind) *domain.ActivityStatus {
	now := time.Now()
	endsAt := now.Add(time.Hour)
	return &domain.ActivityStatus{
		Running:   true,
		Kind:      kind,
		StartedAt: &now,
		EndsAt:    &endsAt,
	}
}

func TestHandleStartVocation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"user_id":"user1","vocation":"woodcutting"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing user id",
			body:           `{"vocation":"woodcutting"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown vocation rejected by validation",
			body:           `{"user_id":"user1","vocation":"alchemy"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Tool not equipped",
			body:           `{"user_id":"user1","vocation":"woodcutting"}`,
			serviceErr:     domain.ErrToolRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Conflicting activity",
			body:           `{"user_id":"user1","vocation":"woodcutting"}`,
			serviceErr:     domain.ErrConflictingActivity,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Unknown user",
			body:           `{"user_id":"ghost","vocation":"woodcutting"}`,
			serviceErr:     domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeActivityService{
				startVocationFn: func(ctx context.Context, userID string, key domain.VocationKey) (*domain.ActivityStatus, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return runningStatus(domain.KindVocation), nil
				},
			}
			h := NewActivityHandler(svc)

			req := httptest.NewRequest("POST", "/api/v1/activity/vocation/start", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.HandleStartVocation(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var status domain.ActivityStatus
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
				assert.True(t, status.Running)
				assert.Equal(t, domain.KindVocation, status.Kind)
			}
		})
	}
}

func TestHandleStartTravel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeActivityService{
			startTravelFn: func(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error) {
				assert.Equal(t, "user1", userID)
				assert.Equal(t, "emberfall", destinationKey)
				status := runningStatus(domain.KindTravel)
				status.DestinationKey = destinationKey
				return status, nil
			},
		}
		h := NewActivityHandler(svc)

		body := `{"user_id":"user1","destination":"emberfall"}`
		req := httptest.NewRequest("POST", "/api/v1/activity/travel/start", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleStartTravel(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var status domain.ActivityStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "emberfall", status.DestinationKey)
	})

	t.Run("Unknown destination", func(t *testing.T) {
		svc := &fakeActivityService{
			startTravelFn: func(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error) {
				return nil, domain.ErrDestinationNotFound
			},
		}
		h := NewActivityHandler(svc)

		body := `{"user_id":"user1","destination":"atlantis"}`
		req := httptest.NewRequest("POST", "/api/v1/activity/travel/start", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.HandleStartTravel(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, ErrMsgDestinationNotFoundError, response.Error)
	})
}

func TestHandleStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeActivityService{
			statusFn: func(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
				assert.Equal(t, "user1", userID)
				assert.Equal(t, domain.KindVocation, kind)
				status := runningStatus(domain.KindVocation)
				status.UnitsClaimable = 0
				status.Yield = &domain.YieldSummary{
					UnitsClaimed: 3,
					ItemsGranted: map[string]int{"oak_log": 3},
				}
				return status, nil
			},
		}
		h := NewActivityHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/activity/status?user_id=user1&kind=vocation", nil)
		w := httptest.NewRecorder()

		h.HandleStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var status domain.ActivityStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		require.NotNil(t, status.Yield)
		assert.Equal(t, 3, status.Yield.UnitsClaimed)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		h := NewActivityHandler(&fakeActivityService{})

		req := httptest.NewRequest("GET", "/api/v1/activity/status?kind=vocation", nil)
		w := httptest.NewRecorder()

		h.HandleStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid kind", func(t *testing.T) {
		h := NewActivityHandler(&fakeActivityService{})

		req := httptest.NewRequest("GET", "/api/v1/activity/status?user_id=user1&kind=siege", nil)
		w := httptest.NewRecorder()

		h.HandleStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid kind")
	})
}

func TestHandleStop(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeActivityService{
			stopFn: func(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
				status := runningStatus(kind)
				status.Running = false
				status.Yield = &domain.YieldSummary{UnitsClaimed: 5}
				return status, nil
			},
		}
		h := NewActivityHandler(svc)

		req := httptest.NewRequest("POST", "/api/v1/activity/stop?user_id=user1&kind=vocation", nil)
		w := httptest.NewRecorder()

		h.HandleStop(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var status domain.ActivityStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.False(t, status.Running)
	})

	t.Run("No running activity", func(t *testing.T) {
		svc := &fakeActivityService{
			stopFn: func(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
				return nil, domain.ErrActivityNotFound
			},
		}
		h := NewActivityHandler(svc)

		req := httptest.NewRequest("POST", "/api/v1/activity/stop?user_id=user1&kind=travel", nil)
		w := httptest.NewRecorder()

		h.HandleStop(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, ErrMsgNoRunningActivityError, response.Error)
	})
}

func TestHandleCatalogEndpoints(t *testing.T) {
	h := NewActivityHandler(&fakeActivityService{})

	t.Run("Vocations", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/activity/vocations", nil)
		w := httptest.NewRecorder()

		h.HandleGetVocations(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var infos []VocationInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "woodcutting", infos[0].Key)
		assert.Equal(t, "oak_log", infos[0].ResourceKey)
	})

	t.Run("Destinations", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/activity/destinations", nil)
		w := httptest.NewRecorder()

		h.HandleGetDestinations(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var infos []DestinationInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "emberfall", infos[0].Key)
		assert.Equal(t, 300, infos[0].TravelSeconds)
	})
}
