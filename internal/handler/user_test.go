package handler

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/domain"
)

// fakeUserService implements user.Service with overridable funcs.
type fakeUserService struct {
	registerFn  func(ctx context.Context, userID, username string) (*domain.User, error)
	getUserFn   func(ctx context.Context, userID string) (*domain.User, error)
	getTracksFn func(ctx context.Context, userID string) ([]domain.ExperienceLedger, error)
}

func (f *fakeUserService) Register(ctx context.Context, userID, username string) (*domain.User, error) {
	return f.registerFn(ctx, userID, username)
}

func (f *fakeUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return f.getUserFn(ctx, userID)
}

func (f *fakeUserService) GetTracks(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
	return f.getTracksFn(ctx, userID)
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"username":"Rowan"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "With explicit id",
			body:           `{"user_id":"user1","username":"Rowan"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing username",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Username with angle brackets",
			body:           `{"username":"<script>"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service rejects input",
			body:           `{"username":"Rowan"}`,
			serviceErr:     domain.ErrInvalidInput,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{
				registerFn: func(ctx context.Context, userID, username string) (*domain.User, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					if userID == "" {
						userID = "generated-id"
					}
					return &domain.User{
						ID:          userID,
						Username:    username,
						LocationKey: domain.DefaultLocationKey,
					}, nil
				},
			}
			h := NewUserHandler(svc)

			req := httptest.NewRequest("POST", "/api/v1/user/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.HandleRegister(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var u domain.User
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
				assert.NotEmpty(t, u.ID)
				assert.Equal(t, domain.DefaultLocationKey, u.LocationKey)
			}
		})
	}
}

func TestHandleGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &fakeUserService{
			getUserFn: func(ctx context.Context, userID string) (*domain.User, error) {
				return &domain.User{ID: userID, Username: "Rowan"}, nil
			},
		}
		h := NewUserHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/user?user_id=user1", nil)
		w := httptest.NewRecorder()

		h.HandleGetUser(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var u domain.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
		assert.Equal(t, "Rowan", u.Username)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := &fakeUserService{
			getUserFn: func(ctx context.Context, userID string) (*domain.User, error) {
				return nil, domain.ErrUserNotFound
			},
		}
		h := NewUserHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/user?user_id=ghost", nil)
		w := httptest.NewRecorder()

		h.HandleGetUser(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, ErrMsgUserNotFoundError, response.Error)
	})
}

func TestHandleGetTracks(t *testing.T) {
	t.Run("Success with big totals", func(t *testing.T) {
		huge, ok := new(big.Int).SetString("92233720368547758080000", 10)
		require.True(t, ok)

		svc := &fakeUserService{
			getTracksFn: func(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
				return []domain.ExperienceLedger{
					{Track: domain.TrackAccount, Experience: huge, Level: 200},
					{Track: domain.VocationTrack(domain.VocationFishing), Experience: big.NewInt(120), Level: 0},
				}, nil
			},
		}
		h := NewUserHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/user/tracks?user_id=user1", nil)
		w := httptest.NewRecorder()

		h.HandleGetTracks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var summaries []TrackSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		// The total survives serialization as an exact decimal string.
		assert.Equal(t, "92233720368547758080000", summaries[0].Experience)
		assert.Equal(t, "vocation:fishing", summaries[1].Track)
	})

	t.Run("Empty ledger list", func(t *testing.T) {
		svc := &fakeUserService{
			getTracksFn: func(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
				return nil, nil
			},
		}
		h := NewUserHandler(svc)

		req := httptest.NewRequest("GET", "/api/v1/user/tracks?user_id=user1", nil)
		w := httptest.NewRecorder()

		h.HandleGetTracks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}
