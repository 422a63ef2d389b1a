package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-blog/internal/flash"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := &models.UserDB{UserID: 1, Username: "alice"}

	tests := []struct {
		name             string
		mockSetup        func(m *MockCurrentUserGetter)
		expectedStatus   int
		expectNextCalled bool
		expectedUser     *models.UserDB
	}{
		{
			name: "Anonymous",
			mockSetup: func(m *MockCurrentUserGetter) {
				m.EXPECT().Current(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name: "Authenticated",
			mockSetup: func(m *MockCurrentUserGetter) {
				m.EXPECT().Current(gomock.Any(), gomock.Any()).Return(alice, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
			expectedUser:     alice,
		},
		{
			name: "SessionStoreError",
			mockSetup: func(m *MockCurrentUserGetter) {
				m.EXPECT().Current(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSessions := NewMockCurrentUserGetter(ctrl)
			tt.mockSetup(mockSessions)

			nextCalled := false
			var gotUser *models.UserDB
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUser = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockSessions)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			assert.Equal(t, tt.expectedUser, gotUser)
		})
	}
}

func TestRequireLogin(t *testing.T) {
	nextCalled := false
	handler := RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	t.Run("anonymous is redirected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/post/3/update?x=1", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusFound, rr.Code)

		loc, err := url.Parse(rr.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)
		assert.Equal(t, "/post/3/update?x=1", loc.Query().Get("next"))

		var flashCookie *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == flash.CookieName {
				flashCookie = c
			}
		}
		require.NotNil(t, flashCookie)

		next := httptest.NewRequest(http.MethodGet, "/login", nil)
		next.AddCookie(flashCookie)
		assert.Equal(t, []models.Flash{{Category: models.FlashInfo, Message: LoginMessage}},
			flash.Pop(httptest.NewRecorder(), next))
	})

	t.Run("authenticated passes", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req = req.WithContext(WithUser(req.Context(), &models.UserDB{UserID: 1}))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, nextCalled)
	})
}
