package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	view := newView(t)

	valid := url.Values{
		"username":         {"alice"},
		"email":            {"a@x.com"},
		"password":         {"pw1234"},
		"confirm_password": {"pw1234"},
	}
	with := func(key, value string) url.Values {
		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set(key, value)
		return form
	}

	tests := []struct {
		name             string
		method           string
		form             url.Values
		currentUser      *models.UserDB
		mockSetup        func(m *MockRegisterer)
		expectedCode     int
		expectedLocation string
		expectedBody     []string
		expectedFlash    string
	}{
		{
			name:         "shows form",
			method:       http.MethodGet,
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusOK,
			expectedBody: []string{"Join Today"},
		},
		{
			name:             "already logged in",
			method:           http.MethodGet,
			currentUser:      &models.UserDB{UserID: 1},
			mockSetup:        func(m *MockRegisterer) {},
			expectedCode:     http.StatusFound,
			expectedLocation: "/",
		},
		{
			name:   "success",
			method: http.MethodPost,
			form:   valid,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "pw1234").Return(nil)
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/login",
			expectedFlash:    "profile created for alice!",
		},
		{
			name:         "username too short",
			method:       http.MethodPost,
			form:         with("username", "a"),
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusOK,
			expectedBody: []string{"Field must be between 2 and 20 characters long."},
		},
		{
			name:         "bad email",
			method:       http.MethodPost,
			form:         with("email", "not-an-email"),
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusOK,
			expectedBody: []string{"Invalid email address."},
		},
		{
			name:         "confirmation mismatch",
			method:       http.MethodPost,
			form:         with("confirm_password", "other"),
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusOK,
			expectedBody: []string{"Field must be equal to password."},
		},
		{
			name:   "username and email taken",
			method: http.MethodPost,
			form:   valid,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "pw1234").
					Return(errors.Join(services.ErrUsernameTaken, services.ErrEmailTaken))
			},
			expectedCode: http.StatusOK,
			expectedBody: []string{msgUsernameTaken, msgEmailTaken},
		},
		{
			name:   "internal server error",
			method: http.MethodPost,
			form:   valid,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "alice", "a@x.com", "pw1234").Return(errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			tt.mockSetup(mockSvc)

			req := newFormRequest(tt.method, "/register", tt.form)
			if tt.currentUser != nil {
				req = withUser(req, tt.currentUser)
			}
			rr := httptest.NewRecorder()

			NewRegisterHandler(mockSvc, testValidator, view).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
			for _, body := range tt.expectedBody {
				assert.Contains(t, rr.Body.String(), body)
			}
			if tt.expectedFlash != "" {
				assert.Equal(t, []models.Flash{{Category: models.FlashSuccess, Message: tt.expectedFlash}}, flashes(rr))
			}
		})
	}
}

func TestTakenErrors(t *testing.T) {
	assert.Nil(t, takenErrors(errors.New("other")))
	assert.Equal(t, models.FormErrors{"username": msgUsernameTaken}, takenErrors(services.ErrUsernameTaken))
	assert.Equal(t, models.FormErrors{"email": msgEmailTaken}, takenErrors(services.ErrEmailTaken))
}
