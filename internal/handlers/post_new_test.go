package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPostNewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	view := newView(t)
	alice := &models.UserDB{UserID: 1, Username: "alice"}

	tests := []struct {
		name             string
		method           string
		form             url.Values
		mockSetup        func(m *MockPostCreator)
		expectedCode     int
		expectedLocation string
		expectedBody     string
	}{
		{
			name:         "shows form",
			method:       http.MethodGet,
			mockSetup:    func(m *MockPostCreator) {},
			expectedCode: http.StatusOK,
			expectedBody: "<legend>New Post</legend>",
		},
		{
			name:   "creates post",
			method: http.MethodPost,
			form:   url.Values{"title": {"Hello"}, "content": {"World"}},
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().Create(gomock.Any(), alice, "Hello", "World").Return(int64(1), nil)
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/",
		},
		{
			name:         "missing title",
			method:       http.MethodPost,
			form:         url.Values{"title": {"  "}, "content": {"World"}},
			mockSetup:    func(m *MockPostCreator) {},
			expectedCode: http.StatusOK,
			expectedBody: "This field is required.",
		},
		{
			name:         "title too long",
			method:       http.MethodPost,
			form:         url.Values{"title": {strings.Repeat("x", 101)}, "content": {"World"}},
			mockSetup:    func(m *MockPostCreator) {},
			expectedCode: http.StatusOK,
			expectedBody: "Field cannot be longer than 100 characters.",
		},
		{
			name:   "store error",
			method: http.MethodPost,
			form:   url.Values{"title": {"Hello"}, "content": {"World"}},
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().Create(gomock.Any(), alice, "Hello", "World").Return(int64(0), errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPostCreator(ctrl)
			tt.mockSetup(mockSvc)

			req := withUser(newFormRequest(tt.method, "/post/new", tt.form), alice)
			rr := httptest.NewRecorder()
			NewPostNewHandler(mockSvc, testValidator, view).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
				assert.Equal(t, []models.Flash{{Category: models.FlashSuccess, Message: msgPostCreated}}, flashes(rr))
			}
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}
