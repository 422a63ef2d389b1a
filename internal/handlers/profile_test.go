package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T, fields map[string]string, fileName string, fileData []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("picture", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/profile", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	view := newView(t)
	alice := &models.UserDB{UserID: 1, Username: "alice", Email: "a@x.com", ImageFile: models.DefaultImageFile}
	fields := map[string]string{"username": "alice2", "email": "a2@x.com"}

	t.Run("prefills form", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewProfileHandler(NewMockProfileUpdater(ctrl), testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/profile", nil), alice))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `value="alice"`)
		assert.Contains(t, rr.Body.String(), `value="a@x.com"`)
		assert.Contains(t, rr.Body.String(), `src="/static/pics/default.jpg"`)
	})

	t.Run("updates without picture", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", (*services.Picture)(nil)).Return(alice, nil)

		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "", nil), alice))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/profile", rr.Header().Get("Location"))
		assert.Equal(t, []models.Flash{{Category: models.FlashSuccess, Message: msgProfileUpdated}}, flashes(rr))
	})

	t.Run("url-encoded form without picture", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", (*services.Picture)(nil)).Return(alice, nil)

		req := newFormRequest(http.MethodPost, "/profile", url.Values{"username": {"alice2"}, "email": {"a2@x.com"}})
		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).ServeHTTP(rr, withUser(req, alice))

		assert.Equal(t, http.StatusFound, rr.Code)
	})

	t.Run("updates with picture", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ *models.UserDB, _, _ string, p *services.Picture) (*models.UserDB, error) {
				require.NotNil(t, p)
				assert.Equal(t, "me.png", p.Filename)
				data, err := io.ReadAll(p.Data)
				require.NoError(t, err)
				assert.Equal(t, []byte("png-bytes"), data)
				return alice, nil
			})

		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "me.png", []byte("png-bytes")), alice))

		assert.Equal(t, http.StatusFound, rr.Code)
	})

	t.Run("rejects extension", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewProfileHandler(NewMockProfileUpdater(ctrl), testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "me.gif", []byte("gif")), alice))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "File does not have an approved extension: jpg, png")
	})

	t.Run("malformed image", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", gomock.Any()).Return(nil, services.ErrInvalidImage)

		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "me.jpg", []byte("junk")), alice))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), msgInvalidImage)
	})

	t.Run("username taken", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", gomock.Any()).Return(nil, services.ErrUsernameTaken)

		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "", nil), alice))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), msgUsernameTaken)
	})

	t.Run("upload too large", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewProfileHandler(NewMockProfileUpdater(ctrl), testValidator, view, 64).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "me.png", bytes.Repeat([]byte("x"), 1024)), alice))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Contains(t, rr.Body.String(), msgUploadTooLarge)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc := NewMockProfileUpdater(ctrl)
		mockSvc.EXPECT().Update(gomock.Any(), alice, "alice2", "a2@x.com", gomock.Any()).Return(nil, errors.New("db error"))

		rr := httptest.NewRecorder()
		NewProfileHandler(mockSvc, testValidator, view, 1<<20).
			ServeHTTP(rr, withUser(newMultipartRequest(t, fields, "", nil), alice))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
