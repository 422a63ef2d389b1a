package services_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-blog/internal/jwt"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
)

func newClaims(userID int64, sessionID string, exp time.Time) *jwt.Claims {
	return &jwt.Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	}
}

func TestSessionService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := services.NewMockSessionTokener(ctrl)
	revoker := services.NewMockSessionRevoker(ctrl)
	users := services.NewMockUserReader(ctrl)
	svc := services.NewSessionService(tokens, revoker, users)

	user := &models.UserDB{UserID: 3, Username: "alice"}
	claims := newClaims(3, "sid", time.Now().Add(time.Hour))

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		tokens.EXPECT().Generate(gomock.Any(), int64(3), true).Return("token", claims, nil)
		tokens.EXPECT().SetCookie(w, "token", claims)

		assert.NoError(t, svc.Start(context.Background(), w, user, true))
	})

	t.Run("generate error", func(t *testing.T) {
		w := httptest.NewRecorder()
		tokens.EXPECT().Generate(gomock.Any(), int64(3), false).Return("", nil, errors.New("sign error"))

		assert.EqualError(t, svc.Start(context.Background(), w, user, false), "sign error")
	})
}

func TestSessionService_End(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := services.NewMockSessionTokener(ctrl)
	revoker := services.NewMockSessionRevoker(ctrl)
	users := services.NewMockUserReader(ctrl)
	svc := services.NewSessionService(tokens, revoker, users)

	claims := newClaims(3, "sid", time.Now().Add(time.Hour))

	tests := []struct {
		name      string
		tokenErr  error
		claimsErr error
		revokeErr error
		wantErr   bool
	}{
		{name: "revokes session"},
		{name: "no cookie", tokenErr: jwt.ErrTokenMissing},
		{name: "invalid token", claimsErr: jwt.ErrTokenInvalid},
		{name: "revoke error", revokeErr: errors.New("redis down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/logout", nil)

			tokens.EXPECT().GetTokenFromRequest(gomock.Any(), r).Return("token", tt.tokenErr)
			if tt.tokenErr == nil {
				tokens.EXPECT().GetClaims(gomock.Any(), "token").Return(claims, tt.claimsErr)
				if tt.claimsErr == nil {
					revoker.EXPECT().Revoke(gomock.Any(), "sid", claims.ExpiresAt.Time).Return(tt.revokeErr)
				}
			}
			tokens.EXPECT().ClearCookie(w)

			err := svc.End(context.Background(), w, r)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionService_Current(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := services.NewMockSessionTokener(ctrl)
	revoker := services.NewMockSessionRevoker(ctrl)
	users := services.NewMockUserReader(ctrl)
	svc := services.NewSessionService(tokens, revoker, users)

	user := &models.UserDB{UserID: 3, Username: "alice"}
	claims := newClaims(3, "sid", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		tokenErr   error
		claimsErr  error
		revoked    bool
		revokedErr error
		user       *models.UserDB
		wantUser   *models.UserDB
		wantErr    bool
	}{
		{name: "valid session", user: user, wantUser: user},
		{name: "anonymous", tokenErr: jwt.ErrTokenMissing},
		{name: "tampered token", claimsErr: jwt.ErrTokenInvalid},
		{name: "revoked session", revoked: true},
		{name: "revocation check fails", revokedErr: errors.New("redis down"), wantErr: true},
		{name: "user deleted meanwhile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			tokens.EXPECT().GetTokenFromRequest(gomock.Any(), r).Return("token", tt.tokenErr)
			if tt.tokenErr == nil {
				tokens.EXPECT().GetClaims(gomock.Any(), "token").Return(claims, tt.claimsErr)
				if tt.claimsErr == nil {
					revoker.EXPECT().IsRevoked(gomock.Any(), "sid").Return(tt.revoked, tt.revokedErr)
					if !tt.revoked && tt.revokedErr == nil {
						users.EXPECT().GetByID(gomock.Any(), int64(3)).Return(tt.user, nil)
					}
				}
			}

			got, err := svc.Current(context.Background(), r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}
