package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "session"

var (
	ErrTokenMissing = errors.New("session cookie missing")
	ErrTokenInvalid = errors.New("invalid session token")
)

// Claims are the claims carried by a session token.
type Claims struct {
	UserID   int64 `json:"user_id"`
	Remember bool  `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// SessionID returns the unique id of the session, used for revocation.
func (c *Claims) SessionID() string {
	return c.ID
}

// JWT issues and verifies signed session tokens and moves them in and out of cookies.
type JWT struct {
	SecretKey   string        // Secret key for signing tokens
	Exp         time.Duration // Lifetime of a browser-session token
	RememberExp time.Duration // Lifetime of a "remember me" token
	CookieName  string        // Name of the session cookie
	Secure      bool          // Send the cookie over HTTPS only
}

// Opt configures a JWT.
type Opt func(*JWT)

func WithSecretKey(key string) Opt {
	return func(j *JWT) { j.SecretKey = key }
}

func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.Exp = exp }
}

func WithRememberExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.RememberExp = exp }
}

func WithCookieName(name string) Opt {
	return func(j *JWT) { j.CookieName = name }
}

func WithSecureCookie(secure bool) Opt {
	return func(j *JWT) { j.Secure = secure }
}

// New creates a new JWT instance
func New(opts ...Opt) *JWT {
	j := &JWT{
		Exp:         24 * time.Hour,
		RememberExp: 365 * 24 * time.Hour,
		CookieName:  DefaultCookieName,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a session token for userID. A remembered session outlives the browser session.
func (j *JWT) Generate(ctx context.Context, userID int64, remember bool) (string, *Claims, error) {
	exp := j.Exp
	if remember {
		exp = j.RememberExp
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.SecretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// GetClaims parses and verifies the token string and returns its claims.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetTokenFromRequest extracts the token string from the session cookie
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	cookie, err := r.Cookie(j.CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrTokenMissing
	}
	return cookie.Value, nil
}

// SetCookie hands the token to the client. Only remembered sessions get a persistent cookie.
func (j *JWT) SetCookie(w http.ResponseWriter, tokenString string, claims *Claims) {
	cookie := &http.Cookie{
		Name:     j.CookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if claims.Remember && claims.ExpiresAt != nil {
		cookie.Expires = claims.ExpiresAt.Time
		cookie.MaxAge = int(time.Until(claims.ExpiresAt.Time).Seconds())
	}
	http.SetCookie(w, cookie)
}

// ClearCookie removes the session cookie from the client.
func (j *JWT) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
