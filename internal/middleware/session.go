package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"nuam/internal/logger"
	"nuam/internal/models"
	"nuam/internal/session"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "nuam_session"

const sessionIssuer = "nuam-web"

// SessionClaims represents the claims in the session JWT
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies session cookies.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessionManager creates a SessionManager. secure marks the cookie HTTPS-only.
func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Token signs a session token for user.
func (m *SessionManager) Token(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a session token and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// Start sets the session cookie for user.
func (m *SessionManager) Start(c *gin.Context, user *models.User) error {
	token, err := m.Token(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// End expires the session cookie.
func (m *SessionManager) End(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// Load reads the session cookie and, when valid, stores the identity in the
// request context. Invalid cookies are cleared and the request continues
// anonymously.
func (m *SessionManager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := m.Parse(raw)
		if err != nil {
			logger.Get().Debugw("discarding session cookie", "error", err, "path", c.Request.URL.Path)
			m.End(c)
			c.Next()
			return
		}
		id := session.Identity{UserID: claims.UserID, Username: claims.Username}
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page, remembering
// the requested path in the next parameter.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}
