package handlers

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/models"
	"cryptoapp/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

const AuthCookieName = "auth_token"

type userContextKey struct{}

// TokenAuth issues and verifies the HS256 session token carried in the auth cookie
// or the Authorization header.
type TokenAuth struct {
	ja         *jwtauth.JWTAuth
	expiration time.Duration
	issuer     string
	secure     func() bool
}

func NewTokenAuth(secret string, expiration time.Duration, issuer string, secure func() bool) *TokenAuth {
	if secure == nil {
		secure = func() bool { return false }
	}
	return &TokenAuth{
		ja:         jwtauth.New("HS256", []byte(secret), nil),
		expiration: expiration,
		issuer:     issuer,
		secure:     secure,
	}
}

func (t *TokenAuth) Generate(user *models.User) (string, error) {
	claims := map[string]interface{}{
		"sub":       user.ID.String(),
		"iss":       t.issuer,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, time.Now().Add(t.expiration))

	_, token, err := t.ja.Encode(claims)
	return token, err
}

func (t *TokenAuth) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure(),
		MaxAge:   int(t.expiration / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
}

func (t *TokenAuth) LogoutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure(),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
}

// Verifier decodes a token from the Authorization header, falling back to the auth cookie.
func (t *TokenAuth) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verify(t.ja, jwtauth.TokenFromHeader, tokenFromCookie)
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// userIDFromContext returns the subject of a verified token issued by us.
func (t *TokenAuth) userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return uuid.Nil, false
	}
	if iss, _ := claims["iss"].(string); iss != t.issuer {
		return uuid.Nil, false
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireUser rejects requests without a valid token and stores the user in the context.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.TokenAuth.userIDFromContext(r.Context())
		if !ok {
			h.HandleErrors(w, utils.Unauthorized("User unauthenticated."))
			return
		}
		user, err := h.UserService.GetByID(r.Context(), id)
		if err != nil {
			h.HandleErrors(w, utils.Unauthorized("User unauthenticated."))
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey{}).(*models.User)
	return user
}
