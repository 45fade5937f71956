package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ACCESS_TOKEN_COOKIE_NAME = "access_token"
	SESSION_ID_COOKIE_NAME   = "session_id"
	ACCESS_TOKEN_HEADER_NAME = "x-access-token"
	SESSION_ID_HEADER_NAME   = "x-session-id"
)

var (
	ErrJWTUnexpectedClaimsType = errors.New("unexpected claims type")
	ErrJWTUnexpectedIssuer     = errors.New("unexpected issuer")
)

// UserClaims is the identity claim set embedded in every access token. It is
// a projection of the account and profile records at signing time; possession
// of a token with a valid signature and unexpired expiry claim is sufficient
// authorization, no store lookup is performed.
type UserClaims struct {
	UserID      uint   `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

func JWTGenerateToken(domain string, secret []byte, claims *UserClaims, duration time.Duration) (string, error) {
	now := time.Now()

	claims.Issuer = domain
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(duration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// JWTVerifyToken rejects on any of: malformed token, signature mismatch,
// elapsed expiry (a token whose expiry equals the current instant is already
// invalid), or issuer mismatch.
func JWTVerifyToken(token string, domain string, secret []byte) (*UserClaims, error) {
	validatedToken, err := jwt.ParseWithClaims(token, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	claim, ok := validatedToken.Claims.(*UserClaims)

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJWTUnexpectedClaimsType, validatedToken.Claims)
	}

	if domain != claim.Issuer {
		return nil, fmt.Errorf("%w: %s", ErrJWTUnexpectedIssuer, claim.Issuer)
	}

	return claim, nil
}

func SetAccessTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     ACCESS_TOKEN_COOKIE_NAME,
		Value:    token,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	})
}

func SetSessionIDCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SESSION_ID_COOKIE_NAME,
		Value:    sessionID,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	})
}

func ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{ACCESS_TOKEN_COOKIE_NAME, SESSION_ID_COOKIE_NAME} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteNoneMode,
			Path:     "/",
		})
	}
}

// SendAccessToken surfaces a newly minted token to header-based clients so
// they can replace their stored credential.
func SendAccessToken(w http.ResponseWriter, token string) {
	w.Header().Set(ACCESS_TOKEN_HEADER_NAME, token)
}
