package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.morpionai.com/account/core"
)

type UserClaimsContextKeyType string
type AccessTokenContextKeyType string
type SessionIDContextKeyType string

const DEFAULT_USER_CLAIMS_CONTEXT_KEY UserClaimsContextKeyType = "user_claims"
const ACCESS_TOKEN_CONTEXT_KEY AccessTokenContextKeyType = "access_token"
const SESSION_ID_CONTEXT_KEY SessionIDContextKeyType = "session_id"

var (
	ErrorUserContextInvalid    = errors.New("user claims stored in context are not of the expected type")
	ErrorTokenContextInvalid   = errors.New("access token stored in context is not of type string")
	ErrorSessionContextInvalid = errors.New("session id stored in context is not of type string")
)

// FindAccessToken looks for the caller's access token, header first, then
// cookie, then a bearer Authorization header.
func FindAccessToken(r *http.Request) string {
	if token := r.Header.Get(core.ACCESS_TOKEN_HEADER_NAME); token != "" {
		return token
	}

	if cookie, err := r.Cookie(core.ACCESS_TOKEN_COOKIE_NAME); cookie != nil && err == nil {
		return cookie.Value
	}

	return ParseAuthTokenHeader(r.Header)
}

// FindSessionID looks for the caller's session id, header first, then
// cookie.
func FindSessionID(r *http.Request) string {
	if sessionID := r.Header.Get(core.SESSION_ID_HEADER_NAME); sessionID != "" {
		return sessionID
	}

	if cookie, err := r.Cookie(core.SESSION_ID_COOKIE_NAME); cookie != nil && err == nil {
		return cookie.Value
	}

	return ""
}

func ParseAuthTokenHeader(headers http.Header) string {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	authHeader = strings.TrimPrefix(authHeader, "Bearer ")
	authHeader = strings.TrimPrefix(authHeader, "bearer ")

	return authHeader
}

func GetUserFromContext(ctx context.Context) (*core.UserClaims, error) {
	claims, ok := ctx.Value(DEFAULT_USER_CLAIMS_CONTEXT_KEY).(*core.UserClaims)
	if !ok {
		return nil, ErrorUserContextInvalid
	}

	return claims, nil
}

func GetAccessTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(ACCESS_TOKEN_CONTEXT_KEY).(string)
	if !ok {
		return "", ErrorTokenContextInvalid
	}

	return token, nil
}

func GetSessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(SESSION_ID_CONTEXT_KEY).(string)
	if !ok {
		return "", ErrorSessionContextInvalid
	}

	return sessionID, nil
}
