package middleware

import (
	"context"
	"net/http"

	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.uber.org/zap"
)

type FindTokenFunc func(r *http.Request) string

type AuthMiddlewareOptions struct {
	Config        config.Manager
	Logger        *core.Logger
	Sessions      core.SessionService
	FindToken     FindTokenFunc
	FindSessionID FindTokenFunc
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"isLogin":false}`))
}

// AuthMiddleware gates a route on a valid access token. A request carrying
// only an expired or absent token can still pass when its session id refers
// to a live session: a fresh token is minted, attached to the response, and
// the request proceeds under the refreshed claims. Anything else is a 401.
func AuthMiddleware(options AuthMiddlewareOptions) func(http.Handler) http.Handler {
	if options.FindToken == nil {
		options.FindToken = FindAccessToken
	}

	if options.FindSessionID == nil {
		options.FindSessionID = FindSessionID
	}

	cfg := options.Config.Config().Core
	secret := []byte(cfg.Auth.TokenSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := options.FindToken(r)
			sessionID := options.FindSessionID(r)

			var claims *core.UserClaims

			if accessToken != "" {
				verified, err := core.JWTVerifyToken(accessToken, cfg.Domain, secret)
				if err == nil {
					claims = verified
				}
			}

			if claims == nil {
				if sessionID == "" {
					writeUnauthorized(w)
					return
				}

				refreshed, err := options.Sessions.Refresh(sessionID)
				if err != nil {
					options.Logger.Debug("session refresh rejected", zap.Error(err))
					writeUnauthorized(w)
					return
				}

				verified, err := core.JWTVerifyToken(refreshed, cfg.Domain, secret)
				if err != nil {
					options.Logger.Error("freshly minted token failed verification", zap.Error(err))
					writeUnauthorized(w)
					return
				}

				accessToken = refreshed
				claims = verified

				core.SetAccessTokenCookie(w, refreshed, cfg.Auth.AccessTokenTTL)
				core.SendAccessToken(w, refreshed)
			}

			ctx := context.WithValue(r.Context(), DEFAULT_USER_CLAIMS_CONTEXT_KEY, claims)
			ctx = context.WithValue(ctx, ACCESS_TOKEN_CONTEXT_KEY, accessToken)
			if sessionID != "" {
				ctx = context.WithValue(ctx, SESSION_ID_CONTEXT_KEY, sessionID)
			}
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}
