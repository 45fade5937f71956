package account

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/middleware"
)

type AccountAPI struct {
	config      config.Manager
	logger      *core.Logger
	sessions    core.SessionService
	httpHandler *HttpHandler
}

func NewAccountAPI(cm config.Manager, logger *core.Logger, sessions core.SessionService, handler *HttpHandler) *AccountAPI {
	return &AccountAPI{
		config:      cm,
		logger:      logger,
		sessions:    sessions,
		httpHandler: handler,
	}
}

func (a *AccountAPI) Name() string {
	return "account"
}

// Configure wires every route onto the given router. Routes that require an
// authenticated caller go through the auth gate.
func (a *AccountAPI) Configure(router *mux.Router) error {
	h := a.httpHandler

	authMw := middleware.AuthMiddleware(middleware.AuthMiddlewareOptions{
		Config:   a.config,
		Logger:   a.logger.Named("middleware"),
		Sessions: a.sessions,
	})

	authed := func(handler http.HandlerFunc) http.Handler {
		return authMw(handler)
	}

	router.HandleFunc("/api/auth/login", h.login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", h.register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/requestaccountcreation", h.requestAccountCreation).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/validateuseremail", h.validateUserEmail).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/check-login", h.checkLogin).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/secure/token/refresh", h.refreshToken).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", h.logout).Methods(http.MethodPost)

	router.Handle("/api/auth/sessions", authed(h.listSessions)).Methods(http.MethodGet)
	router.Handle("/api/auth/remove/session", authed(h.removeSession)).Methods(http.MethodPost)
	router.Handle("/api/auth/delete/account", authed(h.deleteAccount)).Methods(http.MethodPost)

	router.HandleFunc("/api/auth/userinfo/{id}", h.userInfo).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/icon/{id}", h.profileIcon).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/v1/search/user/{query}", h.searchUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/update-username", h.updateUsername).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/generate-display-name", h.generateDisplayName).Methods(http.MethodGet)

	router.Handle("/api/auth/profile/update", authed(h.updateProfile)).Methods(http.MethodPost)
	router.Handle("/api/auth/profile/image", authed(h.uploadProfileImage)).Methods(http.MethodPost)
	router.Handle("/api/auth/profile/remove", authed(h.removeProfileImage)).Methods(http.MethodPost)

	return nil
}
