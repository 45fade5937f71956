package account

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
	"go.morpionai.com/account/middleware"
	"go.uber.org/zap"
)

const maxProfileImageSize = 10 << 20

type HttpHandler struct {
	config   config.Manager
	logger   *core.Logger
	auth     core.AuthService
	otp      core.OTPService
	sessions core.SessionService
	profiles core.ProfileService
	storage  core.StorageService
}

func NewHttpHandler(cm config.Manager, logger *core.Logger, auth core.AuthService, otp core.OTPService, sessions core.SessionService, profiles core.ProfileService, storage core.StorageService) *HttpHandler {
	return &HttpHandler{
		config:   cm,
		logger:   logger.Named("api"),
		auth:     auth,
		otp:      otp,
		sessions: sessions,
		profiles: profiles,
		storage:  storage,
	}
}

func (h *HttpHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.encode(w, http.StatusBadRequest, SucceededResponse{Succeeded: false, ErrorMessage: "Invalid request body."})
		return false
	}
	return true
}

func (h *HttpHandler) encode(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorMessage maps a service failure to the message safe to show callers.
func errorMessage(err error) string {
	if accErr := core.AsAccountError(err); accErr != nil {
		return accErr.Message
	}
	return "Something went wrong. Please try again."
}

func (h *HttpHandler) setLoginCookies(w http.ResponseWriter, result *core.LoginResult) {
	authCfg := h.config.Config().Core.Auth
	core.SetAccessTokenCookie(w, result.AccessToken, authCfg.AccessTokenTTL)
	core.SetSessionIDCookie(w, result.SessionID, authCfg.SessionLifetime)
}

func (h *HttpHandler) login(w http.ResponseWriter, r *http.Request) {
	var request LoginRequest
	if !h.decode(w, r, &request) {
		return
	}

	var result *core.LoginResult
	var err error

	switch core.AccountKind(request.AccountType) {
	case core.AccountKindEmail:
		result, err = h.auth.LoginPassword(request.Email, request.Password, request.Device, request.Location)
	case core.AccountKindGoogle:
		result, err = h.auth.LoginGoogle(r.Context(), request.AccessToken, request.Device, request.Location)
	default:
		h.encode(w, http.StatusOK, LoginResponse{IsLogIn: false, ErrorMessage: "Invalid account type. Please try again."})
		return
	}

	if err != nil {
		h.logger.Debug("login rejected", zap.String("email", request.Email), zap.Error(err))
		h.encode(w, http.StatusOK, LoginResponse{IsLogIn: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.setLoginCookies(w, result)
	h.encode(w, http.StatusOK, LoginResponse{
		IsLogIn: true,
		SecureSession: &SecureSession{
			AccessToken: result.AccessToken,
			SessionID:   result.SessionID,
		},
	})
}

func (h *HttpHandler) register(w http.ResponseWriter, r *http.Request) {
	var request RegisterRequest
	if !h.decode(w, r, &request) {
		return
	}

	_, err := h.auth.Register(core.RegisterParams{
		Email:       request.Email,
		Username:    request.Username,
		Kind:        core.AccountKind(request.AccountType),
		Password:    request.Password,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		DisplayName: request.DisplayName,
	})
	if err != nil {
		h.encode(w, http.StatusOK, RegisterResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	if core.AccountKind(request.AccountType) != core.AccountKindEmail {
		h.encode(w, http.StatusOK, RegisterResponse{Succeeded: true})
		return
	}

	result, err := h.auth.LoginPassword(request.Email, request.Password, "", "")
	if err != nil {
		h.encode(w, http.StatusUnauthorized, RegisterResponse{Succeeded: false, IsLogIn: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.setLoginCookies(w, result)
	h.encode(w, http.StatusOK, RegisterResponse{
		Succeeded: true,
		IsLogIn:   true,
		SecureSession: &SecureSession{
			AccessToken: result.AccessToken,
			SessionID:   result.SessionID,
		},
	})
}

func (h *HttpHandler) requestAccountCreation(w http.ResponseWriter, r *http.Request) {
	var request RequestAccountCreationRequest
	if !h.decode(w, r, &request) {
		return
	}

	tokenID, err := h.otp.RequestAccount(r.Context(), request.Email)
	if err != nil {
		if accErr := core.AsAccountError(err); accErr != nil && accErr.IsErrorType(core.ErrKeyEmailAlreadyExists) {
			h.encode(w, http.StatusOK, RequestAccountCreationResponse{Succeeded: false})
			return
		}
		h.logger.Error("failed to issue verification code", zap.Error(err))
		h.encode(w, http.StatusOK, RequestAccountCreationResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, RequestAccountCreationResponse{Succeeded: true, OTPTokenID: tokenID})
}

func (h *HttpHandler) validateUserEmail(w http.ResponseWriter, r *http.Request) {
	var request ValidateEmailRequest
	if !h.decode(w, r, &request) {
		return
	}

	if request.OTPTokenID == "" || request.Code == "" {
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false})
		return
	}

	valid, err := h.otp.Validate(request.OTPTokenID, request.Code)
	if err != nil {
		h.logger.Error("failed to validate verification code", zap.Error(err))
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: valid})
}

func (h *HttpHandler) checkLogin(w http.ResponseWriter, r *http.Request) {
	cfg := h.config.Config().Core
	secret := []byte(cfg.Auth.TokenSecret)

	notLoggedIn := CheckLoginResponse{
		IsLogIn:      false,
		ErrorMessage: "You are not logged in. Please log in to continue.",
	}

	if token := middleware.FindAccessToken(r); token != "" {
		if claims, err := core.JWTVerifyToken(token, cfg.Domain, secret); err == nil {
			h.encode(w, http.StatusOK, CheckLoginResponse{IsLogIn: true, User: claimsToPayload(claims)})
			return
		}
	}

	sessionID := middleware.FindSessionID(r)
	if sessionID == "" {
		h.encode(w, http.StatusOK, notLoggedIn)
		return
	}

	refreshed, err := h.sessions.Refresh(sessionID)
	if err != nil {
		h.logger.Debug("session refresh rejected", zap.Error(err))
		h.encode(w, http.StatusOK, notLoggedIn)
		return
	}

	claims, err := core.JWTVerifyToken(refreshed, cfg.Domain, secret)
	if err != nil {
		h.logger.Error("freshly minted token failed verification", zap.Error(err))
		h.encode(w, http.StatusOK, notLoggedIn)
		return
	}

	core.SetAccessTokenCookie(w, refreshed, cfg.Auth.AccessTokenTTL)
	core.SendAccessToken(w, refreshed)
	h.encode(w, http.StatusOK, CheckLoginResponse{
		IsLogIn:        true,
		IsTokenRefresh: true,
		NewAccessToken: refreshed,
		User:           claimsToPayload(claims),
	})
}

func (h *HttpHandler) refreshToken(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.FindSessionID(r)
	if sessionID == "" {
		h.encode(w, http.StatusOK, RefreshResponse{IsTokenRefresh: false})
		return
	}

	refreshed, err := h.sessions.Refresh(sessionID)
	if err != nil {
		h.logger.Debug("session refresh rejected", zap.Error(err))
		h.encode(w, http.StatusOK, RefreshResponse{IsTokenRefresh: false})
		return
	}

	core.SetAccessTokenCookie(w, refreshed, h.config.Config().Core.Auth.AccessTokenTTL)
	core.SendAccessToken(w, refreshed)
	h.encode(w, http.StatusOK, RefreshResponse{IsTokenRefresh: true, AccessToken: refreshed})
}

func (h *HttpHandler) logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := middleware.FindSessionID(r); sessionID != "" {
		if err := h.sessions.Logout(sessionID); err != nil {
			h.logger.Error("failed to remove session on logout", zap.Error(err))
		}
	}

	core.ClearAuthCookies(w)
	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: true})
}

func (h *HttpHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, SessionsResponse{Succeeded: false})
		return
	}

	sessions, err := h.sessions.ListForUser(claims.UserID)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.Uint("userId", claims.UserID), zap.Error(err))
		h.encode(w, http.StatusOK, SessionsResponse{Succeeded: false})
		return
	}

	h.encode(w, http.StatusOK, SessionsResponse{
		Succeeded: true,
		Sessions: lo.Map(sessions, func(session models.LoginSession, _ int) SessionPayload {
			return SessionPayload{
				ID:        session.SessionID,
				Device:    session.Device,
				Location:  session.Location,
				CreatedAt: session.CreatedAt.UTC().Format(timeLayout),
				ExpiresAt: session.ExpiresAt.UTC().Format(timeLayout),
			}
		}),
	})
}

const timeLayout = "2006-01-02T15:04:05Z"

func (h *HttpHandler) removeSession(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, SucceededResponse{Succeeded: false})
		return
	}

	var request RemoveSessionRequest
	if !h.decode(w, r, &request) {
		return
	}

	session, err := h.sessions.Get(request.ID)
	if err != nil || session.UserID != claims.UserID {
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false})
		return
	}

	if err := h.sessions.Logout(session.SessionID); err != nil {
		h.logger.Error("failed to remove session", zap.Error(err))
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: true})
}

func (h *HttpHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, SucceededResponse{Succeeded: false})
		return
	}

	if err := h.auth.DeleteAccount(claims.UserID); err != nil {
		h.logger.Error("failed to delete account", zap.Uint("userId", claims.UserID), zap.Error(err))
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	core.ClearAuthCookies(w)
	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: true})
}

func (h *HttpHandler) userInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByUserID(userID)
	if err != nil {
		h.encode(w, http.StatusOK, ProfileInfoResponse{Succeeded: false, ErrorMessage: "User not found. Please check the user ID."})
		return
	}

	h.encode(w, http.StatusOK, ProfileInfoResponse{
		Succeeded:   true,
		Username:    profile.Username,
		TimeZone:    profile.TimeZone,
		Email:       profile.Email,
		IsAdmin:     profile.IsAdmin,
		Profile:     profile.ProfileImage,
		Bio:         profile.Bio,
		FullName:    profile.FirstName + " " + profile.LastName,
		DisplayName: profile.DisplayName,
	})
}

func (h *HttpHandler) profileIcon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByUserID(userID)
	if err != nil {
		h.encode(w, http.StatusOK, ProfileImageResponse{Succeeded: false})
		return
	}

	h.encode(w, http.StatusOK, ProfileImageResponse{Succeeded: true, ProfileURL: profile.ProfileImage})
}

func (h *HttpHandler) searchUsers(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	profiles, err := h.profiles.Search(query, 10)
	if err != nil {
		h.logger.Error("profile search failed", zap.Error(err))
		h.encode(w, http.StatusOK, SearchResponse{Succeeded: false})
		return
	}

	h.encode(w, http.StatusOK, SearchResponse{
		Succeeded: true,
		Results: lo.Map(profiles, func(profile models.Profile, _ int) SearchResultPayload {
			return SearchResultPayload{
				UserID:      profile.UserID,
				Username:    profile.Username,
				DisplayName: profile.DisplayName,
				Profile:     profile.ProfileImage,
			}
		}),
	})
}

func (h *HttpHandler) updateUsername(w http.ResponseWriter, r *http.Request) {
	var request UpdateUsernameRequest
	if !h.decode(w, r, &request) {
		return
	}

	if err := h.auth.UpdateUsername(request.Email, request.Username); err != nil {
		h.encode(w, http.StatusOK, UpdateUsernameResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, UpdateUsernameResponse{Succeeded: true, Username: request.Username})
}

func (h *HttpHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, SucceededResponse{Succeeded: false})
		return
	}

	var request UpdateProfileRequest
	if !h.decode(w, r, &request) {
		return
	}

	if _, err := h.profiles.UpdateInfo(claims.UserID, request.FirstName, request.LastName, request.DisplayName, request.Bio); err != nil {
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: true})
}

func (h *HttpHandler) uploadProfileImage(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, ProfileImageResponse{Succeeded: false})
		return
	}

	if err := r.ParseMultipartForm(maxProfileImageSize); err != nil {
		h.encode(w, http.StatusBadRequest, ProfileImageResponse{Succeeded: false, ErrorMessage: "Invalid upload."})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.encode(w, http.StatusBadRequest, ProfileImageResponse{Succeeded: false, ErrorMessage: "Invalid upload."})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	url, err := h.storage.UploadProfileImage(r.Context(), claims.UserID, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("profile image upload failed", zap.Uint("userId", claims.UserID), zap.Error(err))
		h.encode(w, http.StatusOK, ProfileImageResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	if _, err := h.profiles.SetProfileImage(claims.UserID, url); err != nil {
		h.encode(w, http.StatusOK, ProfileImageResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, ProfileImageResponse{Succeeded: true, ProfileURL: url})
}

func (h *HttpHandler) removeProfileImage(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		h.encode(w, http.StatusUnauthorized, SucceededResponse{Succeeded: false})
		return
	}

	profile, err := h.profiles.GetByUserID(claims.UserID)
	if err != nil {
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	if profile.ProfileImage != "" {
		if err := h.storage.DeleteObject(r.Context(), profile.ProfileImage); err != nil {
			h.logger.Warn("failed to delete stored profile image", zap.Uint("userId", claims.UserID), zap.Error(err))
		}
	}

	if _, err := h.profiles.RemoveProfileImage(claims.UserID); err != nil {
		h.encode(w, http.StatusOK, SucceededResponse{Succeeded: false, ErrorMessage: errorMessage(err)})
		return
	}

	h.encode(w, http.StatusOK, SucceededResponse{Succeeded: true})
}

func (h *HttpHandler) generateDisplayName(w http.ResponseWriter, r *http.Request) {
	h.encode(w, http.StatusOK, GenerateDisplayNameResponse{
		Succeeded:   true,
		DisplayName: h.profiles.GenerateRandomDisplayName(),
		Message:     "Random display name generated successfully",
	})
}

func (h *HttpHandler) pathUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		h.encode(w, http.StatusBadRequest, SucceededResponse{Succeeded: false, ErrorMessage: "Invalid user id."})
		return 0, false
	}

	return uint(id), true
}

func claimsToPayload(claims *core.UserClaims) *UserInfoPayload {
	return &UserInfoPayload{
		UserID:      claims.UserID,
		Email:       claims.Email,
		FirstName:   claims.FirstName,
		LastName:    claims.LastName,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
	}
}
