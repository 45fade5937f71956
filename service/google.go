package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var _ core.GoogleVerifier = (*GoogleVerifierDefault)(nil)

type GoogleVerifierDefault struct {
	config config.Manager
	logger *core.Logger
}

func NewGoogleVerifier(cm config.Manager, logger *core.Logger) *GoogleVerifierDefault {
	return &GoogleVerifierDefault{
		config: cm,
		logger: logger.Named("google"),
	}
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Verify exchanges the caller-supplied Google access token for the
// account's userinfo record. A token Google will not honor fails closed.
func (g *GoogleVerifierDefault) Verify(ctx context.Context, accessToken string) (*core.GoogleProfile, error) {
	timeout := g.config.Config().Core.OAuth.Google.Timeout

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := oauth2.NewClient(reqCtx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, core.NewAccountError(core.ErrKeyOAuthVerificationFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, core.NewAccountError(core.ErrKeyOAuthVerificationFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewAccountError(core.ErrKeyOAuthVerificationFailed, fmt.Errorf("userinfo request returned status %d", resp.StatusCode))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, core.NewAccountError(core.ErrKeyOAuthVerificationFailed, err)
	}

	if info.Email == "" {
		return nil, core.NewAccountError(core.ErrKeyOAuthVerificationFailed, fmt.Errorf("userinfo response has no email"))
	}

	return &core.GoogleProfile{
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Picture:   info.Picture,
		SubjectID: info.ID,
	}, nil
}
