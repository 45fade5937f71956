package account

type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
	AccessToken string `json:"accessToken"`
	Device      string `json:"device"`
	Location    string `json:"location"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	AccountType string `json:"accountType"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}

type SecureSession struct {
	AccessToken string `json:"accessToken"`
	SessionID   string `json:"sessionId"`
}

type LoginResponse struct {
	IsLogIn       bool           `json:"isLogIn"`
	ErrorMessage  string         `json:"errorMessage,omitempty"`
	SecureSession *SecureSession `json:"secureSession,omitempty"`
}

type RegisterResponse struct {
	Succeeded     bool           `json:"succeeded"`
	ErrorMessage  string         `json:"errorMessage,omitempty"`
	IsLogIn       bool           `json:"isLogIn"`
	SecureSession *SecureSession `json:"secureSession,omitempty"`
}

type RequestAccountCreationRequest struct {
	Email string `json:"email"`
}

type RequestAccountCreationResponse struct {
	Succeeded    bool   `json:"succeeded"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	OTPTokenID   string `json:"otpTokenId,omitempty"`
}

type ValidateEmailRequest struct {
	OTPTokenID string `json:"otpTokenId"`
	Code       string `json:"code"`
}

type SucceededResponse struct {
	Succeeded    bool   `json:"succeeded"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type CheckLoginResponse struct {
	IsLogIn        bool             `json:"isLogin"`
	IsTokenRefresh bool             `json:"isTokenRefresh,omitempty"`
	NewAccessToken string           `json:"newAccessToken,omitempty"`
	ErrorMessage   string           `json:"errorMessage,omitempty"`
	User           *UserInfoPayload `json:"user,omitempty"`
}

type RefreshResponse struct {
	IsTokenRefresh bool   `json:"isTokenRefresh"`
	AccessToken    string `json:"accessToken,omitempty"`
}

type UserInfoPayload struct {
	UserID      uint   `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type SessionPayload struct {
	ID        string `json:"id"`
	Device    string `json:"device"`
	Location  string `json:"location"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt"`
}

type SessionsResponse struct {
	Succeeded bool             `json:"succeeded"`
	Sessions  []SessionPayload `json:"sessions"`
}

type RemoveSessionRequest struct {
	ID string `json:"id"`
}

type UpdateUsernameRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type UpdateUsernameResponse struct {
	Succeeded    bool   `json:"succeeded"`
	Username     string `json:"username,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type ProfileInfoResponse struct {
	Succeeded    bool   `json:"succeeded"`
	Username     string `json:"username,omitempty"`
	TimeZone     string `json:"timeZone,omitempty"`
	Email        string `json:"email,omitempty"`
	IsAdmin      bool   `json:"isAdmin,omitempty"`
	Profile      string `json:"profile,omitempty"`
	Bio          string `json:"bio,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

type SearchResultPayload struct {
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Profile     string `json:"profile,omitempty"`
}

type SearchResponse struct {
	Succeeded bool                  `json:"succeeded"`
	Results   []SearchResultPayload `json:"results"`
}

type ProfileImageResponse struct {
	Succeeded    bool   `json:"succeeded"`
	ProfileURL   string `json:"profileUrl,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type GenerateDisplayNameResponse struct {
	Succeeded   bool   `json:"succeeded"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message,omitempty"`
}
