package core

import (
	"fmt"
	"net/http"
)

type AccountErrorType string

const (
	// Account creation errors
	ErrKeyAccountCreationFailed AccountErrorType = "ErrAccountCreationFailed"
	ErrKeyEmailAlreadyExists    AccountErrorType = "ErrEmailAlreadyExists"
	ErrKeyUsernameAlreadyExists AccountErrorType = "ErrUsernameAlreadyExists"
	ErrKeyEmailInvalid          AccountErrorType = "ErrEmailInvalid"
	ErrKeyMissingRequiredField  AccountErrorType = "ErrMissingRequiredField"
	ErrKeyUpdatingSameEmail     AccountErrorType = "ErrUpdatingSameEmail"

	// Account lookup and existence verification errors
	ErrKeyUserNotFound    AccountErrorType = "ErrUserNotFound"
	ErrKeyProfileNotFound AccountErrorType = "ErrProfileNotFound"

	// Authentication and login errors
	ErrKeyInvalidLogin        AccountErrorType = "ErrInvalidLogin"
	ErrKeyInvalidPassword     AccountErrorType = "ErrInvalidPassword"
	ErrKeyAccountKindMismatch AccountErrorType = "ErrAccountKindMismatch"
	ErrKeyHashingFailed       AccountErrorType = "ErrHashingFailed"

	// Session errors
	ErrKeySessionNotFound       AccountErrorType = "ErrSessionNotFound"
	ErrKeySessionExpired        AccountErrorType = "ErrSessionExpired"
	ErrKeySessionCreationFailed AccountErrorType = "ErrSessionCreationFailed"

	// OTP errors
	ErrKeyOTPGenerationFailed AccountErrorType = "ErrOTPGenerationFailed"
	ErrKeyOTPSendFailed       AccountErrorType = "ErrOTPSendFailed"

	// External identity provider errors
	ErrKeyOAuthVerificationFailed AccountErrorType = "ErrOAuthVerificationFailed"

	// Account update errors
	ErrKeyAccountUpdateFailed AccountErrorType = "ErrAccountUpdateFailed"

	// JWT generation errors
	ErrKeyJWTGenerationFailed AccountErrorType = "ErrJWTGenerationFailed"

	// Storage errors
	ErrKeyStorageOperationFailed AccountErrorType = "ErrStorageOperationFailed"

	// General errors
	ErrKeyDatabaseOperationFailed AccountErrorType = "ErrDatabaseOperationFailed"
)

var defaultErrorMessages = map[AccountErrorType]string{
	// Account creation errors
	ErrKeyAccountCreationFailed: "Account creation failed due to an internal error.",
	ErrKeyEmailAlreadyExists:    "This email is already registered. Please use a different email or try logging in.",
	ErrKeyUsernameAlreadyExists: "This username is already taken. Please choose a different username.",
	ErrKeyEmailInvalid:          "The email address provided is not valid.",
	ErrKeyMissingRequiredField:  "Please provide all required information (email, username, and account type).",
	ErrKeyUpdatingSameEmail:     "The email address provided is the same as your current one.",

	// Account lookup and existence verification errors
	ErrKeyUserNotFound:    "The requested user was not found.",
	ErrKeyProfileNotFound: "User profile not found. Please check the user ID.",

	// Authentication and login errors
	ErrKeyInvalidLogin:        "The login credentials provided are invalid.",
	ErrKeyInvalidPassword:     "The login credentials provided are invalid.",
	ErrKeyAccountKindMismatch: "This email is registered with a different account type. Please use the correct login method.",
	ErrKeyHashingFailed:       "Failed to secure the password, please try again later.",

	// Session errors
	ErrKeySessionNotFound:       "You are not logged in. Please log in to continue.",
	ErrKeySessionExpired:        "You are not logged in. Please log in to continue.",
	ErrKeySessionCreationFailed: "Failed to create a login session.",

	// OTP errors
	ErrKeyOTPGenerationFailed: "Failed to generate a verification code.",
	ErrKeyOTPSendFailed:       "Failed to send the verification code.",

	// External identity provider errors
	ErrKeyOAuthVerificationFailed: "Failed to verify the provided Google token.",

	// Account update errors
	ErrKeyAccountUpdateFailed: "Failed to update account information.",

	// JWT generation errors
	ErrKeyJWTGenerationFailed: "Failed to generate a new access token.",

	// Storage errors
	ErrKeyStorageOperationFailed: "A storage operation failed.",

	// General errors
	ErrKeyDatabaseOperationFailed: "A database operation failed.",
}

var ErrorCodeToHttpStatus = map[AccountErrorType]int{
	ErrKeyAccountCreationFailed: http.StatusInternalServerError,
	ErrKeyEmailAlreadyExists:    http.StatusConflict,
	ErrKeyUsernameAlreadyExists: http.StatusConflict,
	ErrKeyEmailInvalid:          http.StatusBadRequest,
	ErrKeyMissingRequiredField:  http.StatusBadRequest,
	ErrKeyUpdatingSameEmail:     http.StatusConflict,

	ErrKeyUserNotFound:    http.StatusNotFound,
	ErrKeyProfileNotFound: http.StatusNotFound,

	ErrKeyInvalidLogin:        http.StatusUnauthorized,
	ErrKeyInvalidPassword:     http.StatusUnauthorized,
	ErrKeyAccountKindMismatch: http.StatusUnauthorized,
	ErrKeyHashingFailed:       http.StatusInternalServerError,

	ErrKeySessionNotFound:       http.StatusUnauthorized,
	ErrKeySessionExpired:        http.StatusUnauthorized,
	ErrKeySessionCreationFailed: http.StatusInternalServerError,

	ErrKeyOTPGenerationFailed: http.StatusInternalServerError,
	ErrKeyOTPSendFailed:       http.StatusInternalServerError,

	ErrKeyOAuthVerificationFailed: http.StatusUnauthorized,

	ErrKeyAccountUpdateFailed: http.StatusInternalServerError,
	ErrKeyJWTGenerationFailed: http.StatusInternalServerError,

	ErrKeyStorageOperationFailed: http.StatusInternalServerError,

	ErrKeyDatabaseOperationFailed: http.StatusInternalServerError,
}

type AccountError struct {
	Key     AccountErrorType // A unique identifier for the error type
	Message string           // Human-readable error message
	Err     error            // Underlying error, if any
}

func (e *AccountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func (e *AccountError) IsErrorType(key AccountErrorType) bool {
	return e.Key == key
}

func (e *AccountError) HttpStatus() int {
	if status, exists := ErrorCodeToHttpStatus[e.Key]; exists {
		return status
	}
	return http.StatusInternalServerError
}

func NewAccountError(key AccountErrorType, err error, customMessage ...string) *AccountError {
	message, exists := defaultErrorMessages[key]
	if !exists {
		message = "An unknown error occurred"
	}
	if len(customMessage) > 0 {
		message = customMessage[0]
	}
	return &AccountError{
		Key:     key,
		Message: message,
		Err:     err,
	}
}

func IsAccountError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(*AccountError); ok {
		return true
	}

	return false
}

func AsAccountError(err error) *AccountError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*AccountError); ok {
		return e
	}
	return nil
}
