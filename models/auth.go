// ABOUTME: Auth request/response models for the CareTrack login flow
// ABOUTME: Defines the login and token-verification API contracts

package models

// LoginRequest represents credentials for authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload returned inside the envelope on login success
type LoginResult struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// VerifyResult is the payload returned by token verification
type VerifyResult struct {
	User UserRecord `json:"user"`
}

// CSRFTokenResult is the payload returned by the anti-forgery token endpoint
type CSRFTokenResult struct {
	CSRFToken string `json:"csrfToken"`
}
