package httpapi

import "time"

type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address1    string `json:"address_1,omitempty"`
	Address2    string `json:"address_2,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	County      string `json:"county,omitempty"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	AccountID int64 `json:"account_id"`
}

type PasswordLoginRequest struct {
	AccountID int64  `json:"account_id"`
	Password  string `json:"password"`
}

type OtacLoginRequest struct {
	Code string `json:"code"`
}

// LoginResponse reports the level reached by a login step. AccessToken is
// only populated once the session is fully authenticated.
type LoginResponse struct {
	Level       string    `json:"level"`
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
}

type SessionResponse struct {
	Level     string `json:"level"`
	AccountID int64  `json:"account_id,omitempty"`
}

type AccountResponse struct {
	AccountID int64 `json:"account_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
