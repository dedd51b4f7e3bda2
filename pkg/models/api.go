package models

// Generation API types
type GenerateAPIRequest struct {
	FieldNames []string `json:"fieldNames"`
	FieldTypes []string `json:"fieldTypes"`
}

type GenerateAPIResponse struct {
	Message string            `json:"message"`
	APIURL  string            `json:"apiURL"`
	Headers map[string]string `json:"headers"`
}

// Dynamic CRUD API types
type RecordResponse struct {
	Message string `json:"message"`
	Data    Record `json:"data"`
}

type RecordListResponse struct {
	Message string     `json:"message"`
	Data    RecordList `json:"data"`
}

// Platform user API types
type PlatformSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PlatformSignupResponse struct {
	Message  string `json:"message"`
	APIToken string `json:"apiToken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PlatformLoginResponse struct {
	Message  string           `json:"message"`
	Token    string           `json:"token"`
	UserData *PlatformAccount `json:"userData"`
}

// OTP API types
type SendOtpRequest struct {
	Email string `json:"email"`
}

// Otp is untyped because clients send the code both as a JSON number
// and as a string.
type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   any    `json:"otp"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response: a single error string, no structured codes.
type ErrorResponse struct {
	Error string `json:"error"`
}
