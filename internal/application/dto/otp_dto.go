package dto

// OTPRequest solicitud de código de verificación.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPVerifyRequest verificación del código recibido.
type OTPVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// OTPRequestResponse tiempos de vida del código emitido.
type OTPRequestResponse struct {
	ExpiresInSeconds int `json:"expires_in_seconds"`
	ResendInSeconds  int `json:"resend_in_seconds"`
}
