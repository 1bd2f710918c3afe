package ports

import "context"

// OTPSender entrega el código de verificación al usuario (email, SMS…).
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string) error
}
