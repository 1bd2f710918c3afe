// Package notify contiene los adaptadores de entrega de códigos OTP.
package notify

import (
	"context"
	"strings"

	"github.com/jhoicas/finanzas-api/internal/application/ports"
	"github.com/jhoicas/finanzas-api/pkg/logger"
)

var _ ports.OTPSender = (*LogSender)(nil)

// LogSender "entrega" el OTP escribiéndolo en el log. Sirve mientras no haya un
// proveedor de email configurado.
type LogSender struct {
	log        *logger.Logger
	revealCode bool
}

// NewLogSender crea el sender. Con revealCode=false el código no se escribe (producción).
func NewLogSender(log *logger.Logger, revealCode bool) *LogSender {
	return &LogSender{log: log.Component("otp_sender"), revealCode: revealCode}
}

// SendOTP registra el envío; el email siempre va enmascarado.
func (s *LogSender) SendOTP(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := s.log.Info().Str("email", MaskEmail(email))
	if s.revealCode {
		ev = ev.Str("code", code)
	}
	ev.Msg("código OTP emitido")
	return nil
}

// MaskEmail deja visible la primera letra del usuario y el dominio: j***@mail.com.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
