// Package otp implementa la verificación de email con códigos de un solo uso.
//
// Las reglas son ventanas de tiempo sobre los envíos guardados en el registro:
// espera mínima entre envíos, máximo de envíos por hora deslizante, vigencia del
// código y máximo de intentos fallidos.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/ports"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
	"github.com/jhoicas/finanzas-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const rateWindow = time.Hour

// lockTTL vida máxima de la reserva por email mientras se emite un código.
const lockTTL = 15 * time.Second

// Config ventanas del servicio.
type Config struct {
	TTL         time.Duration
	Cooldown    time.Duration
	MaxPerHour  int
	MaxAttempts int
}

// UseCase emite y verifica códigos OTP.
type UseCase struct {
	store  repository.OTPRepository
	users  repository.UserRepository
	sender ports.OTPSender
	cfg    Config
	log    *logger.Logger

	now     func() time.Time
	newCode func() (string, error)
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	store repository.OTPRepository,
	users repository.UserRepository,
	sender ports.OTPSender,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		store:   store,
		users:   users,
		sender:  sender,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		newCode: randomCode,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// WithCodeGenerator reemplaza el generador de códigos (tests).
func (uc *UseCase) WithCodeGenerator(gen func() (string, error)) *UseCase {
	uc.newCode = gen
	return uc
}

// Request emite un código nuevo para el email. Si el email no está registrado
// responde igual que en el caso exitoso sin enviar nada.
func (uc *UseCase) Request(ctx context.Context, in dto.OTPRequest) (*dto.OTPRequestResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	out := &dto.OTPRequestResponse{
		ExpiresInSeconds: int(uc.cfg.TTL.Seconds()),
		ResendInSeconds:  int(uc.cfg.Cooldown.Seconds()),
	}

	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Debug().Str("email", email).Msg("otp: email no registrado, se omite el envío")
		return out, nil
	}

	// Lectura, chequeo de ventanas y escritura ocurren con el email reservado.
	locked, err := uc.store.Lock(ctx, email, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("otp: reservar email: %w", err)
	}
	if !locked {
		return nil, domain.ErrOTPCooldown
	}
	defer func() {
		if err := uc.store.Unlock(context.WithoutCancel(ctx), email); err != nil {
			uc.log.Warn().Err(err).Msg("otp: liberar reserva")
		}
	}()

	now := uc.now()
	rec, err := uc.store.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("otp: leer registro: %w", err)
	}
	if rec == nil {
		rec = &entity.OTPRecord{Email: email}
	}
	rec.SentAt = pruneBefore(rec.SentAt, now.Add(-rateWindow))

	if last := rec.LastSentAt(); !last.IsZero() && now.Sub(last) < uc.cfg.Cooldown {
		return nil, domain.ErrOTPCooldown
	}
	if uc.cfg.MaxPerHour > 0 && len(rec.SentAt) >= uc.cfg.MaxPerHour {
		return nil, domain.ErrOTPRateLimited
	}

	code, err := uc.newCode()
	if err != nil {
		return nil, fmt.Errorf("otp: generar código: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("otp: hash: %w", err)
	}
	rec.CodeHash = string(hash)
	rec.ExpiresAt = now.Add(uc.cfg.TTL)
	rec.Attempts = 0
	rec.SentAt = append(rec.SentAt, now)

	if err := uc.store.Save(ctx, rec, uc.retention()); err != nil {
		return nil, fmt.Errorf("otp: guardar registro: %w", err)
	}
	if err := uc.sender.SendOTP(ctx, email, code); err != nil {
		return nil, fmt.Errorf("otp: enviar código: %w", err)
	}
	uc.log.Info().Str("email", email).Int("sends_last_hour", len(rec.SentAt)).Msg("otp: código emitido")
	return out, nil
}

// Verify comprueba el código y marca el email del usuario como verificado.
func (uc *UseCase) Verify(ctx context.Context, in dto.OTPVerifyRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	rec, err := uc.store.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("otp: leer registro: %w", err)
	}
	now := uc.now()
	if rec == nil || rec.CodeHash == "" || !now.Before(rec.ExpiresAt) {
		return domain.ErrOTPExpired
	}
	if uc.cfg.MaxAttempts > 0 && rec.Attempts >= uc.cfg.MaxAttempts {
		return domain.ErrOTPTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(strings.TrimSpace(in.Code))) != nil {
		rec.Attempts++
		if err := uc.store.Save(ctx, rec, uc.retention()); err != nil {
			return fmt.Errorf("otp: guardar intento: %w", err)
		}
		if uc.cfg.MaxAttempts > 0 && rec.Attempts >= uc.cfg.MaxAttempts {
			return domain.ErrOTPTooManyAttempts
		}
		return domain.ErrOTPInvalid
	}

	if err := uc.store.Delete(ctx, email); err != nil {
		return fmt.Errorf("otp: eliminar registro: %w", err)
	}

	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.EmailVerified {
		user.EmailVerified = true
		user.UpdatedAt = now
		if err := uc.users.Update(user); err != nil {
			return err
		}
	}
	return nil
}

// retention tiempo que se conserva el registro: cubre la vigencia del código y la ventana de envíos.
func (uc *UseCase) retention() time.Duration {
	if uc.cfg.TTL > rateWindow {
		return uc.cfg.TTL
	}
	return rateWindow
}

func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	out := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
