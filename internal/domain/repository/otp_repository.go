package repository

import (
	"context"
	"time"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
)

// OTPRepository almacén efímero de códigos de verificación.
type OTPRepository interface {
	// Get devuelve nil, nil si no hay registro para el email.
	Get(ctx context.Context, email string) (*entity.OTPRecord, error)
	// Save guarda el registro; ttl controla cuánto tiempo se conserva.
	Save(ctx context.Context, rec *entity.OTPRecord, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
	// Lock reserva el email durante ttl para una sola solicitud a la vez.
	// Devuelve false si otra solicitud ya tiene la reserva.
	Lock(ctx context.Context, email string, ttl time.Duration) (bool, error)
	// Unlock libera la reserva tomada con Lock.
	Unlock(ctx context.Context, email string) error
}
