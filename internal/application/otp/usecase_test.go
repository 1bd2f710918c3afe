package otp_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/otp"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/testutil/memstore"
	"github.com/jhoicas/finanzas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testEmail = "ana@example.com"

type sentCode struct {
	email, code string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentCode
}

func (s *recordingSender) SendOTP(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentCode{email: email, code: code})
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	uc     *otp.UseCase
	store  *memstore.Store
	sender *recordingSender
	clock  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Create(&entity.User{
		ID:     "u-1",
		Email:  testEmail,
		Role:   entity.RoleUser,
		Status: entity.UserStatusActive,
	}))
	sender := &recordingSender{}
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	uc := otp.NewUseCase(store.OTPs, store, sender, otp.Config{
		TTL:         10 * time.Minute,
		Cooldown:    60 * time.Second,
		MaxPerHour:  5,
		MaxAttempts: 5,
	}, logger.Nop()).
		WithClock(clock.Now).
		WithCodeGenerator(func() (string, error) { return "123456", nil })
	return &fixture{uc: uc, store: store, sender: sender, clock: clock}
}

// ──────────────────────────────────────────────────────────────────────────────
// Request
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_EmiteCodigoYGuardaRegistro(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Request(context.Background(), dto.OTPRequest{Email: "  ANA@example.com "})
	require.NoError(t, err)
	assert.Equal(t, 600, out.ExpiresInSeconds)
	assert.Equal(t, 60, out.ResendInSeconds)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, testEmail, f.sender.sent[0].email)
	assert.Equal(t, "123456", f.sender.sent[0].code)

	rec, err := f.store.OTPs.Get(context.Background(), testEmail)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEqual(t, "123456", rec.CodeHash, "el código no se guarda en claro")
	assert.Len(t, rec.SentAt, 1)
	assert.Equal(t, time.Hour, f.store.OTPs.LastTTL)
}

func TestRequest_EmailNoRegistradoNoEnvia(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Request(context.Background(), dto.OTPRequest{Email: "nadie@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, f.sender.sent)
}

func TestRequest_EmailVacioEsInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Request(context.Background(), dto.OTPRequest{Email: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequest_RespetaEsperaEntreEnvios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	assert.ErrorIs(t, err, domain.ErrOTPCooldown)

	f.clock.Advance(31 * time.Second)
	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	assert.NoError(t, err)
	assert.Len(t, f.sender.sent, 2)
}

func TestRequest_LimiteDeEnviosPorHora(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
		require.NoError(t, err, "envío %d", i+1)
		f.clock.Advance(2 * time.Minute)
	}

	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	assert.ErrorIs(t, err, domain.ErrOTPRateLimited)

	// El primer envío sale de la ventana deslizante.
	f.clock.Advance(51 * time.Minute)
	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_CodeCorrectoMarcaEmailVerificado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "123456"})
	require.NoError(t, err)

	u, err := f.store.GetByEmail(testEmail)
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)

	rec, err := f.store.OTPs.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Nil(t, rec, "el registro se elimina tras verificar")

	// Un segundo uso del mismo código ya no es válido.
	err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestVerify_CodigoExpirado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	f.clock.Advance(10 * time.Minute)
	err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestVerify_SinCodigoSolicitado(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Verify(context.Background(), dto.OTPVerifyRequest{Email: testEmail, Code: "000000"})
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestVerify_IntentosFallidosBloquean(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "999999"})
		assert.ErrorIs(t, err, domain.ErrOTPInvalid, "intento %d", i+1)
	}
	err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "999999"})
	assert.ErrorIs(t, err, domain.ErrOTPTooManyAttempts)

	// Ni siquiera el código correcto pasa una vez agotados los intentos.
	err = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrOTPTooManyAttempts)

	u, err := f.store.GetByEmail(testEmail)
	require.NoError(t, err)
	assert.False(t, u.EmailVerified)
}

func TestVerify_NuevoCodigoReiniciaIntentos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_ = f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "999999"})
	}

	f.clock.Advance(2 * time.Minute)
	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	assert.NoError(t, f.uc.Verify(ctx, dto.OTPVerifyRequest{Email: testEmail, Code: "123456"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes concurrentes
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_ConcurrentesEmitenUnSoloCodigo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrOTPCooldown)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, f.sender.sent, 1)

	rec, err := f.store.OTPs.Get(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.SentAt, 1)
}

func TestRequest_EmailReservadoDevuelveEspera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	locked, err := f.store.OTPs.Lock(ctx, testEmail, time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	assert.ErrorIs(t, err, domain.ErrOTPCooldown)
	assert.Empty(t, f.sender.sent)

	require.NoError(t, f.store.OTPs.Unlock(ctx, testEmail))
	_, err = f.uc.Request(ctx, dto.OTPRequest{Email: testEmail})
	require.NoError(t, err)

	// La reserva se libera al terminar la solicitud.
	locked, err = f.store.OTPs.Lock(ctx, testEmail, time.Minute)
	require.NoError(t, err)
	assert.True(t, locked)
}
