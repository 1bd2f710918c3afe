package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrProfileIncomplete  = errors.New("perfil financiero incompleto")
	ErrBudgetNotFound     = errors.New("no hay presupuesto para el mes indicado")
	ErrUnknownCategory    = errors.New("categoría desconocida")

	// OTP
	ErrOTPCooldown        = errors.New("espera antes de solicitar otro código")
	ErrOTPRateLimited     = errors.New("demasiados códigos solicitados, intenta más tarde")
	ErrOTPExpired         = errors.New("el código expiró o no existe")
	ErrOTPInvalid         = errors.New("código incorrecto")
	ErrOTPTooManyAttempts = errors.New("demasiados intentos fallidos")
)
