package entity

import "time"

// OTPRecord estado del código de verificación vigente para un email.
// SentAt guarda los envíos de la última hora para la ventana deslizante.
type OTPRecord struct {
	Email     string      `json:"email"`
	CodeHash  string      `json:"code_hash"`
	ExpiresAt time.Time   `json:"expires_at"`
	Attempts  int         `json:"attempts"`
	SentAt    []time.Time `json:"sent_at"`
}

// LastSentAt último envío registrado (zero si no hay).
func (r *OTPRecord) LastSentAt() time.Time {
	if len(r.SentAt) == 0 {
		return time.Time{}
	}
	return r.SentAt[len(r.SentAt)-1]
}
