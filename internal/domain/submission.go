package domain

import (
	"context"
	"encoding/json"
	"time"
)

// SubmissionStatus es el estado del ciclo de vida de un envío.
// draft y ready no se persisten: se derivan de la completitud de los
// huéspedes de la reserva. Un envío se crea cuando el primer huésped
// completa sus campos y solo transita pending → submitting → submitted/failed,
// con failed → submitting como reintento explícito.
type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionFailed     SubmissionStatus = "failed"
)

// PortalStatus es el estado de un envío frente a un portal concreto (SIRE o TRA).
type PortalStatus string

const (
	PortalPending   PortalStatus = "pending"
	PortalSubmitted PortalStatus = "submitted"
	PortalFailed    PortalStatus = "failed"
)

// ComplianceSubmission representa un intento de reportar una reserva completa
// (titular + acompañantes) al sistema SIRE, y opcionalmente al TRA.
// Nunca se elimina: si hace falta reenviar, se crea un envío nuevo que
// supersede al anterior.
type ComplianceSubmission struct {
	ID                  string           `json:"id"`
	TenantID            string           `json:"tenantId"`
	ReservationID       string           `json:"reservationId"`
	ConversationalData  json.RawMessage  `json:"conversationalData,omitempty"` // respuestas crudas, preservadas para auditoría
	Status              SubmissionStatus `json:"status"`
	SireStatus          PortalStatus     `json:"sireStatus"`
	SireReferenceNumber *string          `json:"sireReferenceNumber,omitempty"`
	SireError           *string          `json:"sireError,omitempty"`
	SireScreenshotURL   *string          `json:"sireScreenshotUrl,omitempty"`
	TraStatus           *PortalStatus    `json:"traStatus,omitempty"`
	TraReferenceNumber  *string          `json:"traReferenceNumber,omitempty"`
	TraError            *string          `json:"traError,omitempty"`
	SubmittedAt         *time.Time       `json:"submittedAt,omitempty"` // se escribe una sola vez
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// SubmissionPatch representa una corrección administrativa manual sobre un
// envío. Cualquier subconjunto de campos puede venir; los punteros nil no se
// tocan. La corrección manual no se valida contra el grafo de transiciones.
type SubmissionPatch struct {
	SireStatus          *PortalStatus `json:"sire_status,omitempty"`
	SireReferenceNumber *string       `json:"sire_reference_number,omitempty"`
	SireError           *string       `json:"sire_error,omitempty"`
	TraStatus           *PortalStatus `json:"tra_status,omitempty"`
	TraReferenceNumber  *string       `json:"tra_reference_number,omitempty"`
	TraError            *string       `json:"tra_error,omitempty"`
}

// IsEmpty indica si el patch no contiene ningún campo.
func (p SubmissionPatch) IsEmpty() bool {
	return p.SireStatus == nil && p.SireReferenceNumber == nil && p.SireError == nil &&
		p.TraStatus == nil && p.TraReferenceNumber == nil && p.TraError == nil
}

// SubmissionRepository define las operaciones de persistencia de envíos.
type SubmissionRepository interface {
	// GetByID obtiene un envío por su ID. Devuelve nil sin error si no existe.
	GetByID(id string) (*ComplianceSubmission, error)
	// GetActiveByReservation obtiene el envío no superseded de una reserva
	// (el más reciente). Devuelve nil sin error si no hay ninguno.
	GetActiveByReservation(reservationID string) (*ComplianceSubmission, error)
	// Create inserta un envío nuevo
	Create(submission *ComplianceSubmission) error
	// Update actualiza el envío completo bajo disciplina de fila única
	Update(submission *ComplianceSubmission) error
	// MarkStaleSubmitting marca como fallidos los envíos atascados en
	// submitting por más tiempo del límite. Devuelve cuántos marcó.
	MarkStaleSubmitting(olderThan time.Duration, reason string) (int, error)
}

// PortalResult es el resultado de un envío exitoso al portal externo.
type PortalResult struct {
	ReferenceNumber string
	Screenshot      []byte // evidencia PNG, opcional
}

// PortalAdapter abstrae la automatización del navegador que ejecuta el envío
// real contra el portal gubernamental. La implementación vive fuera de este
// servicio; en pruebas se sustituye por un adaptador falso.
type PortalAdapter interface {
	Submit(ctx context.Context, records []SireFieldSet) (*PortalResult, error)
}

// EvidenceStore abstrae el almacenamiento de las capturas de pantalla que el
// portal devuelve como evidencia del envío.
type EvidenceStore interface {
	UploadScreenshot(ctx context.Context, submissionID string, data []byte) (string, error)
}
