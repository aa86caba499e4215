package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

const submissionColumns = `
	id,
	tenant_id,
	reservation_id,
	conversational_data,
	status,
	sire_status,
	sire_reference_number,
	sire_error,
	sire_screenshot_url,
	tra_status,
	tra_reference_number,
	tra_error,
	submitted_at,
	created_at,
	updated_at
`

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository crea una nueva instancia del repositorio de envíos
func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

// GetByID obtiene un envío por su ID. Devuelve nil sin error si no existe.
func (r *submissionRepository) GetByID(id string) (*domain.ComplianceSubmission, error) {
	query := `SELECT ` + submissionColumns + `
		FROM compliance_submissions
		WHERE id = $1
	`

	submission, err := scanSubmission(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener envío: %w", err)
	}

	return submission, nil
}

// GetActiveByReservation obtiene el envío más reciente de una reserva: los
// envíos nunca se borran, el más reciente supersede a los anteriores.
func (r *submissionRepository) GetActiveByReservation(reservationID string) (*domain.ComplianceSubmission, error) {
	query := `SELECT ` + submissionColumns + `
		FROM compliance_submissions
		WHERE reservation_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	submission, err := scanSubmission(r.db.QueryRow(query, reservationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al buscar envío activo: %w", err)
	}

	return submission, nil
}

// Create inserta un envío nuevo
func (r *submissionRepository) Create(submission *domain.ComplianceSubmission) error {
	query := `
		INSERT INTO compliance_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(
		query,
		submission.ID,
		submission.TenantID,
		submission.ReservationID,
		[]byte(submission.ConversationalData),
		string(submission.Status),
		string(submission.SireStatus),
		submission.SireReferenceNumber,
		submission.SireError,
		submission.SireScreenshotURL,
		portalStatusToNull(submission.TraStatus),
		submission.TraReferenceNumber,
		submission.TraError,
		submission.SubmittedAt,
		submission.CreatedAt,
		submission.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("error al crear envío: %w", err)
	}

	return nil
}

// Update actualiza el envío completo bajo disciplina de fila única
func (r *submissionRepository) Update(submission *domain.ComplianceSubmission) error {
	query := `
		UPDATE compliance_submissions
		SET
			conversational_data = $1,
			status = $2,
			sire_status = $3,
			sire_reference_number = $4,
			sire_error = $5,
			sire_screenshot_url = $6,
			tra_status = $7,
			tra_reference_number = $8,
			tra_error = $9,
			submitted_at = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.db.Exec(
		query,
		[]byte(submission.ConversationalData),
		string(submission.Status),
		string(submission.SireStatus),
		submission.SireReferenceNumber,
		submission.SireError,
		submission.SireScreenshotURL,
		portalStatusToNull(submission.TraStatus),
		submission.TraReferenceNumber,
		submission.TraError,
		submission.SubmittedAt,
		submission.ID,
	)

	if err != nil {
		return fmt.Errorf("error al actualizar envío: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar actualización: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("envío con ID %s no encontrado", submission.ID)
	}

	submission.UpdatedAt = time.Now()
	return nil
}

// MarkStaleSubmitting marca como fallidos los envíos atascados en submitting
// por más tiempo del límite. Lo usa el watchdog periódico.
func (r *submissionRepository) MarkStaleSubmitting(olderThan time.Duration, reason string) (int, error) {
	query := `
		UPDATE compliance_submissions
		SET
			status = 'failed',
			sire_status = 'failed',
			sire_error = $1,
			updated_at = NOW()
		WHERE status = 'submitting'
		  AND updated_at < NOW() - ($2 * INTERVAL '1 second')
	`

	result, err := r.db.Exec(query, reason, int(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("error al marcar envíos atascados: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error al verificar envíos atascados: %w", err)
	}

	return int(rowsAffected), nil
}

func portalStatusToNull(status *domain.PortalStatus) sql.NullString {
	if status == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*status), Valid: true}
}

func scanSubmission(row rowScanner) (*domain.ComplianceSubmission, error) {
	var submission domain.ComplianceSubmission
	var conversationalData []byte
	var status, sireStatus string
	var sireReference, sireError, sireScreenshot sql.NullString
	var traStatus, traReference, traError sql.NullString
	var submittedAt sql.NullTime

	err := row.Scan(
		&submission.ID,
		&submission.TenantID,
		&submission.ReservationID,
		&conversationalData,
		&status,
		&sireStatus,
		&sireReference,
		&sireError,
		&sireScreenshot,
		&traStatus,
		&traReference,
		&traError,
		&submittedAt,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	submission.ConversationalData = conversationalData
	submission.Status = domain.SubmissionStatus(status)
	submission.SireStatus = domain.PortalStatus(sireStatus)

	if sireReference.Valid {
		submission.SireReferenceNumber = &sireReference.String
	}
	if sireError.Valid {
		submission.SireError = &sireError.String
	}
	if sireScreenshot.Valid {
		submission.SireScreenshotURL = &sireScreenshot.String
	}
	if traStatus.Valid {
		ts := domain.PortalStatus(traStatus.String)
		submission.TraStatus = &ts
	}
	if traReference.Valid {
		submission.TraReferenceNumber = &traReference.String
	}
	if traError.Valid {
		submission.TraError = &traError.String
	}
	if submittedAt.Valid {
		submission.SubmittedAt = &submittedAt.Time
	}

	return &submission, nil
}
