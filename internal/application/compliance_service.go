package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
	"github.com/toneill57/muva-chat-sub004/internal/email"
)

// ComplianceService es la máquina de estados de los envíos SIRE/TRA.
// Los estados draft y ready no se persisten: una reserva con huéspedes
// incompletos está en draft, y pasa a ready automáticamente cuando todos
// completan sus 13 campos. El envío persistido transita
// pending → submitting → submitted/failed, con failed → submitting como
// reintento explícito e ilimitado.
type ComplianceService struct {
	submissionRepo domain.SubmissionRepository
	titularRepo    domain.GuestReservationRepository
	companionRepo  domain.CompanionRepository
	mapper         *FieldMapper
	tracker        *ProgressTracker
	sirePortal     domain.PortalAdapter
	traPortal      domain.PortalAdapter // nil si no hay runner para el TRA
	evidence       domain.EvidenceStore // nil deshabilita la evidencia
	emailClient    *email.Client        // nil deshabilita las notificaciones
	params         *TenantParams
	tenantID       string
	portalTimeout  time.Duration

	// Garantiza a lo sumo un envío en vuelo por reserva en este proceso;
	// la restricción única de la tabla cubre el caso multi-proceso.
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewComplianceService crea una nueva instancia del servicio de cumplimiento
func NewComplianceService(
	submissionRepo domain.SubmissionRepository,
	titularRepo domain.GuestReservationRepository,
	companionRepo domain.CompanionRepository,
	mapper *FieldMapper,
	tracker *ProgressTracker,
	sirePortal domain.PortalAdapter,
	traPortal domain.PortalAdapter,
	evidence domain.EvidenceStore,
	emailClient *email.Client,
	params *TenantParams,
	tenantID string,
	portalTimeout time.Duration,
) *ComplianceService {
	if portalTimeout <= 0 {
		portalTimeout = 2 * time.Minute
	}
	return &ComplianceService{
		submissionRepo: submissionRepo,
		titularRepo:    titularRepo,
		companionRepo:  companionRepo,
		mapper:         mapper,
		tracker:        tracker,
		sirePortal:     sirePortal,
		traPortal:      traPortal,
		evidence:       evidence,
		emailClient:    emailClient,
		params:         params,
		tenantID:       tenantID,
		portalTimeout:  portalTimeout,
		inFlight:       make(map[string]bool),
	}
}

// GetSubmission obtiene el registro completo de un envío
func (s *ComplianceService) GetSubmission(id string) (*domain.ComplianceSubmission, error) {
	submission, err := s.submissionRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error al obtener envío: %w", err)
	}
	if submission == nil {
		return nil, domain.ErrSubmissionNotFound
	}
	return submission, nil
}

// ApplyManualOverride aplica una corrección administrativa directa sobre los
// campos de estado del envío, saltándose el grafo de transiciones. Existe para
// los casos en que el portal gubernamental sí registró el envío pero la
// detección automática falló. Se registra en el log, no se valida.
func (s *ComplianceService) ApplyManualOverride(id string, patch domain.SubmissionPatch) (*domain.ComplianceSubmission, error) {
	submission, err := s.GetSubmission(id)
	if err != nil {
		return nil, err
	}

	if patch.SireStatus != nil {
		submission.SireStatus = *patch.SireStatus
		if *patch.SireStatus == domain.PortalSubmitted {
			submission.Status = domain.SubmissionSubmitted
		}
	}
	if patch.SireReferenceNumber != nil {
		submission.SireReferenceNumber = patch.SireReferenceNumber
	}
	if patch.SireError != nil {
		submission.SireError = patch.SireError
	}
	if patch.TraStatus != nil {
		submission.TraStatus = patch.TraStatus
	}
	if patch.TraReferenceNumber != nil {
		submission.TraReferenceNumber = patch.TraReferenceNumber
	}
	if patch.TraError != nil {
		submission.TraError = patch.TraError
	}

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("error al aplicar corrección manual: %w", err)
	}

	log.Printf("Corrección manual aplicada al envío %s (reserva %s)", submission.ID, submission.ReservationID)
	return submission, nil
}

// Submit reporta una reserva completa al portal SIRE (y al TRA si el tenant
// lo tiene habilitado). Falla con ErrReservationNotReady si algún huésped
// tiene campos incompletos, y con ErrSubmissionInProgress si ya hay un intento
// en vuelo para la misma reserva.
func (s *ComplianceService) Submit(ctx context.Context, reservationID string) (*domain.ComplianceSubmission, error) {
	if err := s.acquire(reservationID); err != nil {
		return nil, err
	}
	defer s.release(reservationID)

	records, snapshot, err := s.collectRecords(reservationID)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetActiveByReservation(reservationID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar envío activo: %w", err)
	}

	switch {
	case submission == nil || submission.Status == domain.SubmissionSubmitted:
		// Sin envío previo, o reenvío que supersede uno ya reportado
		submission = s.newSubmission(reservationID, snapshot)
		if err := s.submissionRepo.Create(submission); err != nil {
			return nil, fmt.Errorf("error al crear envío: %w", err)
		}
	case submission.Status == domain.SubmissionSubmitting:
		return nil, domain.ErrSubmissionInProgress
	}

	return s.attempt(ctx, submission, records)
}

// Retry reintenta un envío fallido. Los datos recolectados no se borran en el
// fallo, así que el reintento no exige re-recolección; solo se sobrescribe el
// último error.
func (s *ComplianceService) Retry(ctx context.Context, submissionID string) (*domain.ComplianceSubmission, error) {
	submission, err := s.GetSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if submission.Status == domain.SubmissionSubmitting {
		return nil, domain.ErrSubmissionInProgress
	}
	if submission.Status == domain.SubmissionSubmitted {
		return nil, fmt.Errorf("el envío %s ya fue reportado exitosamente", submissionID)
	}

	if err := s.acquire(submission.ReservationID); err != nil {
		return nil, err
	}
	defer s.release(submission.ReservationID)

	// Los datos pueden haber sido corregidos aguas arriba; se releen
	records, _, err := s.collectRecords(submission.ReservationID)
	if err != nil {
		return nil, err
	}

	return s.attempt(ctx, submission, records)
}

// IsReady indica si la reserva alcanzó el estado ready: todos sus huéspedes
// con los 13 campos completos.
func (s *ComplianceService) IsReady(reservationID string) (bool, error) {
	_, _, err := s.collectRecords(reservationID)
	if err != nil {
		if err == domain.ErrReservationNotReady {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// acquire toma la guardia por reserva. A lo sumo un intento en vuelo.
func (s *ComplianceService) acquire(reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[reservationID] {
		return domain.ErrSubmissionInProgress
	}
	s.inFlight[reservationID] = true
	return nil
}

func (s *ComplianceService) release(reservationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, reservationID)
}

// collectRecords arma los registros SIRE de todos los huéspedes de la reserva
// (titular + acompañantes) y el snapshot de auditoría. Si algún huésped está
// incompleto la reserva sigue en draft y no puede enviarse.
func (s *ComplianceService) collectRecords(reservationID string) ([]domain.SireFieldSet, json.RawMessage, error) {
	titular, err := s.mapper.MergeGuestOrder(reservationID, 1)
	if err != nil {
		return nil, nil, err
	}

	guests := []domain.GuestIdentity{*titular}
	companions, err := s.companionRepo.GetCompanions(reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("error al leer acompañantes: %w", err)
	}
	guests = append(guests, companions...)

	hotelCode := s.params.HotelSireCode()
	hotelCityCode := s.params.HotelCityCode()

	records := make([]domain.SireFieldSet, 0, len(guests))
	for _, guest := range guests {
		fs, err := s.mapper.ToSireFieldSet(&guest, hotelCode, hotelCityCode)
		if err != nil {
			return nil, nil, err
		}
		if !s.tracker.IsComplete(fs) {
			return nil, nil, domain.ErrReservationNotReady
		}
		records = append(records, *fs)
	}

	snapshot, err := json.Marshal(records)
	if err != nil {
		return nil, nil, fmt.Errorf("error al serializar snapshot: %w", err)
	}

	return records, snapshot, nil
}

func (s *ComplianceService) newSubmission(reservationID string, snapshot json.RawMessage) *domain.ComplianceSubmission {
	now := time.Now()
	submission := &domain.ComplianceSubmission{
		ID:                 uuid.New().String(),
		TenantID:           s.tenantID,
		ReservationID:      reservationID,
		ConversationalData: snapshot,
		Status:             domain.SubmissionPending,
		SireStatus:         domain.PortalPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if s.traActive() {
		pending := domain.PortalPending
		submission.TraStatus = &pending
	}
	return submission
}

// traActive indica si el tenant reporta al TRA en este momento. El flag vive
// en los settings y puede cambiar entre un envío y el siguiente.
func (s *ComplianceService) traActive() bool {
	return s.traPortal != nil && s.params.TraEnabled()
}

// attempt ejecuta un intento de envío contra los portales y registra el
// resultado. El llamador ya debe tener la guardia de la reserva.
func (s *ComplianceService) attempt(ctx context.Context, submission *domain.ComplianceSubmission, records []domain.SireFieldSet) (*domain.ComplianceSubmission, error) {
	submission.Status = domain.SubmissionSubmitting
	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("error al marcar envío en curso: %w", err)
	}

	// El portal externo no soporta cancelación en vuelo: lo más que puede
	// hacerse es acotar la espera y marcar el envío como fallido por timeout
	portalCtx, cancel := context.WithTimeout(ctx, s.portalTimeout)
	defer cancel()

	result, err := s.sirePortal.Submit(portalCtx, records)
	if err != nil {
		return s.recordFailure(submission, domain.NewAdapterError("SIRE", err))
	}

	s.recordSireSuccess(ctx, submission, result)

	if s.traActive() {
		s.attemptTra(ctx, submission, records)
	}

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("error al registrar resultado del envío: %w", err)
	}

	log.Printf("Envío %s reportado a SIRE con referencia %s", submission.ID, result.ReferenceNumber)
	return submission, nil
}

func (s *ComplianceService) recordSireSuccess(ctx context.Context, submission *domain.ComplianceSubmission, result *domain.PortalResult) {
	submission.Status = domain.SubmissionSubmitted
	submission.SireStatus = domain.PortalSubmitted
	submission.SireReferenceNumber = &result.ReferenceNumber
	submission.SireError = nil

	// submitted_at se escribe una sola vez y nunca se sobrescribe
	if submission.SubmittedAt == nil {
		now := time.Now()
		submission.SubmittedAt = &now
	}

	if s.evidence != nil && len(result.Screenshot) > 0 {
		url, err := s.evidence.UploadScreenshot(ctx, submission.ID, result.Screenshot)
		if err != nil {
			// La evidencia es deseable pero no condiciona el éxito del envío
			log.Printf("Error al subir evidencia del envío %s: %v", submission.ID, err)
		} else {
			submission.SireScreenshotURL = &url
		}
	}
}

// attemptTra reporta al portal TRA secundario. Su resultado se registra de
// forma independiente y no revierte el éxito frente a SIRE.
func (s *ComplianceService) attemptTra(ctx context.Context, submission *domain.ComplianceSubmission, records []domain.SireFieldSet) {
	traCtx, cancel := context.WithTimeout(ctx, s.portalTimeout)
	defer cancel()

	result, err := s.traPortal.Submit(traCtx, records)
	if err != nil {
		failed := domain.PortalFailed
		detail := domain.NewAdapterError("TRA", err).Detail
		submission.TraStatus = &failed
		submission.TraError = &detail
		log.Printf("Envío %s falló contra TRA: %s", submission.ID, detail)
		return
	}

	submitted := domain.PortalSubmitted
	submission.TraStatus = &submitted
	submission.TraReferenceNumber = &result.ReferenceNumber
	submission.TraError = nil
}

// recordFailure deja el envío en failed con el error del adaptador textual.
// Los datos recolectados quedan intactos para que el reintento no exija
// re-recolección.
func (s *ComplianceService) recordFailure(submission *domain.ComplianceSubmission, adapterErr *domain.AdapterError) (*domain.ComplianceSubmission, error) {
	submission.Status = domain.SubmissionFailed
	submission.SireStatus = domain.PortalFailed
	detail := adapterErr.Detail
	submission.SireError = &detail

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("error al registrar fallo del envío: %w", err)
	}

	// Notificar al responsable de cumplimiento; si el email falla solo se
	// registra, la transición ya ocurrió
	if notifyEmail := s.params.NotifyEmail(); s.emailClient != nil && notifyEmail != "" {
		if err := s.emailClient.SendComplianceFailure(notifyEmail, submission.ReservationID, submission.ID, detail); err != nil {
			log.Printf("Error al enviar notificación de fallo del envío %s: %v", submission.ID, err)
		}
	}

	log.Printf("Envío %s falló contra SIRE: %s", submission.ID, detail)
	return submission, adapterErr
}
