package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// fakeTitularRepo es un GuestReservationRepository en memoria.
type fakeTitularRepo struct {
	mu       sync.Mutex
	titulars map[string]*domain.GuestIdentity
}

func newFakeTitularRepo() *fakeTitularRepo {
	return &fakeTitularRepo{titulars: make(map[string]*domain.GuestIdentity)}
}

func (r *fakeTitularRepo) GetTitularFields(reservationID string) (*domain.GuestIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.titulars[reservationID]
	if !ok {
		return nil, nil
	}
	copied := *guest
	return &copied, nil
}

func (r *fakeTitularRepo) UpsertTitularFields(guest *domain.GuestIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *guest
	r.titulars[guest.ReservationID] = &copied
	return nil
}

// fakeCompanionRepo es un CompanionRepository en memoria.
type fakeCompanionRepo struct {
	mu         sync.Mutex
	companions map[string]map[int]*domain.GuestIdentity
}

func newFakeCompanionRepo() *fakeCompanionRepo {
	return &fakeCompanionRepo{companions: make(map[string]map[int]*domain.GuestIdentity)}
}

func (r *fakeCompanionRepo) GetCompanionFields(reservationID string, guestOrder int) (*domain.GuestIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.companions[reservationID][guestOrder]
	if !ok {
		return nil, nil
	}
	copied := *guest
	return &copied, nil
}

func (r *fakeCompanionRepo) GetCompanions(reservationID string) ([]domain.GuestIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]int, 0, len(r.companions[reservationID]))
	for order := range r.companions[reservationID] {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	guests := make([]domain.GuestIdentity, 0, len(orders))
	for _, order := range orders {
		guests = append(guests, *r.companions[reservationID][order])
	}
	return guests, nil
}

func (r *fakeCompanionRepo) UpsertCompanionFields(guest *domain.GuestIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.companions[guest.ReservationID] == nil {
		r.companions[guest.ReservationID] = make(map[int]*domain.GuestIdentity)
	}
	copied := *guest
	r.companions[guest.ReservationID][guest.GuestOrder] = &copied
	return nil
}

// fakeSubmissionRepo es un SubmissionRepository en memoria.
type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[string]*domain.ComplianceSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[string]*domain.ComplianceSubmission)}
}

func (r *fakeSubmissionRepo) GetByID(id string) (*domain.ComplianceSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	submission, ok := r.submissions[id]
	if !ok {
		return nil, nil
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetActiveByReservation(reservationID string) (*domain.ComplianceSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *domain.ComplianceSubmission
	for _, submission := range r.submissions {
		if submission.ReservationID != reservationID {
			continue
		}
		if latest == nil || submission.CreatedAt.After(latest.CreatedAt) {
			latest = submission
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeSubmissionRepo) Create(submission *domain.ComplianceSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *submission
	r.submissions[submission.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) Update(submission *domain.ComplianceSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submissions[submission.ID]; !ok {
		return errors.New("envío no encontrado")
	}
	copied := *submission
	r.submissions[submission.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) MarkStaleSubmitting(olderThan time.Duration, reason string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	marked := 0
	cutoff := time.Now().Add(-olderThan)
	for _, submission := range r.submissions {
		if submission.Status == domain.SubmissionSubmitting && submission.UpdatedAt.Before(cutoff) {
			submission.Status = domain.SubmissionFailed
			submission.SireStatus = domain.PortalFailed
			detail := reason
			submission.SireError = &detail
			marked++
		}
	}
	return marked, nil
}

func (r *fakeSubmissionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions)
}

// fakeSettingsRepo es un ComplianceSettingsRepository en memoria.
type fakeSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: make(map[string]string)}
}

func (r *fakeSettingsRepo) GetByKey(key string) (*domain.ComplianceSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	if !ok {
		return nil, errors.New("parámetro no encontrado")
	}
	return &domain.ComplianceSetting{ConfigKey: key, ConfigValue: value}, nil
}

func (r *fakeSettingsRepo) Update(key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *fakeSettingsRepo) GetAll() ([]*domain.ComplianceSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings := make([]*domain.ComplianceSetting, 0, len(r.values))
	for key, value := range r.values {
		settings = append(settings, &domain.ComplianceSetting{ConfigKey: key, ConfigValue: value})
	}
	return settings, nil
}

// fakePortal es un PortalAdapter controlable desde los tests.
type fakePortal struct {
	mu         sync.Mutex
	calls      int
	failWith   error
	reference  string
	screenshot []byte
	block      chan struct{} // si no es nil, Submit espera hasta que se cierre
	entered    chan struct{} // si no es nil, se cierra cuando llega la primera llamada
}

func (p *fakePortal) Submit(ctx context.Context, records []domain.SireFieldSet) (*domain.PortalResult, error) {
	p.mu.Lock()
	p.calls++
	if p.entered != nil && p.calls == 1 {
		close(p.entered)
	}
	block := p.block
	failWith := p.failWith
	p.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failWith != nil {
		return nil, failWith
	}

	reference := p.reference
	if reference == "" {
		reference = "REF-001"
	}
	return &domain.PortalResult{ReferenceNumber: reference, Screenshot: p.screenshot}, nil
}

func (p *fakePortal) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeEvidenceStore guarda las capturas en memoria.
type fakeEvidenceStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	failure error
}

func newFakeEvidenceStore() *fakeEvidenceStore {
	return &fakeEvidenceStore{uploads: make(map[string][]byte)}
}

func (s *fakeEvidenceStore) UploadScreenshot(ctx context.Context, submissionID string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return "", s.failure
	}
	s.uploads[submissionID] = data
	return "https://evidence.test/" + submissionID + ".png", nil
}
