package scheduler

import (
	"log"
	"time"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// staleReason es el motivo registrado cuando un envío queda abandonado en
// submitting: el proceso murió o el llamador dejó de esperar, y el portal
// externo no ofrece cancelación.
const staleReason = "timeout/abandoned: el envío quedó en curso más tiempo del límite"

// ComplianceScheduler es el watchdog de envíos: barre periódicamente los
// envíos atascados en submitting y los marca como fallidos para que puedan
// reintentarse.
type ComplianceScheduler struct {
	submissionRepo domain.SubmissionRepository
	staleAfter     time.Duration
	interval       time.Duration
	ticker         *time.Ticker
	done           chan struct{}
}

// NewComplianceScheduler crea una nueva instancia del watchdog de envíos
func NewComplianceScheduler(submissionRepo domain.SubmissionRepository, staleAfter time.Duration) *ComplianceScheduler {
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &ComplianceScheduler{
		submissionRepo: submissionRepo,
		staleAfter:     staleAfter,
		interval:       time.Minute,
		done:           make(chan struct{}),
	}
}

// Start inicia el barrido periódico de envíos atascados
func (s *ComplianceScheduler) Start() {
	log.Printf("Watchdog de envíos iniciado - barrido cada %v, límite %v", s.interval, s.staleAfter)

	// Ejecutar inmediatamente al iniciar
	s.SweepStaleSubmissions()

	s.ticker = time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.SweepStaleSubmissions()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop detiene el watchdog
func (s *ComplianceScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
		log.Println("Watchdog de envíos detenido")
	}
}

// SweepStaleSubmissions marca como fallidos los envíos abandonados en submitting
func (s *ComplianceScheduler) SweepStaleSubmissions() {
	marked, err := s.submissionRepo.MarkStaleSubmitting(s.staleAfter, staleReason)
	if err != nil {
		log.Printf("Error en el barrido de envíos atascados: %v", err)
		return
	}

	if marked > 0 {
		log.Printf("Barrido de envíos: %d envío(s) marcados como fallidos por timeout", marked)
	}
}
