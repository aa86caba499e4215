package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// GuestFieldsInput representa las respuestas recolectadas por el colector
// conversacional para un huésped. Todos los campos son opcionales: un puntero
// nil significa "no recolectado en este turno" y no toca el valor almacenado.
// Un segundo apellido enviado como string vacío significa "confirmado sin
// segundo apellido", que es distinto de no enviado.
// Los lugares pueden venir como código de catálogo o como nombre; los nombres
// se resuelven contra los catálogos SIRE/DIVIPOLA.
// Las fechas usan el formato DD/MM/YYYY del vocabulario progresivo.
type GuestFieldsInput struct {
	DocumentTypeCode *string `json:"document_type_code,omitempty"`
	DocumentNumber   *string `json:"identification_number,omitempty"`
	NationalityCode  *string `json:"nationality_code,omitempty"`
	FirstSurname     *string `json:"first_surname,omitempty"`
	SecondSurname    *string `json:"second_surname,omitempty"`
	GivenNames       *string `json:"names,omitempty"`
	MovementType     *string `json:"movement_type,omitempty"`
	MovementDate     *string `json:"movement_date,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	OriginPlace      *string `json:"origin_place,omitempty"`
	DestinationPlace *string `json:"destination_place,omitempty"`
}

// GuestProgress es la vista del estado de recolección de un huésped que
// consume el colector conversacional: qué se sabe, qué falta y qué preguntar.
type GuestProgress struct {
	ReservationID string               `json:"reservationId"`
	GuestOrder    int                  `json:"guestOrder"`
	Fields        *domain.SireFieldSet `json:"fields"`
	KnownFields   []string             `json:"known_fields"`
	NextField     string               `json:"next_field,omitempty"`
	IsComplete    bool                 `json:"is_complete"`
}

// GuestDataService maneja la recolección progresiva de campos SIRE por
// huésped: lee el estado actual, aplica respuestas nuevas y reporta el
// progreso para que el colector nunca repita una pregunta ya respondida.
type GuestDataService struct {
	mapper        *FieldMapper
	tracker       *ProgressTracker
	resolver      *catalog.Resolver
	titularRepo   domain.GuestReservationRepository
	companionRepo domain.CompanionRepository
	validator     Validator
	params        *TenantParams
}

// NewGuestDataService crea una nueva instancia del servicio de datos de huésped
func NewGuestDataService(
	mapper *FieldMapper,
	tracker *ProgressTracker,
	resolver *catalog.Resolver,
	titularRepo domain.GuestReservationRepository,
	companionRepo domain.CompanionRepository,
	params *TenantParams,
) *GuestDataService {
	return &GuestDataService{
		mapper:        mapper,
		tracker:       tracker,
		resolver:      resolver,
		titularRepo:   titularRepo,
		companionRepo: companionRepo,
		params:        params,
	}
}

// GetProgress obtiene el subconjunto conocido del registro SIRE de un huésped
// junto con el siguiente campo a preguntar.
func (s *GuestDataService) GetProgress(reservationID string, guestOrder int) (*GuestProgress, error) {
	guest, err := s.mapper.MergeGuestOrder(reservationID, guestOrder)
	if err != nil {
		return nil, err
	}

	fs, err := s.mapper.ToSireFieldSet(guest, s.params.HotelSireCode(), s.params.HotelCityCode())
	if err != nil {
		return nil, err
	}

	return s.buildProgress(reservationID, guestOrder, fs), nil
}

// SaveFields aplica las respuestas recolectadas de un turno conversacional al
// estado almacenado del huésped y devuelve el progreso actualizado. Los campos
// ya recolectados que no vienen en el input no se tocan.
func (s *GuestDataService) SaveFields(reservationID string, guestOrder int, input *GuestFieldsInput) (*GuestProgress, error) {
	guest, err := s.mapper.MergeGuestOrder(reservationID, guestOrder)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(guest, input); err != nil {
		return nil, err
	}

	if guestOrder == 1 {
		err = s.titularRepo.UpsertTitularFields(guest)
	} else {
		err = s.companionRepo.UpsertCompanionFields(guest)
	}
	if err != nil {
		return nil, fmt.Errorf("error al guardar campos del huésped %d: %w", guestOrder, err)
	}

	fs, err := s.mapper.ToSireFieldSet(guest, s.params.HotelSireCode(), s.params.HotelCityCode())
	if err != nil {
		return nil, err
	}

	return s.buildProgress(reservationID, guestOrder, fs), nil
}

// applyInput valida y normaliza cada respuesta presente antes de asignarla.
func (s *GuestDataService) applyInput(guest *domain.GuestIdentity, input *GuestFieldsInput) error {
	if input.DocumentTypeCode != nil {
		if err := s.validator.ValidateDocumentType(*input.DocumentTypeCode); err != nil {
			return err
		}
		guest.DocumentTypeCode = domain.NewField(strings.TrimSpace(*input.DocumentTypeCode))
	}

	if input.DocumentNumber != nil {
		if err := s.validator.ValidateDocumentNumber(*input.DocumentNumber); err != nil {
			return err
		}
		guest.DocumentNumber = domain.NewField(strings.TrimSpace(*input.DocumentNumber))
	}

	if input.NationalityCode != nil {
		code, err := s.resolveCountry(*input.NationalityCode)
		if err != nil {
			return err
		}
		guest.NationalityCode = domain.NewField(code)
	}

	if input.FirstSurname != nil {
		if err := s.validator.ValidateName(*input.FirstSurname, "primer apellido"); err != nil {
			return err
		}
		guest.FirstSurname = domain.NewField(strings.TrimSpace(*input.FirstSurname))
	}

	if input.SecondSurname != nil {
		// Vacío es válido: el huésped confirmó que no tiene segundo apellido
		trimmed := strings.TrimSpace(*input.SecondSurname)
		if trimmed == "" {
			guest.SecondSurname = domain.EmptyField()
		} else {
			if err := s.validator.ValidateName(trimmed, "segundo apellido"); err != nil {
				return err
			}
			guest.SecondSurname = domain.NewField(trimmed)
		}
	}

	if input.GivenNames != nil {
		if err := s.validator.ValidateName(*input.GivenNames, "nombre"); err != nil {
			return err
		}
		guest.GivenNames = domain.NewField(strings.TrimSpace(*input.GivenNames))
	}

	if input.MovementType != nil {
		if err := s.validator.ValidateMovementType(*input.MovementType); err != nil {
			return err
		}
		guest.MovementType = domain.NewField(strings.ToUpper(strings.TrimSpace(*input.MovementType)))
	}

	if input.MovementDate != nil {
		iso, err := sireToISODate(*input.MovementDate)
		if err != nil {
			return domain.DateFieldError(domain.FieldMovementDate, *input.MovementDate)
		}
		guest.MovementDate = domain.NewField(iso)
	}

	if input.BirthDate != nil {
		iso, err := sireToISODate(*input.BirthDate)
		if err != nil {
			return domain.DateFieldError(domain.FieldBirthDate, *input.BirthDate)
		}
		guest.BirthDate = domain.NewField(iso)
	}

	if input.OriginPlace != nil {
		code, err := s.resolvePlace(*input.OriginPlace)
		if err != nil {
			return err
		}
		guest.OriginCode = domain.NewField(code)
	}

	if input.DestinationPlace != nil {
		code, err := s.resolvePlace(*input.DestinationPlace)
		if err != nil {
			return err
		}
		guest.DestinationCode = domain.NewField(code)
	}

	return nil
}

// resolveCountry acepta un código SIRE ya válido o resuelve un nombre de país.
func (s *GuestDataService) resolveCountry(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if s.resolver.ValidateCodeFormat(trimmed, catalog.KindCountry) {
		if _, ok := s.resolver.CountryName(trimmed); ok {
			return trimmed, nil
		}
	}
	return s.resolver.ResolveCountry(trimmed)
}

// resolvePlace acepta un código de ciudad o país, o resuelve un nombre:
// primero como municipio DIVIPOLA (caso nacional), luego como país (caso
// internacional). Procedencia y destino son independientes de la nacionalidad
// y nunca se derivan de ella.
func (s *GuestDataService) resolvePlace(value string) (string, error) {
	trimmed := strings.TrimSpace(value)

	if code, err := s.resolver.ResolveCity(trimmed); err == nil {
		return code, nil
	}
	if s.resolver.ValidateCodeFormat(trimmed, catalog.KindCountry) {
		if _, ok := s.resolver.CountryName(trimmed); ok {
			return trimmed, nil
		}
	}
	return s.resolver.ResolveCountry(trimmed)
}

func (s *GuestDataService) buildProgress(reservationID string, guestOrder int, fs *domain.SireFieldSet) *GuestProgress {
	knownSet := s.tracker.ComputeKnownFields(fs)
	known := make([]string, 0, len(knownSet))
	for name := range knownSet {
		known = append(known, name)
	}
	sort.Strings(known)

	return &GuestProgress{
		ReservationID: reservationID,
		GuestOrder:    guestOrder,
		Fields:        fs,
		KnownFields:   known,
		NextField:     s.tracker.NextField(fs),
		IsComplete:    s.tracker.IsComplete(fs),
	}
}
