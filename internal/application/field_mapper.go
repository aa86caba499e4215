package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// FieldMapper convierte filas de huésped almacenadas al registro SIRE de 13
// campos y viceversa. Es una capa de transformación pura: no tiene efectos
// secundarios más allá de leer los repositorios en MergeGuestOrder.
type FieldMapper struct {
	resolver      *catalog.Resolver
	titularRepo   domain.GuestReservationRepository
	companionRepo domain.CompanionRepository
}

// NewFieldMapper crea una nueva instancia del mapeador de campos
func NewFieldMapper(
	resolver *catalog.Resolver,
	titularRepo domain.GuestReservationRepository,
	companionRepo domain.CompanionRepository,
) *FieldMapper {
	return &FieldMapper{
		resolver:      resolver,
		titularRepo:   titularRepo,
		companionRepo: companionRepo,
	}
}

// ToSireFieldSet convierte una identidad de huésped almacenada al registro
// SIRE. Convierte las fechas de YYYY-MM-DD a DD/MM/YYYY y valida el formato
// de los códigos de catálogo presentes. El segundo apellido confirmado como
// ausente queda como string vacío, no como null: siempre visible, puede estar
// vacío.
func (m *FieldMapper) ToSireFieldSet(guest *domain.GuestIdentity, hotelCode, hotelCityCode string) (*domain.SireFieldSet, error) {
	fs := &domain.SireFieldSet{
		HotelSireCode:    hotelCode,
		HotelCityCode:    hotelCityCode,
		DocumentTypeCode: guest.DocumentTypeCode,
		DocumentNumber:   guest.DocumentNumber,
		NationalityCode:  guest.NationalityCode,
		FirstSurname:     guest.FirstSurname,
		SecondSurname:    guest.SecondSurname,
		GivenNames:       guest.GivenNames,
		MovementType:     guest.MovementType,
	}

	// Validar formato de los códigos de catálogo ya recolectados
	if guest.NationalityCode.HasValue() && !m.resolver.ValidateCodeFormat(guest.NationalityCode.Value, catalog.KindCountry) {
		return nil, domain.CatalogCodeError(domain.FieldNationality, guest.NationalityCode.Value)
	}
	if guest.OriginCode.HasValue() && !m.resolver.ValidateCodeFormat(guest.OriginCode.Value, catalog.KindCityOrCountry) {
		return nil, domain.CatalogCodeError(domain.FieldOriginPlace, guest.OriginCode.Value)
	}
	if guest.DestinationCode.HasValue() && !m.resolver.ValidateCodeFormat(guest.DestinationCode.Value, catalog.KindCityOrCountry) {
		return nil, domain.CatalogCodeError(domain.FieldDestinationPlace, guest.DestinationCode.Value)
	}
	fs.OriginPlace = guest.OriginCode
	fs.DestinationPlace = guest.DestinationCode

	var err error
	if fs.BirthDate, err = convertDateField(guest.BirthDate, domain.FieldBirthDate, isoToSireDate); err != nil {
		return nil, err
	}
	if fs.MovementDate, err = convertDateField(guest.MovementDate, domain.FieldMovementDate, isoToSireDate); err != nil {
		return nil, err
	}

	return fs, nil
}

// FromSireFieldSet es la transformación inversa: produce el parche de fila de
// huésped a persistir, con fechas de vuelta en YYYY-MM-DD.
func (m *FieldMapper) FromSireFieldSet(fs *domain.SireFieldSet) (*domain.GuestIdentity, error) {
	guest := &domain.GuestIdentity{
		DocumentTypeCode: fs.DocumentTypeCode,
		DocumentNumber:   fs.DocumentNumber,
		NationalityCode:  fs.NationalityCode,
		FirstSurname:     fs.FirstSurname,
		SecondSurname:    fs.SecondSurname,
		GivenNames:       fs.GivenNames,
		MovementType:     fs.MovementType,
		OriginCode:       fs.OriginPlace,
		DestinationCode:  fs.DestinationPlace,
	}

	var err error
	if guest.BirthDate, err = convertDateField(fs.BirthDate, domain.FieldBirthDate, sireToISODate); err != nil {
		return nil, err
	}
	if guest.MovementDate, err = convertDateField(fs.MovementDate, domain.FieldMovementDate, sireToISODate); err != nil {
		return nil, err
	}

	return guest, nil
}

// MergeGuestOrder lee la identidad de un huésped según su posición en la
// reserva: el titular vive en la fila legada de la reserva, los acompañantes
// en su propia tabla. Un acompañante aún no registrado NO es un error: es el
// caso común durante la recolección progresiva, y se devuelve una identidad
// con todos los campos sin recolectar.
func (m *FieldMapper) MergeGuestOrder(reservationID string, guestOrder int) (*domain.GuestIdentity, error) {
	if guestOrder < 1 {
		return nil, fmt.Errorf("guest_order inválido: %d", guestOrder)
	}

	var guest *domain.GuestIdentity
	var err error

	if guestOrder == 1 {
		guest, err = m.titularRepo.GetTitularFields(reservationID)
	} else {
		guest, err = m.companionRepo.GetCompanionFields(reservationID, guestOrder)
	}

	if err != nil {
		return nil, fmt.Errorf("error al leer campos del huésped %d: %w", guestOrder, err)
	}

	if guest == nil {
		// Huésped aún no registrado: identidad vacía, no un error
		return &domain.GuestIdentity{
			ReservationID: reservationID,
			GuestOrder:    guestOrder,
		}, nil
	}

	return guest, nil
}

// convertDateField aplica la conversión de formato a un campo de fecha
// tri-estado, dejando intactos los campos aún no recolectados.
func convertDateField(v domain.FieldValue, field string, convert func(string) (string, error)) (domain.FieldValue, error) {
	if !v.HasValue() {
		return v, nil
	}
	converted, err := convert(v.Value)
	if err != nil {
		return domain.FieldValue{}, domain.DateFieldError(field, v.Value)
	}
	return domain.NewField(converted), nil
}

// isoToSireDate convierte YYYY-MM-DD al formato DD/MM/YYYY de SIRE.
func isoToSireDate(date string) (string, error) {
	year, month, day, err := splitDate(date, "-")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), nil
}

// sireToISODate convierte DD/MM/YYYY al formato YYYY-MM-DD de almacenamiento.
func sireToISODate(date string) (string, error) {
	day, month, year, err := splitDate(date, "/")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// splitDate exige exactamente tres partes numéricas separadas por sep y
// verifica rangos básicos de mes y día.
func splitDate(date, sep string) (int, int, int, error) {
	parts := strings.Split(date, sep)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("se esperaban 3 partes separadas por %q", sep)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("parte no numérica %q", part)
		}
		nums[i] = n
	}

	var month, day int
	if sep == "-" {
		month, day = nums[1], nums[2]
	} else {
		day, month = nums[0], nums[1]
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("mes fuera de rango: %d", month)
	}
	if day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("día fuera de rango: %d", day)
	}

	return nums[0], nums[1], nums[2], nil
}
