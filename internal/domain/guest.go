package domain

import "encoding/json"

// FieldValue representa el valor de un campo SIRE con tres estados:
// no preguntado (Known=false), confirmado vacío (Known=true, Value=""),
// o con valor (Known=true, Value!=""). El segundo apellido es el caso que
// obliga a distinguir "vacío confirmado" de "aún no recolectado".
type FieldValue struct {
	Known bool
	Value string
}

// NewField crea un FieldValue con valor confirmado.
func NewField(value string) FieldValue {
	return FieldValue{Known: true, Value: value}
}

// EmptyField crea un FieldValue confirmado explícitamente como vacío.
func EmptyField() FieldValue {
	return FieldValue{Known: true}
}

// HasValue indica si el campo fue confirmado con un valor no vacío.
func (v FieldValue) HasValue() bool {
	return v.Known && v.Value != ""
}

// MarshalJSON serializa el campo como null (no recolectado) o como string.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if !v.Known {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON interpreta null como "no recolectado" y cualquier string
// (incluido "") como valor confirmado.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = FieldValue{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = FieldValue{Known: true, Value: s}
	return nil
}

// GuestIdentity representa una persona real viajando bajo una reserva.
// Nacionalidad, procedencia y destino son tres atributos independientes:
// pueden diferir entre sí y nunca se derivan uno del otro.
// Las fechas se almacenan en formato YYYY-MM-DD.
type GuestIdentity struct {
	ReservationID    string     `json:"reservationId"`
	GuestOrder       int        `json:"guestOrder"` // 1 = titular, >=2 = acompañante
	DocumentTypeCode FieldValue `json:"document_type_code"`
	DocumentNumber   FieldValue `json:"identification_number"`
	NationalityCode  FieldValue `json:"nationality_code"` // código de país SIRE
	FirstSurname     FieldValue `json:"first_surname"`
	SecondSurname    FieldValue `json:"second_surname"` // vacío es un estado válido
	GivenNames       FieldValue `json:"names"`
	BirthDate        FieldValue `json:"birth_date"`
	MovementType     FieldValue `json:"movement_type"` // E = entrada, S = salida
	MovementDate     FieldValue `json:"movement_date"`
	OriginCode       FieldValue `json:"origin_place"`      // ciudad DIVIPOLA o país SIRE
	DestinationCode  FieldValue `json:"destination_place"` // ciudad DIVIPOLA o país SIRE
}

// Tipos de documento aceptados por SIRE.
const (
	DocTypeCedulaExtranjeria   = "3"
	DocTypePasaporte           = "5"
	DocTypeDocumentoExtranjero = "10"
	DocTypeCarneDiplomatico    = "46"
)

// Tipos de movimiento SIRE.
const (
	MovementEntry = "E"
	MovementExit  = "S"
)

// SireFieldSet es el registro de 13 campos exigido por SIRE para reportar un
// movimiento. Las fechas van en formato DD/MM/YYYY. Los dos campos de hotel se
// prellenan desde la configuración del tenant y nunca se preguntan al huésped.
type SireFieldSet struct {
	HotelSireCode    string     `json:"hotel_code"`
	HotelCityCode    string     `json:"city_code"`
	DocumentTypeCode FieldValue `json:"document_type_code"`
	DocumentNumber   FieldValue `json:"identification_number"`
	NationalityCode  FieldValue `json:"nationality_code"`
	FirstSurname     FieldValue `json:"first_surname"`
	SecondSurname    FieldValue `json:"second_surname"`
	GivenNames       FieldValue `json:"names"`
	MovementType     FieldValue `json:"movement_type"`
	MovementDate     FieldValue `json:"movement_date"`
	BirthDate        FieldValue `json:"birth_date"`
	OriginPlace      FieldValue `json:"origin_place"`
	DestinationPlace FieldValue `json:"destination_place"`
}

// Nombres de campo del vocabulario de recolección progresiva.
const (
	FieldHotelCode        = "hotel_code"
	FieldCityCode         = "city_code"
	FieldDocumentType     = "document_type_code"
	FieldDocumentNumber   = "identification_number"
	FieldNationality      = "nationality_code"
	FieldFirstSurname     = "first_surname"
	FieldSecondSurname    = "second_surname"
	FieldNames            = "names"
	FieldMovementType     = "movement_type"
	FieldMovementDate     = "movement_date"
	FieldBirthDate        = "birth_date"
	FieldOriginPlace      = "origin_place"
	FieldDestinationPlace = "destination_place"
)

// GuestReservationRepository define las operaciones sobre los datos SIRE del
// huésped titular, almacenados en la fila legada de la reserva.
type GuestReservationRepository interface {
	// GetTitularFields obtiene los campos recolectados del titular.
	// Devuelve nil sin error si aún no hay datos recolectados.
	GetTitularFields(reservationID string) (*GuestIdentity, error)
	// UpsertTitularFields inserta o actualiza los campos del titular
	UpsertTitularFields(guest *GuestIdentity) error
}

// CompanionRepository define las operaciones sobre los acompañantes,
// almacenados por (reservation_id, guest_order).
type CompanionRepository interface {
	// GetCompanionFields obtiene los campos de un acompañante.
	// Devuelve nil sin error si el acompañante aún no fue registrado:
	// ese es el estado normal durante la recolección progresiva, no un error.
	GetCompanionFields(reservationID string, guestOrder int) (*GuestIdentity, error)
	// GetCompanions obtiene todos los acompañantes registrados de una reserva
	GetCompanions(reservationID string) ([]GuestIdentity, error)
	// UpsertCompanionFields inserta o actualiza los campos de un acompañante
	UpsertCompanionFields(guest *GuestIdentity) error
}
