package repository

import (
	"database/sql"
	"fmt"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

type guestReservationRepository struct {
	db *sql.DB
}

// NewGuestReservationRepository crea una nueva instancia del repositorio de
// datos SIRE del titular, que viven en la fila legada de la reserva
func NewGuestReservationRepository(db *sql.DB) domain.GuestReservationRepository {
	return &guestReservationRepository{db: db}
}

// GetTitularFields obtiene los campos SIRE recolectados del huésped titular
func (r *guestReservationRepository) GetTitularFields(reservationID string) (*domain.GuestIdentity, error) {
	query := `
		SELECT
			reservation_id,
			document_type,
			document_number,
			nationality_code,
			first_surname,
			second_surname,
			given_names,
			birth_date,
			movement_type,
			movement_date,
			origin_code,
			destination_code
		FROM guest_reservations
		WHERE reservation_id = $1
	`

	var id string
	var documentType, documentNumber, nationality sql.NullString
	var firstSurname, secondSurname, givenNames sql.NullString
	var birthDate, movementType, movementDate sql.NullString
	var originCode, destinationCode sql.NullString

	err := r.db.QueryRow(query, reservationID).Scan(
		&id,
		&documentType,
		&documentNumber,
		&nationality,
		&firstSurname,
		&secondSurname,
		&givenNames,
		&birthDate,
		&movementType,
		&movementDate,
		&originCode,
		&destinationCode,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Aún sin datos recolectados, devolver nil sin error
	}

	if err != nil {
		return nil, fmt.Errorf("error al buscar datos del titular: %w", err)
	}

	guest := &domain.GuestIdentity{
		ReservationID:    id,
		GuestOrder:       1,
		DocumentTypeCode: fieldFromNull(documentType),
		DocumentNumber:   fieldFromNull(documentNumber),
		NationalityCode:  fieldFromNull(nationality),
		FirstSurname:     fieldFromNull(firstSurname),
		SecondSurname:    fieldFromNull(secondSurname),
		GivenNames:       fieldFromNull(givenNames),
		BirthDate:        fieldFromNull(birthDate),
		MovementType:     fieldFromNull(movementType),
		MovementDate:     fieldFromNull(movementDate),
		OriginCode:       fieldFromNull(originCode),
		DestinationCode:  fieldFromNull(destinationCode),
	}

	return guest, nil
}

// UpsertTitularFields inserta o actualiza los campos SIRE del titular
func (r *guestReservationRepository) UpsertTitularFields(guest *domain.GuestIdentity) error {
	query := `
		INSERT INTO guest_reservations (
			reservation_id,
			document_type,
			document_number,
			nationality_code,
			first_surname,
			second_surname,
			given_names,
			birth_date,
			movement_type,
			movement_date,
			origin_code,
			destination_code,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (reservation_id) DO UPDATE SET
			document_type = EXCLUDED.document_type,
			document_number = EXCLUDED.document_number,
			nationality_code = EXCLUDED.nationality_code,
			first_surname = EXCLUDED.first_surname,
			second_surname = EXCLUDED.second_surname,
			given_names = EXCLUDED.given_names,
			birth_date = EXCLUDED.birth_date,
			movement_type = EXCLUDED.movement_type,
			movement_date = EXCLUDED.movement_date,
			origin_code = EXCLUDED.origin_code,
			destination_code = EXCLUDED.destination_code,
			updated_at = NOW()
	`

	_, err := r.db.Exec(
		query,
		guest.ReservationID,
		nullFromField(guest.DocumentTypeCode),
		nullFromField(guest.DocumentNumber),
		nullFromField(guest.NationalityCode),
		nullFromField(guest.FirstSurname),
		nullFromField(guest.SecondSurname),
		nullFromField(guest.GivenNames),
		nullFromField(guest.BirthDate),
		nullFromField(guest.MovementType),
		nullFromField(guest.MovementDate),
		nullFromField(guest.OriginCode),
		nullFromField(guest.DestinationCode),
	)

	if err != nil {
		return fmt.Errorf("error al guardar datos del titular: %w", err)
	}

	return nil
}
