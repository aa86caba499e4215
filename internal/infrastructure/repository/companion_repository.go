package repository

import (
	"database/sql"
	"fmt"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

const companionColumns = `
	reservation_id,
	guest_order,
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
`

type companionRepository struct {
	db *sql.DB
}

// NewCompanionRepository crea una nueva instancia del repositorio de
// acompañantes, almacenados por (reservation_id, guest_order)
func NewCompanionRepository(db *sql.DB) domain.CompanionRepository {
	return &companionRepository{db: db}
}

// GetCompanionFields obtiene los campos SIRE de un acompañante.
// Un acompañante inexistente devuelve nil sin error: durante la recolección
// progresiva ese es el estado normal, no una falla.
func (r *companionRepository) GetCompanionFields(reservationID string, guestOrder int) (*domain.GuestIdentity, error) {
	query := `SELECT ` + companionColumns + `
		FROM reservation_companions
		WHERE reservation_id = $1 AND guest_order = $2
	`

	guest, err := scanCompanion(r.db.QueryRow(query, reservationID, guestOrder))
	if err == sql.ErrNoRows {
		return nil, nil // Acompañante aún no registrado
	}
	if err != nil {
		return nil, fmt.Errorf("error al buscar acompañante %d: %w", guestOrder, err)
	}

	return guest, nil
}

// GetCompanions obtiene todos los acompañantes registrados de una reserva,
// ordenados por guest_order
func (r *companionRepository) GetCompanions(reservationID string) ([]domain.GuestIdentity, error) {
	query := `SELECT ` + companionColumns + `
		FROM reservation_companions
		WHERE reservation_id = $1
		ORDER BY guest_order ASC
	`

	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("error al listar acompañantes: %w", err)
	}
	defer rows.Close()

	var companions []domain.GuestIdentity
	for rows.Next() {
		guest, err := scanCompanion(rows)
		if err != nil {
			return nil, fmt.Errorf("error al leer acompañante: %w", err)
		}
		companions = append(companions, *guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al recorrer acompañantes: %w", err)
	}

	return companions, nil
}

// UpsertCompanionFields inserta o actualiza los campos SIRE de un acompañante
func (r *companionRepository) UpsertCompanionFields(guest *domain.GuestIdentity) error {
	query := `
		INSERT INTO reservation_companions (` + companionColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (reservation_id, guest_order) DO UPDATE SET
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
		guest.GuestOrder,
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
		return fmt.Errorf("error al guardar acompañante %d: %w", guest.GuestOrder, err)
	}

	return nil
}

// rowScanner abstrae sql.Row y sql.Rows para compartir el escaneo
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompanion(row rowScanner) (*domain.GuestIdentity, error) {
	var id string
	var guestOrder int
	var documentType, documentNumber, nationality sql.NullString
	var firstSurname, secondSurname, givenNames sql.NullString
	var birthDate, movementType, movementDate sql.NullString
	var originCode, destinationCode sql.NullString

	err := row.Scan(
		&id,
		&guestOrder,
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
	if err != nil {
		return nil, err
	}

	return &domain.GuestIdentity{
		ReservationID:    id,
		GuestOrder:       guestOrder,
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
	}, nil
}
