package domain

import (
	"errors"
	"fmt"
)

// Errores de validación de datos SIRE. Se devuelven al cliente para
// corrección, nunca se reintentan automáticamente.
var (
	// ErrCatalogNotFound indica que un nombre de país o ciudad no pudo
	// resolverse contra el catálogo oficial
	ErrCatalogNotFound = errors.New("código no encontrado en el catálogo")

	// ErrInvalidCatalogCode indica que un código almacenado no cumple el
	// formato esperado (dato corrupto aguas arriba, no se auto-corrige)
	ErrInvalidCatalogCode = errors.New("código de catálogo inválido")

	// ErrInvalidDateFormat indica una fecha que no parsea en el formato esperado
	ErrInvalidDateFormat = errors.New("formato de fecha inválido")

	// ErrSubmissionInProgress indica que ya existe un envío en vuelo para la
	// reserva; el cliente debe consultar el estado en lugar de reintentar
	ErrSubmissionInProgress = errors.New("ya existe un envío en curso para esta reserva")

	// ErrReservationNotReady indica que algún huésped de la reserva aún tiene
	// campos SIRE incompletos
	ErrReservationNotReady = errors.New("la reserva tiene campos SIRE incompletos")

	// ErrSubmissionNotFound indica que el envío solicitado no existe
	ErrSubmissionNotFound = errors.New("envío no encontrado")
)

// DateFieldError envuelve ErrInvalidDateFormat con el nombre del campo ofensor.
func DateFieldError(field, value string) error {
	return fmt.Errorf("%w: campo %s con valor %q", ErrInvalidDateFormat, field, value)
}

// CatalogCodeError envuelve ErrInvalidCatalogCode con el campo y código ofensores.
func CatalogCodeError(field, code string) error {
	return fmt.Errorf("%w: campo %s con código %q", ErrInvalidCatalogCode, field, code)
}

// AdapterError envuelve un fallo del adaptador del portal externo. El mensaje
// se almacena textualmente en sire_error/tra_error, sin interpretarlo.
type AdapterError struct {
	Portal string // "SIRE" o "TRA"
	Detail string
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("error del portal %s: %s", e.Portal, e.Detail)
}

// NewAdapterError construye un AdapterError con el detalle textual del portal.
func NewAdapterError(portal string, err error) *AdapterError {
	return &AdapterError{Portal: portal, Detail: err.Error()}
}
