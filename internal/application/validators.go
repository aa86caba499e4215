package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// ValidationError es un error de validación de datos del huésped, distinguible
// de los fallos de infraestructura para mapearlo a una respuesta 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validator contiene funciones de validación de los datos recolectados para
// SIRE antes de persistirlos.
type Validator struct{}

var validDocumentTypes = map[string]bool{
	domain.DocTypeCedulaExtranjeria:   true,
	domain.DocTypePasaporte:           true,
	domain.DocTypeDocumentoExtranjero: true,
	domain.DocTypeCarneDiplomatico:    true,
}

// ValidateDocumentType valida que el tipo de documento sea uno de los
// aceptados por SIRE (3, 5, 10 o 46).
func (v *Validator) ValidateDocumentType(code string) error {
	if !validDocumentTypes[strings.TrimSpace(code)] {
		return validationError("tipo de documento inválido: %q (se acepta 3, 5, 10 o 46)", code)
	}
	return nil
}

// ValidateDocumentNumber valida el número de documento
func (v *Validator) ValidateDocumentNumber(docNumber string) error {
	if docNumber == "" {
		return validationError("el número de documento es requerido")
	}

	// Limpiar espacios y guiones
	cleanDoc := strings.ReplaceAll(docNumber, " ", "")
	cleanDoc = strings.ReplaceAll(cleanDoc, "-", "")

	if len(cleanDoc) < 6 || len(cleanDoc) > 15 {
		return validationError("el número de documento debe tener entre 6 y 15 caracteres")
	}

	docRegex := regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	if !docRegex.MatchString(cleanDoc) {
		return validationError("el número de documento solo puede contener letras y números")
	}

	return nil
}

// ValidateName valida que un nombre o apellido tenga formato válido
func (v *Validator) ValidateName(name, fieldName string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return validationError("el %s es requerido", fieldName)
	}

	if len(name) > 50 {
		return validationError("el %s no puede tener más de 50 caracteres", fieldName)
	}

	// Solo letras, espacios, acentos y algunos caracteres especiales
	nameRegex := regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s\-']+$`)
	if !nameRegex.MatchString(name) {
		return validationError("el %s contiene caracteres no válidos", fieldName)
	}

	return nil
}

// ValidateMovementType valida que el tipo de movimiento sea E (entrada) o S (salida)
func (v *Validator) ValidateMovementType(movement string) error {
	movement = strings.ToUpper(strings.TrimSpace(movement))

	if movement != domain.MovementEntry && movement != domain.MovementExit {
		return validationError("el tipo de movimiento debe ser 'E' (entrada) o 'S' (salida)")
	}

	return nil
}
