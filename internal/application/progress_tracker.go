package application

import "github.com/toneill57/muva-chat-sub004/internal/domain"

// canonicalOrder es el orden fijo en que se solicitan los campos al huésped:
// primero identidad, luego movimiento, por último los geográficos. Los dos
// campos de hotel se prellenan desde la configuración del tenant y nunca se
// preguntan.
var canonicalOrder = []string{
	domain.FieldDocumentType,
	domain.FieldDocumentNumber,
	domain.FieldNationality,
	domain.FieldFirstSurname,
	domain.FieldSecondSurname,
	domain.FieldNames,
	domain.FieldMovementType,
	domain.FieldMovementDate,
	domain.FieldBirthDate,
	domain.FieldOriginPlace,
	domain.FieldDestinationPlace,
}

// ProgressTracker determina qué campos SIRE ya se conocen para un huésped y
// cuál pedir a continuación. No persiste nada: se recalcula desde el estado
// almacenado en cada request, así la recolección puede retomarse desde
// cualquier punto de falla sin inconsistencias.
type ProgressTracker struct{}

// NewProgressTracker crea una nueva instancia del tracker de progreso
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// fieldByName devuelve el valor tri-estado de un campo del registro SIRE.
func fieldByName(fs *domain.SireFieldSet, name string) domain.FieldValue {
	switch name {
	case domain.FieldDocumentType:
		return fs.DocumentTypeCode
	case domain.FieldDocumentNumber:
		return fs.DocumentNumber
	case domain.FieldNationality:
		return fs.NationalityCode
	case domain.FieldFirstSurname:
		return fs.FirstSurname
	case domain.FieldSecondSurname:
		return fs.SecondSurname
	case domain.FieldNames:
		return fs.GivenNames
	case domain.FieldMovementType:
		return fs.MovementType
	case domain.FieldMovementDate:
		return fs.MovementDate
	case domain.FieldBirthDate:
		return fs.BirthDate
	case domain.FieldOriginPlace:
		return fs.OriginPlace
	case domain.FieldDestinationPlace:
		return fs.DestinationPlace
	default:
		return domain.FieldValue{}
	}
}

// isKnown decide si un campo cuenta como ya recolectado. Todos los campos
// exigen un valor no vacío, excepto el segundo apellido: ese cuenta como
// conocido en cuanto fue confirmado, incluso confirmado vacío. "No preguntado
// todavía" y "preguntado y confirmado vacío" son estados distintos.
func isKnown(name string, v domain.FieldValue) bool {
	if name == domain.FieldSecondSurname {
		return v.Known
	}
	return v.HasValue()
}

// ComputeKnownFields devuelve el conjunto de campos ya satisfechos, incluidos
// los dos de hotel cuando vienen prellenados.
func (t *ProgressTracker) ComputeKnownFields(fs *domain.SireFieldSet) map[string]bool {
	known := make(map[string]bool)

	if fs.HotelSireCode != "" {
		known[domain.FieldHotelCode] = true
	}
	if fs.HotelCityCode != "" {
		known[domain.FieldCityCode] = true
	}

	for _, name := range canonicalOrder {
		if isKnown(name, fieldByName(fs, name)) {
			known[name] = true
		}
	}

	return known
}

// NextField devuelve el primer campo insatisfecho en orden canónico, o string
// vacío cuando la recolección está completa. Nunca devuelve un campo ya
// conocido ni salta uno requerido.
func (t *ProgressTracker) NextField(fs *domain.SireFieldSet) string {
	for _, name := range canonicalOrder {
		if !isKnown(name, fieldByName(fs, name)) {
			return name
		}
	}
	return ""
}

// IsComplete indica si los 13 campos del registro están satisfechos:
// 12 obligatorios más el segundo apellido, que puede ser legítimamente vacío.
func (t *ProgressTracker) IsComplete(fs *domain.SireFieldSet) bool {
	if fs.HotelSireCode == "" || fs.HotelCityCode == "" {
		return false
	}
	return t.NextField(fs) == ""
}
