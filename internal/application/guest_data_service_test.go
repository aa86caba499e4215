package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

func newGuestDataFixture() (*GuestDataService, *fakeTitularRepo, *fakeCompanionRepo) {
	titularRepo := newFakeTitularRepo()
	companionRepo := newFakeCompanionRepo()
	resolver := catalog.NewResolver()
	mapper := NewFieldMapper(resolver, titularRepo, companionRepo)
	service := NewGuestDataService(
		mapper,
		NewProgressTracker(),
		resolver,
		titularRepo,
		companionRepo,
		NewTenantParams(nil, TenantDefaults{HotelSireCode: "12345", HotelCityCode: "88001"}),
	)
	return service, titularRepo, companionRepo
}

func strPtr(s string) *string {
	return &s
}

func TestSaveFieldsResumableAcrossTurns(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	progress, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		DocumentTypeCode: strPtr("5"),
		DocumentNumber:   strPtr("AB123456"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FieldNationality, progress.NextField)
	assert.False(t, progress.IsComplete)

	// Un turno posterior no borra lo ya recolectado
	progress, err = service.SaveFields("res-1", 1, &GuestFieldsInput{
		NationalityCode: strPtr("United States"),
	})
	require.NoError(t, err)
	assert.True(t, progress.Fields.DocumentNumber.HasValue())
	assert.Equal(t, "249", progress.Fields.NationalityCode.Value)
	assert.Equal(t, domain.FieldFirstSurname, progress.NextField)
}

func TestSaveFieldsSecondSurnameEmptyIsConfirmed(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	progress, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		SecondSurname: strPtr(""),
	})
	require.NoError(t, err)

	assert.True(t, progress.Fields.SecondSurname.Known)
	assert.Equal(t, "", progress.Fields.SecondSurname.Value)
	assert.Contains(t, progress.KnownFields, domain.FieldSecondSurname)
}

func TestSaveFieldsResolvesPlaceNames(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	progress, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		OriginPlace:      strPtr("Brasil"),
		DestinationPlace: strPtr("San Andrés"),
	})
	require.NoError(t, err)

	assert.Equal(t, "105", progress.Fields.OriginPlace.Value)
	assert.Equal(t, "88001", progress.Fields.DestinationPlace.Value)
}

func TestSaveFieldsConvertsDatesToISOStorage(t *testing.T) {
	service, titularRepo, _ := newGuestDataFixture()

	progress, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		BirthDate: strPtr("25/03/1990"),
	})
	require.NoError(t, err)

	// La vista SIRE conserva DD/MM/YYYY
	assert.Equal(t, "25/03/1990", progress.Fields.BirthDate.Value)

	// El almacenamiento queda en YYYY-MM-DD
	stored, err := titularRepo.GetTitularFields("res-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "1990-03-25", stored.BirthDate.Value)
}

func TestSaveFieldsRejectsInvalidInput(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	tests := []struct {
		name  string
		input *GuestFieldsInput
	}{
		{"tipo de documento desconocido", &GuestFieldsInput{DocumentTypeCode: strPtr("99")}},
		{"documento muy corto", &GuestFieldsInput{DocumentNumber: strPtr("A1")}},
		{"país inexistente", &GuestFieldsInput{NationalityCode: strPtr("Atlántida")}},
		{"movimiento inválido", &GuestFieldsInput{MovementType: strPtr("X")}},
		{"fecha en formato ISO", &GuestFieldsInput{MovementDate: strPtr("2025-11-15")}},
		{"lugar inexistente", &GuestFieldsInput{OriginPlace: strPtr("Narnia")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SaveFields("res-1", 1, tt.input)
			assert.Error(t, err)
		})
	}

	// Nada quedó persistido tras los rechazos
	progress, err := service.GetProgress("res-1", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldDocumentType, progress.NextField)
}

func TestSaveFieldsCompanionIndependentOfTitular(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	_, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		DocumentNumber: strPtr("TITULAR01"),
	})
	require.NoError(t, err)

	progress, err := service.SaveFields("res-1", 2, &GuestFieldsInput{
		DocumentNumber: strPtr("ACOMP002"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACOMP002", progress.Fields.DocumentNumber.Value)

	titular, err := service.GetProgress("res-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "TITULAR01", titular.Fields.DocumentNumber.Value)
}

func TestGetProgressUnregisteredGuest(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	progress, err := service.GetProgress("res-1", 2)
	require.NoError(t, err)

	assert.False(t, progress.IsComplete)
	assert.Equal(t, domain.FieldDocumentType, progress.NextField)
	// Los campos de hotel vienen prellenados desde la configuración
	assert.Contains(t, progress.KnownFields, domain.FieldHotelCode)
	assert.Contains(t, progress.KnownFields, domain.FieldCityCode)
}

func TestSaveFieldsFullCollection(t *testing.T) {
	service, _, _ := newGuestDataFixture()

	progress, err := service.SaveFields("res-1", 1, &GuestFieldsInput{
		DocumentTypeCode: strPtr("5"),
		DocumentNumber:   strPtr("AB123456"),
		NationalityCode:  strPtr("USA"),
		FirstSurname:     strPtr("García"),
		SecondSurname:    strPtr(""),
		GivenNames:       strPtr("John"),
		MovementType:     strPtr("e"),
		MovementDate:     strPtr("15/11/2025"),
		BirthDate:        strPtr("25/03/1990"),
		OriginPlace:      strPtr("Estados Unidos"),
		DestinationPlace: strPtr("Medellín"),
	})
	require.NoError(t, err)

	assert.True(t, progress.IsComplete)
	assert.Empty(t, progress.NextField)
	assert.Equal(t, "E", progress.Fields.MovementType.Value)
	assert.Equal(t, "249", progress.Fields.OriginPlace.Value)
	assert.Equal(t, "05001", progress.Fields.DestinationPlace.Value)
	assert.Len(t, progress.KnownFields, 13)
}
