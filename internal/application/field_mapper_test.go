package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

func newTestMapper() (*FieldMapper, *fakeTitularRepo, *fakeCompanionRepo) {
	titularRepo := newFakeTitularRepo()
	companionRepo := newFakeCompanionRepo()
	mapper := NewFieldMapper(catalog.NewResolver(), titularRepo, companionRepo)
	return mapper, titularRepo, companionRepo
}

func completeGuest(reservationID string, guestOrder int) *domain.GuestIdentity {
	return &domain.GuestIdentity{
		ReservationID:    reservationID,
		GuestOrder:       guestOrder,
		DocumentTypeCode: domain.NewField(domain.DocTypePasaporte),
		DocumentNumber:   domain.NewField("AB123456"),
		NationalityCode:  domain.NewField("249"),
		FirstSurname:     domain.NewField("García"),
		SecondSurname:    domain.EmptyField(),
		GivenNames:       domain.NewField("John"),
		BirthDate:        domain.NewField("1990-03-25"),
		MovementType:     domain.NewField(domain.MovementEntry),
		MovementDate:     domain.NewField("2025-11-15"),
		OriginCode:       domain.NewField("249"),
		DestinationCode:  domain.NewField("05001"),
	}
}

func TestToSireFieldSetConvertsDates(t *testing.T) {
	mapper, _, _ := newTestMapper()
	guest := completeGuest("res-1", 1)

	fs, err := mapper.ToSireFieldSet(guest, "12345", "88001")
	require.NoError(t, err)

	assert.Equal(t, "12345", fs.HotelSireCode)
	assert.Equal(t, "88001", fs.HotelCityCode)
	assert.Equal(t, "25/03/1990", fs.BirthDate.Value)
	assert.Equal(t, "15/11/2025", fs.MovementDate.Value)
}

func TestToSireFieldSetSecondSurnameEmptyNotNull(t *testing.T) {
	mapper, _, _ := newTestMapper()
	guest := completeGuest("res-1", 1)
	guest.SecondSurname = domain.EmptyField()

	fs, err := mapper.ToSireFieldSet(guest, "12345", "88001")
	require.NoError(t, err)

	assert.True(t, fs.SecondSurname.Known)
	assert.Equal(t, "", fs.SecondSurname.Value)
}

func TestToSireFieldSetLeavesUncollectedFieldsUnset(t *testing.T) {
	mapper, _, _ := newTestMapper()
	guest := &domain.GuestIdentity{
		ReservationID: "res-1",
		GuestOrder:    1,
		FirstSurname:  domain.NewField("García"),
	}

	fs, err := mapper.ToSireFieldSet(guest, "12345", "88001")
	require.NoError(t, err)

	assert.False(t, fs.BirthDate.Known)
	assert.False(t, fs.SecondSurname.Known)
	assert.True(t, fs.FirstSurname.HasValue())
}

func TestToSireFieldSetRejectsMalformedCatalogCodes(t *testing.T) {
	mapper, _, _ := newTestMapper()

	guest := completeGuest("res-1", 1)
	guest.NationalityCode = domain.NewField("EEUU")
	_, err := mapper.ToSireFieldSet(guest, "12345", "88001")
	assert.ErrorIs(t, err, domain.ErrInvalidCatalogCode)

	guest = completeGuest("res-1", 1)
	guest.OriginCode = domain.NewField("501x")
	_, err = mapper.ToSireFieldSet(guest, "12345", "88001")
	assert.ErrorIs(t, err, domain.ErrInvalidCatalogCode)
}

func TestToSireFieldSetRejectsMalformedDates(t *testing.T) {
	mapper, _, _ := newTestMapper()

	for _, bad := range []string{"1990/03/25", "25-03-1990", "1990-13-01", "1990-00-10", "1990-01-32", "ayer", "1990-03"} {
		guest := completeGuest("res-1", 1)
		guest.BirthDate = domain.NewField(bad)
		_, err := mapper.ToSireFieldSet(guest, "12345", "88001")
		assert.ErrorIs(t, err, domain.ErrInvalidDateFormat, "fecha %q", bad)
	}
}

func TestDateConversionRoundTrip(t *testing.T) {
	dates := []string{"1990-03-25", "2025-01-01", "1959-12-31", "2024-02-29"}

	for _, iso := range dates {
		sire, err := isoToSireDate(iso)
		require.NoError(t, err)

		back, err := sireToISODate(sire)
		require.NoError(t, err)
		assert.Equal(t, iso, back)
	}
}

func TestFromSireFieldSetInverse(t *testing.T) {
	mapper, _, _ := newTestMapper()
	guest := completeGuest("res-1", 1)

	fs, err := mapper.ToSireFieldSet(guest, "12345", "88001")
	require.NoError(t, err)

	back, err := mapper.FromSireFieldSet(fs)
	require.NoError(t, err)

	assert.Equal(t, "1990-03-25", back.BirthDate.Value)
	assert.Equal(t, "2025-11-15", back.MovementDate.Value)
	assert.Equal(t, guest.DocumentNumber, back.DocumentNumber)
	assert.Equal(t, guest.SecondSurname, back.SecondSurname)
}

func TestMergeGuestOrderTitular(t *testing.T) {
	mapper, titularRepo, _ := newTestMapper()
	require.NoError(t, titularRepo.UpsertTitularFields(completeGuest("res-1", 1)))

	guest, err := mapper.MergeGuestOrder("res-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "AB123456", guest.DocumentNumber.Value)
}

func TestMergeGuestOrderCompanion(t *testing.T) {
	mapper, _, companionRepo := newTestMapper()
	require.NoError(t, companionRepo.UpsertCompanionFields(completeGuest("res-1", 2)))

	guest, err := mapper.MergeGuestOrder("res-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, guest.GuestOrder)
	assert.Equal(t, "AB123456", guest.DocumentNumber.Value)
}

func TestMergeGuestOrderUnregisteredCompanionIsNotAnError(t *testing.T) {
	mapper, _, _ := newTestMapper()

	guest, err := mapper.MergeGuestOrder("res-1", 3)
	require.NoError(t, err)
	assert.Equal(t, "res-1", guest.ReservationID)
	assert.Equal(t, 3, guest.GuestOrder)
	assert.False(t, guest.DocumentNumber.Known)
}

func TestMergeGuestOrderRejectsInvalidOrder(t *testing.T) {
	mapper, _, _ := newTestMapper()

	_, err := mapper.MergeGuestOrder("res-1", 0)
	assert.Error(t, err)
}
