package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toneill57/muva-chat-sub004/internal/catalog"
	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

func TestSettingOrDefault(t *testing.T) {
	repo := newFakeSettingsRepo()
	service := NewSettingsService(repo)

	assert.Equal(t, "12345", service.SettingOrDefault(domain.SettingHotelSireCode, "12345"))

	require.NoError(t, repo.Update(domain.SettingHotelSireCode, "67890"))
	assert.Equal(t, "67890", service.SettingOrDefault(domain.SettingHotelSireCode, "12345"))
}

func TestTenantParamsWithoutSettingsUseDefaults(t *testing.T) {
	params := NewTenantParams(nil, TenantDefaults{
		HotelSireCode: "12345",
		HotelCityCode: "88001",
		NotifyEmail:   "ops@hotel.test",
		TraEnabled:    true,
	})

	assert.Equal(t, "12345", params.HotelSireCode())
	assert.Equal(t, "88001", params.HotelCityCode())
	assert.Equal(t, "ops@hotel.test", params.NotifyEmail())
	assert.True(t, params.TraEnabled())
}

func TestGuestDataServiceReadsSettingsPerRequest(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	titularRepo := newFakeTitularRepo()
	companionRepo := newFakeCompanionRepo()
	resolver := catalog.NewResolver()
	service := NewGuestDataService(
		NewFieldMapper(resolver, titularRepo, companionRepo),
		NewProgressTracker(),
		resolver,
		titularRepo,
		companionRepo,
		NewTenantParams(NewSettingsService(settingsRepo), TenantDefaults{
			HotelSireCode: "12345",
			HotelCityCode: "88001",
		}),
	)

	progress, err := service.GetProgress("res-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "12345", progress.Fields.HotelSireCode)

	// Un cambio en los settings aplica en la siguiente solicitud, sin
	// reconstruir el servicio ni reiniciar el servidor
	require.NoError(t, settingsRepo.Update(domain.SettingHotelSireCode, "67890"))
	require.NoError(t, settingsRepo.Update(domain.SettingHotelCityCode, "11001"))

	progress, err = service.GetProgress("res-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "67890", progress.Fields.HotelSireCode)
	assert.Equal(t, "11001", progress.Fields.HotelCityCode)
}

func TestTraToggleAppliesPerSubmission(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	titularRepo := newFakeTitularRepo()
	companionRepo := newFakeCompanionRepo()
	submissionRepo := newFakeSubmissionRepo()
	sirePortal := &fakePortal{reference: "SIRE-001"}
	traPortal := &fakePortal{reference: "TRA-001"}

	service := NewComplianceService(
		submissionRepo,
		titularRepo,
		companionRepo,
		NewFieldMapper(catalog.NewResolver(), titularRepo, companionRepo),
		NewProgressTracker(),
		sirePortal,
		traPortal,
		nil,
		nil,
		NewTenantParams(NewSettingsService(settingsRepo), TenantDefaults{
			HotelSireCode: "12345",
			HotelCityCode: "88001",
		}),
		"tenant-1",
		time.Second,
	)

	require.NoError(t, titularRepo.UpsertTitularFields(completeGuest("res-1", 1)))

	submission, err := service.Submit(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, 0, traPortal.callCount())
	assert.Nil(t, submission.TraStatus)

	require.NoError(t, settingsRepo.Update(domain.SettingTraEnabled, "true"))

	submission, err = service.Submit(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, 1, traPortal.callCount())
	require.NotNil(t, submission.TraStatus)
	assert.Equal(t, domain.PortalSubmitted, *submission.TraStatus)
	require.NotNil(t, submission.TraReferenceNumber)
	assert.Equal(t, "TRA-001", *submission.TraReferenceNumber)
}
