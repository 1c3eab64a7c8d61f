package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/mocks"
)

var testSettings = []model.SiteSetting{
	{Key: "maintenance_mode", Value: "false", Type: model.SettingTypeBoolean, Category: "general"},
	{Key: "site_name", Value: "SentinelLock", Type: model.SettingTypeString, Category: "general"},
	{Key: "smtp_port", Value: "587", Type: model.SettingTypeNumber, Category: "email"},
}

func TestNewSettingsService_RequiredDependency(t *testing.T) {
	assert.Panics(t, func() { NewSettingsService(SettingsServiceOptions{}) })
}

func TestSettingsService_Values(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSiteSettings(ctrl)
	store.EXPECT().ListSettings(gomock.Any()).Return(testSettings, nil)

	got, err := NewSettingsService(SettingsServiceOptions{Settings: store}).Values(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"maintenance_mode": false,
		"site_name":        "SentinelLock",
		"smtp_port":        float64(587),
	}, got)
}

func TestSettingsService_UpdateWritesNormalizedValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSiteSettings(ctrl)
	store.EXPECT().ListSettings(gomock.Any()).Return(testSettings, nil)

	var mu sync.Mutex
	written := map[string]string{}
	store.EXPECT().UpdateSetting(gomock.Any(), gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			written[key] = value
			return nil
		})

	err := NewSettingsService(SettingsServiceOptions{Settings: store}).Update(context.Background(), map[string]string{
		"maintenance_mode": " TRUE ",
		"site_name":        " Sentinel Lock ",
		"smtp_port":        "2525",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"maintenance_mode": "true",
		"site_name":        "Sentinel Lock",
		"smtp_port":        "2525",
	}, written)
}

func TestSettingsService_UpdateRejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		updates map[string]string
		field   string
	}{
		{"unknown key", map[string]string{"site_name": "x", "theme": "dark"}, "theme"},
		{"wrong type", map[string]string{"site_name": "x", "smtp_port": "lots"}, "smtp_port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockSiteSettings(ctrl)
			store.EXPECT().ListSettings(gomock.Any()).Return(testSettings, nil)
			store.EXPECT().UpdateSetting(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			err := NewSettingsService(SettingsServiceOptions{Settings: store}).Update(context.Background(), tt.updates)

			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestSettingsService_UpdateRequiresChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewSettingsService(SettingsServiceOptions{Settings: mocks.NewMockSiteSettings(ctrl)})

	assert.True(t, apperrors.IsValidation(svc.Update(context.Background(), nil)))
}

func TestSettingsService_UpdateReturnsWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSiteSettings(ctrl)
	store.EXPECT().ListSettings(gomock.Any()).Return(testSettings, nil)
	store.EXPECT().UpdateSetting(gomock.Any(), "smtp_port", "25").Return(errors.New("write failed"))

	err := NewSettingsService(SettingsServiceOptions{Settings: store}).Update(context.Background(), map[string]string{"smtp_port": "25"})

	assert.EqualError(t, err, "write failed")
}
