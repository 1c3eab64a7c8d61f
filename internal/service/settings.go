package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const settingWriteConcurrency = 4

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Settings ports.SiteSettings // Required
	Timeout  time.Duration
	Logger   *slog.Logger
}

// SettingsService reads and edits site settings.
type SettingsService struct {
	settings ports.SiteSettings
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	if opts.Settings == nil {
		panic("SettingsService requires SiteSettings")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		settings: opts.Settings,
		timeout:  timeout,
		logger:   logger.With("component", "settings"),
	}
}

// List returns every setting ordered by key.
func (s *SettingsService) List(ctx context.Context) ([]model.SiteSetting, error) {
	return bounded.Call(ctx, "list settings", s.timeout, s.settings.ListSettings)
}

// Values returns settings keyed by name with values converted by type.
func (s *SettingsService) Values(ctx context.Context) (map[string]any, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Typed()
	}
	return out, nil
}

// Update writes every key in updates. All values are checked against their
// setting type before anything is written; unknown keys are rejected.
func (s *SettingsService) Update(ctx context.Context, updates map[string]string) error {
	if len(updates) == 0 {
		return apperrors.Validation("no settings to update")
	}
	rows, err := s.List(ctx)
	if err != nil {
		return err
	}
	types := make(map[string]model.SettingType, len(rows))
	for _, r := range rows {
		types[r.Key] = r.Type
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]string, len(updates))
	for _, key := range keys {
		typ, ok := types[key]
		if !ok {
			return apperrors.ValidationField(key, key+" is not a known setting")
		}
		v, err := model.NormalizeSettingValue(key, typ, updates[key])
		if err != nil {
			return validationError(err)
		}
		values[key] = v
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settingWriteConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			return bounded.Do(gctx, "update setting "+key, s.timeout, func(c context.Context) error {
				return s.settings.UpdateSetting(c, key, values[key])
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "settings updated", "keys", strings.Join(keys, ","))
	return nil
}
