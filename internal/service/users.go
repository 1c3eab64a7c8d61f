package service

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// UserSummary is a profile with the roles its user holds.
type UserSummary struct {
	model.Profile
	Roles []domainauth.Role `json:"roles"`
}

// UserDirectoryServiceOptions groups dependencies for UserDirectoryService.
type UserDirectoryServiceOptions struct {
	Profiles ports.ProfileSource // Required
	Roles    ports.RoleAdmin     // Required
	Timeout  time.Duration
}

// UserDirectoryService lists known users with their roles.
type UserDirectoryService struct {
	profiles ports.ProfileSource
	roles    ports.RoleAdmin
	timeout  time.Duration
}

// NewUserDirectoryService constructs a UserDirectoryService.
func NewUserDirectoryService(opts UserDirectoryServiceOptions) *UserDirectoryService {
	if opts.Profiles == nil || opts.Roles == nil {
		panic("UserDirectoryService requires a ProfileSource and a RoleAdmin")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	return &UserDirectoryService{profiles: opts.Profiles, roles: opts.Roles, timeout: timeout}
}

// List returns every profile, newest first, with its roles sorted by name.
func (s *UserDirectoryService) List(ctx context.Context) ([]UserSummary, error) {
	var (
		profiles []model.Profile
		roles    []domainauth.RoleAssignment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = bounded.Call(gctx, "list profiles", s.timeout, s.profiles.ListProfiles)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = bounded.Call(gctx, "list roles", s.timeout, s.roles.ListRoles)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byUser := make(map[string][]domainauth.Role, len(roles))
	for _, r := range roles {
		byUser[r.UserID] = append(byUser[r.UserID], r.Role)
	}
	out := make([]UserSummary, 0, len(profiles))
	for _, p := range profiles {
		held := byUser[p.ID]
		slices.Sort(held)
		out = append(out, UserSummary{Profile: p, Roles: held})
	}
	return out, nil
}
