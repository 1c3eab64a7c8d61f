package authroles

// Package authroles provides RoleLookup adapters that do not need the backend.

import (
	"context"
	"strings"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// StaticRoleLookup grants roles from configuration. Used with dev auth, where no
// user_roles table is reachable.
type StaticRoleLookup struct {
	// Admins lists user ids (or emails) holding the admin role.
	Admins []string
	// Moderators lists user ids holding the moderator role.
	Moderators []string
}

var _ ports.RoleLookup = StaticRoleLookup{}

// HasRole reports whether userID is listed for role. Every known user holds RoleUser.
func (s StaticRoleLookup) HasRole(ctx context.Context, userID string, role domainauth.Role) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	switch role {
	case domainauth.RoleAdmin:
		return contains(s.Admins, userID), nil
	case domainauth.RoleModerator:
		return contains(s.Moderators, userID), nil
	case domainauth.RoleUser:
		return userID != "", nil
	default:
		return false, nil
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item != "" && strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
