package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const defaultAdminCallTimeout = 15 * time.Second

// ContactStatusAll selects every status when listing contacts.
const ContactStatusAll = "all"

// ContactAdminServiceOptions groups dependencies for ContactAdminService.
type ContactAdminServiceOptions struct {
	Contacts ports.ContactAdmin // Required
	Timeout  time.Duration
	Logger   *slog.Logger
}

// ContactAdminService lists and triages stored contact submissions.
type ContactAdminService struct {
	contacts ports.ContactAdmin
	timeout  time.Duration
	logger   *slog.Logger
}

// NewContactAdminService constructs a ContactAdminService.
func NewContactAdminService(opts ContactAdminServiceOptions) *ContactAdminService {
	if opts.Contacts == nil {
		panic("ContactAdminService requires a ContactAdmin")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactAdminService{
		contacts: opts.Contacts,
		timeout:  timeout,
		logger:   logger.With("component", "contact_admin"),
	}
}

// ParseContactFilter maps a status filter to a ContactStatus; "" and "all" select everything.
func ParseContactFilter(filter string) (model.ContactStatus, error) {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" || f == ContactStatusAll {
		return "", nil
	}
	status, ok := model.ParseContactStatus(f)
	if !ok {
		return "", apperrors.ValidationField("status", "status must be one of new, in_progress, completed, archived, all")
	}
	return status, nil
}

// List returns contacts matching filter, newest first.
func (s *ContactAdminService) List(ctx context.Context, filter string) ([]model.Contact, error) {
	status, err := ParseContactFilter(filter)
	if err != nil {
		return nil, err
	}
	return bounded.Call(ctx, "list contacts", s.timeout, func(c context.Context) ([]model.Contact, error) {
		return s.contacts.List(c, status)
	})
}

// UpdateStatus moves a contact to a new workflow status.
func (s *ContactAdminService) UpdateStatus(ctx context.Context, id, status string) error {
	id, err := contactID(id)
	if err != nil {
		return err
	}
	next, ok := model.ParseContactStatus(status)
	if !ok {
		return apperrors.ValidationField("status", "status must be one of new, in_progress, completed, archived")
	}
	err = bounded.Do(ctx, "update contact status", s.timeout, func(c context.Context) error {
		return s.contacts.UpdateStatus(c, id, next)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "contact status updated", "contact_id", id, "status", string(next))
	return nil
}

// Delete removes a contact permanently.
func (s *ContactAdminService) Delete(ctx context.Context, id string) error {
	id, err := contactID(id)
	if err != nil {
		return err
	}
	err = bounded.Do(ctx, "delete contact", s.timeout, func(c context.Context) error {
		return s.contacts.Delete(c, id)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "contact deleted", "contact_id", id)
	return nil
}

func contactID(raw string) (string, error) {
	return parseID(raw, "contact")
}

// RoleAdminServiceOptions groups dependencies for RoleAdminService.
type RoleAdminServiceOptions struct {
	Roles   ports.RoleAdmin // Required
	Timeout time.Duration
	Logger  *slog.Logger
}

// RoleAdminService grants and revokes application roles.
type RoleAdminService struct {
	roles   ports.RoleAdmin
	timeout time.Duration
	logger  *slog.Logger
}

// NewRoleAdminService constructs a RoleAdminService.
func NewRoleAdminService(opts RoleAdminServiceOptions) *RoleAdminService {
	if opts.Roles == nil {
		panic("RoleAdminService requires a RoleAdmin")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAdminCallTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleAdminService{
		roles:   opts.Roles,
		timeout: timeout,
		logger:  logger.With("component", "role_admin"),
	}
}

// GrantAdmin gives the admin role to the account registered under email.
func (s *RoleAdminService) GrantAdmin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.ValidationField("email", "a valid email is required")
	}
	err := bounded.Do(ctx, "grant admin", s.timeout, func(c context.Context) error {
		return s.roles.GrantAdminByEmail(c, email)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "admin role granted", "email", email)
	return nil
}

// Grant gives role to userID.
func (s *RoleAdminService) Grant(ctx context.Context, userID, role string) error {
	userID, r, err := roleTarget(userID, role)
	if err != nil {
		return err
	}
	err = bounded.Do(ctx, "grant role", s.timeout, func(c context.Context) error {
		return s.roles.GrantRole(c, userID, r)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "role granted", "user_id", userID, "role", string(r))
	return nil
}

// Revoke removes role from userID.
func (s *RoleAdminService) Revoke(ctx context.Context, userID, role string) error {
	userID, r, err := roleTarget(userID, role)
	if err != nil {
		return err
	}
	err = bounded.Do(ctx, "revoke role", s.timeout, func(c context.Context) error {
		return s.roles.RevokeRole(c, userID, r)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "role revoked", "user_id", userID, "role", string(r))
	return nil
}

func roleTarget(userID, role string) (string, domainauth.Role, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", "", apperrors.ValidationField("user_id", "user id is required")
	}
	r := domainauth.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return "", "", apperrors.ValidationField("role", "role must be one of admin, moderator, user")
	}
	return userID, r, nil
}

// List returns every role assignment.
func (s *RoleAdminService) List(ctx context.Context) ([]domainauth.RoleAssignment, error) {
	return bounded.Call(ctx, "list roles", s.timeout, s.roles.ListRoles)
}
