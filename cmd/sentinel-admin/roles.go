package main

import (
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/util"
)

var errRoleAdminUnavailable = errors.New("role admin is not configured: set BACKEND_URL or DB_ENABLED")

func runGrantAdmin(cmdCtx *commandContext, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sentinel-admin grant-admin <email>")
	}
	email := args[0]

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.RoleAdmin == nil {
			return errRoleAdminUnavailable
		}
		if err := rt.Services.RoleAdmin.GrantAdmin(cmdCtx.Ctx, email); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Granted admin to %s\n", email)
	})
}

func runRevokeRole(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("revoke-role", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	role := fs.String("role", string(domainauth.RoleAdmin), "Role to revoke: admin, moderator or user")
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sentinel-admin revoke-role [--role admin] [--yes] <user-id>")
	}
	userID := fs.Arg(0)

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.RoleAdmin == nil {
			return errRoleAdminUnavailable
		}
		if id := rt.Services.Session.Identity(); id != nil && id.ID == userID && *role == string(domainauth.RoleAdmin) {
			if err := writeln(cmdCtx.Out, "Warning: you are revoking your own admin role."); err != nil {
				return err
			}
		}
		if err := confirm(cmdCtx, *yes, fmt.Sprintf("Revoke %s from %s?", *role, userID)); err != nil {
			return err
		}
		if err := rt.Services.RoleAdmin.Revoke(cmdCtx.Ctx, userID, *role); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Revoked %s from %s\n", *role, userID)
	})
}

func runRoles(cmdCtx *commandContext, _ []string) error {
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.RoleAdmin == nil {
			return errRoleAdminUnavailable
		}
		rows, err := rt.Services.RoleAdmin.List(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return writeln(cmdCtx.Out, "No role assignments")
		}
		now := cmdCtx.Now()
		tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "USER ID\tROLE\tGRANTED"); err != nil {
			return fmt.Errorf("write roles header: %w", err)
		}
		for _, r := range rows {
			if err := writef(tw, "%s\t%s\t%s\n", r.UserID, r.Role, util.FormatAge(r.CreatedAt, now)); err != nil {
				return fmt.Errorf("write role row: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flush roles table: %w", err)
		}
		return nil
	})
}
