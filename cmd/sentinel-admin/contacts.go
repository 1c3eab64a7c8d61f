package main

import (
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/util"
)

var errContactAdminUnavailable = errors.New("contact admin is not configured: set BACKEND_URL or DB_ENABLED")

// withAdmin runs fn after the admin gate passes.
func withAdmin(cmdCtx *commandContext, fn func(rt *cliRuntime) error) error {
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		if err := requireAdmin(cmdCtx.Ctx, rt); err != nil {
			return err
		}
		return fn(rt)
	})
}

func runContacts(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	status := fs.String("status", "all", "Filter: new, in_progress, completed, archived or all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Contacts == nil {
			return errContactAdminUnavailable
		}
		rows, err := rt.Services.Contacts.List(cmdCtx.Ctx, *status)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return writeln(cmdCtx.Out, "No contact submissions")
		}
		return renderContacts(cmdCtx, rows)
	})
}

func renderContacts(cmdCtx *commandContext, rows []model.Contact) error {
	now := cmdCtx.Now()
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tSTATUS\tRECEIVED\tNAME\tEMAIL\tCOMPANY\tSERVICE\tMESSAGE"); err != nil {
		return fmt.Errorf("write contacts header: %w", err)
	}
	for _, c := range rows {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.Status,
			util.FormatAge(c.CreatedAt, now),
			util.Truncate(c.Name, 24),
			c.Email,
			orDash(util.Truncate(util.Deref(c.Company), 20)),
			orDash(util.Deref(c.Service)),
			util.Truncate(singleLine(c.Message), 40),
		); err != nil {
			return fmt.Errorf("write contact row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush contacts table: %w", err)
	}
	return writef(cmdCtx.Out, "Total: %d\n", len(rows))
}

func runContactStatus(cmdCtx *commandContext, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: sentinel-admin contact-status <id> <new|in_progress|completed|archived>")
	}
	id, status := args[0], args[1]

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Contacts == nil {
			return errContactAdminUnavailable
		}
		if err := rt.Services.Contacts.UpdateStatus(cmdCtx.Ctx, id, status); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Contact %s marked %s\n", id, status)
	})
}

func runContactDelete(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("contact-delete", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sentinel-admin contact-delete [--yes] <id>")
	}
	id := fs.Arg(0)

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Contacts == nil {
			return errContactAdminUnavailable
		}
		if err := confirm(cmdCtx, *yes, fmt.Sprintf("Delete contact submission %s?", id)); err != nil {
			return err
		}
		if err := rt.Services.Contacts.Delete(cmdCtx.Ctx, id); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Contact %s deleted\n", id)
	})
}
