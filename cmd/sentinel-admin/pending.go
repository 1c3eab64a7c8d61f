package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/util"
)

func parseContactFlags(cmdCtx *commandContext, args []string) (model.ContactSubmission, error) {
	fs := flag.NewFlagSet("contact-submit", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)

	var name, email, company, phone, service, message string
	fs.StringVar(&name, "name", "", "Contact name")
	fs.StringVar(&email, "email", "", "Contact email")
	fs.StringVar(&company, "company", "", "Company (optional)")
	fs.StringVar(&phone, "phone", "", "Phone (optional)")
	fs.StringVar(&service, "service", "", "Service of interest (optional)")
	fs.StringVar(&message, "message", "", "Message body")
	if err := fs.Parse(args); err != nil {
		return model.ContactSubmission{}, err
	}

	sub := model.ContactSubmission{Name: name, Email: email, Message: message}
	if company != "" {
		sub.Company = &company
	}
	if phone != "" {
		sub.Phone = &phone
	}
	if service != "" {
		sub.Service = &service
	}
	return sub, nil
}

func runContactSubmit(cmdCtx *commandContext, args []string) error {
	sub, err := parseContactFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		out, err := rt.Services.Submissions.SubmitOrEnqueue(cmdCtx.Ctx, sub)
		if err != nil {
			if field := apperrors.GetField(err); field != "" {
				return fmt.Errorf("%s: %s", field, apperrors.UserMessage(err))
			}
			return err
		}
		if out.Queued {
			return writef(cmdCtx.Out,
				"Saved locally: the message could not be sent right now and is queued as %s. Run pending-retry later.\n",
				out.PendingID)
		}
		return writef(cmdCtx.Out, "Message sent (%s)\n", out.Strategy)
	})
}

func runPendingList(cmdCtx *commandContext, _ []string) error {
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		entries, err := rt.Services.Submissions.ListPending(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return writeln(cmdCtx.Out, "No pending submissions")
		}
		return renderPending(cmdCtx, entries)
	})
}

func renderPending(cmdCtx *commandContext, entries []model.PendingSubmission) error {
	now := cmdCtx.Now()
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tQUEUED\tNAME\tEMAIL\tSERVICE\tMESSAGE"); err != nil {
		return fmt.Errorf("write pending header: %w", err)
	}
	for _, e := range entries {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			util.FormatAge(e.Timestamp, now),
			util.Truncate(e.Name, 24),
			e.Email,
			orDash(util.Deref(e.Service)),
			util.Truncate(singleLine(e.Message), 40),
		); err != nil {
			return fmt.Errorf("write pending entry: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush pending table: %w", err)
	}
	return writef(cmdCtx.Out, "Total: %d\n", len(entries))
}

func runPendingRetry(cmdCtx *commandContext, _ []string) error {
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		res, err := rt.Services.Submissions.RetryAll(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if res.Succeeded == 0 && res.Failed == 0 {
			return writeln(cmdCtx.Out, "No pending submissions")
		}
		if err := writef(cmdCtx.Out, "Sent: %d, still pending: %d\n", res.Succeeded, res.Failed); err != nil {
			return err
		}
		if res.Failed > 0 {
			return errors.New("some submissions could not be sent")
		}
		return nil
	})
}

func runPendingClear(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("pending-clear", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		entries, err := rt.Services.Submissions.ListPending(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return writeln(cmdCtx.Out, "No pending submissions")
		}
		if err := confirm(cmdCtx, *yes, fmt.Sprintf("Discard %d pending submission(s)?", len(entries))); err != nil {
			return err
		}
		if err := rt.Services.Submissions.ClearAll(cmdCtx.Ctx); err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Cleared %d pending submission(s)\n", len(entries))
	})
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
