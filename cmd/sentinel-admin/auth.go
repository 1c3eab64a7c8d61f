package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sentinellock/sentinel-web/internal/util"
)

type credentialOptions struct {
	Email    string
	Password string
	Name     string
}

func parseCredentialFlags(name string, args []string, withName bool, errOut io.Writer) (credentialOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opts credentialOptions
	fs.StringVar(&opts.Email, "email", "", "Account email")
	fs.StringVar(&opts.Password, "password", "", "Account password (prompted on stdin when omitted)")
	if withName {
		fs.StringVar(&opts.Name, "name", "", "Display name")
	}
	if err := fs.Parse(args); err != nil {
		return credentialOptions{}, err
	}
	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Email == "" {
		return credentialOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

// readPassword returns the flag value or reads one line from in.
func readPassword(cmdCtx *commandContext, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if err := writef(cmdCtx.ErrOut, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	line, err := bufio.NewReader(cmdCtx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseCredentialFlags("login", args, false, cmdCtx.ErrOut)
	if err != nil {
		return err
	}
	password, err := readPassword(cmdCtx, opts.Password)
	if err != nil {
		return err
	}

	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		session := rt.Services.Session
		if session == nil {
			return errAuthUnavailable
		}
		// Failures were already reported as notices.
		if err := session.SignIn(cmdCtx.Ctx, opts.Email, password); err != nil {
			return errors.New("sign in failed")
		}
		id := session.Identity()
		admin := session.CheckAdminRole(cmdCtx.Ctx, id.ID)
		return writef(cmdCtx.Out, "Signed in as %s (admin: %t)\n", id.Email, admin)
	})
}

func runSignup(cmdCtx *commandContext, args []string) error {
	opts, err := parseCredentialFlags("signup", args, true, cmdCtx.ErrOut)
	if err != nil {
		return err
	}
	password, err := readPassword(cmdCtx, opts.Password)
	if err != nil {
		return err
	}

	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		session := rt.Services.Session
		if session == nil {
			return errAuthUnavailable
		}
		if err := session.SignUp(cmdCtx.Ctx, opts.Email, password, opts.Name); err != nil {
			return errors.New("sign up failed")
		}
		return nil
	})
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		session := rt.Services.Session
		if session == nil {
			return errAuthUnavailable
		}
		if err := session.RestoreSession(cmdCtx.Ctx); err != nil {
			cmdCtx.Logger.Warn("restore before sign out failed", "error", err)
		}
		session.SignOut(cmdCtx.Ctx)
		return nil
	})
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		session := rt.Services.Session
		if session == nil {
			return errAuthUnavailable
		}
		if err := session.RestoreSession(cmdCtx.Ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		id := session.Identity()
		if id == nil {
			return writeln(cmdCtx.Out, "Not signed in")
		}
		admin := session.CheckAdminRole(cmdCtx.Ctx, id.ID)

		now := cmdCtx.Now()
		lines := []string{
			"User ID:    " + id.ID,
			"Email:      " + id.Email,
			"Name:       " + orDash(id.DisplayName),
			fmt.Sprintf("Confirmed:  %t", id.EmailConfirmed()),
			"Signed in:  " + util.FormatAge(id.AuthenticatedAt, now),
			fmt.Sprintf("Admin:      %t", admin),
			"State:      " + string(session.State()),
		}
		if !id.Credentials.ExpiresAt.IsZero() {
			lines = append(lines, "Expires in: "+util.FormatElapsed(id.Credentials.ExpiresAt.Sub(now).Round(time.Second)))
		}
		for _, l := range lines {
			if err := writeln(cmdCtx.Out, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
