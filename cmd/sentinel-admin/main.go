package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sentinellock/sentinel-web/config"
	"github.com/sentinellock/sentinel-web/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
	Now    func() time.Time
}

func main() {
	// Logs go to stderr so command output stays clean for pipes.
	logger := bootstrap.InitLoggerTo(os.Stderr, slog.LevelWarn)

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		Now:    time.Now,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	stop()
	if runErr != nil {
		if writeErr := writef(os.Stderr, "%s: %v\n", cmdName, runErr); writeErr != nil {
			logger.Error("print command error failed", "error", writeErr)
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in and persist the session locally", runLogin},
		{"signup", "Create an account (email confirmation may be required)", runSignup},
		{"logout", "Sign out and forget the local session", runLogout},
		{"whoami", "Show the signed-in identity and admin status", runWhoami},
		{"contact-submit", "Submit a contact form, queueing it locally on failure", runContactSubmit},
		{"pending-list", "List locally queued contact submissions", runPendingList},
		{"pending-retry", "Retry every locally queued submission", runPendingRetry},
		{"pending-clear", "Discard every locally queued submission", runPendingClear},
		{"contacts", "List stored contact submissions (admin)", runContacts},
		{"contact-status", "Set the status of a contact submission (admin)", runContactStatus},
		{"contact-delete", "Delete a contact submission (admin)", runContactDelete},
		{"grant-admin", "Grant the admin role to an account by email (admin)", runGrantAdmin},
		{"revoke-role", "Revoke a role from a user (admin)", runRevokeRole},
		{"roles", "List role assignments (admin)", runRoles},
		{"grant-role", "Grant a role to a user by id, moderator by default (admin)", runGrantRole},
		{"users", "List user profiles with their roles (admin)", runUsers},
		{"posts", "List blog posts, drafts included (admin)", runPosts},
		{"post-save", "Create or update a blog post (admin)", runPostSave},
		{"post-publish", "Publish a blog post now (admin)", runPostPublish},
		{"post-unpublish", "Return a blog post to draft (admin)", runPostUnpublish},
		{"post-delete", "Delete a blog post (admin)", runPostDelete},
		{"plans", "List pricing plans (admin)", runPlans},
		{"plan-save", "Create or update a pricing plan from JSON (admin)", runPlanSave},
		{"plan-delete", "Delete a pricing plan (admin)", runPlanDelete},
		{"services", "List service offerings (admin)", runServices},
		{"service-save", "Create or update a service offering from JSON (admin)", runServiceSave},
		{"service-delete", "Delete a service offering (admin)", runServiceDelete},
		{"testimonials", "List testimonials (admin)", runTestimonials},
		{"testimonial-save", "Create or update a testimonial from JSON (admin)", runTestimonialSave},
		{"testimonial-delete", "Delete a testimonial (admin)", runTestimonialDelete},
		{"settings", "List site settings (admin)", runSettings},
		{"setting-set", "Update site settings as key=value pairs (admin)", runSettingSet},
		{"sitemap", "Generate sitemap.xml", runSitemap},
		{"migrate", "Run database migrations", runMigrations},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: sentinel-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// confirm asks a yes/no question unless yes is already set.
func confirm(cmdCtx *commandContext, yes bool, prompt string) error {
	if yes {
		return nil
	}
	if err := writef(cmdCtx.Out, "%s [y/N]: ", prompt); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(cmdCtx.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
