package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sentinellock/sentinel-web/internal/bootstrap"
)

const defaultMigrationTimeout = 5 * time.Minute

func runSitemap(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("sitemap", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	output := fs.String("o", cmdCtx.Config.Site.SitemapOutput, "Output path, or - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withRuntime(cmdCtx, func(rt *cliRuntime) error {
		var buf bytes.Buffer
		res, err := rt.Services.Sitemap.Generate(cmdCtx.Ctx, &buf)
		if err != nil {
			return err
		}
		if res.Warning != "" {
			if err := writef(cmdCtx.ErrOut, "warning: %s\n", res.Warning); err != nil {
				return err
			}
		}

		if *output == "-" {
			_, err := buf.WriteTo(cmdCtx.Out)
			return err
		}
		if dir := filepath.Dir(*output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // sitemap is public
			return fmt.Errorf("write sitemap: %w", err)
		}
		return writef(cmdCtx.Out, "Wrote %s (%d URLs, %d blog posts)\n", *output, res.URLs, res.BlogPosts)
	})
}

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(cmdCtx *commandContext, args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)

	opts := migrateOptions{}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete",
	)
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(cmdCtx, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	applied, err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return writeln(cmdCtx.Out, "Database is up to date")
	}
	for _, v := range applied {
		if err := writef(cmdCtx.Out, "Applied %s\n", v); err != nil {
			return err
		}
	}
	return nil
}
