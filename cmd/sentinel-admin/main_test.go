package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinellock/sentinel-web/config"
)

func TestPrintUsage_ListsEveryCommandSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	for name := range commands() {
		assert.Contains(t, out, "  "+name)
	}
	assert.Less(t, strings.Index(out, "contact-delete"), strings.Index(out, "whoami"))
	assert.Len(t, commands(), 34)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		yes     bool
		input   string
		wantErr bool
	}{
		{name: "flag skips prompt", yes: true},
		{name: "y accepts", input: "y\n"},
		{name: "YES accepts", input: " YES \n"},
		{name: "empty declines", input: "\n", wantErr: true},
		{name: "eof declines", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmdCtx := &commandContext{In: strings.NewReader(tt.input), Out: &out}
			err := confirm(cmdCtx, tt.yes, "Proceed?")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.yes {
				assert.Empty(t, out.String())
			} else {
				assert.Contains(t, out.String(), "Proceed? [y/N]")
			}
		})
	}
}

func TestParseCredentialFlags(t *testing.T) {
	opts, err := parseCredentialFlags("signup", []string{"--email", " ada@example.com ", "--name", "Ada"}, true, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", opts.Email)
	assert.Equal(t, "Ada", opts.Name)

	_, err = parseCredentialFlags("login", nil, false, io.Discard)
	require.EqualError(t, err, "--email is required")

	_, err = parseCredentialFlags("login", []string{"--name", "x"}, false, io.Discard)
	require.Error(t, err)
}

func TestReadPassword_PromptsWhenFlagMissing(t *testing.T) {
	var errOut bytes.Buffer
	cmdCtx := &commandContext{In: strings.NewReader("s3cret\r\n"), ErrOut: &errOut}

	pw, err := readPassword(cmdCtx, "")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password: ", errOut.String())

	pw, err = readPassword(cmdCtx, "flag")
	require.NoError(t, err)
	assert.Equal(t, "flag", pw)
}

func TestParseMigrateFlags(t *testing.T) {
	cmdCtx := &commandContext{ErrOut: io.Discard}

	opts, err := parseMigrateFlags(cmdCtx, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)

	_, err = parseMigrateFlags(cmdCtx, []string{"--timeout", "0s"})
	require.Error(t, err)
}

func TestRunContactStatus_RequiresTwoArgs(t *testing.T) {
	err := runContactStatus(&commandContext{}, []string{"only-id"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}

// fakeBackend serves the data API paths the CLI touches.
type fakeBackend struct {
	down     atomic.Bool
	inserted atomic.Int32
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/rest/v1/contact_submissions" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPost:
		if f.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		f.inserted.Add(1)
		w.WriteHeader(http.StatusCreated)
		if r.Header.Get("Prefer") == "return=representation" {
			_, _ = io.WriteString(w, `[{"id":"8b7c2a58-3a43-4b8d-9a3c-0f2d3f1b5f00"}]`)
		}
	case http.MethodGet:
		_, _ = io.WriteString(w, `[{"id":"8b7c2a58-3a43-4b8d-9a3c-0f2d3f1b5f00","name":"Ada Lovelace","email":"ada@example.com",`+
			`"message":"Need a pentest","status":"new","created_at":"2025-06-01T00:00:00Z","updated_at":"2025-06-01T00:00:00Z"}]`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func devCommandContext(t *testing.T, backendURL string) *commandContext {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("DEV_AUTH_EMAIL", "ops@sentinellock.com")
	t.Setenv("DEV_AUTH_PASSWORD", "correct horse")
	t.Setenv("BACKEND_URL", backendURL)
	t.Setenv("BACKEND_ANON_KEY", "anon")
	t.Setenv("LOCAL_STORE_PATH", filepath.Join(dir, "local.db"))
	t.Setenv("PENDING_STORE", "sqlite")
	t.Setenv("SITEMAP_OUTPUT", filepath.Join(dir, "public", "sitemap.xml"))

	var cfg config.AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	return &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.DiscardHandler),
		Config: cfg,
		In:     strings.NewReader(""),
		Out:    io.Discard,
		ErrOut: io.Discard,
		Now:    time.Now,
	}
}

func run(t *testing.T, cmdCtx *commandContext, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmdCtx.Out = &out
	cmd, ok := commands()[name]
	require.True(t, ok, name)
	err := cmd.run(cmdCtx, args)
	return out.String(), err
}

func TestCLI_DevModeWorkflow(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	cmdCtx := devCommandContext(t, srv.URL)

	_, err := run(t, cmdCtx, "contacts")
	require.ErrorIs(t, err, errNotSignedIn)

	_, err = run(t, cmdCtx, "login", "--email", "ops@sentinellock.com", "--password", "wrong")
	require.Error(t, err)

	out, err := run(t, cmdCtx, "login", "--email", "ops@sentinellock.com", "--password", "correct horse")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ops@sentinellock.com (admin: true)")

	out, err = run(t, cmdCtx, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ops@sentinellock.com")

	submit := []string{"--name", "Ada Lovelace", "--email", "ada@example.com", "--message", "Need a pentest"}

	out, err = run(t, cmdCtx, "contact-submit", submit...)
	require.NoError(t, err)
	assert.Contains(t, out, "Message sent (rest_insert)")
	assert.EqualValues(t, 1, backend.inserted.Load())

	backend.down.Store(true)
	out, err = run(t, cmdCtx, "contact-submit", submit...)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved locally")

	out, err = run(t, cmdCtx, "pending-list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Total: 1")

	backend.down.Store(false)
	out, err = run(t, cmdCtx, "pending-retry")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent: 1, still pending: 0")

	out, err = run(t, cmdCtx, "pending-list")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending submissions")

	out, err = run(t, cmdCtx, "contacts", "--status", "new")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Total: 1")

	_, err = run(t, cmdCtx, "contacts", "--status", "spam")
	require.Error(t, err)

	out, err = run(t, cmdCtx, "sitemap")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")
	raw, err := os.ReadFile(cmdCtx.Config.Site.SitemapOutput)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<urlset")

	_, err = run(t, cmdCtx, "logout")
	require.NoError(t, err)
	_, err = run(t, cmdCtx, "contacts")
	require.ErrorIs(t, err, errNotSignedIn)
}

func TestCLI_PendingClearAbortsWithoutConfirmation(t *testing.T) {
	backend := &fakeBackend{}
	backend.down.Store(true)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	cmdCtx := devCommandContext(t, srv.URL)

	_, err := run(t, cmdCtx, "contact-submit", "--name", "Ada", "--email", "ada@example.com", "--message", "hi")
	require.NoError(t, err)

	cmdCtx.In = strings.NewReader("n\n")
	_, err = run(t, cmdCtx, "pending-clear")
	require.EqualError(t, err, "aborted by user")

	out, err := run(t, cmdCtx, "pending-clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 pending submission(s)")
}
