package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

const stamp = `"created_at":"2025-06-01T00:00:00Z","updated_at":"2025-06-01T00:00:00Z"`

// contentBackend serves the content tables the admin commands edit and records
// the bodies it receives.
type contentBackend struct {
	mu       sync.Mutex
	bodies   map[string][]map[string]any
	settings map[string]string
}

func newContentBackend() *contentBackend {
	return &contentBackend{
		bodies:   map[string][]map[string]any{},
		settings: map[string]string{"maintenance_mode": "false", "smtp_port": "587"},
	}
}

func (c *contentBackend) record(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies[r.Method+" "+r.URL.Path] = append(c.bodies[r.Method+" "+r.URL.Path], body)
	return body
}

func (c *contentBackend) sent(key string) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bodies[key]
}

func (c *contentBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method + " " + r.URL.Path {
	case "POST /rest/v1/pricing_plans":
		body := c.record(r)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"7d1f7b62-4a9e-4c55-9a0e-0c7e5b0f3a11","name":"`+body["name"].(string)+
			`","price":"$499","period":"month","features":["Scan"],"is_active":true,"display_order":1,`+stamp+`}]`)
	case "GET /rest/v1/pricing_plans":
		_, _ = io.WriteString(w, `[{"id":"7d1f7b62-4a9e-4c55-9a0e-0c7e5b0f3a11","name":"Starter","price":"$499","period":"month",`+
			`"features":[],"is_popular":true,"is_active":true,"display_order":1,`+stamp+`}]`)
	case "POST /rest/v1/blog_posts":
		body := c.record(r)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"0b6d2c1e-5f3a-4e8b-9d7c-1a2b3c4d5e6f","title":"x","slug":"`+body["slug"].(string)+
			`","content":"x","published":true,`+stamp+`}]`)
	case "GET /rest/v1/site_settings":
		c.mu.Lock()
		defer c.mu.Unlock()
		_, _ = io.WriteString(w, `[`+
			`{"id":"1","setting_key":"maintenance_mode","setting_value":"`+c.settings["maintenance_mode"]+`","setting_type":"boolean","category":"general",`+stamp+`},`+
			`{"id":"2","setting_key":"smtp_port","setting_value":"`+c.settings["smtp_port"]+`","setting_type":"number","category":"email",`+stamp+`}]`)
	case "PATCH /rest/v1/site_settings":
		body := c.record(r)
		key := strings.TrimPrefix(r.URL.Query().Get("setting_key"), "eq.")
		c.mu.Lock()
		c.settings[key] = body["setting_value"].(string)
		c.mu.Unlock()
		_, _ = io.WriteString(w, `[{"setting_key":"`+key+`"}]`)
	default:
		http.NotFound(w, r)
	}
}

func signedInContentCLI(t *testing.T) (*commandContext, *contentBackend) {
	t.Helper()
	backend := newContentBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	cmdCtx := devCommandContext(t, srv.URL)
	_, err := run(t, cmdCtx, "login", "--email", "ops@sentinellock.com", "--password", "correct horse")
	require.NoError(t, err)
	return cmdCtx, backend
}

func TestCLI_PlanSaveAndList(t *testing.T) {
	cmdCtx, backend := signedInContentCLI(t)

	cmdCtx.In = strings.NewReader(`{"name":" Starter ","price":"$499","period":"month","features":["Scan"," ","Scan"],"is_active":true,"display_order":1}`)
	out, err := run(t, cmdCtx, "plan-save", "-f", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved plan")
	assert.Contains(t, out, `"name": "Starter"`)

	sent := backend.sent("POST /rest/v1/pricing_plans")
	require.Len(t, sent, 1)
	assert.Equal(t, "Starter", sent[0]["name"])
	assert.Equal(t, []any{"Scan"}, sent[0]["features"])

	out, err = run(t, cmdCtx, "plans")
	require.NoError(t, err)
	assert.Contains(t, out, "Starter")
	assert.Contains(t, out, "active,popular")
}

func TestCLI_PlanSaveRejectsUnknownFields(t *testing.T) {
	cmdCtx, backend := signedInContentCLI(t)

	cmdCtx.In = strings.NewReader(`{"name":"Starter","prise":"$499"}`)
	_, err := run(t, cmdCtx, "plan-save", "-f", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prise")
	assert.Empty(t, backend.sent("POST /rest/v1/pricing_plans"))
}

func TestCLI_PostSaveReadsContentAndDerivesSlug(t *testing.T) {
	cmdCtx, backend := signedInContentCLI(t)

	cmdCtx.In = strings.NewReader("Rotate your keys.\n")
	out, err := run(t, cmdCtx, "post-save", "-title", "Zero Trust, Explained", "-content", "-", "-tags", "security, zero-trust,", "-publish")
	require.NoError(t, err)
	assert.Contains(t, out, "(zero-trust-explained)")

	sent := backend.sent("POST /rest/v1/blog_posts")
	require.Len(t, sent, 1)
	assert.Equal(t, "zero-trust-explained", sent[0]["slug"])
	assert.Equal(t, "Rotate your keys.", sent[0]["content"])
	assert.Equal(t, []any{"security", "zero-trust"}, sent[0]["tags"])
	assert.Equal(t, true, sent[0]["published"])
	assert.NotNil(t, sent[0]["published_at"])
	assert.Nil(t, sent[0]["author_id"], "dev identities are not accounts")
	assert.Nil(t, sent[0]["excerpt"])
}

func TestCLI_SettingSet(t *testing.T) {
	cmdCtx, backend := signedInContentCLI(t)

	out, err := run(t, cmdCtx, "setting-set", "maintenance_mode=TRUE", "smtp_port= 2525 ")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 setting(s)")
	assert.Len(t, backend.sent("PATCH /rest/v1/site_settings"), 2)

	out, err = run(t, cmdCtx, "settings", "-category", "general")
	require.NoError(t, err)
	assert.Contains(t, out, "maintenance_mode")
	assert.Contains(t, out, "true")
	assert.NotContains(t, out, "smtp_port")

	_, err = run(t, cmdCtx, "setting-set", "smtp_port=lots")
	require.Error(t, err)
	assert.Equal(t, "smtp_port", apperrors.GetField(err))

	_, err = run(t, cmdCtx, "setting-set", "site_name=x")
	require.Error(t, err)
	assert.Len(t, backend.sent("PATCH /rest/v1/site_settings"), 2)
}

func TestParseSettingArgs(t *testing.T) {
	got, err := parseSettingArgs([]string{"a=1", "b==2", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "=2", "c": ""}, got)

	_, err = parseSettingArgs([]string{"novalue"})
	require.Error(t, err)
	_, err = parseSettingArgs([]string{"=1"})
	require.Error(t, err)
	_, err = parseSettingArgs(nil)
	require.Error(t, err)
}

func TestContentCommands_RequireAdminSession(t *testing.T) {
	backend := newContentBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	cmdCtx := devCommandContext(t, srv.URL)

	for _, name := range []string{"posts", "plans", "services", "testimonials", "settings", "users"} {
		_, err := run(t, cmdCtx, name)
		require.ErrorIs(t, err, errNotSignedIn, name)
	}
}

func TestDeleteCommands_RequireID(t *testing.T) {
	for _, name := range []string{"post-delete", "plan-delete", "service-delete", "testimonial-delete"} {
		_, err := run(t, &commandContext{ErrOut: io.Discard}, name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "usage:", name)
	}
}
