package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolver_EnvironmentFirst(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "API_BASE_URL=https://file.example/intake\n")

	r, err := NewResolver(mapLookup(map[string]string{KeyAPIBaseURL: "https://env.example/intake"}), path)
	require.NoError(t, err)

	v, ok := r.Resolve(KeyAPIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "https://env.example/intake", v)
}

func TestResolver_FileParsing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", `# intake
API_BASE_URL = "https://1c.example/hs/lead"

LO_TOKEN='secret-token'
  # indented comment
EMPTY=
`)

	r, err := NewResolver(mapLookup(nil), path)
	require.NoError(t, err)

	v, ok := r.Resolve(KeyAPIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "https://1c.example/hs/lead", v)

	v, ok = r.Resolve(KeyLOToken)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", v)

	_, ok = r.Resolve("EMPTY")
	assert.False(t, ok)
	_, ok = r.Resolve("MISSING")
	assert.False(t, ok)
}

func TestResolver_ToleratesBadLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "API_BASE_URL=https://1c.example\nstray line without equals\nLO_TOKEN=tok\nbad-key!=x\n")

	r, err := NewResolver(mapLookup(nil), path)
	require.NoError(t, err)

	entry, err := r.Entry()
	require.NoError(t, err)
	assert.Equal(t, Entry{IntakeURL: "https://1c.example", AuthToken: "tok"}, entry)

	v, ok := r.Resolve("bad-key!")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = r.Resolve("stray line without equals")
	assert.False(t, ok)
}

func TestResolver_UnreadableFileKeepsOthers(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, ".env", "API_BASE_URL=https://1c.example\nLO_TOKEN=tok\n")

	// a directory cannot be read as a file
	r, err := NewResolver(mapLookup(nil), good, dir)
	require.Error(t, err)
	require.NotNil(t, r)

	entry, err := r.Entry()
	require.NoError(t, err)
	assert.Equal(t, "tok", entry.AuthToken)
}

func TestResolver_LaterFilesOverride(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, ".env", "LO_TOKEN=first\n")
	second := writeFile(t, dir, "env", "LO_TOKEN=second\n")

	r, err := NewResolver(mapLookup(nil), first, filepath.Join(dir, "missing"), second)
	require.NoError(t, err)

	v, _ := r.Resolve(KeyLOToken)
	assert.Equal(t, "second", v)
}

func TestResolver_AliasFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "VITE_API_BASE_URL=https://1c.example\nVITE_LO_TOKEN=vite-token\nLO_TOKEN=canonical\n")

	r, err := NewResolver(mapLookup(nil), path)
	require.NoError(t, err)

	v, ok := r.Resolve(KeyAPIBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "https://1c.example", v)

	// the canonical key wins when both are present
	v, _ = r.Resolve(KeyLOToken)
	assert.Equal(t, "canonical", v)
}

func TestResolver_AliasFromEnvironment(t *testing.T) {
	r, err := NewResolver(mapLookup(map[string]string{"VITE_LO_TOKEN": "vite-token"}))
	require.NoError(t, err)

	v, ok := r.Resolve(KeyLOToken)
	assert.True(t, ok)
	assert.Equal(t, "vite-token", v)
}

func TestResolver_Entry(t *testing.T) {
	r, err := NewResolver(mapLookup(map[string]string{
		KeyAPIBaseURL: "https://1c.example",
		KeyLOToken:    "token",
	}))
	require.NoError(t, err)

	entry, err := r.Entry()
	require.NoError(t, err)
	assert.Equal(t, Entry{IntakeURL: "https://1c.example", AuthToken: "token"}, entry)

	r, err = NewResolver(mapLookup(map[string]string{KeyAPIBaseURL: "https://1c.example"}))
	require.NoError(t, err)
	_, err = r.Entry()
	assert.True(t, errors.Is(err, ErrConfigUnavailable))

	r, err = NewResolver(mapLookup(map[string]string{KeyLOToken: "token"}))
	require.NoError(t, err)
	_, err = r.Entry()
	assert.True(t, errors.Is(err, ErrConfigUnavailable))
}

func TestLoadConfigFrom(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{".env", "env"}, cfg.EnvFiles)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.PhoneRule)

	cfg, err = LoadConfigFrom(map[string]string{
		"PORT":         "9000",
		"ENV_FILES":    "/etc/cta/env",
		"CORS_ORIGINS": "https://a.example,https://b.example",
		"PHONE_RULE":   `{"cpc":"1","default":"2"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"/etc/cta/env"}, cfg.EnvFiles)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, `{"cpc":"1","default":"2"}`, cfg.PhoneRule)
}
