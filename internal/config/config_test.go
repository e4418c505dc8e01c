package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() (*pflag.FlagSet, *string, *float64, *[]string) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	base := fs.String("base-url", "https://default.example", "")
	width := fs.Float64("width", 320, "")
	origins := fs.StringSlice("allowed-origins", nil, "")
	return fs, base, width, origins
}

func TestBindFlags_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactions.yaml")
	doc := "base-url: http://localhost:8080\nwidth: 400\nallowed-origins:\n  - http://a\n  - http://b\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	v, err := New(path)
	require.NoError(t, err)

	fs, base, width, origins := testFlags()
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, BindFlags(v, fs))

	assert.Equal(t, "http://localhost:8080", *base)
	assert.Equal(t, 400.0, *width)
	assert.Equal(t, []string{"http://a", "http://b"}, *origins)
}

func TestBindFlags_ExplicitFlagWins(t *testing.T) {
	t.Setenv("REACTIONS_BASE_URL", "http://from-env")
	t.Setenv("REACTIONS_WIDTH", "500")

	t.Setenv("HOME", t.TempDir())

	v, err := New("")
	require.NoError(t, err)

	fs, base, width, _ := testFlags()
	require.NoError(t, fs.Parse([]string{"--width", "250"}))
	require.NoError(t, BindFlags(v, fs))

	assert.Equal(t, "http://from-env", *base)
	assert.Equal(t, 250.0, *width)
}

func TestNew_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base-url: [\n"), 0o600))

	_, err := New(path)
	require.Error(t, err)
}

func TestRate_Validate(t *testing.T) {
	t.Parallel()

	ok := Rate{BaseURL: "http://localhost:8080", Timeout: time.Second, Width: 320, InitialIndex: 2}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.BaseURL = "not a url"
	require.Error(t, bad.Validate())

	bad = ok
	bad.Width = 0
	require.Error(t, bad.Validate())

	bad = ok
	bad.InitialIndex = -1
	require.Error(t, bad.Validate())
}

func TestServe_Validate(t *testing.T) {
	t.Parallel()

	ok := Serve{Addr: "localhost:8080", Driver: "sqlite"}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Driver = "mysql"
	require.Error(t, bad.Validate())

	bad = ok
	bad.Addr = ""
	require.Error(t, bad.Validate())
}
