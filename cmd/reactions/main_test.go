package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "reactions-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}

	bin := filepath.Join(dir, "reactions-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.RemoveAll(dir)
		os.Exit(1)
	}
	testBinaryPath = bin

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newCmd runs the binary with an empty HOME so no user config is picked up.
func newCmd(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	cmd := exec.Command(testBinaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	return cmd
}

// fakeService answers like the ratings service and remembers submitted notes.
type fakeService struct {
	mu    sync.Mutex
	notes []map[string]any
	seen  map[string]bool
}

func newFakeService(t *testing.T) (*fakeService, string) {
	t.Helper()
	fs := &fakeService{seen: map[string]bool{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /get-last-movie", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"movies":[{"_id":"5b3f","title":"Alien"}]}`))
	})
	mux.HandleFunc("POST /add-movie-note", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		fs.mu.Lock()
		defer fs.mu.Unlock()
		k := fmt.Sprint(body["movieId"], "|", body["email"])
		if fs.seen[k] {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fs.seen[k] = true
		fs.notes = append(fs.notes, body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fs, srv.URL
}

func TestCLI_HelpOutput(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "root help",
			args:     []string{"--help"},
			contains: []string{"reactions", "Drag the handle", "rate", "submit", "serve", "--base-url", "--width", "--config"},
		},
		{
			name:     "submit help",
			args:     []string{"submit", "--help"},
			contains: []string{"--email", "--index", "--timeout", "--verbose"},
		},
		{
			name:     "serve help",
			args:     []string{"serve", "--help"},
			contains: []string{"--addr", "--db-driver", "--dsn", "--seed-title", "--allowed-origins"},
		},
		{
			name:     "rate help",
			args:     []string{"rate", "--help"},
			contains: []string{"--width", "--initial-index", "--reactions-file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newCmd(t, tt.args...).CombinedOutput()
			require.NoError(t, err, "Command output: %s", out)
			for _, expected := range tt.contains {
				assert.Contains(t, string(out), expected)
			}
		})
	}
}

func TestCLI_Version(t *testing.T) {
	out, err := newCmd(t, "--version").CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(out), "reactions dev")
	assert.Contains(t, string(out), "commit: none")
}

func TestCLI_ListReactions(t *testing.T) {
	out, err := newCmd(t, "reactions").Output()
	require.NoError(t, err)
	for _, label := range []string{"0  ", "Terrible", "Bad", "Okay", "Good", "Great"} {
		assert.Contains(t, string(out), label)
	}
}

func TestCLI_ListReactionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactions.yaml")
	data := "reactions:\n" +
		"  - label: Meh\n    small_icon: \"-\"\n    large_icon: \"--\"\n" +
		"  - label: Yay\n    small_icon: \"+\"\n    large_icon: \"++\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := newCmd(t, "reactions", "--reactions-file", path).Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "1  +  Yay")
	assert.NotContains(t, string(out), "Great")
}

func TestCLI_SubmitThenDuplicate(t *testing.T) {
	svc, base := newFakeService(t)
	args := []string{"submit", "--base-url", base, "--email", "bill@chez.fr", "--index", "3"}

	var stdout bytes.Buffer
	cmd := newCmd(t, args...)
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run(), "Command output: %s", stdout.String())
	assert.Contains(t, stdout.String(), "Good: Alien")
	assert.Contains(t, stdout.String(), "Your rating has been recorded")

	svc.mu.Lock()
	require.Len(t, svc.notes, 1)
	assert.Equal(t, map[string]any{"movieId": "5b3f", "email": "bill@chez.fr", "note": float64(3)}, svc.notes[0])
	svc.mu.Unlock()

	stdout.Reset()
	cmd = newCmd(t, args...)
	cmd.Stdout = &stdout
	require.Error(t, cmd.Run())
	assert.Contains(t, stdout.String(), "You have already rated this movie")
}

func TestCLI_ConfigFromEnvironment(t *testing.T) {
	svc, base := newFakeService(t)

	cmd := newCmd(t, "submit", "--email", "ann@chez.fr", "--index", "0")
	cmd.Env = append(cmd.Env, "REACTIONS_BASE_URL="+base)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command output: %s", out)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.notes, 1)
	assert.Equal(t, "ann@chez.fr", svc.notes[0]["email"])
}

func TestCLI_ErrorHandling(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		errorMsg string
	}{
		{
			name:     "invalid command",
			args:     []string{"invalid-command"},
			errorMsg: "unknown command",
		},
		{
			name:     "submit without email",
			args:     []string{"submit", "--index", "1"},
			errorMsg: "required flag(s) \"email\" not set",
		},
		{
			name:     "submit malformed email",
			args:     []string{"submit", "--email", "bill", "--index", "1"},
			errorMsg: "not a valid email",
		},
		{
			name:     "submit index out of range",
			args:     []string{"submit", "--email", "bill@chez.fr", "--index", "7"},
			errorMsg: "out of range",
		},
		{
			name:     "serve unknown driver",
			args:     []string{"serve", "--db-driver", "mysql"},
			errorMsg: "invalid configuration",
		},
		{
			name:     "missing reactions file",
			args:     []string{"reactions", "--reactions-file", "/does/not/exist.yaml"},
			errorMsg: "load reactions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newCmd(t, tt.args...).CombinedOutput()
			require.Error(t, err)
			assert.Contains(t, string(output), tt.errorMsg)
		})
	}
}
