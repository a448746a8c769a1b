package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ilawal010/Clerk/internal/testutil"
)

var testStart = time.Date(2025, 8, 4, 9, 15, 0, 0, time.UTC)

type copyStamper struct{}

func (copyStamper) Stamp(src, dst, text string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append(data, text...), 0o644)
}

// testEnv runs commands against a throwaway data directory with a
// deterministic clock and number source.
type testEnv struct {
	t       *testing.T
	dataDir string
	inbox   string
	clock   *testutil.StepClock
	rand    *testutil.ScriptedReader
}

func newTestEnv(t *testing.T, fills ...byte) *testEnv {
	t.Helper()
	for _, k := range []string{"CLERK_DATA_DIR", "CLERK_DB", "CLERK_NUMBER_PREFIX", "CLERK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return &testEnv{
		t:       t,
		dataDir: t.TempDir(),
		inbox:   t.TempDir(),
		clock:   testutil.NewStepClock(testStart, time.Hour),
		rand:    testutil.NewScriptedReader(fills...),
	}
}

// file writes an input document into the inbox and returns its path.
func (e *testEnv) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.inbox, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI and returns stdout, stderr and the exit code.
func (e *testEnv) run(args ...string) (string, string, int) {
	e.t.Helper()
	opts := &RootOptions{hooks: hooks{
		clock:   e.clock,
		rand:    e.rand,
		stamper: copyStamper{},
		logger:  zap.NewNop(),
	}}
	cmd := NewRootCommandWithOptions(opts)

	full := append(append([]string{}, args...),
		"--data-dir", e.dataDir,
		"--config", filepath.Join(e.dataDir, "clerk.yaml"),
	)

	var stdout, stderr bytes.Buffer
	code := execute(cmd, opts, full, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// mustRun fails the test unless the command exits 0.
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	stdout, stderr, code := e.run(args...)
	require.Equal(e.t, ExitSuccess, code, "stderr: %s", stderr)
	return stdout
}

// logInternal logs the standard internal memo used across tests.
func (e *testEnv) logInternal() string {
	e.t.Helper()
	return e.mustRun("log",
		"--type", "internal",
		"--title", "Vehicle maintenance budget",
		"--date", "2025-08-01",
		"--signatory", "A. Bello",
		"--from", "Bursary",
		"--to", "Registry",
		"--scan", e.file("budget.pdf", "%PDF-1.4"),
	)
}
