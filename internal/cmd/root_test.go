package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated dirsweep home plus one directory to monitor.
type testEnv struct {
	home string
	dir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "watched")
	require.NoError(t, os.Mkdir(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.txt"), []byte("x"), 0644))
	return &testEnv{home: t.TempDir(), dir: dir}
}

// run executes the root command with stdin and returns stdout.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--home", e.home))

	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err, "dirsweep %s", strings.Join(args, " "))
	return out
}

// baseline monitors e.dir and snapshots it.
func (e *testEnv) baseline(t *testing.T) {
	t.Helper()
	e.mustRun(t, "dir", "add", e.dir)
	e.mustRun(t, "snapshot")
}

func (e *testEnv) write(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "dirsweep") {
		t.Errorf("Help text should contain 'dirsweep', got: %s", output)
	}
	if !strings.Contains(output, "snapshot") {
		t.Errorf("Help text should list the snapshot command, got: %s", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "dirsweep" {
		t.Errorf("Expected Use to be 'dirsweep', got '%s'", cmd.Use)
	}

	want := map[string]bool{
		"dir": false, "snapshot": false, "changes": false, "clean": false,
		"exclude": false, "report": false, "history": false,
	}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"home", "config", "state-dir", "log-level", "log-file"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestInvalidLogLevelRejected(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "", "dir", "list", "--log-level", "loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")
}

func TestConfigFromHome(t *testing.T) {
	e := newTestEnv(t)
	state := filepath.Join(e.home, "state")
	cfg := "state_dir: state\nhistory:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(e.home, "config.yaml"), []byte(cfg), 0644))

	e.mustRun(t, "dir", "add", e.dir)

	require.FileExists(t, filepath.Join(state, "folder_snapshot.json"))
	require.NoFileExists(t, filepath.Join(state, "history.db"))
}

func TestStateDirFlag(t *testing.T) {
	e := newTestEnv(t)
	state := t.TempDir()

	e.mustRun(t, "dir", "add", e.dir, "--state-dir", state)

	require.FileExists(t, filepath.Join(state, "folder_snapshot.json"))
	require.NoFileExists(t, filepath.Join(e.home, "folder_snapshot.json"))
}

func TestLogFileFlag(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "dir", "list", "--log-file")

	_, err := os.Readlink(filepath.Join(e.home, "logs", "latest.log"))
	require.NoError(t, err)
}

func TestLogFileRunPathLoggedAtDebug(t *testing.T) {
	e := newTestEnv(t)
	root := NewRootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"dir", "list", "--log-file", "--log-level", "debug", "--home", e.home})
	require.NoError(t, root.Execute())

	target, err := os.Readlink(filepath.Join(e.home, "logs", "latest.log"))
	require.NoError(t, err)
	require.Contains(t, errOut.String(), "writing run log to "+filepath.Join(e.home, "logs", target))
}
