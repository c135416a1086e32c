package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/utkarsh5026/filestory/pkg/repository/gitrepo/gitrepotest"
)

// TestHelper runs commands against a throwaway repository with an isolated
// user configuration file
type TestHelper struct {
	*gitrepotest.Fixture
	t          *testing.T
	configPath string
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{
		Fixture:    gitrepotest.New(t),
		t:          t,
		configPath: filepath.Join(t.TempDir(), "config.json"),
	}
}

// Run executes the root command with --repo and --config pointing at the
// helper's repository and returns stdout
func (th *TestHelper) Run(args ...string) (string, error) {
	th.t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--repo", th.Dir, "--config", th.configPath, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// MustRun is Run that fails the test on error
func (th *TestHelper) MustRun(args ...string) string {
	th.t.Helper()
	out, err := th.Run(args...)
	if err != nil {
		th.t.Fatalf("filestory %v failed: %v\noutput:\n%s", args, err, out)
	}
	return out
}
