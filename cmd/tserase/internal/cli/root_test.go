package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t14raptor/ts-erase/ast"
	"github.com/t14raptor/ts-erase/cmd/tserase/internal/cli"
	"github.com/t14raptor/ts-erase/erase"
)

func mustErase(t *testing.T, src string) string {
	t.Helper()
	out, err := erase.Transform(src, func(ast.Node, string) {})
	require.NoError(t, err)
	return out
}

func TestRootCommand_PrintsToStdoutByDefault(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("let x: number = 1;\n"), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, mustErase(t, "let x: number = 1;\n"), stdout.String())

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "let x: number = 1;\n", string(got), "input file must be untouched without --write")
}

func TestRootCommand_WriteFlagRewritesFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("let x: number = 1;\n"), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--write", path})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String(), "--write must not print to stdout")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mustErase(t, "let x: number = 1;\n"), string(got))
}

func TestRootCommand_QuietSuppressesDiagnostics(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte(`enum Color { Red, Green }`), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--quiet", path})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stderr.String(), "--quiet should suppress unsupported-construct diagnostics")
}

func TestRootCommand_DiagnosticsLoggedWithoutQuiet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte(`enum Color { Red, Green }`), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "enum")
}

func TestRootCommand_JSONFlagEmitsJSONLines(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte(`enum Color { Red, Green }`), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--json", path})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stderr.String()), "{"), "expected a JSON object line, got %q", stderr.String())
}

func TestRootCommand_StdinStdout(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand()
	var stdin bytes.Buffer
	stdin.WriteString("const x: number = 1;\n")
	var stdout, stderr bytes.Buffer
	cmd.SetIn(&stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, mustErase(t, "const x: number = 1;\n"), stdout.String())
}

func TestRootCommand_ParseErrorReturnsErrAndContinues(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	bad := filepath.Join(tmpDir, "bad.ts")
	good := filepath.Join(tmpDir, "good.ts")
	require.NoError(t, os.WriteFile(bad, []byte("const = ;"), 0644))
	require.NoError(t, os.WriteFile(good, []byte("let y = 2;\n"), 0644))

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{bad, good})

	err := cmd.Execute()
	assert.Error(t, err, "expected an error since one file failed to parse")
	assert.Contains(t, stdout.String(), "let y = 2;\n", "the second file should still have been processed")
}

func TestRootCommand_RequiresAtLeastOneFile(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
}
