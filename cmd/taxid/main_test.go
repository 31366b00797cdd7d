package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/taxid/domain/taxid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with a config path that does not exist, so
// only defaults, environment and flags apply.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	missing := filepath.Join(t.TempDir(), "none.yaml")
	cmd.SetArgs(append([]string{"--config", missing, "--log-format", "json"}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestGenerateCommand_Stdout(t *testing.T) {
	stdout, stderr, err := execute(t, "", "generate", "--count", "300", "--workers", "3")
	require.NoError(t, err)

	ids := lines(stdout)
	require.Len(t, ids, 300)

	seen := make(map[string]bool)
	for _, s := range ids {
		assert.False(t, seen[s], "duplicate %s", s)
		seen[s] = true
		_, perr := taxid.Parse(s)
		assert.NoError(t, perr, s)
	}
	assert.Contains(t, stderr, "Done in ")
	assert.Contains(t, stderr, "milliseconds.")
}

func TestGenerateCommand_OutputFileAndMetrics(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "ids.txt")
	metricsPath := filepath.Join(dir, "taxid.prom")

	stdout, _, err := execute(t, "", "generate",
		"-n", "50", "-o", outPath, "--mode", "sequential", "--metrics-file", metricsPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, lines(string(data)), 50)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "taxid_written_total 50")
}

func TestGenerateCommand_Seeded(t *testing.T) {
	args := []string{"generate", "-n", "20", "--mode", "sequential", "--seed", "99"}

	first, _, err := execute(t, "", args...)
	require.NoError(t, err)
	second, _, err := execute(t, "", args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative count", []string{"generate", "-n", "-1"}},
		{"too many workers", []string{"generate", "-w", "10"}},
		{"unknown mode", []string{"generate", "--mode", "parallel"}},
		{"extra args", []string{"generate", "oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, "", tt.args...)
			assert.Error(t, err)
			assert.Empty(t, stdout)
			assert.NotContains(t, stderr, "Usage:")
		})
	}
}

func TestValidateCommand_Args(t *testing.T) {
	stdout, _, err := execute(t, "", "validate", "10374918258", "65929970489")
	require.NoError(t, err)

	assert.Equal(t, []string{"10374918258 valid", "65929970489 valid"}, lines(stdout))
}

func TestValidateCommand_Verbose(t *testing.T) {
	stdout, _, err := execute(t, "", "validate", "-v", "10374918258", "11123456786")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"10374918258 valid (1,8,1,0)",
		"11123456786 valid (2,7,0,1)",
	}, lines(stdout))
}

func TestValidateCommand_Invalid(t *testing.T) {
	stdout, _, err := execute(t, "", "validate", "10374918258", "10374918257", "01374918257", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 of 4 identifiers invalid")

	out := lines(stdout)
	require.Len(t, out, 4)
	assert.Equal(t, "10374918258 valid", out[0])
	assert.Equal(t, "10374918257 invalid: check digit does not match", out[1])
	assert.Equal(t, "01374918257 invalid: leading digit is zero", out[2])
	assert.True(t, strings.HasPrefix(out[3], "123 invalid: identifier must have 11 digits"), out[3])
}

func TestValidateCommand_Stdin(t *testing.T) {
	stdin := "10374918258\n\n  86095742719  \n"

	stdout, _, err := execute(t, stdin, "validate")
	require.NoError(t, err)

	assert.Equal(t, []string{"10374918258 valid", "86095742719 valid"}, lines(stdout))
}

func TestValidateCommand_Quiet(t *testing.T) {
	stdout, _, err := execute(t, "10374918258\n10374918257\n", "validate", "-q")
	require.Error(t, err)

	assert.Equal(t, []string{"10374918257 invalid: check digit does not match"}, lines(stdout))
}

func TestGenerateThenValidate(t *testing.T) {
	generated, _, err := execute(t, "", "generate", "-n", "500")
	require.NoError(t, err)

	_, _, err = execute(t, generated, "validate", "--quiet")
	assert.NoError(t, err)
}

func TestRandomCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "random", "--count", "25")
	require.NoError(t, err)

	ids := lines(stdout)
	require.Len(t, ids, 25)
	for _, s := range ids {
		_, perr := taxid.Parse(s)
		assert.NoError(t, perr, s)
	}
}

func TestRandomCommand_Seeded(t *testing.T) {
	first, _, err := execute(t, "", "random", "-n", "3", "--seed", "5")
	require.NoError(t, err)
	second, _, err := execute(t, "", "random", "-n", "3", "--seed", "5")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRandomCommand_NegativeCount(t *testing.T) {
	_, _, err := execute(t, "", "random", "-n", "-3")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "taxid dev")
	assert.Contains(t, stdout, "commit:  none")
}
