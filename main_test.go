// main_test.go --  This file is part of goCCSD project.
// Mirzaeva Irina, 2023
//
//	goCCSD is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"goccsd/internal/ccsd"
)

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", defaultOutput},
		{"config.json", "config.out"},
		{"runs/heh.v2.json", "runs/heh.v2.out"},
		{"noext", "noext.out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputName(tt.in), tt.in)
	}
}

func TestReadFileLines(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(fname, []byte("a\nb c\n\nd"), 0644))
	lines, err := ReadFileLines(fname)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b c", "", "d"}, lines)

	_, err = ReadFileLines(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSettingsDefaults(t *testing.T) {
	v := newViper()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags(nil))
	s, err := loadSettings(v, "")
	require.NoError(t, err)
	assert.Equal(t, defaultProcs(), s.Procs)
	assert.LessOrEqual(t, s.Procs, maxUsefulProcs)
	assert.Equal(t, ccsd.DefaultTolerance, s.Tolerance)
	assert.Equal(t, ccsd.DefaultMaxIterations, s.MaxIterations)
	assert.Equal(t, zapcore.InfoLevel, s.level())
	assert.Empty(t, s.MetricsFile)
}

func TestSettingsEnvAndFlags(t *testing.T) {
	t.Setenv("GOCCSD_MAX_ITERATIONS", "42")
	t.Setenv("GOCCSD_LOG_LEVEL", "DEBUG")
	v := newViper()
	cmd := newRootCmd(v)
	require.NoError(t, cmd.ParseFlags([]string{"-n", "3", "--tolerance", "1e-8"}))

	s, err := loadSettings(v, "")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Procs)
	assert.Equal(t, 1e-8, s.Tolerance)
	assert.Equal(t, 42, s.MaxIterations)
	assert.Equal(t, zapcore.DebugLevel, s.level())

	opts, err := s.options()
	require.NoError(t, err)
	assert.Equal(t, 1e-8, opts.Tolerance)
	assert.Equal(t, 42, opts.MaxIterations)
}

func TestSettingsFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("procs: 2\nmetrics_file: m.prom\n"), 0644))
	v := newViper()
	newRootCmd(v)
	s, err := loadSettings(v, fname)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Procs)
	assert.Equal(t, "m.prom", s.MetricsFile)

	_, err = loadSettings(newViper(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestSettingsInvalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{"GOCCSD_PROCS", "0"},
		{"GOCCSD_TOLERANCE", "-1"},
		{"GOCCSD_MAX_ITERATIONS", "-5"},
		{"GOCCSD_LOG_LEVEL", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := loadSettings(newViper(), "")
			assert.Error(t, err)
		})
	}
}

func TestRunBuiltin(t *testing.T) {
	dir := t.TempDir()
	s := &Settings{
		Procs:         2,
		Tolerance:     ccsd.DefaultTolerance,
		MaxIterations: ccsd.DefaultMaxIterations,
		LogLevel:      "debug",
		LogFile:       filepath.Join(dir, "heh.out"),
		MetricsFile:   filepath.Join(dir, "heh.prom"),
	}
	require.NoError(t, run(context.Background(), s, ""))

	out, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "E(corr,CCSD) = -0.008225834")
	assert.Contains(t, string(out), "CCSD converged")

	prom, err := os.ReadFile(s.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "ccsd_iterations_total 17")
}

func TestRunInputFile(t *testing.T) {
	dir := t.TempDir()
	s := &Settings{
		Procs:     3,
		Tolerance: ccsd.DefaultTolerance,
		LogLevel:  "info",
		LogFile:   filepath.Join(dir, "bad.out"),
	}
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"config": [{"dim": 2}]}`), 0644))
	assert.Error(t, run(context.Background(), s, bad))

	good := filepath.Join(dir, "heh.json")
	data, err := os.ReadFile(filepath.Join("internal", "molecule", "testdata", "heh+.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, data, 0644))
	s.LogFile = filepath.Join(dir, "heh.out")
	require.NoError(t, run(context.Background(), s, good))
	out, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Input file content:")
}

func TestAppInfo(t *testing.T) {
	var buf bytes.Buffer
	appInfo(&buf)
	assert.Contains(t, buf.String(), "Have Fun!!!")
	assert.True(t, strings.HasSuffix(buf.String(), "|\n"))
}

func TestSettingsDump(t *testing.T) {
	t.Setenv("GOCCSD_DUMP", "Wmbej, Fae")
	s, err := loadSettings(newViper(), "")
	require.NoError(t, err)
	opts, err := s.options()
	require.NoError(t, err)
	assert.Equal(t, []ccsd.Intermediate{ccsd.Wmbej, ccsd.Fae}, opts.Dump)

	t.Setenv("GOCCSD_DUMP", "Wxyz")
	_, err = loadSettings(newViper(), "")
	assert.Error(t, err)
}

func TestRunNotConverged(t *testing.T) {
	dir := t.TempDir()
	s := &Settings{
		Procs:         4,
		Tolerance:     ccsd.DefaultTolerance,
		MaxIterations: 2,
		LogLevel:      "info",
		LogFile:       filepath.Join(dir, "capped.out"),
	}
	err := run(context.Background(), s, "")
	require.ErrorIs(t, err, ccsd.ErrNotConverged)

	out, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Iterations: 2 (converged: false)")
	assert.Contains(t, string(out), "E(corr,CCSD) = -0.007931494639")
}
