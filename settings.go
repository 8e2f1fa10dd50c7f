// settings.go --  This file is part of goCCSD project.
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
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"goccsd/internal/ccsd"
)

const envPrefix = "GOCCSD"

// maxUsefulProcs is one coordinator plus one owner per intermediate.
const maxUsefulProcs = 7

// Settings controls one run of the program.
type Settings struct {
	Procs         int      `mapstructure:"procs" validate:"gte=1"`
	Tolerance     float64  `mapstructure:"tolerance" validate:"gt=0"`
	MaxIterations int      `mapstructure:"max_iterations" validate:"gte=0"`
	LogLevel      string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile       string   `mapstructure:"log_file"`
	MetricsFile   string   `mapstructure:"metrics_file"`
	Dump          []string `mapstructure:"dump"`
}

var settingsValidate = validator.New()

func defaultProcs() int {
	return min(runtime.NumCPU(), maxUsefulProcs)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("procs", defaultProcs())
	v.SetDefault("tolerance", ccsd.DefaultTolerance)
	v.SetDefault("max_iterations", ccsd.DefaultMaxIterations)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("dump", []string{})
	return v
}

// bindFlags registers the settings flags on cmd and binds them to v.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	fs := cmd.Flags()
	fs.IntP("procs", "n", defaultProcs(), "number of cooperating ranks")
	fs.Float64("tolerance", ccsd.DefaultTolerance, "correlation energy convergence threshold, Hartree")
	fs.Int("max-iterations", ccsd.DefaultMaxIterations, "iteration cap, 0 iterates until convergence")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-file", "", "output file (default: <input>.out)")
	fs.String("metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.StringSlice("dump", nil, "intermediates to log at debug level after the last iteration")
	fs.String("settings", "", "YAML or JSON file with run settings")

	for key, flag := range map[string]string{
		"procs":          "procs",
		"tolerance":      "tolerance",
		"max_iterations": "max-iterations",
		"log_level":      "log-level",
		"log_file":       "log-file",
		"metrics_file":   "metrics-file",
		"dump":           "dump",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadSettings merges defaults, the optional settings file, GOCCSD_*
// environment variables and flags, then validates the result.
func loadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("settings: read %q: %w", settingsFile, err)
		}
	}
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	if err := settingsValidate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			return nil, fmt.Errorf("settings: %s = %v fails %q", fe.Field(), fe.Value(), fe.Tag())
		}
		return nil, fmt.Errorf("settings: %w", err)
	}
	if _, err := s.options(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (s *Settings) options() (ccsd.Options, error) {
	opts := ccsd.Options{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	}
	for _, name := range s.Dump {
		x, err := ccsd.ParseIntermediate(strings.TrimSpace(name))
		if err != nil {
			return opts, fmt.Errorf("settings: dump: %w", err)
		}
		opts.Dump = append(opts.Dump, x)
	}
	return opts, nil
}
