// main.go --  This file is part of goCCSD project.
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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"goccsd/internal/ccsd"
	"goccsd/internal/molecule"
)

func initLog(fname string, level zapcore.Level) (*zap.Logger, *os.File, error) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(file), level)
	return zap.New(core), file, nil
}

func appInfo(w io.Writer) {
	fmt.Fprint(w, "\n              ___  ___  ___  ___      |\n   __   ___  / __\\/ __\\/ __\\|   \\     |"+
		" Author: Mirzaeva Irina Valerievna\n /'_ `\\/ _ \\| (__| (__ \\__ \\| |) |    | email: dairdre@gmail.com\n"+
		"/\\ \\L\\ \\ (_) |\\___\\\\___\\|___/|___/     | Nikolaev Institute of Inorganic Chemistry SB RAS"+
		" (http://niic.nsc.ru/)\n\\ \\____ \\___/                          | Novosibirsk, Russia"+
		"\n \\/___L\\ \\                            | Coupled cluster singles and doubles\n   /\\____/"+
		"                            | Have Fun!!!\n   \\_/__/                             |\n")
}

func printOutputDelimiter(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 70))
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goccsd [config.json]",
		Short: "Closed-shell CCSD correlation energy",
		Long: "goccsd solves the CCSD amplitude equations for a closed-shell molecule\n" +
			"given its SCF orbital energies and MO two-electron integrals.\n" +
			"Without an input file the built-in HeH+/STO-3G molecule is used.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsFile, _ := cmd.Flags().GetString("settings")
			s, err := loadSettings(v, settingsFile)
			if err != nil {
				return err
			}
			var inpFname string
			if len(args) > 0 {
				inpFname = args[0]
			}
			return run(cmd.Context(), s, inpFname)
		},
	}
	if err := bindFlags(cmd, v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, s *Settings, inpFname string) error {
	outFname := s.LogFile
	if outFname == "" {
		outFname = outputName(inpFname)
	}
	fmt.Println("Output file: ", outFname)

	log, out, err := initLog(outFname, s.level())
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()
	defer log.Sync()

	runID := uuid.New()
	log = log.With(zap.Stringer("run_id", runID))
	log.Info("Starting goCCSD...")
	appInfo(out)
	log.Warn("This is an experimental program on an early stage of development.")

	params, err := readParameters(inpFname, out, log)
	if err != nil {
		log.Error("Cannot read molecule", zap.Error(err))
		return err
	}
	fmt.Fprintln(out, "Molecule:")
	printOutputDelimiter(out)
	fmt.Fprint(out, params)
	printOutputDelimiter(out)
	fmt.Fprintln(out, "Spin-orbital Fock matrix:")
	fmt.Fprintln(out, ccsd.BuildFock(params.OrbitalEnergies, params.NumSpinOrbitals()))
	printOutputDelimiter(out)

	opts, err := s.options()
	if err != nil {
		return err
	}
	opts.Logger = log
	var reg *prometheus.Registry
	if s.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		if opts.Metrics, err = ccsd.NewMetrics(reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("CCSD started",
		zap.Int("procs", s.Procs),
		zap.Float64("tolerance", s.Tolerance),
		zap.Int("max_iterations", s.MaxIterations))
	tstart := time.Now()
	res, err := ccsd.Run(ctx, params, s.Procs, opts)
	elapsed := time.Since(tstart)
	if err != nil && !errors.Is(err, ccsd.ErrNotConverged) {
		log.Error("CCSD failed", zap.Error(err))
		return err
	}

	fmt.Fprintf(out, "Iterations: %d (converged: %v)\n", res.Iterations, res.Converged)
	fmt.Fprintf(out, "E(corr,CCSD) = %.12f a.u.\n", res.Correlation)
	fmt.Fprintf(out, "E(CCSD)      = %.12f a.u.\n", res.Total)
	printOutputDelimiter(out)
	fmt.Println("E(corr,CCSD) = ", res.Correlation, " a.u.")
	fmt.Println("E(CCSD) = ", res.Total, " a.u.")

	if reg != nil {
		if werr := prometheus.WriteToTextfile(s.MetricsFile, reg); werr != nil {
			log.Error("Cannot write metrics", zap.String("file", s.MetricsFile), zap.Error(werr))
		}
	}
	memDebug(log)
	log.Info("Exiting goCCSD...", zap.Duration("elapsed", elapsed))
	if err != nil {
		return err
	}
	fmt.Println("goCCSD done.")
	return nil
}

// readParameters loads the molecule from inpFname, echoing the input into
// out. An empty name selects the built-in HeH+ molecule.
func readParameters(inpFname string, out io.Writer, log *zap.Logger) (*molecule.Parameters, error) {
	if inpFname == "" {
		log.Info("No input file. Using built-in HeH+/STO-3G.")
		return molecule.HeHPlus(), nil
	}
	fmt.Fprintln(out, "Input file content:")
	printOutputDelimiter(out)
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	for _, line := range inpData {
		fmt.Fprintln(out, line)
	}
	printOutputDelimiter(out)
	return molecule.Parse([]byte(strings.Join(inpData, "\n")))
}

func main() {
	if err := newRootCmd(newViper()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "goccsd:", err)
		os.Exit(1)
	}
}
