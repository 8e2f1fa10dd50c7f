// solver.go --  This file is part of goCCSD project.
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
package ccsd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"goccsd/internal/comm"
	"goccsd/internal/molecule"
)

const (
	// DefaultTolerance is the correlation energy change that ends the iterations.
	DefaultTolerance = 1e-9
	// DefaultMaxIterations bounds the number of cycles. Well-posed closed
	// shell systems converge in a few dozen.
	DefaultMaxIterations = 500
)

const (
	topicT1          comm.Topic = "amplitudes/T1"
	topicT2          comm.Topic = "amplitudes/T2"
	topicConvergence comm.Topic = "convergence"
)

// ErrNotConverged is returned when the iteration cap is reached first.
var ErrNotConverged = errors.New("ccsd: amplitudes did not converge")

// Options controls one solver run.
type Options struct {
	Tolerance float64
	// MaxIterations <= 0 iterates until convergence with no bound.
	MaxIterations int
	Logger        *zap.Logger
	Metrics       *Metrics
	// Dump lists intermediates logged at debug level after the last iteration.
	Dump []Intermediate
}

func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

// Result is the outcome of a run, identical on every rank.
type Result struct {
	Correlation float64
	Total       float64
	Iterations  int
	Converged   bool
}

// Solve runs the CCSD iterations on the rank behind c. Every rank of the
// group must call Solve with the same parameters and options. Reaching
// MaxIterations is not an error here: the last Result is returned with
// Converged unset so that no rank cancels its peers mid broadcast.
func Solve(ctx context.Context, c comm.Comm, p *molecule.Parameters, opts Options) (Result, error) {
	top := c.Topology()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Int("rank", top.Rank))
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	tstart := time.Now()
	sc, err := NewSolverContext(p, top)
	if err != nil {
		return Result{}, err
	}
	owned := sc.Owners.OwnedBy(top.Rank)
	ownedNames := make([]string, len(owned))
	for i, x := range owned {
		ownedNames[i] = x.String()
	}
	log.Debug("solver initialized",
		zap.Int("spin_orbitals", sc.nso),
		zap.Int("occupied", sc.nocc),
		zap.Strings("owns", ownedNames),
		zap.Duration("elapsed", time.Since(tstart)))
	if top.IsCoordinator() {
		log.Info("intermediate ownership", zap.Any("owners", sc.Owners.Table()))
	}

	var res Result
	energy := 0.0
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ePrev := energy
		tstart = time.Now()

		for _, x := range owned {
			t0 := time.Now()
			sc.Build(x)
			opts.Metrics.observeBuild(x, time.Since(t0))
		}
		tstart = sc.lap(opts.Metrics, phaseIntermediates, tstart)

		if err := sc.Gather(ctx, c); err != nil {
			return res, err
		}
		tstart = sc.lap(opts.Metrics, phaseGather, tstart)

		var rmsT1, rmsT2 float64
		if top.IsCoordinator() {
			sc.UpdateSingles()
			sc.UpdateDoubles()
			rmsT1 = AmplitudeRMS(sc.T1.Data(), sc.T1New.Data())
			rmsT2 = AmplitudeRMS(sc.T2.Data(), sc.T2New.Data())
		}
		tstart = sc.lap(opts.Metrics, phaseAmplitudes, tstart)

		if err := c.Bcast(ctx, topicT2, comm.Coordinator, sc.T2New.Data()); err != nil {
			return res, err
		}
		if err := c.Bcast(ctx, topicT1, comm.Coordinator, sc.T1New.Data()); err != nil {
			return res, err
		}
		sc.Accept()
		tstart = sc.lap(opts.Metrics, phaseBroadcast, tstart)

		// delta and energy travel together so every rank stops on the same
		// cycle with the same result
		conv := make([]float64, 2)
		if top.IsCoordinator() {
			energy = sc.CorrelationEnergy()
			conv[0], conv[1] = math.Abs(energy-ePrev), energy
		}
		if err := c.Bcast(ctx, topicConvergence, comm.Coordinator, conv); err != nil {
			return res, err
		}
		delta := conv[0]
		energy = conv[1]
		sc.lap(opts.Metrics, phaseEnergy, tstart)

		res = Result{
			Correlation: energy,
			Total:       sc.TotalEnergy(energy),
			Iterations:  iter,
			Converged:   delta < opts.Tolerance,
		}
		if top.IsCoordinator() {
			opts.Metrics.observeIteration(energy, delta)
			log.Info("CCSD iteration",
				zap.Int("iteration", iter),
				zap.Float64("energy", energy),
				zap.Float64("dE", delta),
				zap.Float64("rms_t1", rmsT1),
				zap.Float64("rms_t2", rmsT2))
		}
		if res.Converged {
			if top.IsCoordinator() {
				log.Info("CCSD converged", zap.Int("iterations", iter))
				sc.dumpFinal(log, opts.Dump)
			}
			return res, nil
		}
		if opts.MaxIterations > 0 && iter >= opts.MaxIterations {
			if top.IsCoordinator() {
				log.Warn("CCSD NOT converged", zap.Int("iterations", iter), zap.Float64("dE", delta))
				sc.dumpFinal(log, opts.Dump)
			}
			return res, nil
		}
	}
}

// Gather moves every intermediate from its owner to the coordinator. All
// ranks walk the intermediates in the same order.
func (sc *SolverContext) Gather(ctx context.Context, c comm.Comm) error {
	rank := c.Topology().Rank
	for _, x := range Intermediates() {
		owner := sc.Owners.Owner(x)
		if owner == comm.Coordinator {
			continue
		}
		switch rank {
		case owner:
			if err := c.Send(ctx, x.Topic(), comm.Coordinator, sc.intermediateData(x)); err != nil {
				return fmt.Errorf("gather %v: %w", x, err)
			}
		case comm.Coordinator:
			if err := c.Recv(ctx, x.Topic(), owner, sc.intermediateData(x)); err != nil {
				return fmt.Errorf("gather %v: %w", x, err)
			}
		}
	}
	return nil
}

// dumpFinal logs the amplitudes and the requested intermediates at debug level.
func (sc *SolverContext) dumpFinal(log *zap.Logger, dump []Intermediate) {
	if ce := log.Check(zap.DebugLevel, "final amplitudes"); ce != nil {
		ce.Write(zap.Stringer("T1", sc.T1), zap.Stringer("T2", sc.T2))
	}
	for _, x := range dump {
		log.Debug("intermediate", zap.Stringer("name", x), zap.Stringer("value", sc.intermediate(x)))
	}
}

func (sc *SolverContext) lap(m *Metrics, phase string, since time.Time) time.Time {
	now := time.Now()
	m.observePhase(phase, sc.Topology.Rank, now.Sub(since))
	return now
}

// Run solves p with procs cooperating ranks and returns the common result.
// A run stopped by MaxIterations returns its last Result together with an
// error wrapping ErrNotConverged.
func Run(ctx context.Context, p *molecule.Parameters, procs int, opts Options) (Result, error) {
	var res Result
	err := comm.Run(ctx, procs, func(ctx context.Context, c comm.Comm) error {
		r, err := Solve(ctx, c, p, opts)
		if c.Topology().IsCoordinator() {
			res = r
		}
		return err
	})
	if err != nil {
		return res, err
	}
	if !res.Converged {
		return res, fmt.Errorf("%w after %d iterations", ErrNotConverged, res.Iterations)
	}
	return res, nil
}
