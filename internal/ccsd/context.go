// context.go --  This file is part of goCCSD project.
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

// Package ccsd solves the CCSD amplitude equations in the spin-orbital
// formulation of Stanton, Gauss, Watts and Bartlett, J. Chem. Phys. 94, 4334
// (1991). Equation numbers in comments refer to that paper.
package ccsd

import (
	"fmt"

	"goccsd/internal/comm"
	"goccsd/internal/molecule"
	"goccsd/internal/tensor"
)

// SolverContext is the complete state of one rank. Occupied spin orbitals
// are [0, Nelec), virtual ones are [Nelec, 2*Dim).
type SolverContext struct {
	Params   *molecule.Parameters
	Topology comm.Topology
	Owners   Ownership

	nso, nocc int

	Fock     *tensor.Tensor2
	SpinInts *tensor.Tensor4
	Dai      *tensor.Tensor2
	Dabij    *tensor.Tensor4

	// current and next amplitudes
	T1, T1New *tensor.Tensor2
	T2, T2New *tensor.Tensor4

	Fae, Fmi, Fme       *tensor.Tensor2
	Wmnij, Wabef, Wmbej *tensor.Tensor4
}

// NewSolverContext allocates every tensor and prepares the first iteration:
// spin integrals, Fock matrix, denominators and the MP2-like T2 guess.
func NewSolverContext(p *molecule.Parameters, top comm.Topology) (*SolverContext, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if top.Size < 1 || top.Rank < 0 || top.Rank >= top.Size {
		return nil, fmt.Errorf("%w: rank %d of %d", comm.ErrBadRank, top.Rank, top.Size)
	}
	nso := p.NumSpinOrbitals()
	sc := &SolverContext{
		Params:   p,
		Topology: top,
		Owners:   AssignOwners(top.Size),
		nso:      nso,
		nocc:     p.Nelec,
		Dai:      tensor.NewTensor2(nso),
		Dabij:    tensor.NewTensor4(nso),
		T1:       tensor.NewTensor2(nso),
		T1New:    tensor.NewTensor2(nso),
		T2:       tensor.NewTensor4(nso),
		T2New:    tensor.NewTensor4(nso),
		Fae:      tensor.NewTensor2(nso),
		Fmi:      tensor.NewTensor2(nso),
		Fme:      tensor.NewTensor2(nso),
		Wmnij:    tensor.NewTensor4(nso),
		Wabef:    tensor.NewTensor4(nso),
		Wmbej:    tensor.NewTensor4(nso),
	}
	sc.SpinInts = BuildSpinIntegrals(p)
	sc.Fock = BuildFock(p.OrbitalEnergies, nso)
	sc.Denominators()
	sc.InitialGuess()
	return sc, nil
}

func (sc *SolverContext) NumSpinOrbitals() int { return sc.nso }

func (sc *SolverContext) NumOccupied() int { return sc.nocc }

// tensorData is what both tensor ranks offer for transfer and printing.
type tensorData interface {
	Data() []float64
	String() string
}

func (sc *SolverContext) intermediate(x Intermediate) tensorData {
	switch x {
	case Fae:
		return sc.Fae
	case Fme:
		return sc.Fme
	case Fmi:
		return sc.Fmi
	case Wmbej:
		return sc.Wmbej
	case Wmnij:
		return sc.Wmnij
	case Wabef:
		return sc.Wabef
	}
	panic(fmt.Sprintf("ccsd: unknown intermediate %v", x))
}

// intermediateData returns the transfer buffer of x.
func (sc *SolverContext) intermediateData(x Intermediate) []float64 {
	return sc.intermediate(x).Data()
}

// Build recomputes the intermediate x from the current amplitudes.
func (sc *SolverContext) Build(x Intermediate) {
	switch x {
	case Fae:
		sc.BuildFae()
	case Fme:
		sc.BuildFme()
	case Fmi:
		sc.BuildFmi()
	case Wmbej:
		sc.BuildWmbej()
	case Wmnij:
		sc.BuildWmnij()
	case Wabef:
		sc.BuildWabef()
	default:
		panic(fmt.Sprintf("ccsd: unknown intermediate %v", x))
	}
}
