// energy.go --  This file is part of goCCSD project.
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
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrelationEnergy evaluates the CCSD correlation energy from the current
// amplitudes (Crawford and Schaefer, Rev. Comp. Chem. 14, eq. 134 and 173).
func (sc *SolverContext) CorrelationEnergy() float64 {
	ts, td, v := sc.T1, sc.T2, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	res := 0.0
	for i := 0; i < nocc; i++ {
		for a := nocc; a < nso; a++ {
			for j := 0; j < nocc; j++ {
				for b := nocc; b < nso; b++ {
					res += 0.25*v.At(i, j, a, b)*td.At(a, b, i, j) + 0.5*v.At(i, j, a, b)*ts.At(a, i)*ts.At(b, j)
				}
			}
		}
	}
	return res
}

// TotalEnergy adds the SCF and nuclear repulsion energies to ecorr.
func (sc *SolverContext) TotalEnergy(ecorr float64) float64 {
	return ecorr + sc.Params.EN + sc.Params.ENUC
}

// AmplitudeRMS is the root mean square difference between two amplitude
// buffers of equal length.
func AmplitudeRMS(prev, next []float64) float64 {
	if len(prev) != len(next) {
		panic("ccsd: amplitude buffers differ in length")
	}
	sq := make([]float64, len(prev))
	for i := range prev {
		d := next[i] - prev[i]
		sq[i] = d * d
	}
	return math.Sqrt(stat.Mean(sq, nil))
}
