// integrals.go --  This file is part of goCCSD project.
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
	"goccsd/internal/molecule"
	"goccsd/internal/tensor"
)

func pairIndex(a, b int) int {
	if a > b {
		return a*(a+1)/2 + b
	}
	return b*(b+1)/2 + a
}

// CompoundKey packs four spatial orbital indices into the key shared by all
// eight permutationally equivalent integrals (ab|cd).
func CompoundKey(a, b, c, d int) int {
	return pairIndex(pairIndex(a, b), pairIndex(c, d))
}

// LookupSpatialIntegral returns (ab|cd) with 1-based spatial indices.
// Integrals absent from the table are zero.
func LookupSpatialIntegral(table map[int]float64, a, b, c, d int) float64 {
	return table[CompoundKey(a, b, c, d)]
}

func spatial(p int) int { return p/2 + 1 }

func sameSpin(p, q int) float64 {
	if p%2 == q%2 {
		return 1
	}
	return 0
}

// BuildSpinIntegrals converts the spatial integral table to antisymmetrized
// spin-orbital integrals <pq||rs> in physicists' notation.
func BuildSpinIntegrals(p *molecule.Parameters) *tensor.Tensor4 {
	nso := p.NumSpinOrbitals()
	res := tensor.NewTensor4(nso)
	for ip := 0; ip < nso; ip++ {
		for iq := 0; iq < nso; iq++ {
			for ir := 0; ir < nso; ir++ {
				for is := 0; is < nso; is++ {
					value1 := LookupSpatialIntegral(p.Integrals, spatial(ip), spatial(ir), spatial(iq), spatial(is)) *
						sameSpin(ip, ir) * sameSpin(iq, is)
					value2 := LookupSpatialIntegral(p.Integrals, spatial(ip), spatial(is), spatial(iq), spatial(ir)) *
						sameSpin(ip, is) * sameSpin(iq, ir)
					res.Set(ip, iq, ir, is, value1-value2)
				}
			}
		}
	}
	return res
}
