// fock.go --  This file is part of goCCSD project.
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

import "goccsd/internal/tensor"

// BuildFock returns the diagonal spin-orbital Fock matrix, with spin orbital
// p carrying the energy of spatial orbital p/2.
func BuildFock(orbitalEnergies []float64, nso int) *tensor.Tensor2 {
	diag := make([]float64, nso)
	for p := range diag {
		diag[p] = orbitalEnergies[p/2]
	}
	fs := tensor.NewTensor2(nso)
	fs.Diagonal(diag)
	return fs
}
