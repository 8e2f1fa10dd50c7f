// integrals_test.go --  This file is part of goCCSD project.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goccsd/internal/molecule"
)

func TestCompoundKeySymmetry(t *testing.T) {
	for a := 1; a <= 3; a++ {
		for b := 1; b <= 3; b++ {
			for c := 1; c <= 3; c++ {
				for d := 1; d <= 3; d++ {
					k := CompoundKey(a, b, c, d)
					assert.Equal(t, k, CompoundKey(b, a, c, d))
					assert.Equal(t, k, CompoundKey(a, b, d, c))
					assert.Equal(t, k, CompoundKey(c, d, a, b))
					assert.Equal(t, k, CompoundKey(d, c, b, a))
				}
			}
		}
	}
}

func TestCompoundKeyHeHPlus(t *testing.T) {
	// the six unique integrals of a two orbital basis
	tests := []struct {
		a, b, c, d int
		key        int
	}{
		{1, 1, 1, 1, 5},
		{1, 1, 1, 2, 12},
		{1, 2, 1, 2, 14},
		{1, 1, 2, 2, 17},
		{1, 2, 2, 2, 19},
		{2, 2, 2, 2, 20},
	}
	p := molecule.HeHPlus()
	for _, tt := range tests {
		assert.Equal(t, tt.key, CompoundKey(tt.a, tt.b, tt.c, tt.d), "(%d%d|%d%d)", tt.a, tt.b, tt.c, tt.d)
		assert.Equal(t, p.Integrals[tt.key], LookupSpatialIntegral(p.Integrals, tt.a, tt.b, tt.c, tt.d))
	}
}

func TestLookupMissingIsZero(t *testing.T) {
	table := map[int]float64{CompoundKey(1, 2, 3, 1): 0.25}
	assert.Equal(t, 0.25, LookupSpatialIntegral(table, 2, 1, 1, 3))
	assert.Equal(t, 0.25, LookupSpatialIntegral(table, 3, 1, 2, 1))
	assert.Zero(t, LookupSpatialIntegral(table, 3, 3, 3, 3))
	assert.Zero(t, LookupSpatialIntegral(nil, 1, 1, 1, 1))
}

func TestSpinIntegrals(t *testing.T) {
	p := molecule.HeHPlus()
	v := BuildSpinIntegrals(p)
	nso := p.NumSpinOrbitals()
	require.Equal(t, nso, v.Dim())

	for i := 0; i < nso; i++ {
		for j := 0; j < nso; j++ {
			for k := 0; k < nso; k++ {
				for l := 0; l < nso; l++ {
					x := v.At(i, j, k, l)
					assert.Equal(t, -x, v.At(j, i, k, l))
					assert.Equal(t, -x, v.At(i, j, l, k))
					assert.Equal(t, x, v.At(k, l, i, j))
				}
			}
		}
	}
	// <12||34> with orbital 1 alpha, 2 beta: only the exchange-free term survives
	assert.Equal(t, p.Integrals[14], v.At(0, 1, 2, 3))
	assert.Equal(t, -p.Integrals[14], v.At(0, 1, 3, 2))
	// same spin pairs carry both terms
	assert.InDelta(t, p.Integrals[17]-p.Integrals[14], v.At(0, 2, 0, 2), 1e-15)
	// spin forbidden
	assert.Zero(t, v.At(0, 1, 0, 0))
	assert.Zero(t, v.At(0, 0, 2, 2))
}

func TestBuildFock(t *testing.T) {
	p := molecule.HeHPlus()
	fs := BuildFock(p.OrbitalEnergies, p.NumSpinOrbitals())
	for i := 0; i < fs.Dim(); i++ {
		for j := 0; j < fs.Dim(); j++ {
			if i == j {
				assert.Equal(t, p.OrbitalEnergies[i/2], fs.At(i, j))
			} else {
				assert.Zero(t, fs.At(i, j))
			}
		}
	}
}
