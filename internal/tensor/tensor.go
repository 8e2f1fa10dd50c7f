// tensor.go --  This file is part of goCCSD project.
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

// Package tensor holds the dense spin-orbital containers used by the CCSD
// solver. Every axis has the same extent (the number of spin orbitals) and the
// storage is a single flat column-major buffer so that a whole tensor can be
// moved between ranks in one message.
package tensor

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// IndexError is the panic payload of an out-of-range tensor access.
type IndexError struct {
	Index []int
	Dim   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("tensor: index %v out of range for extent %d", e.Index, e.Dim)
}

func checkIndex(n int, idx ...int) {
	for _, i := range idx {
		if i < 0 || i >= n {
			panic(&IndexError{Index: append([]int(nil), idx...), Dim: n})
		}
	}
}

func mustSameExtent(n, m int) {
	if n != m {
		panic(fmt.Sprintf("tensor: assign between extents %d and %d", m, n))
	}
}

// Tensor2 is a rank-2 tensor over spin orbitals.
type Tensor2 struct {
	n    int
	data []float64
}

// NewTensor2 allocates a zero-filled n×n tensor.
func NewTensor2(n int) *Tensor2 {
	if n < 1 {
		panic(fmt.Sprintf("tensor: bad extent %d", n))
	}
	return &Tensor2{n: n, data: make([]float64, n*n)}
}

func (t *Tensor2) index(i, j int) int {
	checkIndex(t.n, i, j)
	return j*t.n + i
}

// Dim returns the extent of each axis.
func (t *Tensor2) Dim() int { return t.n }

// Len returns the number of stored elements.
func (t *Tensor2) Len() int { return len(t.data) }

// Data returns the backing buffer. Transfers read and write it in place.
func (t *Tensor2) Data() []float64 { return t.data }

func (t *Tensor2) At(i, j int) float64 { return t.data[t.index(i, j)] }

func (t *Tensor2) Set(i, j int, v float64) { t.data[t.index(i, j)] = v }

// Add accumulates v into element (i, j).
func (t *Tensor2) Add(i, j int, v float64) { t.data[t.index(i, j)] += v }

func (t *Tensor2) Zero() { clear(t.data) }

// Assign copies src element-wise. Both tensors must have the same extent.
func (t *Tensor2) Assign(src *Tensor2) {
	mustSameExtent(t.n, src.n)
	copy(t.data, src.data)
}

// Diagonal zeroes the tensor and puts vals on its diagonal.
func (t *Tensor2) Diagonal(vals []float64) {
	if len(vals) != t.n {
		panic(fmt.Sprintf("tensor: %d diagonal values for extent %d", len(vals), t.n))
	}
	t.Zero()
	for i, v := range vals {
		t.Set(i, i, v)
	}
}

// Matrix returns a copy of t as a gonum matrix with row i and column j.
func (t *Tensor2) Matrix() *mat.Dense {
	// column-major storage read as row-major is the transpose
	var m mat.Dense
	m.CloneFrom(mat.NewDense(t.n, t.n, t.data).T())
	return &m
}

func (t *Tensor2) String() string {
	fa := mat.Formatted(t.Matrix(), mat.Prefix("    "), mat.Squeeze())
	return fmt.Sprintf("    %.8f\n", fa)
}

// Tensor4 is a rank-4 tensor over spin orbitals.
type Tensor4 struct {
	n    int
	data []float64
}

// NewTensor4 allocates a zero-filled n×n×n×n tensor.
func NewTensor4(n int) *Tensor4 {
	if n < 1 {
		panic(fmt.Sprintf("tensor: bad extent %d", n))
	}
	return &Tensor4{n: n, data: make([]float64, n*n*n*n)}
}

func (t *Tensor4) index(i, j, k, l int) int {
	checkIndex(t.n, i, j, k, l)
	n := t.n
	return ((l*n+k)*n+j)*n + i
}

func (t *Tensor4) Dim() int { return t.n }

func (t *Tensor4) Len() int { return len(t.data) }

// Data returns the backing buffer. Transfers read and write it in place.
func (t *Tensor4) Data() []float64 { return t.data }

func (t *Tensor4) At(i, j, k, l int) float64 { return t.data[t.index(i, j, k, l)] }

func (t *Tensor4) Set(i, j, k, l int, v float64) { t.data[t.index(i, j, k, l)] = v }

// Add accumulates v into element (i, j, k, l).
func (t *Tensor4) Add(i, j, k, l int, v float64) { t.data[t.index(i, j, k, l)] += v }

func (t *Tensor4) Zero() { clear(t.data) }

// Assign copies src element-wise. Both tensors must have the same extent.
func (t *Tensor4) Assign(src *Tensor4) {
	mustSameExtent(t.n, src.n)
	copy(t.data, src.data)
}

func (t *Tensor4) String() string {
	var sb strings.Builder
	for i := 0; i < t.n; i++ {
		sb.WriteString("[\n")
		for j := 0; j < t.n; j++ {
			sb.WriteString("   [\n")
			for k := 0; k < t.n; k++ {
				sb.WriteString("      [")
				for l := 0; l < t.n; l++ {
					fmt.Fprintf(&sb, "%12.8f", t.At(i, j, k, l))
				}
				sb.WriteString(" ]\n")
			}
			sb.WriteString("   ]\n")
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
