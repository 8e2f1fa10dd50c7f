// assign.go --  This file is part of goCCSD project.
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
	"fmt"

	"golang.org/x/exp/slices"

	"goccsd/internal/comm"
)

// Intermediate names one of the six CCSD intermediates.
type Intermediate int

// Assignment order of the intermediates.
const (
	Fae Intermediate = iota
	Fme
	Fmi
	Wmbej
	Wmnij
	Wabef
	numIntermediates
)

var intermediateNames = []string{"Fae", "Fme", "Fmi", "Wmbej", "Wmnij", "Wabef"}

func (x Intermediate) String() string {
	if x < 0 || x >= numIntermediates {
		return fmt.Sprintf("Intermediate(%d)", int(x))
	}
	return intermediateNames[x]
}

// Topic is the transfer topic of the intermediate.
func (x Intermediate) Topic() comm.Topic { return comm.Topic("intermediate/" + x.String()) }

// Intermediates lists all intermediates in assignment order.
func Intermediates() []Intermediate {
	res := make([]Intermediate, numIntermediates)
	for i := range res {
		res[i] = Intermediate(i)
	}
	return res
}

func ParseIntermediate(name string) (Intermediate, error) {
	idx := slices.Index(intermediateNames, name)
	if idx < 0 {
		return 0, fmt.Errorf("unknown intermediate %q", name)
	}
	return Intermediate(idx), nil
}

// Ownership maps every intermediate to the rank that computes it. It is
// fixed for the whole run.
type Ownership struct {
	size   int
	owners [numIntermediates]int
}

// AssignOwners deals the intermediates round robin over the worker ranks
// 1..size-1. The coordinator only computes intermediates when it runs alone.
func AssignOwners(size int) Ownership {
	if size < 1 {
		panic(fmt.Sprintf("ccsd: group size %d", size))
	}
	start := comm.Coordinator
	if size > 1 {
		start = comm.Coordinator + 1
	}
	o := Ownership{size: size}
	rank := start
	for _, x := range Intermediates() {
		o.owners[x] = rank
		rank++
		if rank > size-1 {
			rank = start
		}
	}
	return o
}

func (o Ownership) Owner(x Intermediate) int { return o.owners[x] }

// OwnedBy returns the intermediates rank computes, in assignment order.
func (o Ownership) OwnedBy(rank int) []Intermediate {
	var res []Intermediate
	for _, x := range Intermediates() {
		if o.owners[x] == rank {
			res = append(res, x)
		}
	}
	return res
}

// Table returns the ownership as name -> rank.
func (o Ownership) Table() map[string]int {
	res := make(map[string]int, numIntermediates)
	for _, x := range Intermediates() {
		res[x.String()] = o.owners[x]
	}
	return res
}
