// molecule.go --  This file is part of goCCSD project.
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

// Package molecule holds the molecular parameters the CCSD solver consumes:
// orbital counts, SCF orbital energies, the two reference energies and the
// spatial two-electron integral table keyed by compound index.
package molecule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrConfig marks every error caused by malformed molecule input.
var ErrConfig = errors.New("molecule: configuration error")

// ConfigError names the offending input field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("molecule: %v", e.Err)
	}
	return fmt.Sprintf("molecule: field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrConfig, e.Err} }

// Parameters is the immutable description of the molecule.
type Parameters struct {
	Dim             int             `validate:"gte=1"`
	Nelec           int             `validate:"gt=0,even"`
	OrbitalEnergies []float64       `validate:"required"`
	ENUC            float64         // nuclear repulsion energy
	EN              float64         // SCF energy
	Integrals       map[int]float64 `validate:"required"`
}

var paramsValidate *validator.Validate

func init() {
	paramsValidate = validator.New()
	err := paramsValidate.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
	if err != nil {
		panic(err)
	}
	paramsValidate.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(Parameters)
		if p.Nelec > 2*p.Dim {
			sl.ReportError(p.Nelec, "Nelec", "Nelec", "maxelectrons", "")
		}
		if len(p.OrbitalEnergies) != p.Dim {
			sl.ReportError(p.OrbitalEnergies, "OrbitalEnergies", "OrbitalEnergies", "perorbital", "")
		}
	}, Parameters{})
}

// Validate checks the invariants the solver relies on.
func (p *Parameters) Validate() error {
	err := paramsValidate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigError{Err: err}
	}
	fe := verrs[0]
	var reason string
	switch fe.Tag() {
	case "even":
		reason = "closed shell needs an even electron count"
	case "maxelectrons":
		reason = fmt.Sprintf("%d electrons do not fit in %d spin orbitals", p.Nelec, 2*p.Dim)
	case "perorbital":
		reason = fmt.Sprintf("%d orbital energies for %d spatial orbitals", len(p.OrbitalEnergies), p.Dim)
	default:
		reason = fmt.Sprintf("failed %q check (value %v)", fe.Tag(), fe.Value())
	}
	return &ConfigError{Field: fe.Field(), Err: errors.New(reason)}
}

// NumSpinOrbitals returns two spin orbitals per spatial orbital.
func (p *Parameters) NumSpinOrbitals() int { return 2 * p.Dim }

// IntegralKeys returns the compound keys of the integral table in order.
func (p *Parameters) IntegralKeys() []int {
	keys := maps.Keys(p.Integrals)
	slices.Sort(keys)
	return keys
}

func (p *Parameters) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dim = %d, Nelec = %d\n", p.Dim, p.Nelec)
	fmt.Fprintf(&sb, "orbital energies = %v\n", p.OrbitalEnergies)
	fmt.Fprintf(&sb, "ENUC = %.10f, EN = %.10f\n", p.ENUC, p.EN)
	fmt.Fprintf(&sb, "two-electron integrals (%d):\n", len(p.Integrals))
	for _, k := range p.IntegralKeys() {
		fmt.Fprintf(&sb, "%6d %20.15f\n", k, p.Integrals[k])
	}
	return sb.String()
}

// HeHPlus returns HeH+ in the STO-3G basis, the system used to validate the
// solver.
func HeHPlus() *Parameters {
	return &Parameters{
		Dim:             2,
		Nelec:           2,
		OrbitalEnergies: []float64{-1.52378656, -0.26763148},
		ENUC:            1.1386276671,
		EN:              -3.99300007772,
		Integrals: map[int]float64{
			5:  0.94542695583037617,
			12: 0.17535895381500544,
			14: 0.12682234020148653,
			17: 0.59855327701641903,
			19: -0.056821143621433257,
			20: 0.74715464784363106,
		},
	}
}
