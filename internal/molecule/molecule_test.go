// molecule_test.go --  This file is part of goCCSD project.
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
package molecule

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHeHPlus(t *testing.T) {
	got, err := Load("testdata/heh+.json")
	require.NoError(t, err)
	if diff := cmp.Diff(HeHPlus(), got); diff != "" {
		t.Errorf("loaded parameters differ from built-in fixture (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, got.NumSpinOrbitals())
	assert.Equal(t, []int{5, 12, 14, 17, 19, 20}, got.IntegralKeys())
	assert.Contains(t, got.String(), "Nelec = 2")
}

func TestParseBareArray(t *testing.T) {
	in := `[{"dim":1},{"Nelec":2},{"orbital_energy":[-0.5]},{"ENUC":0.7},{"EN":-1.1},{"ttmo":[0,0.6]}]`
	p, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Dim)
	assert.Equal(t, map[int]float64{0: 0.6}, p.Integrals)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"not json", `{"config": [`, ""},
		{"no records", `{"config": {"dim": 2}}`, "config"},
		{"dim missing", `{"config":[{"Nelec":2}]}`, "dim"},
		{"dim not int", `{"config":[{"dim":2.5}]}`, "dim"},
		{"record out of order", `{"config":[{"dim":2},{"ENUC":1}]}`, "Nelec"},
		{"energies not array", `{"config":[{"dim":1},{"Nelec":2},{"orbital_energy":1}]}`, "orbital_energy"},
		{"EN is string", `{"config":[{"dim":1},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":"x"}]}`, "EN"},
		{"odd ttmo", `{"config":[{"dim":1},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[0]}]}`, "ttmo"},
		{"fractional key", `{"config":[{"dim":1},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[0.5,1]}]}`, "ttmo"},
		{"duplicate key", `{"config":[{"dim":1},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[0,1,0,2]}]}`, "ttmo"},
		{"odd electrons", `{"config":[{"dim":2},{"Nelec":1},{"orbital_energy":[-1,0]},{"ENUC":1},{"EN":1},{"ttmo":[]}]}`, "Nelec"},
		{"too many electrons", `{"config":[{"dim":1},{"Nelec":4},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[]}]}`, "Nelec"},
		{"energy count", `{"config":[{"dim":2},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[]}]}`, "OrbitalEnergies"},
		{"zero orbitals", `{"config":[{"dim":0},{"Nelec":2},{"orbital_energy":[-1]},{"ENUC":1},{"EN":1},{"ttmo":[]}]}`, "Dim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoadMissingTTMO(t *testing.T) {
	_, err := Load("testdata/missing_ttmo.json")
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "ttmo", ce.Field)
	assert.ErrorIs(t, err, errMissing)
}

func TestLoadNoFile(t *testing.T) {
	_, err := Load("testdata/nope.json")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestValidateEvenRule(t *testing.T) {
	p := HeHPlus()
	require.NoError(t, p.Validate())
	p.Nelec = 3
	p.Dim = 2
	err := p.Validate()
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Nelec", ce.Field)
	assert.Contains(t, ce.Error(), "even electron count")
}
