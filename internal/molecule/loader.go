// loader.go --  This file is part of goCCSD project.
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
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

var (
	errMissing  = errors.New("missing")
	errNotInt   = errors.New("not an integer")
	errNotNum   = errors.New("not a number")
	errNotArray = errors.New("not an array")
)

// Records of the input, by position.
const (
	recDim = iota
	recNelec
	recOrbitalEnergy
	recENUC
	recEN
	recTTMO
)

// Load reads a molecule from a JSON input file.
//
// The file holds {"config": [{"dim": 2}, {"Nelec": 2}, {"orbital_energy": [...]},
// {"ENUC": ...}, {"EN": ...}, {"ttmo": [key, value, key, value, ...]}]}; a bare
// top-level array of the same records is accepted too.
func Load(fname string) (*Parameters, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("cannot read input file: %w", err)}
	}
	return Parse(data)
}

// Parse decodes and validates molecule input.
func Parse(data []byte) (*Parameters, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ConfigError{Err: errors.New("input is not valid JSON")}
	}
	root := gjson.ParseBytes(data)
	cfg := root.Get("config")
	if !cfg.Exists() {
		cfg = root
	}
	if !cfg.IsArray() {
		return nil, &ConfigError{Field: "config", Err: errNotArray}
	}

	var p Parameters
	var err error
	if p.Dim, err = readInt(cfg, recDim, "dim"); err != nil {
		return nil, err
	}
	if p.Nelec, err = readInt(cfg, recNelec, "Nelec"); err != nil {
		return nil, err
	}
	if p.OrbitalEnergies, err = readFloats(cfg, recOrbitalEnergy, "orbital_energy"); err != nil {
		return nil, err
	}
	if p.ENUC, err = readFloat(cfg, recENUC, "ENUC"); err != nil {
		return nil, err
	}
	if p.EN, err = readFloat(cfg, recEN, "EN"); err != nil {
		return nil, err
	}
	if p.Integrals, err = readTTMO(cfg, recTTMO, "ttmo"); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func record(cfg gjson.Result, pos int, name string) (gjson.Result, error) {
	v := cfg.Get(fmt.Sprintf("%d.%s", pos, name))
	if !v.Exists() {
		return v, &ConfigError{Field: name, Err: fmt.Errorf("record %d: %w", pos, errMissing)}
	}
	return v, nil
}

func asInt(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return int(v.Num), true
}

func readInt(cfg gjson.Result, pos int, name string) (int, error) {
	v, err := record(cfg, pos, name)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, &ConfigError{Field: name, Err: fmt.Errorf("%w: %s", errNotInt, v.Raw)}
	}
	return n, nil
}

func readFloat(cfg gjson.Result, pos int, name string) (float64, error) {
	v, err := record(cfg, pos, name)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, &ConfigError{Field: name, Err: fmt.Errorf("%w: %s", errNotNum, v.Raw)}
	}
	return v.Num, nil
}

func readFloats(cfg gjson.Result, pos int, name string) ([]float64, error) {
	v, err := record(cfg, pos, name)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, &ConfigError{Field: name, Err: errNotArray}
	}
	var res []float64
	for i, el := range v.Array() {
		if el.Type != gjson.Number {
			return nil, &ConfigError{Field: name, Err: fmt.Errorf("element %d %w: %s", i, errNotNum, el.Raw)}
		}
		res = append(res, el.Num)
	}
	return res, nil
}

func readTTMO(cfg gjson.Result, pos int, name string) (map[int]float64, error) {
	vals, err := readFloats(cfg, pos, name)
	if err != nil {
		return nil, err
	}
	if len(vals)%2 != 0 {
		return nil, &ConfigError{Field: name, Err: fmt.Errorf("odd number of entries (%d) in key/value list", len(vals))}
	}
	res := make(map[int]float64, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		k := vals[i]
		if k < 0 || k != math.Trunc(k) {
			return nil, &ConfigError{Field: name, Err: fmt.Errorf("bad compound key %v", k)}
		}
		key := int(k)
		if _, dup := res[key]; dup {
			return nil, &ConfigError{Field: name, Err: fmt.Errorf("duplicate compound key %d", key)}
		}
		res[key] = vals[i+1]
	}
	return res, nil
}
