// helper.go --  This file is part of goCCSD project.
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
package main

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

const defaultOutput = "goccsd.out"

func ReadFileLines(fname string) ([]string, error) {
	var result []string

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

// outputName replaces the extension of the input file with ".out".
func outputName(inpFname string) string {
	if inpFname == "" {
		return defaultOutput
	}
	return strings.TrimSuffix(inpFname, filepath.Ext(inpFname)) + ".out"
}

func memDebug(log *zap.Logger) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.Debug("memory",
		zap.Uint64("alloc", memStats.Alloc),
		zap.Uint64("total_alloc", memStats.TotalAlloc),
		zap.Uint64("heap_alloc", memStats.HeapAlloc),
		zap.Uint64("heap_sys", memStats.HeapSys))
}
