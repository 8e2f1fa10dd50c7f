// amplitudes.go --  This file is part of goCCSD project.
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

// Denominators fills Dai and Dabij, equation (12).
func (sc *SolverContext) Denominators() {
	fs := sc.Fock
	sc.Dai.Zero()
	for a := sc.nocc; a < sc.nso; a++ {
		for i := 0; i < sc.nocc; i++ {
			sc.Dai.Set(a, i, fs.At(i, i)-fs.At(a, a))
		}
	}
	sc.Dabij.Zero()
	for a := sc.nocc; a < sc.nso; a++ {
		for b := sc.nocc; b < sc.nso; b++ {
			for i := 0; i < sc.nocc; i++ {
				for j := 0; j < sc.nocc; j++ {
					sc.Dabij.Set(a, b, i, j, fs.At(i, i)+fs.At(j, j)-fs.At(a, a)-fs.At(b, b))
				}
			}
		}
	}
}

// InitialGuess sets T1 to zero and T2 to the first-order perturbative
// amplitudes <ij||ab>/Dabij.
func (sc *SolverContext) InitialGuess() {
	sc.T1.Zero()
	sc.T2.Zero()
	for a := sc.nocc; a < sc.nso; a++ {
		for b := sc.nocc; b < sc.nso; b++ {
			for i := 0; i < sc.nocc; i++ {
				for j := 0; j < sc.nocc; j++ {
					sc.T2.Set(a, b, i, j, sc.SpinInts.At(i, j, a, b)/sc.Dabij.At(a, b, i, j))
				}
			}
		}
	}
}

// UpdateSingles writes the next T1 amplitudes into T1New, equation (1).
// All six intermediates must be current.
func (sc *SolverContext) UpdateSingles() {
	fs, ts, td, v := sc.Fock, sc.T1, sc.T2, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.T1New.Zero()
	for a := nocc; a < nso; a++ {
		for i := 0; i < nocc; i++ {
			x := fs.At(i, a)
			for e := nocc; e < nso; e++ {
				x += ts.At(e, i) * sc.Fae.At(a, e)
			}
			for m := 0; m < nocc; m++ {
				x += -ts.At(a, m) * sc.Fmi.At(m, i)
				for e := nocc; e < nso; e++ {
					x += td.At(a, e, i, m) * sc.Fme.At(m, e)
					for f := nocc; f < nso; f++ {
						x += -0.5 * td.At(e, f, i, m) * v.At(m, a, e, f)
					}
					for n := 0; n < nocc; n++ {
						x += -0.5 * td.At(a, e, m, n) * v.At(n, m, e, i)
					}
				}
			}
			for n := 0; n < nocc; n++ {
				for f := nocc; f < nso; f++ {
					x += -ts.At(f, n) * v.At(n, a, i, f)
				}
			}
			sc.T1New.Set(a, i, x/sc.Dai.At(a, i))
		}
	}
}

// UpdateDoubles writes the next T2 amplitudes into T2New, equation (2).
// All six intermediates must be current.
func (sc *SolverContext) UpdateDoubles() {
	ts, td, v := sc.T1, sc.T2, sc.SpinInts
	fae, fmi, fme := sc.Fae, sc.Fmi, sc.Fme
	nocc, nso := sc.nocc, sc.nso
	sc.T2New.Zero()
	for a := nocc; a < nso; a++ {
		for b := nocc; b < nso; b++ {
			for i := 0; i < nocc; i++ {
				for j := 0; j < nocc; j++ {
					x := v.At(i, j, a, b)
					// P(ab) Fae terms
					for e := nocc; e < nso; e++ {
						x += td.At(a, e, i, j)*fae.At(b, e) - td.At(b, e, i, j)*fae.At(a, e)
						for m := 0; m < nocc; m++ {
							x += -0.5*td.At(a, e, i, j)*ts.At(b, m)*fme.At(m, e) +
								0.5*td.At(b, e, i, j)*ts.At(a, m)*fme.At(m, e)
						}
					}
					// P(ij) Fmi terms
					for m := 0; m < nocc; m++ {
						x += -td.At(a, b, i, m)*fmi.At(m, j) + td.At(a, b, j, m)*fmi.At(m, i)
						for e := nocc; e < nso; e++ {
							x += -0.5*td.At(a, b, i, m)*ts.At(e, j)*fme.At(m, e) +
								0.5*td.At(a, b, j, m)*ts.At(e, i)*fme.At(m, e)
						}
					}
					for e := nocc; e < nso; e++ {
						x += ts.At(e, i)*v.At(a, b, e, j) - ts.At(e, j)*v.At(a, b, e, i)
						for f := nocc; f < nso; f++ {
							x += 0.5 * sc.Tau(e, f, i, j) * sc.Wabef.At(a, b, e, f)
						}
					}
					for m := 0; m < nocc; m++ {
						x += -ts.At(a, m)*v.At(m, b, i, j) + ts.At(b, m)*v.At(m, a, i, j)
						for e := nocc; e < nso; e++ {
							x += td.At(a, e, i, m)*sc.Wmbej.At(m, b, e, j) - ts.At(e, i)*ts.At(a, m)*v.At(m, b, e, j)
							x += -td.At(a, e, j, m)*sc.Wmbej.At(m, b, e, i) + ts.At(e, j)*ts.At(a, m)*v.At(m, b, e, i)
							x += -td.At(b, e, i, m)*sc.Wmbej.At(m, a, e, j) + ts.At(e, i)*ts.At(b, m)*v.At(m, a, e, j)
							x += td.At(b, e, j, m)*sc.Wmbej.At(m, a, e, i) - ts.At(e, j)*ts.At(b, m)*v.At(m, a, e, i)
						}
						for n := 0; n < nocc; n++ {
							x += 0.5 * sc.Tau(a, b, m, n) * sc.Wmnij.At(m, n, i, j)
						}
					}
					sc.T2New.Set(a, b, i, j, x/sc.Dabij.At(a, b, i, j))
				}
			}
		}
	}
}

// Accept makes the new amplitudes current.
func (sc *SolverContext) Accept() {
	sc.T1.Assign(sc.T1New)
	sc.T2.Assign(sc.T2New)
}
