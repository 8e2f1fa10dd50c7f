// intermediates.go --  This file is part of goCCSD project.
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

// TauTilde is the effective doubles amplitude of equation (9).
func (sc *SolverContext) TauTilde(a, b, i, j int) float64 {
	ts := sc.T1
	return sc.T2.At(a, b, i, j) + 0.5*(ts.At(a, i)*ts.At(b, j)-ts.At(b, i)*ts.At(a, j))
}

// Tau is the effective doubles amplitude of equation (10).
func (sc *SolverContext) Tau(a, b, i, j int) float64 {
	ts := sc.T1
	return sc.T2.At(a, b, i, j) + ts.At(a, i)*ts.At(b, j) - ts.At(b, i)*ts.At(a, j)
}

func kronecker(p, q int) float64 {
	if p == q {
		return 1
	}
	return 0
}

// BuildFae computes the virtual-virtual intermediate, equation (3).
func (sc *SolverContext) BuildFae() {
	fs, ts, v := sc.Fock, sc.T1, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Fae.Zero()
	for a := nocc; a < nso; a++ {
		for e := nocc; e < nso; e++ {
			x := (1 - kronecker(a, e)) * fs.At(a, e)
			for m := 0; m < nocc; m++ {
				x += -0.5 * fs.At(m, e) * ts.At(a, m)
				for f := nocc; f < nso; f++ {
					x += ts.At(f, m) * v.At(m, a, f, e)
					for n := 0; n < nocc; n++ {
						x += -0.5 * sc.TauTilde(a, f, m, n) * v.At(m, n, e, f)
					}
				}
			}
			sc.Fae.Set(a, e, x)
		}
	}
}

// BuildFmi computes the occupied-occupied intermediate, equation (4).
func (sc *SolverContext) BuildFmi() {
	fs, ts, v := sc.Fock, sc.T1, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Fmi.Zero()
	for m := 0; m < nocc; m++ {
		for i := 0; i < nocc; i++ {
			x := (1 - kronecker(m, i)) * fs.At(m, i)
			for e := nocc; e < nso; e++ {
				x += 0.5 * ts.At(e, i) * fs.At(m, e)
				for n := 0; n < nocc; n++ {
					x += ts.At(e, n) * v.At(m, n, i, e)
					for f := nocc; f < nso; f++ {
						x += 0.5 * sc.TauTilde(e, f, i, n) * v.At(m, n, e, f)
					}
				}
			}
			sc.Fmi.Set(m, i, x)
		}
	}
}

// BuildFme computes the occupied-virtual intermediate, equation (5).
func (sc *SolverContext) BuildFme() {
	fs, ts, v := sc.Fock, sc.T1, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Fme.Zero()
	for m := 0; m < nocc; m++ {
		for e := nocc; e < nso; e++ {
			x := fs.At(m, e)
			for n := 0; n < nocc; n++ {
				for f := nocc; f < nso; f++ {
					x += ts.At(f, n) * v.At(m, n, e, f)
				}
			}
			sc.Fme.Set(m, e, x)
		}
	}
}

// BuildWmnij computes the hole-hole ladder intermediate, equation (6).
func (sc *SolverContext) BuildWmnij() {
	ts, v := sc.T1, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Wmnij.Zero()
	for m := 0; m < nocc; m++ {
		for n := 0; n < nocc; n++ {
			for i := 0; i < nocc; i++ {
				for j := 0; j < nocc; j++ {
					x := v.At(m, n, i, j)
					for e := nocc; e < nso; e++ {
						x += ts.At(e, j)*v.At(m, n, i, e) - ts.At(e, i)*v.At(m, n, j, e)
						for f := nocc; f < nso; f++ {
							x += 0.25 * sc.Tau(e, f, i, j) * v.At(m, n, e, f)
						}
					}
					sc.Wmnij.Set(m, n, i, j, x)
				}
			}
		}
	}
}

// BuildWabef computes the particle-particle ladder intermediate, equation (7).
func (sc *SolverContext) BuildWabef() {
	ts, v := sc.T1, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Wabef.Zero()
	for a := nocc; a < nso; a++ {
		for b := nocc; b < nso; b++ {
			for e := nocc; e < nso; e++ {
				for f := nocc; f < nso; f++ {
					x := v.At(a, b, e, f)
					for m := 0; m < nocc; m++ {
						x += -ts.At(b, m)*v.At(a, m, e, f) + ts.At(a, m)*v.At(b, m, e, f)
						for n := 0; n < nocc; n++ {
							x += 0.25 * sc.Tau(a, b, m, n) * v.At(m, n, e, f)
						}
					}
					sc.Wabef.Set(a, b, e, f, x)
				}
			}
		}
	}
}

// BuildWmbej computes the ring intermediate, equation (8).
func (sc *SolverContext) BuildWmbej() {
	ts, td, v := sc.T1, sc.T2, sc.SpinInts
	nocc, nso := sc.nocc, sc.nso
	sc.Wmbej.Zero()
	for m := 0; m < nocc; m++ {
		for b := nocc; b < nso; b++ {
			for e := nocc; e < nso; e++ {
				for j := 0; j < nocc; j++ {
					x := v.At(m, b, e, j)
					for f := nocc; f < nso; f++ {
						x += ts.At(f, j) * v.At(m, b, e, f)
					}
					for n := 0; n < nocc; n++ {
						x += -ts.At(b, n) * v.At(m, n, e, j)
						for f := nocc; f < nso; f++ {
							x += -(0.5*td.At(f, b, j, n) + ts.At(f, j)*ts.At(b, n)) * v.At(m, n, e, f)
						}
					}
					sc.Wmbej.Set(m, b, e, j, x)
				}
			}
		}
	}
}
