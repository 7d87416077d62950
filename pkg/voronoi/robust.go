package voronoi

import "math"

// roundingError is the relative error contributed by one floating point
// operation, in units of machine epsilon.
const roundingError = 1.0

// robustFpt is a float64 paired with an upper bound on its accumulated
// relative error (in epsilons). The lazy circle formation runs entirely on
// these; when the bound of a result exceeds the ULP budget the exact
// big-integer tier recomputes it.
type robustFpt struct {
	fpv float64
	re  float64
}

func rfpt(fpv float64) robustFpt                { return robustFpt{fpv: fpv} }
func rfptErr(fpv, re float64) robustFpt         { return robustFpt{fpv: fpv, re: re} }
func (a robustFpt) isPos() bool                 { return a.fpv > 0 }
func (a robustFpt) isNeg() bool                 { return a.fpv < 0 }
func (a robustFpt) isZero() bool                { return a.fpv == 0 }
func (a robustFpt) ulp() float64                { return a.re }
func (a robustFpt) neg() robustFpt              { return robustFpt{fpv: -a.fpv, re: a.re} }

func (a robustFpt) add(b robustFpt) robustFpt {
	fpv := a.fpv + b.fpv
	var re float64
	if (a.fpv >= 0 && b.fpv >= 0) || (a.fpv <= 0 && b.fpv <= 0) {
		re = math.Max(a.re, b.re) + roundingError
	} else {
		// Cancellation: the absolute errors survive while the value
		// shrinks, so rescale them against the result.
		temp := (a.fpv*a.re - b.fpv*b.re) / fpv
		re = math.Abs(temp) + roundingError
	}
	return robustFpt{fpv: fpv, re: re}
}

func (a robustFpt) sub(b robustFpt) robustFpt {
	fpv := a.fpv - b.fpv
	var re float64
	if (a.fpv >= 0 && b.fpv <= 0) || (a.fpv <= 0 && b.fpv >= 0) {
		re = math.Max(a.re, b.re) + roundingError
	} else {
		temp := (a.fpv*a.re + b.fpv*b.re) / fpv
		re = math.Abs(temp) + roundingError
	}
	return robustFpt{fpv: fpv, re: re}
}

func (a robustFpt) mul(b robustFpt) robustFpt {
	return robustFpt{fpv: a.fpv * b.fpv, re: a.re + b.re + roundingError}
}

func (a robustFpt) div(b robustFpt) robustFpt {
	return robustFpt{fpv: a.fpv / b.fpv, re: a.re + b.re + roundingError}
}

func (a robustFpt) sqrt() robustFpt {
	return robustFpt{fpv: math.Sqrt(a.fpv), re: a.re*0.5 + roundingError}
}

// robustDif keeps a difference as two non-negative sums so that additions
// never cancel; cancellation error appears once, in dif().
type robustDif struct {
	pos, neg robustFpt
}

func (d robustDif) dif() robustFpt      { return d.pos.sub(d.neg) }
func (d robustDif) positive() robustFpt { return d.pos }
func (d robustDif) negative() robustFpt { return d.neg }

func (d robustDif) negate() robustDif { return robustDif{pos: d.neg, neg: d.pos} }

func (d robustDif) addFpt(v robustFpt) robustDif {
	if !v.isNeg() {
		d.pos = d.pos.add(v)
	} else {
		d.neg = d.neg.add(v.neg())
	}
	return d
}

func (d robustDif) subFpt(v robustFpt) robustDif {
	if !v.isNeg() {
		d.neg = d.neg.add(v)
	} else {
		d.pos = d.pos.add(v.neg())
	}
	return d
}

func (d robustDif) add(o robustDif) robustDif {
	d.pos = d.pos.add(o.pos)
	d.neg = d.neg.add(o.neg)
	return d
}

func (d robustDif) sub(o robustDif) robustDif {
	d.pos = d.pos.add(o.neg)
	d.neg = d.neg.add(o.pos)
	return d
}

func (d robustDif) mulFpt(v robustFpt) robustDif {
	if !v.isNeg() {
		return robustDif{pos: d.pos.mul(v), neg: d.neg.mul(v)}
	}
	v = v.neg()
	return robustDif{pos: d.neg.mul(v), neg: d.pos.mul(v)}
}

func (d robustDif) divFpt(v robustFpt) robustDif {
	if !v.isNeg() {
		return robustDif{pos: d.pos.div(v), neg: d.neg.div(v)}
	}
	v = v.neg()
	return robustDif{pos: d.neg.div(v), neg: d.pos.div(v)}
}
