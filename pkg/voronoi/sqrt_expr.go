package voronoi

import "math/big"

// sqrtExprPrec is the mantissa width used while collapsing exact integer
// expressions to floating point. The integer parts are exact; only the
// square roots and the final division round, so a double-width mantissa
// keeps the end result correct to the last few float64 ULPs.
const sqrtExprPrec = 128

func bigFloat(x *big.Int) *big.Float {
	return new(big.Float).SetPrec(sqrtExprPrec).SetInt(x)
}

func bigFloatSqrt(x *big.Int) *big.Float {
	return new(big.Float).SetPrec(sqrtExprPrec).Sqrt(bigFloat(x))
}

func sameSignF(a, b *big.Float) bool {
	return (a.Sign() >= 0 && b.Sign() >= 0) || (a.Sign() <= 0 && b.Sign() <= 0)
}

// sqrtExpr evaluates sums of terms A[i]*sqrt(B[i]) over exact integers,
// rewriting the expression whenever naive evaluation would cancel
// catastrophically. This is the arbitrary-precision tier behind the circle
// event coordinates: every B[i] is a squared length (non-negative), every
// rewrite below is the standard conjugate trick, so each returned value
// carries only a bounded relative error.
type sqrtExpr struct{}

// eval1 evaluates A[0] * sqrt(B[0]).
func (sqrtExpr) eval1(a, b []*big.Int) *big.Float {
	return new(big.Float).SetPrec(sqrtExprPrec).Mul(bigFloat(a[0]), bigFloatSqrt(b[0]))
}

// eval2 evaluates A[0]*sqrt(B[0]) + A[1]*sqrt(B[1]).
func (e sqrtExpr) eval2(a, b []*big.Int) *big.Float {
	ra := e.eval1(a, b)
	rb := e.eval1(a[1:], b[1:])
	if sameSignF(ra, rb) {
		return ra.Add(ra, rb)
	}
	// (A0^2*B0 - A1^2*B1) / (A0*sqrt(B0) - A1*sqrt(B1))
	numer := new(big.Int).Mul(a[0], a[0])
	numer.Mul(numer, b[0])
	t := new(big.Int).Mul(a[1], a[1])
	t.Mul(t, b[1])
	numer.Sub(numer, t)
	div := ra.Sub(ra, rb)
	return new(big.Float).SetPrec(sqrtExprPrec).Quo(bigFloat(numer), div)
}

// eval3 evaluates A[0]*sqrt(B[0]) + A[1]*sqrt(B[1]) + A[2]*sqrt(B[2]).
func (e sqrtExpr) eval3(a, b []*big.Int) *big.Float {
	ra := e.eval2(a, b)
	rb := e.eval1(a[2:], b[2:])
	if sameSignF(ra, rb) {
		return ra.Add(ra, rb)
	}
	ca := make([]*big.Int, 2)
	cb := make([]*big.Int, 2)
	ca[0] = new(big.Int)
	for i := 0; i < 3; i++ {
		t := new(big.Int).Mul(a[i], a[i])
		t.Mul(t, b[i])
		if i == 2 {
			ca[0].Sub(ca[0], t)
		} else {
			ca[0].Add(ca[0], t)
		}
	}
	cb[0] = big.NewInt(1)
	ca[1] = new(big.Int).Mul(a[0], a[1])
	ca[1].Lsh(ca[1], 1)
	cb[1] = new(big.Int).Mul(b[0], b[1])
	numer := e.eval2(ca, cb)
	div := ra.Sub(ra, rb)
	return numer.Quo(numer, div)
}

// eval4 evaluates the sum of four A[i]*sqrt(B[i]) terms.
func (e sqrtExpr) eval4(a, b []*big.Int) *big.Float {
	ra := e.eval2(a, b)
	rb := e.eval2(a[2:], b[2:])
	if sameSignF(ra, rb) {
		return ra.Add(ra, rb)
	}
	ca := make([]*big.Int, 3)
	cb := make([]*big.Int, 3)
	ca[0] = new(big.Int)
	for i := 0; i < 4; i++ {
		t := new(big.Int).Mul(a[i], a[i])
		t.Mul(t, b[i])
		if i >= 2 {
			ca[0].Sub(ca[0], t)
		} else {
			ca[0].Add(ca[0], t)
		}
	}
	cb[0] = big.NewInt(1)
	ca[1] = new(big.Int).Mul(a[0], a[1])
	ca[1].Lsh(ca[1], 1)
	cb[1] = new(big.Int).Mul(b[0], b[1])
	ca[2] = new(big.Int).Mul(a[2], a[3])
	ca[2].Mul(ca[2], big.NewInt(-2))
	cb[2] = new(big.Int).Mul(b[2], b[3])
	numer := e.eval3(ca, cb)
	div := ra.Sub(ra, rb)
	return numer.Quo(numer, div)
}

// evalPSS3 evaluates A[0]*sqrt(B[0]) + A[1]*sqrt(B[1]) + A[2] +
// A[3]*sqrt(B[0]*B[1]), with B[2] = 1 and B[3] = B[0]*B[1] supplied by the
// caller. The cancellation rewrite follows from
// lh^2 - rh^2 = A0^2*B0 + A1^2*B1 - A2^2 - A3^2*B0*B1
//             + 2*(A0*A1 - A2*A3)*sqrt(B0*B1).
func (e sqrtExpr) evalPSS3(a, b []*big.Int) *big.Float {
	lh := e.eval2(a, b)
	rh := e.eval2(a[2:], b[2:])
	if sameSignF(lh, rh) {
		return lh.Add(lh, rh)
	}
	ca0 := new(big.Int).Mul(a[0], a[0])
	ca0.Mul(ca0, b[0])
	t := new(big.Int).Mul(a[1], a[1])
	t.Mul(t, b[1])
	ca0.Add(ca0, t)
	t = new(big.Int).Mul(a[2], a[2])
	ca0.Sub(ca0, t)
	t = new(big.Int).Mul(a[3], a[3])
	t.Mul(t, b[0])
	t.Mul(t, b[1])
	ca0.Sub(ca0, t)
	ca1 := new(big.Int).Mul(a[0], a[1])
	t = new(big.Int).Mul(a[2], a[3])
	ca1.Sub(ca1, t)
	ca1.Lsh(ca1, 1)
	numer := e.eval2(
		[]*big.Int{ca0, ca1},
		[]*big.Int{big.NewInt(1), b[3]},
	)
	div := lh.Sub(lh, rh)
	return numer.Quo(numer, div)
}

// evalPSS4 evaluates A[3] + A[0]*sqrt(B[0]) + A[1]*sqrt(B[1]) +
// A[2]*sqrt(B[3]*(sqrt(B[0]*B[1])+B[2])). This nested-radical shape is what
// the point/segment/segment circle equations collapse to.
func (e sqrtExpr) evalPSS4(a, b []*big.Int) *big.Float {
	// rh = A2 * sqrt(B3 * (sqrt(B0*B1) + B2)). The inner expression is
	// non-negative by Cauchy-Schwarz; the product is clamped so that a
	// rounding artifact cannot feed Sqrt a negative operand.
	inner := e.eval2(
		[]*big.Int{big.NewInt(1), b[2]},
		[]*big.Int{new(big.Int).Mul(b[0], b[1]), big.NewInt(1)},
	)
	inner.Mul(inner, bigFloat(b[3]))
	if inner.Sign() < 0 {
		inner.SetInt64(0)
	}
	rh := new(big.Float).SetPrec(sqrtExprPrec).Sqrt(inner)
	rh.Mul(rh, bigFloat(a[2]))

	if a[3].Sign() == 0 {
		lh := e.eval2(a, b)
		if sameSignF(lh, rh) {
			return lh.Add(lh, rh)
		}
		// lh^2 - rh^2 = A0^2*B0 + A1^2*B1 - A2^2*B2*B3
		//             + (2*A0*A1 - A2^2*B3) * sqrt(B0*B1).
		ca0 := new(big.Int).Mul(a[0], a[0])
		ca0.Mul(ca0, b[0])
		t := new(big.Int).Mul(a[1], a[1])
		t.Mul(t, b[1])
		ca0.Add(ca0, t)
		sqA2B3 := new(big.Int).Mul(a[2], a[2])
		sqA2B3.Mul(sqA2B3, b[3])
		t = new(big.Int).Mul(sqA2B3, b[2])
		ca0.Sub(ca0, t)
		ca1 := new(big.Int).Mul(a[0], a[1])
		ca1.Lsh(ca1, 1)
		ca1.Sub(ca1, sqA2B3)
		numer := e.eval2(
			[]*big.Int{ca0, ca1},
			[]*big.Int{big.NewInt(1), new(big.Int).Mul(b[0], b[1])},
		)
		div := lh.Sub(lh, rh)
		return numer.Quo(numer, div)
	}

	lh := e.eval3(
		[]*big.Int{a[0], a[1], a[3]},
		[]*big.Int{b[0], b[1], big.NewInt(1)},
	)
	if sameSignF(lh, rh) {
		return lh.Add(lh, rh)
	}
	// Squaring folds the nested radical away and leaves a PSS3 shape.
	ca := make([]*big.Int, 4)
	cb := make([]*big.Int, 4)
	ca[0] = new(big.Int).Mul(a[3], a[0])
	ca[0].Lsh(ca[0], 1)
	ca[1] = new(big.Int).Mul(a[3], a[1])
	ca[1].Lsh(ca[1], 1)
	ca[2] = new(big.Int).Mul(a[3], a[3])
	t := new(big.Int).Mul(a[0], a[0])
	t.Mul(t, b[0])
	ca[2].Add(ca[2], t)
	t = new(big.Int).Mul(a[1], a[1])
	t.Mul(t, b[1])
	ca[2].Add(ca[2], t)
	sqA2B3 := new(big.Int).Mul(a[2], a[2])
	sqA2B3.Mul(sqA2B3, b[3])
	t = new(big.Int).Mul(sqA2B3, b[2])
	ca[2].Sub(ca[2], t)
	ca[3] = new(big.Int).Mul(a[0], a[1])
	ca[3].Lsh(ca[3], 1)
	ca[3].Sub(ca[3], sqA2B3)
	cb[0] = b[0]
	cb[1] = b[1]
	cb[2] = big.NewInt(1)
	cb[3] = new(big.Int).Mul(b[0], b[1])
	numer := e.evalPSS3(ca, cb)
	div := lh.Sub(lh, rh)
	return numer.Quo(numer, div)
}

func bigFromInt32(v int32) *big.Int { return big.NewInt(int64(v)) }

// bigSub32 returns a-b as a big integer.
func bigSub32(a, b int32) *big.Int { return big.NewInt(int64(a) - int64(b)) }

// bigAdd32 returns a+b as a big integer.
func bigAdd32(a, b int32) *big.Int { return big.NewInt(int64(a) + int64(b)) }

func floatOf(f *big.Float) float64 {
	v, _ := f.Float64()
	return v
}
