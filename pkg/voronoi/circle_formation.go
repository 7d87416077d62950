package voronoi

import (
	"math"
	"math/big"
)

func fl(v int32) float64 { return float64(v) }
func i64(v int32) int64  { return int64(v) }

func biInt(v int64) *big.Int       { return big.NewInt(v) }
func biMul(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }
func biAdd(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }
func biSub(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) }
func biNeg(x *big.Int) *big.Int    { return new(big.Int).Neg(x) }
func biScale(x *big.Int, v int64) *big.Int {
	return new(big.Int).Mul(x, big.NewInt(v))
}

// circleExistsPPP reports whether three point sites, taken in beachline
// order, admit a circle event. They do exactly when the triple turns right.
func circleExistsPPP(site1, site2, site3 siteEvent) bool {
	return orientPoints(site1.point0, site2.point0, site3.point0) == orientRight
}

// circleExistsPPS filters two point sites against a segment site.
// segmentIndex tells which of the three beachline slots the segment
// occupies.
func circleExistsPPS(site1, site2, site3 siteEvent, segmentIndex int) bool {
	if segmentIndex == 2 {
		return site3.point0 != site1.point0 || site3.point1 != site2.point0
	}
	orient1 := orientPoints(site1.point0, site2.point0, site3.point0)
	orient2 := orientPoints(site1.point0, site2.point0, site3.point1)
	switch {
	case segmentIndex == 1 && site1.x0() >= site2.x0():
		if orient1 != orientRight {
			return false
		}
	case segmentIndex == 3 && site2.x0() >= site1.x0():
		if orient2 != orientRight {
			return false
		}
	default:
		if orient1 != orientRight && orient2 != orientRight {
			return false
		}
	}
	return true
}

func circleExistsPSS(site1, site2, site3 siteEvent, pointIndex int) bool {
	if site2.sortedIndex == site3.sortedIndex {
		return false
	}
	if pointIndex == 2 {
		if !site2.isInverse && site3.isInverse {
			return false
		}
		if site2.isInverse == site3.isInverse &&
			orientPoints(site2.point0, site1.point0, site3.point1) != orientRight {
			return false
		}
	}
	return true
}

func circleExistsSSS(site1, site2, site3 siteEvent) bool {
	return site1.sortedIndex != site2.sortedIndex &&
		site2.sortedIndex != site3.sortedIndex
}

// lazyCirclePPP computes the circumcircle of three points in plain floating
// point, falling back to exact arithmetic for any coordinate whose tracked
// error leaves the ULP budget.
func lazyCirclePPP(site1, site2, site3 siteEvent, c *circleEvent) {
	difX1 := fl(site1.x()) - fl(site2.x())
	difX2 := fl(site2.x()) - fl(site3.x())
	difY1 := fl(site1.y()) - fl(site2.y())
	difY2 := fl(site2.y()) - fl(site3.y())
	orientation := robustCrossProduct(
		i64(site1.x())-i64(site2.x()),
		i64(site2.x())-i64(site3.x()),
		i64(site1.y())-i64(site2.y()),
		i64(site2.y())-i64(site3.y()),
	)
	invOrientation := rfptErr(0.5/orientation, 2)
	sumX1 := fl(site1.x()) + fl(site2.x())
	sumX2 := fl(site2.x()) + fl(site3.x())
	sumY1 := fl(site1.y()) + fl(site2.y())
	sumY2 := fl(site2.y()) + fl(site3.y())
	difX3 := fl(site1.x()) - fl(site3.x())
	difY3 := fl(site1.y()) - fl(site3.y())

	var cX, cY robustDif
	cX = cX.addFpt(rfptErr(difX1*sumX1*difY2, 2))
	cX = cX.addFpt(rfptErr(difY1*sumY1*difY2, 2))
	cX = cX.subFpt(rfptErr(difX2*sumX2*difY1, 2))
	cX = cX.subFpt(rfptErr(difY2*sumY2*difY1, 2))
	cY = cY.addFpt(rfptErr(difX2*sumX2*difX1, 2))
	cY = cY.addFpt(rfptErr(difY2*sumY2*difX1, 2))
	cY = cY.subFpt(rfptErr(difX1*sumX1*difX2, 2))
	cY = cY.subFpt(rfptErr(difY1*sumY1*difX2, 2))
	lowerX := cX
	lowerX = lowerX.subFpt(rfptErr(
		math.Sqrt((difX1*difX1+difY1*difY1)*
			(difX2*difX2+difY2*difY2)*
			(difX3*difX3+difY3*difY3)),
		5,
	))
	c.set(
		cX.dif().fpv*invOrientation.fpv,
		cY.dif().fpv*invOrientation.fpv,
		lowerX.dif().fpv*invOrientation.fpv,
	)
	recomputeCX := cX.dif().ulp() > ulps
	recomputeCY := cY.dif().ulp() > ulps
	recomputeLowerX := lowerX.dif().ulp() > ulps
	if recomputeCX || recomputeCY || recomputeLowerX {
		exactCirclePPP(site1, site2, site3, c, recomputeCX, recomputeCY, recomputeLowerX)
	}
}

func lazyCirclePPS(site1, site2, site3 siteEvent, segmentIndex int, c *circleEvent) {
	lineA := fl(site3.y1()) - fl(site3.y0())
	lineB := fl(site3.x0()) - fl(site3.x1())
	vecX := fl(site2.y()) - fl(site1.y())
	vecY := fl(site1.x()) - fl(site2.x())
	teta := rfptErr(robustCrossProduct(
		i64(site3.y1())-i64(site3.y0()),
		i64(site3.x0())-i64(site3.x1()),
		i64(site2.x())-i64(site1.x()),
		i64(site2.y())-i64(site1.y()),
	), 1)
	a := rfptErr(robustCrossProduct(
		i64(site3.y0())-i64(site3.y1()),
		i64(site3.x0())-i64(site3.x1()),
		i64(site3.y1())-i64(site1.y()),
		i64(site3.x1())-i64(site1.x()),
	), 1)
	b := rfptErr(robustCrossProduct(
		i64(site3.y0())-i64(site3.y1()),
		i64(site3.x0())-i64(site3.x1()),
		i64(site3.y1())-i64(site2.y()),
		i64(site3.x1())-i64(site2.x()),
	), 1)
	denom := rfptErr(robustCrossProduct(
		i64(site1.y())-i64(site2.y()),
		i64(site1.x())-i64(site2.x()),
		i64(site3.y1())-i64(site3.y0()),
		i64(site3.x1())-i64(site3.x0()),
	), 1)
	invSegmLen := rfptErr(1/math.Sqrt(lineA*lineA+lineB*lineB), 3)
	var t robustFpt
	if denom.fpv == 0 {
		t = t.add(teta.div(rfpt(8).mul(a)))
		t = t.sub(a.div(rfpt(2).mul(teta)))
	} else {
		det := teta.mul(teta).add(denom.mul(denom)).mul(a).mul(b).sqrt()
		if segmentIndex == 2 {
			t = t.sub(det.div(denom.mul(denom)))
		} else {
			t = t.add(det.div(denom.mul(denom)))
		}
		t = t.add(teta.mul(a.add(b)).div(rfpt(2).mul(denom.mul(denom))))
	}
	var cX, cY robustDif
	cX = cX.addFpt(rfpt(0.5 * (fl(site1.x()) + fl(site2.x()))))
	cX = cX.addFpt(rfpt(vecX).mul(t))
	cY = cY.addFpt(rfpt(0.5 * (fl(site1.y()) + fl(site2.y()))))
	cY = cY.addFpt(rfpt(vecY).mul(t))
	var r robustDif
	lowerX := cX
	r = r.subFpt(rfpt(lineA).mul(rfpt(fl(site3.x0()))))
	r = r.subFpt(rfpt(lineB).mul(rfpt(fl(site3.y0()))))
	r = r.add(cX.mulFpt(rfpt(lineA)))
	r = r.add(cY.mulFpt(rfpt(lineB)))
	if r.positive().fpv < r.negative().fpv {
		r = r.negate()
	}
	lowerX = lowerX.add(r.mulFpt(invSegmLen))
	c.set(cX.dif().fpv, cY.dif().fpv, lowerX.dif().fpv)
	recomputeCX := cX.dif().ulp() > ulps
	recomputeCY := cY.dif().ulp() > ulps
	recomputeLowerX := lowerX.dif().ulp() > ulps
	if recomputeCX || recomputeCY || recomputeLowerX {
		exactCirclePPS(site1, site2, site3, segmentIndex, c, recomputeCX, recomputeCY, recomputeLowerX)
	}
}

func lazyCirclePSS(site1, site2, site3 siteEvent, pointIndex int, c *circleEvent) {
	segmStart1 := site2.point1
	segmEnd1 := site2.point0
	segmStart2 := site3.point0
	segmEnd2 := site3.point1
	a1 := fl(segmEnd1.X) - fl(segmStart1.X)
	b1 := fl(segmEnd1.Y) - fl(segmStart1.Y)
	a2 := fl(segmEnd2.X) - fl(segmStart2.X)
	b2 := fl(segmEnd2.Y) - fl(segmStart2.Y)
	recomputeCX := false
	recomputeCY := false
	recomputeLowerX := false

	orientation := rfptErr(robustCrossProduct(
		i64(segmEnd1.Y)-i64(segmStart1.Y),
		i64(segmEnd1.X)-i64(segmStart1.X),
		i64(segmEnd2.Y)-i64(segmStart2.Y),
		i64(segmEnd2.X)-i64(segmStart2.X),
	), 1)
	if orientation.fpv == 0 {
		a := rfptErr(a1*a1+b1*b1, 2)
		cc := rfptErr(robustCrossProduct(
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmStart2.Y)-i64(segmStart1.Y),
			i64(segmStart2.X)-i64(segmStart1.X),
		), 1)
		det := rfptErr(robustCrossProduct(
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(site1.x())-i64(segmStart1.X),
			i64(site1.y())-i64(segmStart1.Y),
		)*robustCrossProduct(
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(site1.y())-i64(segmStart2.Y),
			i64(site1.x())-i64(segmStart2.X),
		), 3)
		var t robustFpt
		t = t.sub(rfpt(a1).mul(rfpt(
			(fl(segmStart1.X)+fl(segmStart2.X))*0.5 - fl(site1.x()),
		)))
		t = t.sub(rfpt(b1).mul(rfpt(
			(fl(segmStart1.Y)+fl(segmStart2.Y))*0.5 - fl(site1.y()),
		)))
		if pointIndex == 2 {
			t = t.add(det.sqrt())
		} else {
			t = t.sub(det.sqrt())
		}
		t = t.div(a)
		var cX, cY robustDif
		cX = cX.addFpt(rfpt(0.5 * (fl(segmStart1.X) + fl(segmStart2.X))))
		cX = cX.addFpt(rfpt(a1).mul(t))
		cY = cY.addFpt(rfpt(0.5 * (fl(segmStart1.Y) + fl(segmStart2.Y))))
		cY = cY.addFpt(rfpt(b1).mul(t))
		lowerX := cX
		if cc.isNeg() {
			lowerX = lowerX.subFpt(rfpt(0.5).mul(cc).div(a.sqrt()))
		} else {
			lowerX = lowerX.addFpt(rfpt(0.5).mul(cc).div(a.sqrt()))
		}
		recomputeCX = cX.dif().ulp() > ulps
		recomputeCY = cY.dif().ulp() > ulps
		recomputeLowerX = lowerX.dif().ulp() > ulps
		c.set(cX.dif().fpv, cY.dif().fpv, lowerX.dif().fpv)
	} else {
		sqrSum1 := rfptErr(math.Sqrt(a1*a1+b1*b1), 2)
		sqrSum2 := rfptErr(math.Sqrt(a2*a2+b2*b2), 2)
		a := rfptErr(robustCrossProduct(
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(segmStart2.Y)-i64(segmEnd2.Y),
			i64(segmEnd2.X)-i64(segmStart2.X),
		), 1)
		if !a.isNeg() {
			a = a.add(sqrSum1.mul(sqrSum2))
		} else {
			a = orientation.mul(orientation).div(sqrSum1.mul(sqrSum2).sub(a))
		}
		or1 := rfptErr(robustCrossProduct(
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmEnd1.Y)-i64(site1.y()),
			i64(segmEnd1.X)-i64(site1.x()),
		), 1)
		or2 := rfptErr(robustCrossProduct(
			i64(segmEnd2.X)-i64(segmStart2.X),
			i64(segmEnd2.Y)-i64(segmStart2.Y),
			i64(segmEnd2.X)-i64(site1.x()),
			i64(segmEnd2.Y)-i64(site1.y()),
		), 1)
		det := rfpt(2).mul(a).mul(or1).mul(or2)
		c1 := rfptErr(robustCrossProduct(
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmEnd1.Y),
			i64(segmEnd1.X),
		), 1)
		c2 := rfptErr(robustCrossProduct(
			i64(segmEnd2.X)-i64(segmStart2.X),
			i64(segmEnd2.Y)-i64(segmStart2.Y),
			i64(segmEnd2.X),
			i64(segmEnd2.Y),
		), 1)
		invOrientation := rfpt(1).div(orientation)
		var t, b, ix, iy robustDif
		ix = ix.addFpt(rfpt(a2).mul(c1).mul(invOrientation))
		ix = ix.addFpt(rfpt(a1).mul(c2).mul(invOrientation))
		iy = iy.addFpt(rfpt(b1).mul(c2).mul(invOrientation))
		iy = iy.addFpt(rfpt(b2).mul(c1).mul(invOrientation))

		b = b.add(ix.mulFpt(rfpt(a1).mul(sqrSum2)))
		b = b.add(ix.mulFpt(rfpt(a2).mul(sqrSum1)))
		b = b.add(iy.mulFpt(rfpt(b1).mul(sqrSum2)))
		b = b.add(iy.mulFpt(rfpt(b2).mul(sqrSum1)))
		b = b.subFpt(sqrSum1.mul(rfptErr(robustCrossProduct(
			i64(segmEnd2.X)-i64(segmStart2.X),
			i64(segmEnd2.Y)-i64(segmStart2.Y),
			-i64(site1.y()),
			i64(site1.x()),
		), 1)))
		b = b.subFpt(sqrSum2.mul(rfptErr(robustCrossProduct(
			i64(segmEnd1.X)-i64(segmStart1.X),
			i64(segmEnd1.Y)-i64(segmStart1.Y),
			-i64(site1.y()),
			i64(site1.x()),
		), 1)))
		t = t.sub(b)
		if pointIndex == 2 {
			t = t.addFpt(det.sqrt())
		} else {
			t = t.subFpt(det.sqrt())
		}
		t = t.divFpt(a.mul(a))
		cX := ix
		cY := iy
		cX = cX.add(t.mulFpt(rfpt(a1).mul(sqrSum2)))
		cX = cX.add(t.mulFpt(rfpt(a2).mul(sqrSum1)))
		cY = cY.add(t.mulFpt(rfpt(b1).mul(sqrSum2)))
		cY = cY.add(t.mulFpt(rfpt(b2).mul(sqrSum1)))
		if t.positive().fpv < t.negative().fpv {
			t = t.negate()
		}
		lowerX := cX
		if orientation.isNeg() {
			lowerX = lowerX.sub(t.mulFpt(orientation))
		} else {
			lowerX = lowerX.add(t.mulFpt(orientation))
		}
		recomputeCX = cX.dif().ulp() > ulps
		recomputeCY = cY.dif().ulp() > ulps
		recomputeLowerX = lowerX.dif().ulp() > ulps
		c.set(cX.dif().fpv, cY.dif().fpv, lowerX.dif().fpv)
	}
	if recomputeCX || recomputeCY || recomputeLowerX {
		exactCirclePSS(site1, site2, site3, pointIndex, c, recomputeCX, recomputeCY, recomputeLowerX)
	}
}

func lazyCircleSSS(site1, site2, site3 siteEvent, c *circleEvent) {
	a1 := rfpt(fl(site1.x1()) - fl(site1.x0()))
	b1 := rfpt(fl(site1.y1()) - fl(site1.y0()))
	c1 := rfptErr(robustCrossProduct(
		i64(site1.x0()), i64(site1.y0()), i64(site1.x1()), i64(site1.y1()),
	), 1)
	a2 := rfpt(fl(site2.x1()) - fl(site2.x0()))
	b2 := rfpt(fl(site2.y1()) - fl(site2.y0()))
	c2 := rfptErr(robustCrossProduct(
		i64(site2.x0()), i64(site2.y0()), i64(site2.x1()), i64(site2.y1()),
	), 1)
	a3 := rfpt(fl(site3.x1()) - fl(site3.x0()))
	b3 := rfpt(fl(site3.y1()) - fl(site3.y0()))
	c3 := rfptErr(robustCrossProduct(
		i64(site3.x0()), i64(site3.y0()), i64(site3.x1()), i64(site3.y1()),
	), 1)

	len1 := a1.mul(a1).add(b1.mul(b1)).sqrt()
	len2 := a2.mul(a2).add(b2.mul(b2)).sqrt()
	len3 := a3.mul(a3).add(b3.mul(b3)).sqrt()
	cross12 := rfptErr(robustCrossProduct(
		i64(site1.x1())-i64(site1.x0()),
		i64(site1.y1())-i64(site1.y0()),
		i64(site2.x1())-i64(site2.x0()),
		i64(site2.y1())-i64(site2.y0()),
	), 1)
	cross23 := rfptErr(robustCrossProduct(
		i64(site2.x1())-i64(site2.x0()),
		i64(site2.y1())-i64(site2.y0()),
		i64(site3.x1())-i64(site3.x0()),
		i64(site3.y1())-i64(site3.y0()),
	), 1)
	cross31 := rfptErr(robustCrossProduct(
		i64(site3.x1())-i64(site3.x0()),
		i64(site3.y1())-i64(site3.y0()),
		i64(site1.x1())-i64(site1.x0()),
		i64(site1.y1())-i64(site1.y0()),
	), 1)

	var denom robustDif
	denom = denom.addFpt(cross12.mul(len3))
	denom = denom.addFpt(cross23.mul(len1))
	denom = denom.addFpt(cross31.mul(len2))

	var r robustDif
	r = r.subFpt(cross12.mul(c3))
	r = r.subFpt(cross23.mul(c1))
	r = r.subFpt(cross31.mul(c2))

	var cX, cY robustDif
	cX = cX.addFpt(a1.mul(c2).mul(len3))
	cX = cX.subFpt(a2.mul(c1).mul(len3))
	cX = cX.addFpt(a2.mul(c3).mul(len1))
	cX = cX.subFpt(a3.mul(c2).mul(len1))
	cX = cX.addFpt(a3.mul(c1).mul(len2))
	cX = cX.subFpt(a1.mul(c3).mul(len2))
	cY = cY.addFpt(b1.mul(c2).mul(len3))
	cY = cY.subFpt(b2.mul(c1).mul(len3))
	cY = cY.addFpt(b2.mul(c3).mul(len1))
	cY = cY.subFpt(b3.mul(c2).mul(len1))
	cY = cY.addFpt(b3.mul(c1).mul(len2))
	cY = cY.subFpt(b1.mul(c3).mul(len2))

	lowerX := cX.add(r)
	denomDif := denom.dif()
	cXDif := cX.dif().div(denomDif)
	cYDif := cY.dif().div(denomDif)
	lowerXDif := lowerX.dif().div(denomDif)
	recomputeCX := cXDif.ulp() > ulps
	recomputeCY := cYDif.ulp() > ulps
	recomputeLowerX := lowerXDif.ulp() > ulps
	c.set(cXDif.fpv, cYDif.fpv, lowerXDif.fpv)
	if recomputeCX || recomputeCY || recomputeLowerX {
		exactCircleSSS(site1, site2, site3, c, recomputeCX, recomputeCY, recomputeLowerX)
	}
}

// exactCirclePPP recomputes the circumcircle coordinates over exact
// integers. All intermediates fit arbitrary precision; only the final
// conversion to float64 rounds.
func exactCirclePPP(site1, site2, site3 siteEvent, c *circleEvent, recomputeCX, recomputeCY, recomputeLowerX bool) {
	difX := [3]*big.Int{
		bigSub32(site1.x(), site2.x()),
		bigSub32(site2.x(), site3.x()),
		bigSub32(site1.x(), site3.x()),
	}
	difY := [3]*big.Int{
		bigSub32(site1.y(), site2.y()),
		bigSub32(site2.y(), site3.y()),
		bigSub32(site1.y(), site3.y()),
	}
	sumX := [2]*big.Int{
		bigAdd32(site1.x(), site2.x()),
		bigAdd32(site2.x(), site3.x()),
	}
	sumY := [2]*big.Int{
		bigAdd32(site1.y(), site2.y()),
		bigAdd32(site2.y(), site3.y()),
	}
	denom := biSub(biMul(difX[0], difY[1]), biMul(difX[1], difY[0]))
	invDenom := 0.5 / floatOf(bigFloat(denom))
	numer1 := biAdd(biMul(difX[0], sumX[0]), biMul(difY[0], sumY[0]))
	numer2 := biAdd(biMul(difX[1], sumX[1]), biMul(difY[1], sumY[1]))

	if recomputeCX || recomputeLowerX {
		cX := biSub(biMul(numer1, difY[1]), biMul(numer2, difY[0]))
		c.setX(floatOf(bigFloat(cX)) * invDenom)
		if recomputeLowerX {
			sqrR := biMul(
				biAdd(biMul(difX[0], difX[0]), biMul(difY[0], difY[0])),
				biMul(
					biAdd(biMul(difX[1], difX[1]), biMul(difY[1], difY[1])),
					biAdd(biMul(difX[2], difX[2]), biMul(difY[2], difY[2])),
				),
			)
			r := math.Sqrt(floatOf(bigFloat(sqrR)))
			// If c_x >= 0 then lower_x = c_x + r, otherwise the conjugate
			// form (c_x^2 - r^2) / (c_x - r) keeps the relative error at
			// one epsilon.
			if c.x >= 0 {
				if invDenom >= 0 {
					c.setLowerX(c.x + r*invDenom)
				} else {
					c.setLowerX(c.x - r*invDenom)
				}
			} else {
				numer := biSub(biMul(cX, cX), sqrR)
				lowerX := floatOf(bigFloat(numer)) * invDenom / (floatOf(bigFloat(cX)) + r)
				c.setLowerX(lowerX)
			}
		}
	}
	if recomputeCY {
		cY := biSub(biMul(numer2, difX[0]), biMul(numer1, difX[1]))
		c.setY(floatOf(bigFloat(cY)) * invDenom)
	}
}

func exactCirclePPS(site1, site2, site3 siteEvent, segmentIndex int, c *circleEvent, recomputeCX, recomputeCY, recomputeLowerX bool) {
	var expr sqrtExpr
	ca := make([]*big.Int, 4)
	cb := make([]*big.Int, 4)
	lineA := bigSub32(site3.y1(), site3.y0())
	lineB := bigSub32(site3.x0(), site3.x1())
	segmLen := biAdd(biMul(lineA, lineA), biMul(lineB, lineB))
	vecX := bigSub32(site2.y(), site1.y())
	vecY := bigSub32(site1.x(), site2.x())
	sumX := bigAdd32(site1.x(), site2.x())
	sumY := bigAdd32(site1.y(), site2.y())
	teta := biAdd(biMul(lineA, vecX), biMul(lineB, vecY))
	denom := biSub(biMul(vecX, lineB), biMul(vecY, lineA))

	dif0 := bigSub32(site3.y1(), site1.y())
	dif1 := bigSub32(site1.x(), site3.x1())
	a := biSub(biMul(lineA, dif1), biMul(lineB, dif0))
	dif0 = bigSub32(site3.y1(), site2.y())
	dif1 = bigSub32(site2.x(), site3.x1())
	b := biSub(biMul(lineA, dif1), biMul(lineB, dif0))
	sumAB := biAdd(a, b)

	if denom.Sign() == 0 {
		// The point bisector is parallel to the segment.
		numer := biSub(biMul(teta, teta), biMul(sumAB, sumAB))
		denom = biMul(teta, sumAB)
		ca[0] = biAdd(biScale(biMul(denom, sumX), 2), biMul(numer, vecX))
		cb[0] = segmLen
		ca[1] = biAdd(biScale(biMul(denom, sumAB), 2), biMul(numer, teta))
		cb[1] = biInt(1)
		ca[2] = biAdd(biScale(biMul(denom, sumY), 2), biMul(numer, vecY))
		invDenom := 1 / floatOf(bigFloat(denom))
		if recomputeCX {
			c.setX(0.25 * floatOf(bigFloat(ca[0])) * invDenom)
		}
		if recomputeCY {
			c.setY(0.25 * floatOf(bigFloat(ca[2])) * invDenom)
		}
		if recomputeLowerX {
			c.setLowerX(floatOf(expr.eval2(ca, cb)) * 0.25 * invDenom /
				math.Sqrt(floatOf(bigFloat(segmLen))))
		}
		return
	}
	det := biScale(biMul(biAdd(biMul(teta, teta), biMul(denom, denom)), biMul(a, b)), 4)
	invDenomSqr := 1 / floatOf(bigFloat(denom))
	invDenomSqr *= invDenomSqr

	if recomputeCX || recomputeLowerX {
		ca[0] = biAdd(biMul(sumX, biMul(denom, denom)), biMul(teta, biMul(sumAB, vecX)))
		cb[0] = biInt(1)
		if segmentIndex == 2 {
			ca[1] = biNeg(vecX)
		} else {
			ca[1] = new(big.Int).Set(vecX)
		}
		cb[1] = det
		if recomputeCX {
			c.setX(floatOf(expr.eval2(ca, cb)) * 0.5 * invDenomSqr)
		}
	}
	if recomputeCY || recomputeLowerX {
		ca[2] = biAdd(biMul(sumY, biMul(denom, denom)), biMul(teta, biMul(sumAB, vecY)))
		cb[2] = biInt(1)
		if segmentIndex == 2 {
			ca[3] = biNeg(vecY)
		} else {
			ca[3] = new(big.Int).Set(vecY)
		}
		cb[3] = det
		if recomputeCY {
			c.setY(floatOf(expr.eval2(ca[2:], cb[2:])) * 0.5 * invDenomSqr)
		}
	}
	if recomputeLowerX {
		cb[0] = biMul(cb[0], segmLen)
		cb[1] = biMul(cb[1], segmLen)
		ca[2] = biMul(sumAB, biAdd(biMul(denom, denom), biMul(teta, teta)))
		cb[2] = biInt(1)
		if segmentIndex == 2 {
			ca[3] = biNeg(teta)
		} else {
			ca[3] = new(big.Int).Set(teta)
		}
		cb[3] = det
		c.setLowerX(floatOf(expr.eval4(ca, cb)) * 0.5 * invDenomSqr /
			math.Sqrt(floatOf(bigFloat(segmLen))))
	}
}

func exactCirclePSS(site1, site2, site3 siteEvent, pointIndex int, c *circleEvent, recomputeCX, recomputeCY, recomputeLowerX bool) {
	var expr sqrtExpr
	cA := make([]*big.Int, 4)
	cB := make([]*big.Int, 4)
	segmStart1 := site2.point1
	segmEnd1 := site2.point0
	segmStart2 := site3.point0
	segmEnd2 := site3.point1
	a0 := bigSub32(segmEnd1.X, segmStart1.X)
	b0 := bigSub32(segmEnd1.Y, segmStart1.Y)
	a1 := bigSub32(segmEnd2.X, segmStart2.X)
	b1 := bigSub32(segmEnd2.Y, segmStart2.Y)
	orientation := biSub(biMul(a1, b0), biMul(a0, b1))

	if orientation.Sign() == 0 {
		// Parallel segments: the center lies on the midline, at distance
		// sqrt(det) along the direction vector from the midpoint.
		denom := 2 * floatOf(bigFloat(biAdd(biMul(a0, a0), biMul(b0, b0))))
		c0 := biSub(
			biMul(b0, bigSub32(segmStart2.X, segmStart1.X)),
			biMul(a0, bigSub32(segmStart2.Y, segmStart1.Y)),
		)
		dx := biSub(
			biMul(a0, bigSub32(site1.y(), segmStart1.Y)),
			biMul(b0, bigSub32(site1.x(), segmStart1.X)),
		)
		dy := biSub(
			biMul(b0, bigSub32(site1.x(), segmStart2.X)),
			biMul(a0, bigSub32(site1.y(), segmStart2.Y)),
		)
		cB[0] = biMul(dx, dy)
		cB[1] = biInt(1)
		sign := int64(-2)
		if pointIndex == 2 {
			sign = 2
		}
		if recomputeCY {
			cA[0] = biScale(b0, sign)
			cA[1] = biSub(
				biMul(biMul(a0, a0), bigAdd32(segmStart1.Y, segmStart2.Y)),
				biMul(biMul(a0, b0), biSub(
					bigAdd32(segmStart1.X, segmStart2.X),
					biScale(bigFromInt32(site1.x()), 2),
				)),
			)
			cA[1] = biAdd(cA[1], biScale(biMul(biMul(b0, b0), bigFromInt32(site1.y())), 2))
			c.setY(floatOf(expr.eval2(cA, cB)) / denom)
		}
		if recomputeCX || recomputeLowerX {
			cA[0] = biScale(a0, sign)
			cA[1] = biSub(
				biMul(biMul(b0, b0), bigAdd32(segmStart1.X, segmStart2.X)),
				biMul(biMul(a0, b0), biSub(
					bigAdd32(segmStart1.Y, segmStart2.Y),
					biScale(bigFromInt32(site1.y()), 2),
				)),
			)
			cA[1] = biAdd(cA[1], biScale(biMul(biMul(a0, a0), bigFromInt32(site1.x())), 2))
			if recomputeCX {
				c.setX(floatOf(expr.eval2(cA, cB)) / denom)
			}
			if recomputeLowerX {
				cA[2] = new(big.Int).Abs(c0)
				cB[2] = biAdd(biMul(a0, a0), biMul(b0, b0))
				c.setLowerX(floatOf(expr.eval3(cA, cB)) / denom)
			}
		}
		return
	}
	c0 := biSub(biMul(b0, bigFromInt32(segmEnd1.X)), biMul(a0, bigFromInt32(segmEnd1.Y)))
	c1 := biSub(biMul(a1, bigFromInt32(segmEnd2.Y)), biMul(b1, bigFromInt32(segmEnd2.X)))
	ix := biAdd(biMul(a0, c1), biMul(a1, c0))
	iy := biAdd(biMul(b0, c1), biMul(b1, c0))
	dx := biSub(ix, biMul(orientation, bigFromInt32(site1.x())))
	dy := biSub(iy, biMul(orientation, bigFromInt32(site1.y())))
	if dx.Sign() == 0 && dy.Sign() == 0 {
		// The point lies on the segment intersection: a degenerate circle.
		denom := floatOf(bigFloat(orientation))
		cX := floatOf(bigFloat(ix)) / denom
		cY := floatOf(bigFloat(iy)) / denom
		c.set(cX, cY, cX)
		return
	}

	signVal := int64(-1)
	if pointIndex == 2 {
		signVal = 1
	}
	if orientation.Sign() >= 0 {
		signVal = -signVal
	}
	sign := biInt(signVal)
	cA[0] = biNeg(biAdd(biMul(a1, dx), biMul(b1, dy)))
	cA[1] = biNeg(biAdd(biMul(a0, dx), biMul(b0, dy)))
	cA[2] = sign
	cA[3] = biInt(0)
	cB[0] = biAdd(biMul(a0, a0), biMul(b0, b0))
	cB[1] = biAdd(biMul(a1, a1), biMul(b1, b1))
	cB[2] = biAdd(biMul(a0, a1), biMul(b0, b1))
	cB[3] = biScale(biMul(
		biSub(biMul(a0, dy), biMul(b0, dx)),
		biSub(biMul(a1, dy), biMul(b1, dx)),
	), -2)
	temp := expr.evalPSS4(cA, cB)
	denom := new(big.Float).SetPrec(sqrtExprPrec).Mul(temp, bigFloat(orientation))

	sqDist := biAdd(biMul(dx, dx), biMul(dy, dy))
	if recomputeCY {
		cA[0] = biSub(biMul(b1, sqDist), biMul(iy, biAdd(biMul(dx, a1), biMul(dy, b1))))
		cA[1] = biSub(biMul(b0, sqDist), biMul(iy, biAdd(biMul(dx, a0), biMul(dy, b0))))
		cA[2] = biMul(iy, sign)
		cy := expr.evalPSS4(cA, cB)
		c.setY(floatOf(cy.Quo(cy, denom)))
	}
	if recomputeCX || recomputeLowerX {
		cA[0] = biSub(biMul(a1, sqDist), biMul(ix, biAdd(biMul(dx, a1), biMul(dy, b1))))
		cA[1] = biSub(biMul(a0, sqDist), biMul(ix, biAdd(biMul(dx, a0), biMul(dy, b0))))
		cA[2] = biMul(ix, sign)
		if recomputeCX {
			cx := expr.evalPSS4(cA, cB)
			c.setX(floatOf(new(big.Float).SetPrec(sqrtExprPrec).Quo(cx, denom)))
		}
		if recomputeLowerX {
			tempSign := int64(1)
			if temp.Sign() < 0 {
				tempSign = -1
			}
			cA[3] = biScale(biMul(orientation, sqDist), tempSign)
			lowerX := expr.evalPSS4(cA, cB)
			c.setLowerX(floatOf(lowerX.Quo(lowerX, denom)))
		}
	}
}

func exactCircleSSS(site1, site2, site3 siteEvent, c *circleEvent, recomputeCX, recomputeCY, recomputeLowerX bool) {
	var expr sqrtExpr
	cA := make([]*big.Int, 4)
	cB := make([]*big.Int, 4)
	// a, b hold the direction vectors, c the segment cross products.
	var a, b, cc [3]*big.Int
	sites := [3]siteEvent{site1, site2, site3}
	for i, s := range sites {
		a[i] = bigSub32(s.x1(), s.x0())
		b[i] = bigSub32(s.y1(), s.y0())
		cc[i] = biSub(
			biMul(bigFromInt32(s.x0()), bigFromInt32(s.y1())),
			biMul(bigFromInt32(s.y0()), bigFromInt32(s.x1())),
		)
		cB[i] = biAdd(biMul(a[i], a[i]), biMul(b[i], b[i]))
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		k := (i + 2) % 3
		cA[i] = biSub(biMul(a[j], b[k]), biMul(a[k], b[j]))
	}
	denom := expr.eval3(cA, cB)

	if recomputeCY {
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			k := (i + 2) % 3
			cA[i] = biSub(biMul(b[j], cc[k]), biMul(b[k], cc[j]))
		}
		cy := expr.eval3(cA, cB)
		c.setY(floatOf(new(big.Float).SetPrec(sqrtExprPrec).Quo(cy, denom)))
	}
	if recomputeCX || recomputeLowerX {
		cA[3] = biInt(0)
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			k := (i + 2) % 3
			cA[i] = biSub(biMul(a[j], cc[k]), biMul(a[k], cc[j]))
			if recomputeLowerX {
				cA[3] = biAdd(cA[3], biMul(cA[i], b[i]))
			}
		}
		if recomputeCX {
			cx := expr.eval3(cA, cB)
			c.setX(floatOf(new(big.Float).SetPrec(sqrtExprPrec).Quo(cx, denom)))
		}
		if recomputeLowerX {
			cB[3] = biInt(1)
			lowerX := expr.eval4(cA, cB)
			c.setLowerX(floatOf(lowerX.Quo(lowerX, denom)))
		}
	}
}

// liesOutsideVerticalSegment rejects a circle event whose center falls
// beyond the clipped extent of a vertical segment site.
func liesOutsideVerticalSegment(c *circleEvent, s siteEvent) bool {
	if !s.isSegment() || !s.isVertical() {
		return false
	}
	y0, y1 := fl(s.y0()), fl(s.y1())
	if s.isInverse {
		y0, y1 = y1, y0
	}
	return ulpCompare(c.y, y0, ulps) < 0 || ulpCompare(c.y, y1, ulps) > 0
}

// circleFormationPredicate computes the circle event inscribed by three
// beachline-ordered sites. It reports false when no event exists; otherwise
// the event coordinates are stored in c.
func circleFormationPredicate(site1, site2, site3 siteEvent, c *circleEvent) bool {
	if !site1.isSegment() {
		if !site2.isSegment() {
			if !site3.isSegment() {
				if !circleExistsPPP(site1, site2, site3) {
					return false
				}
				lazyCirclePPP(site1, site2, site3, c)
			} else {
				if !circleExistsPPS(site1, site2, site3, 3) {
					return false
				}
				lazyCirclePPS(site1, site2, site3, 3, c)
			}
		} else if !site3.isSegment() {
			if !circleExistsPPS(site1, site3, site2, 2) {
				return false
			}
			lazyCirclePPS(site1, site3, site2, 2, c)
		} else {
			if !circleExistsPSS(site1, site2, site3, 1) {
				return false
			}
			lazyCirclePSS(site1, site2, site3, 1, c)
		}
	} else if !site2.isSegment() {
		if !site3.isSegment() {
			if !circleExistsPPS(site2, site3, site1, 1) {
				return false
			}
			lazyCirclePPS(site2, site3, site1, 1, c)
		} else {
			if !circleExistsPSS(site2, site1, site3, 2) {
				return false
			}
			lazyCirclePSS(site2, site1, site3, 2, c)
		}
	} else if !site3.isSegment() {
		if !circleExistsPSS(site3, site1, site2, 3) {
			return false
		}
		lazyCirclePSS(site3, site1, site2, 3, c)
	} else {
		if !circleExistsSSS(site1, site2, site3) {
			return false
		}
		lazyCircleSSS(site1, site2, site3, c)
	}
	if liesOutsideVerticalSegment(c, site1) ||
		liesOutsideVerticalSegment(c, site2) ||
		liesOutsideVerticalSegment(c, site3) {
		return false
	}
	return true
}
