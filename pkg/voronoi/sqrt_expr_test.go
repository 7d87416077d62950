package voronoi

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestEval1(t *testing.T) {
	var e sqrtExpr
	got, _ := e.eval1(ints(2), ints(3)).Float64()
	assert.InDelta(t, 2*math.Sqrt(3), got, 1e-12)

	got, _ = e.eval1(ints(-2), ints(3)).Float64()
	assert.InDelta(t, -2*math.Sqrt(3), got, 1e-12)
}

func TestEval2(t *testing.T) {
	var e sqrtExpr
	tests := []struct {
		name string
		a    []*big.Int
		b    []*big.Int
		want float64
	}{
		{"same sign", ints(3, 4), ints(2, 5), 3*math.Sqrt(2) + 4*math.Sqrt(5)},
		{"cancelling", ints(3, -4), ints(2, 5), 3*math.Sqrt(2) - 4*math.Sqrt(5)},
		{"near cancellation", ints(1000001, -1000000), ints(1, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := e.eval2(tt.a, tt.b).Float64()
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEval3(t *testing.T) {
	var e sqrtExpr
	got, _ := e.eval3(ints(1, 2, -3), ints(2, 3, 1)).Float64()
	assert.InDelta(t, math.Sqrt(2)+2*math.Sqrt(3)-3, got, 1e-12)

	// Heavy cancellation: sqrt(2)+sqrt(3)-floor component.
	got, _ = e.eval3(ints(1000000, 1000000, -3146264), ints(2, 3, 1)).Float64()
	want := 1000000*(math.Sqrt(2)+math.Sqrt(3)) - 3146264
	assert.InDelta(t, want, got, 1e-6)
}

func TestEval4(t *testing.T) {
	var e sqrtExpr
	got, _ := e.eval4(ints(1, 1, 1, -3), ints(2, 3, 5, 1)).Float64()
	want := math.Sqrt(2) + math.Sqrt(3) + math.Sqrt(5) - 3
	assert.InDelta(t, want, got, 1e-12)
}

func TestEvalPSS3(t *testing.T) {
	var e sqrtExpr
	b0, b1 := int64(2), int64(3)
	got, _ := e.evalPSS3(ints(1, 1, 1, 1), ints(b0, b1, 1, b0*b1)).Float64()
	want := math.Sqrt(2) + math.Sqrt(3) + 1 + math.Sqrt(6)
	assert.InDelta(t, want, got, 1e-12)

	got, _ = e.evalPSS3(ints(1, 1, -4, 1), ints(b0, b1, 1, b0*b1)).Float64()
	want = math.Sqrt(2) + math.Sqrt(3) - 4 + math.Sqrt(6)
	assert.InDelta(t, want, got, 1e-12)
}

func TestEvalPSS4(t *testing.T) {
	var e sqrtExpr
	pss4 := func(a, b []int64) float64 {
		inner := math.Sqrt(float64(b[0])*float64(b[1])) + float64(b[2])
		return float64(a[3]) +
			float64(a[0])*math.Sqrt(float64(b[0])) +
			float64(a[1])*math.Sqrt(float64(b[1])) +
			float64(a[2])*math.Sqrt(float64(b[3])*inner)
	}

	tests := []struct {
		name string
		a    []int64
		b    []int64
	}{
		{"plain", []int64{1, 2, 1, 3}, []int64{4, 9, 5, 2}},
		{"zero tail", []int64{1, 2, 1, 0}, []int64{4, 9, 5, 2}},
		{"cancelling tail", []int64{1, 2, -3, -5}, []int64{4, 9, 5, 2}},
		{"cancelling zero tail", []int64{3, 2, -3, 0}, []int64{4, 9, 5, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := e.evalPSS4(ints(tt.a...), ints(tt.b...)).Float64()
			assert.InDelta(t, pss4(tt.a, tt.b), got, 1e-9)
		})
	}
}

func TestRobustFptErrorTracking(t *testing.T) {
	a := rfpt(1)
	b := rfpt(3)

	sum := a.add(b)
	assert.Equal(t, 4.0, sum.fpv)
	assert.LessOrEqual(t, sum.ulp(), 1.0)

	dif := a.sub(b)
	assert.Equal(t, -2.0, dif.fpv)

	prod := sum.mul(dif)
	assert.Equal(t, -8.0, prod.fpv)
	assert.Greater(t, prod.ulp(), sum.ulp())

	root := rfpt(16).sqrt()
	assert.Equal(t, 4.0, root.fpv)
}

func TestRobustDif(t *testing.T) {
	d := robustDif{}
	d = d.addFpt(rfpt(5)).subFpt(rfpt(3))
	assert.Equal(t, 2.0, d.dif().fpv)
	assert.Equal(t, 5.0, d.positive().fpv)
	assert.Equal(t, 3.0, d.negative().fpv)

	n := d.negate()
	assert.Equal(t, -2.0, n.dif().fpv)
}
