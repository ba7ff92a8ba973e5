package zraster

import (
	"math"
	"testing"
)

func TestMat2Columns(t *testing.T) {
	m := Columns(V2(1, 2), V2(3, 4))
	if got := m.MulVec(V2(1, 0)); got != V2(1, 2) {
		t.Errorf("first column = %v, want (1, 2)", got)
	}
	if got := m.MulVec(V2(0, 1)); got != V2(3, 4) {
		t.Errorf("second column = %v, want (3, 4)", got)
	}
	if got := m.Det(); got != -2 {
		t.Errorf("Det = %v, want -2", got)
	}
}

func TestMat2Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat2
	}{
		{"identity", Columns(V2(1, 0), V2(0, 1))},
		{"axis triangle", Columns(V2(10, 0), V2(0, 10))},
		{"skewed", Columns(V2(30, 13), V2(-5, 24))},
		{"negative det", Columns(V2(0, 1), V2(1, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Inverse()
			for _, p := range []Vec2{V2(1, 0), V2(0, 1), V2(3.5, -7)} {
				got := inv.MulVec(tt.m.MulVec(p))
				if !got.Approx(p, 1e-9) {
					t.Errorf("Inverse(M)·M·%v = %v", p, got)
				}
			}
		})
	}
}

func TestMat2InverseSingular(t *testing.T) {
	// Collinear columns: the inverse is not finite and neither is any
	// product with it.
	inv := Columns(V2(1, 1), V2(2, 2)).Inverse()
	got := inv.MulVec(V2(1, 0))
	if got.IsFinite() {
		t.Errorf("singular inverse produced finite result %v", got)
	}
	if inUnit(got.X) && inUnit(got.Y) {
		t.Error("singular weights passed the unit range test")
	}
}

func TestMat2Scale(t *testing.T) {
	got := Mat2{A: 1, B: 2, C: 3, D: 4}.Scale(2)
	want := Mat2{A: 2, B: 4, C: 6, D: 8}
	if got != want {
		t.Errorf("Scale = %+v, want %+v", got, want)
	}
	if d := (Mat2{}).Inverse().A; !math.IsNaN(d) && !math.IsInf(d, 0) {
		t.Errorf("zero matrix inverse entry = %v, want non-finite", d)
	}
}
