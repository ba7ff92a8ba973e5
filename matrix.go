package zraster

// Mat2 is a 2x2 matrix stored by columns:
//
//	| a  c |
//	| b  d |
//
// Applied to a vector (x, y) it yields (a*x + c*y, b*x + d*y).
type Mat2 struct {
	A, B float64
	C, D float64
}

// Columns builds the matrix whose columns are u and v.
func Columns(u, v Vec2) Mat2 {
	return Mat2{A: u.X, B: u.Y, C: v.X, D: v.Y}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// MulVec applies the matrix to a vector.
func (m Mat2) MulVec(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y,
		Y: m.B*p.X + m.D*p.Y,
	}
}

// Scale multiplies every entry by f.
func (m Mat2) Scale(f float64) Mat2 {
	return Mat2{A: f * m.A, B: f * m.B, C: f * m.C, D: f * m.D}
}

// Inverse returns the inverse computed from the adjugate and determinant.
// A singular matrix is not special-cased: its entries come out infinite or
// NaN, and every product with them fails a range test.
func (m Mat2) Inverse() Mat2 {
	adj := Mat2{A: m.D, B: -m.B, C: -m.C, D: m.A}
	return adj.Scale(1 / m.Det())
}
