package pipeline

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// Fit failure modes. Neither is fatal to a frame; short or degenerate
// contours are simply dropped from the ellipse list.
var (
	// ErrTooFewPoints marks contours below the 5-point minimum for a
	// well-posed conic fit.
	ErrTooFewPoints = errors.New("ellipse fit requires at least 5 points")
	// ErrDegenerateFit marks contours whose least-squares conic is not an
	// ellipse (collinear or otherwise degenerate point sets).
	ErrDegenerateFit = errors.New("contour does not fit a valid ellipse")
)

// Ellipse describes one detected blob: center in pixel coordinates, full
// axis lengths with Major >= Minor, and the major-axis rotation in [0, pi).
type Ellipse struct {
	CenterX float64
	CenterY float64
	Major   float64
	Minor   float64
	Angle   float64
}

// FitEllipse computes the least-squares ellipse through a contour using the
// Halir-Flusser formulation of the direct (Fitzgibbon) method: the conic is
// constrained to be an ellipse, so the result is never a parabola or
// hyperbola, and the fit is fully deterministic.
func FitEllipse(c Contour) (Ellipse, error) {
	if len(c) < minFitPoints {
		return Ellipse{}, ErrTooFewPoints
	}

	// Center the points on their centroid for conditioning.
	var mx, my float64
	for _, p := range c {
		mx += float64(p.X)
		my += float64(p.Y)
	}
	n := float64(len(c))
	mx /= n
	my /= n
	pts := make([]r2.Point, len(c))
	for i, p := range c {
		pts[i] = r2.Point{X: float64(p.X) - mx, Y: float64(p.Y) - my}
	}

	k, err := fitConic(pts)
	if err != nil {
		return Ellipse{}, err
	}
	e, err := conicToEllipse(k)
	if err != nil {
		return Ellipse{}, err
	}
	e.CenterX += mx
	e.CenterY += my
	return e, nil
}

// conic holds the implicit coefficients of
// A x^2 + B xy + C y^2 + D x + E y + F = 0.
type conic struct {
	A, B, C, D, E, F float64
}

// fitConic solves the quadratically-constrained least squares problem over
// centered points. The design matrix is split into quadratic and linear
// halves (Halir-Flusser), reducing the generalized eigenproblem to an
// ordinary 3x3 one.
func fitConic(pts []r2.Point) (conic, error) {
	n := len(pts)
	d1 := mat.NewDense(n, 3, nil)
	d2 := mat.NewDense(n, 3, nil)
	for i, p := range pts {
		d1.SetRow(i, []float64{p.X * p.X, p.X * p.Y, p.Y * p.Y})
		d2.SetRow(i, []float64{p.X, p.Y, 1})
	}

	var s1, s2, s3 mat.Dense
	s1.Mul(d1.T(), d1)
	s2.Mul(d1.T(), d2)
	s3.Mul(d2.T(), d2)

	// T = -S3^-1 S2^T, M = inv(C1) (S1 + S2 T) with C1 the ellipse
	// constraint matrix; inv(C1) swaps the first and third rows with a
	// factor 1/2 and negates the second.
	var s3inv mat.Dense
	if err := s3inv.Inverse(&s3); err != nil {
		return conic{}, ErrDegenerateFit
	}
	var t, m0 mat.Dense
	t.Mul(&s3inv, s2.T())
	t.Scale(-1, &t)
	m0.Mul(&s2, &t)
	m0.Add(&s1, &m0)

	m := mat.NewDense(3, 3, nil)
	for j := 0; j < 3; j++ {
		m.Set(0, j, m0.At(2, j)/2)
		m.Set(1, j, -m0.At(1, j))
		m.Set(2, j, m0.At(0, j)/2)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenRight); !ok {
		return conic{}, ErrDegenerateFit
	}
	vecs := mat.NewCDense(3, 3, nil)
	eig.VectorsTo(vecs)

	// Exactly one eigenvector satisfies the ellipse constraint
	// 4ac - b^2 > 0 (Fitzgibbon). Complex eigenpairs cannot satisfy it.
	var quad [3]float64
	found := false
	for j := 0; j < 3 && !found; j++ {
		var v [3]float64
		ok := true
		for i := 0; i < 3; i++ {
			val := vecs.At(i, j)
			if math.Abs(imag(val)) > 1e-9*(1+cmplx.Abs(val)) {
				ok = false
				break
			}
			v[i] = real(val)
		}
		if ok && 4*v[0]*v[2]-v[1]*v[1] > 0 {
			quad = v
			found = true
		}
	}
	if !found {
		return conic{}, ErrDegenerateFit
	}

	// Sign convention: positive leading coefficient keeps the result
	// independent of eigenvector orientation.
	if quad[0] < 0 {
		quad[0], quad[1], quad[2] = -quad[0], -quad[1], -quad[2]
	}
	var lin mat.VecDense
	lin.MulVec(&t, mat.NewVecDense(3, quad[:]))
	return conic{quad[0], quad[1], quad[2], lin.AtVec(0), lin.AtVec(1), lin.AtVec(2)}, nil
}

// conicToEllipse converts implicit conic coefficients to center, axis
// lengths and rotation. The quadratic form's eigenvectors give the axis
// directions; the smaller eigenvalue belongs to the major axis.
func conicToEllipse(k conic) (Ellipse, error) {
	disc := k.B*k.B - 4*k.A*k.C
	if disc >= 0 {
		return Ellipse{}, ErrDegenerateFit
	}

	cx := (2*k.C*k.D - k.B*k.E) / disc
	cy := (2*k.A*k.E - k.B*k.D) / disc

	// Conic value at the center; X' M X = -f0 in the centered frame.
	f0 := k.A*cx*cx + k.B*cx*cy + k.C*cy*cy + k.D*cx + k.E*cy + k.F

	tr := k.A + k.C
	det := k.A*k.C - k.B*k.B/4
	root := math.Sqrt(math.Max(tr*tr-4*det, 0))
	lMin := (tr - root) / 2
	lMax := (tr + root) / 2

	majorSq := -f0 / lMin
	minorSq := -f0 / lMax
	if majorSq <= 0 || minorSq <= 0 || math.IsNaN(majorSq) || math.IsNaN(minorSq) {
		return Ellipse{}, ErrDegenerateFit
	}

	var angle float64
	if k.B == 0 {
		if k.A <= k.C {
			angle = 0
		} else {
			angle = math.Pi / 2
		}
	} else {
		// Eigenvector of the smaller eigenvalue: (B/2, lMin - A).
		angle = math.Atan2(lMin-k.A, k.B/2)
	}
	angle = math.Mod(angle, math.Pi)
	if angle < 0 {
		angle += math.Pi
	}

	return Ellipse{
		CenterX: cx,
		CenterY: cy,
		Major:   2 * math.Sqrt(majorSq),
		Minor:   2 * math.Sqrt(minorSq),
		Angle:   angle,
	}, nil
}
