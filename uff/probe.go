package uff

import (
	"math"

	"github.com/pkg/errors"
)

// Geometry rows of a probe.
const (
	rowX = iota
	rowY
	rowZ
	rowTheta
	rowPhi
	rowWidth
	rowHeight
	geometryRows
)

// Probe is a transducer given by the geometry of its elements: a 7 by
// N_elements array whose rows hold the x, y and z center, the azimuth and
// elevation orientation, and the width and height of every element.
type Probe struct{ object }

var probeSchema = defineSchema("uff.probe", "Probe", uffSchema, func() Node { return &Probe{} },
	required("geometry", "element geometry, 7 by N_elements", lazyArrayAt("geometry")),
	required("origin", "position of the probe", nodeAt("origin", "uff.point")),
	computed("N_elements", "number of elements", func(n Node) (interface{}, error) {
		shape, err := n.base().needShape("geometry")
		if err != nil {
			return nil, err
		}
		if len(shape) < 2 {
			return nil, errors.Wrapf(ErrIndex, "geometry of shape %s has no element axis", formatShape(shape))
		}
		return shape[1], nil
	}),
	computed("x", "element center x [m]", geometryRow(rowX)),
	computed("y", "element center y [m]", geometryRow(rowY)),
	computed("z", "element center z [m]", geometryRow(rowZ)),
	computed("theta", "element azimuth [rad]", geometryRow(rowTheta)),
	computed("phi", "element elevation [rad]", geometryRow(rowPhi)),
	computed("width", "element width [m]", geometryRow(rowWidth)),
	computed("height", "element height [m]", geometryRow(rowHeight)),
	computed("xyz", "element centers, N_elements by 3 [m]", func(n Node) (interface{}, error) {
		x, y, z, err := elementCenters(n)
		if err != nil {
			return nil, err
		}
		return stack(x, y, z)
	}),
	computed("r", "distance of each element center from the origin [m]", func(n Node) (interface{}, error) {
		x, y, z, err := elementCenters(n)
		if err != nil {
			return nil, err
		}
		return norm(x, y, z)
	}),
)

// NewProbe returns an unbound probe holding values.
func NewProbe(values Values) (*Probe, error) { return build[*Probe](probeSchema, values) }

// geometryRow reads one row of the geometry. Stored geometries only have the
// row read.
func geometryRow(row int) Computer {
	return func(n Node) (interface{}, error) {
		return n.base().needIndex("geometry", At(row), Full())
	}
}

func elementCenters(n Node) (x, y, z *Array, err error) {
	o := n.base()
	if x, err = o.needIndex("geometry", At(rowX), Full()); err != nil {
		return
	}
	if y, err = o.needIndex("geometry", At(rowY), Full()); err != nil {
		return
	}
	z, err = o.needIndex("geometry", At(rowZ), Full())
	return
}

func (p *Probe) Geometry() (Numeric, error) { return p.geometry() }
func (p *Probe) Origin() (*Point, error)    { return nodeAs[*Point](&p.object, "origin") }

// NElements returns the number of elements of the probe.
func (p *Probe) NElements() (int, error) { return computedInt(p, "N_elements") }

func (o *object) geometry() (Numeric, error) {
	v, err := o.Get("geometry")
	if err != nil || v == nil {
		return nil, err
	}
	return v.(Numeric), nil
}

// probeElements returns N_elements of any probe node.
func probeElements(n Node) (int, error) { return computedInt(n, "N_elements") }

// LinearArray is a probe with N elements on a line along x.
type LinearArray struct{ object }

var linearArraySchema = defineSchema("uff.linear_array", "LinearArray", probeSchema, func() Node { return &LinearArray{} },
	required("N", "number of elements", lazyScalarAt("N")),
	required("pitch", "distance between element centers [m]", lazyScalarAt("pitch")),
	optional("element_width", "element width [m]", lazyScalarAt("element_width")),
	optional("element_height", "element height [m]", lazyScalarAt("element_height")),
)

// NewLinearArray returns an unbound linear array holding values.
func NewLinearArray(values Values) (*LinearArray, error) {
	return build[*LinearArray](linearArraySchema, values)
}

func (p *LinearArray) Geometry() (Numeric, error)      { return p.geometry() }
func (p *LinearArray) Origin() (*Point, error)         { return nodeAs[*Point](&p.object, "origin") }
func (p *LinearArray) NElements() (int, error)         { return computedInt(p, "N_elements") }
func (p *LinearArray) N() (Numeric, error)             { return p.numeric("N") }
func (p *LinearArray) Pitch() (Numeric, error)         { return p.numeric("pitch") }
func (p *LinearArray) ElementWidth() (Numeric, error)  { return p.numeric("element_width") }
func (p *LinearArray) ElementHeight() (Numeric, error) { return p.numeric("element_height") }

// CurvilinearArray is a probe with N elements on an arc of the given radius.
// Its geometry is derived from the arc.
type CurvilinearArray struct{ object }

var curvilinearArraySchema = defineSchema("uff.curvilinear_array", "CurvilinearArray", probeSchema, func() Node { return &CurvilinearArray{} },
	required("N", "number of elements", lazyScalarAt("N")),
	required("pitch", "distance between element centers along the arc [m]", lazyScalarAt("pitch")),
	required("radius", "radius of the arc [m]", lazyScalarAt("radius")),
	optional("element_width", "element width [m]", lazyScalarAt("element_width")),
	optional("element_height", "element height [m]", lazyScalarAt("element_height")),
	computed("geometry", "element geometry derived from the arc", func(n Node) (interface{}, error) {
		return n.(*CurvilinearArray).arcGeometry()
	}),
	computed("maximum_angle", "largest element azimuth [rad]", maximumAngle),
)

// NewCurvilinearArray returns an unbound curvilinear array holding values.
func NewCurvilinearArray(values Values) (*CurvilinearArray, error) {
	return build[*CurvilinearArray](curvilinearArraySchema, values)
}

// elementSize returns the element width and height, defaulting the width to
// the pitch and the height to ten times the width.
func (o *object) elementSize(pitch float64) (width, height float64, err error) {
	if width, err = o.floatOr("element_width", pitch); err != nil {
		return 0, 0, err
	}
	if height, err = o.floatOr("element_height", 10*width); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// arcAngles returns n angles spaced by the given arc length on a circle of
// radius r, centered on zero.
func arcAngles(n int, pitch, r float64) []float64 {
	dtheta := 2 * math.Asin(pitch/2/r)
	theta := make([]float64, n)
	var mean float64
	for i := range theta {
		theta[i] = float64(i) * dtheta
		mean += theta[i]
	}
	if n > 0 {
		mean /= float64(n)
	}
	for i := range theta {
		theta[i] -= mean
	}
	return theta
}

func (p *CurvilinearArray) arcGeometry() (*Array, error) {
	n, err := p.needInt("N")
	if err != nil {
		return nil, err
	}
	pitch, err := p.needFloat("pitch")
	if err != nil {
		return nil, err
	}
	r, err := p.needFloat("radius")
	if err != nil {
		return nil, err
	}
	width, height, err := p.elementSize(pitch)
	if err != nil {
		return nil, err
	}
	theta := arcAngles(n, pitch, r)
	x := make([]float64, n)
	z := make([]float64, n)
	for i, t := range theta {
		x[i] = r * math.Sin(t)
		z[i] = r*math.Cos(t) - r
	}
	return rows(x, filled(n, 0), z, theta, filled(n, 0), filled(n, width), filled(n, height))
}

func maximumAngle(n Node) (interface{}, error) {
	theta, err := computedArray(n, "theta")
	if err != nil {
		return nil, err
	}
	var m float64
	for _, t := range theta.re {
		m = math.Max(m, math.Abs(t))
	}
	return Scalar(m), nil
}

func (p *CurvilinearArray) Geometry() (Numeric, error)      { return p.geometry() }
func (p *CurvilinearArray) Origin() (*Point, error)         { return nodeAs[*Point](&p.object, "origin") }
func (p *CurvilinearArray) NElements() (int, error)         { return computedInt(p, "N_elements") }
func (p *CurvilinearArray) N() (Numeric, error)             { return p.numeric("N") }
func (p *CurvilinearArray) Pitch() (Numeric, error)         { return p.numeric("pitch") }
func (p *CurvilinearArray) Radius() (Numeric, error)        { return p.numeric("radius") }
func (p *CurvilinearArray) ElementWidth() (Numeric, error)  { return p.numeric("element_width") }
func (p *CurvilinearArray) ElementHeight() (Numeric, error) { return p.numeric("element_height") }

// MaximumAngle returns the largest absolute element azimuth.
func (p *CurvilinearArray) MaximumAngle() (float64, error) { return computedFloat(p, "maximum_angle") }

// MatrixArray is a probe with N_x by N_y elements on a plane.
type MatrixArray struct{ object }

var matrixArraySchema = defineSchema("uff.matrix_array", "MatrixArray", probeSchema, func() Node { return &MatrixArray{} },
	required("pitch_x", "element spacing along x [m]", lazyScalarAt("pitch_x")),
	required("pitch_y", "element spacing along y [m]", lazyScalarAt("pitch_y")),
	required("N_x", "number of elements along x", lazyScalarAt("N_x")),
	required("N_y", "number of elements along y", lazyScalarAt("N_y")),
	optional("element_width", "element width [m]", lazyScalarAt("element_width")),
	optional("element_height", "element height [m]", lazyScalarAt("element_height")),
)

// NewMatrixArray returns an unbound matrix array holding values.
func NewMatrixArray(values Values) (*MatrixArray, error) {
	return build[*MatrixArray](matrixArraySchema, values)
}

func (p *MatrixArray) Geometry() (Numeric, error) { return p.geometry() }
func (p *MatrixArray) Origin() (*Point, error)    { return nodeAs[*Point](&p.object, "origin") }
func (p *MatrixArray) NElements() (int, error)    { return computedInt(p, "N_elements") }
func (p *MatrixArray) PitchX() (Numeric, error)   { return p.numeric("pitch_x") }
func (p *MatrixArray) PitchY() (Numeric, error)   { return p.numeric("pitch_y") }
func (p *MatrixArray) NX() (Numeric, error)       { return p.numeric("N_x") }
func (p *MatrixArray) NY() (Numeric, error)       { return p.numeric("N_y") }

// CurvilinearMatrixArray is a matrix array curved along x with radius
// radius_x. Its geometry is derived from the curvature.
type CurvilinearMatrixArray struct{ object }

var curvilinearMatrixArraySchema = defineSchema("uff.curvilinear_matrix_array", "CurvilinearMatrixArray", matrixArraySchema, func() Node { return &CurvilinearMatrixArray{} },
	required("radius_x", "radius of the curvature along x [m]", lazyScalarAt("radius_x")),
	computed("geometry", "element geometry derived from the curvature", func(n Node) (interface{}, error) {
		return n.(*CurvilinearMatrixArray).arcGeometry()
	}),
	computed("maximum_angle", "largest element azimuth [rad]", maximumAngle),
)

// NewCurvilinearMatrixArray returns an unbound curvilinear matrix array
// holding values.
func NewCurvilinearMatrixArray(values Values) (*CurvilinearMatrixArray, error) {
	return build[*CurvilinearMatrixArray](curvilinearMatrixArraySchema, values)
}

// arcGeometry lays the elements out row by row: element j*N_x+i sits in
// column i of row j.
func (p *CurvilinearMatrixArray) arcGeometry() (*Array, error) {
	nx, err := p.needInt("N_x")
	if err != nil {
		return nil, err
	}
	ny, err := p.needInt("N_y")
	if err != nil {
		return nil, err
	}
	px, err := p.needFloat("pitch_x")
	if err != nil {
		return nil, err
	}
	py, err := p.needFloat("pitch_y")
	if err != nil {
		return nil, err
	}
	r, err := p.needFloat("radius_x")
	if err != nil {
		return nil, err
	}
	theta := arcAngles(nx, px, r)
	y0 := make([]float64, ny)
	var mean float64
	for j := range y0 {
		y0[j] = float64(j) * py
		mean += y0[j]
	}
	for j := range y0 {
		y0[j] -= mean / float64(ny)
	}
	n := nx * ny
	x, y, z, az := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := j*nx + i
			x[k] = r * math.Sin(theta[i])
			y[k] = y0[j]
			z[k] = r*math.Cos(theta[i]) - r
			az[k] = math.Atan2(x[k], z[k]) - math.Pi/2
		}
	}
	return rows(x, y, z, az, filled(n, 0), filled(n, px), filled(n, py))
}

func (p *CurvilinearMatrixArray) Geometry() (Numeric, error) { return p.geometry() }
func (p *CurvilinearMatrixArray) Origin() (*Point, error)    { return nodeAs[*Point](&p.object, "origin") }
func (p *CurvilinearMatrixArray) NElements() (int, error)    { return computedInt(p, "N_elements") }
func (p *CurvilinearMatrixArray) RadiusX() (Numeric, error)  { return p.numeric("radius_x") }

// MaximumAngle returns the largest absolute element azimuth.
func (p *CurvilinearMatrixArray) MaximumAngle() (float64, error) {
	return computedFloat(p, "maximum_angle")
}
