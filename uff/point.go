package uff

import "math"

// Point is a position given in spherical coordinates around the origin.
type Point struct{ object }

var pointSchema = defineSchema("uff.point", "Point", uffSchema, func() Node { return &Point{} },
	required("distance", "distance from the origin [m]", orDefault("distance", lazyScalarAt("distance"), Scalar(0.0))),
	required("azimuth", "angle from the z axis in the xz plane [rad]", orDefault("azimuth", lazyScalarAt("azimuth"), Scalar(0.0))),
	required("elevation", "angle from the xz plane [rad]", orDefault("elevation", lazyScalarAt("elevation"), Scalar(0.0))),
	computed("xyz", "cartesian position [m]", func(n Node) (interface{}, error) {
		x, y, z, err := n.(*Point).cartesian()
		if err != nil {
			return nil, err
		}
		return MustArray([]float64{x, y, z}), nil
	}),
)

// NewPoint returns an unbound point holding values.
func NewPoint(values Values) (*Point, error) { return build[*Point](pointSchema, values) }

func (p *Point) cartesian() (x, y, z float64, err error) {
	d, err := p.needFloat("distance")
	if err != nil {
		return 0, 0, 0, err
	}
	az, err := p.needFloat("azimuth")
	if err != nil {
		return 0, 0, 0, err
	}
	el, err := p.needFloat("elevation")
	if err != nil {
		return 0, 0, 0, err
	}
	x = d * math.Sin(az) * math.Cos(el)
	y = d * math.Sin(el)
	z = d * math.Cos(az) * math.Cos(el)
	return x, y, z, nil
}

func (p *Point) Distance() (Numeric, error)  { return p.numeric("distance") }
func (p *Point) Azimuth() (Numeric, error)   { return p.numeric("azimuth") }
func (p *Point) Elevation() (Numeric, error) { return p.numeric("elevation") }

// XYZ returns the cartesian position of the point.
func (p *Point) XYZ() (x, y, z float64, err error) { return p.cartesian() }
