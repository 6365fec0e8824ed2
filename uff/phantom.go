package uff

import "math"

// Phantom is a set of point scatterers. Each row of points holds the x, y
// and z position and the reflectivity of one scatterer.
type Phantom struct{ object }

var phantomSchema = defineSchema("uff.phantom", "Phantom", uffSchema, func() Node { return &Phantom{} },
	required("points", "scatterers as rows of [x, y, z, Gamma]", lazyArrayAt("points")),
	required("time", "time of the snapshot [s]", lazyScalarAt("time")),
	required("sound_speed", "speed of sound [m/s]", lazyScalarAt("sound_speed")),
	required("density", "density [kg/m^3]", lazyScalarAt("density")),
	required("alpha", "attenuation [dB/cm/MHz]", lazyScalarAt("alpha")),
	computed("N_points", "number of scatterers", func(n Node) (interface{}, error) {
		return n.(*Phantom).needLen("points")
	}),
	computed("x", "x position of each scatterer [m]", phantomColumn(0)),
	computed("y", "y position of each scatterer [m]", phantomColumn(1)),
	computed("z", "z position of each scatterer [m]", phantomColumn(2)),
	computed("Gamma", "reflectivity of each scatterer", phantomColumn(3)),
	computed("r", "distance of each scatterer from the origin [m]", func(n Node) (interface{}, error) {
		x, y, z, err := n.(*Phantom).positions()
		if err != nil {
			return nil, err
		}
		return norm(x, y, z)
	}),
	computed("theta", "azimuth of each scatterer [rad]", func(n Node) (interface{}, error) {
		x, _, z, err := n.(*Phantom).positions()
		if err != nil {
			return nil, err
		}
		return zip(x, z, math.Atan2)
	}),
	computed("phi", "elevation of each scatterer [rad]", func(n Node) (interface{}, error) {
		_, y, z, err := n.(*Phantom).positions()
		if err != nil {
			return nil, err
		}
		return zip(y, z, math.Atan2)
	}),
)

// NewPhantom returns an unbound phantom holding values.
func NewPhantom(values Values) (*Phantom, error) { return build[*Phantom](phantomSchema, values) }

func phantomColumn(j int) Computer {
	return func(n Node) (interface{}, error) {
		return n.(*Phantom).needIndex("points", Full(), At(j))
	}
}

func (p *Phantom) positions() (x, y, z *Array, err error) {
	if x, err = p.needIndex("points", Full(), At(0)); err != nil {
		return
	}
	if y, err = p.needIndex("points", Full(), At(1)); err != nil {
		return
	}
	z, err = p.needIndex("points", Full(), At(2))
	return
}

func (p *Phantom) Points() (Numeric, error)     { return p.numeric("points") }
func (p *Phantom) Time() (Numeric, error)       { return p.numeric("time") }
func (p *Phantom) SoundSpeed() (Numeric, error) { return p.numeric("sound_speed") }
func (p *Phantom) Density() (Numeric, error)    { return p.numeric("density") }
func (p *Phantom) Alpha() (Numeric, error)      { return p.numeric("alpha") }

// NPoints returns the number of scatterers.
func (p *Phantom) NPoints() (int, error) { return computedInt(p, "N_points") }
