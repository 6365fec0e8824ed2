package uff

import "github.com/pkg/errors"

// Apodization describes how transmit, receive or synthetic beams are
// weighted across the aperture.
type Apodization struct{ object }

var apodizationSchema = defineSchema("uff.apodization", "Apodization", uffSchema, func() Node { return &Apodization{} },
	required("probe", "probe the apodization applies to", familyAt("probe", "uff.probe")),
	required("focus", "scan the apodization is computed for", firstOf([]string{"focus", "scan"}, func(key string) Resolver {
		return familyAt(key, "uff.scan")
	})),
	required("sequence", "waves of a synthetic apodization", nodeAt("sequence", "uff.wave")),
	required("f_number", "F-number [Fx Fy]", orDefault("f_number", lazyArrayAt("f_number"), MustArray([]int64{1, 1}))),
	required("window", "apodization window", orDefault("window", enumAt("window", windowClass), WindowNone)),
	required("MLA", "number of multi-line acquisitions", orDefault("MLA", lazyScalarAt("MLA"), Scalar(int64(1)))),
	required("MLA_overlap", "overlap of multi-line acquisitions", orDefault("MLA_overlap", lazyScalarAt("MLA_overlap"), Scalar(int64(0)))),
	required("tilt", "tilt [azimuth elevation] [rad]", orDefault("tilt", lazyArrayAt("tilt"), MustArray([]int64{0, 0}))),
	required("minimum_aperture", "minimum aperture [x y] [m]", orDefault("minimum_aperture", lazyArrayAt("minimum_aperture"), MustArray([]float64{1e-3, 1e-3}))),
	required("maximum_aperture", "maximum aperture [x y] [m]", orDefault("maximum_aperture", lazyArrayAt("maximum_aperture"), MustArray([]int64{10, 10}))),
	optional("apodization_vector", "fixed apodization overriding the computed one", lazyArrayAt("apodization_vector")),
	optional("origin", "origin of the apodization", firstOf([]string{"origin", "origo", "apex"}, func(key string) Resolver {
		return nodeAt(key, "uff.point")
	})),
	computed("data", "apodization values", notSupported("Apodization.data")),
	computed("N_elements", "number of real or synthetic elements", func(n Node) (interface{}, error) {
		o := n.base()
		seq, err := o.nodes("sequence")
		if err != nil {
			return nil, err
		}
		if len(seq) > 0 {
			return len(seq), nil
		}
		probe, err := o.node("probe")
		if err != nil {
			return nil, err
		}
		if probe == nil {
			return nil, errors.Wrap(ErrMissingPrerequisite, "Apodization has neither sequence nor probe")
		}
		return probeElements(probe)
	}),
)

// NewApodization returns an unbound apodization holding values.
func NewApodization(values Values) (*Apodization, error) {
	return build[*Apodization](apodizationSchema, values)
}

// Window returns the apodization window.
func (a *Apodization) Window() (Window, error) {
	v, err := a.Get("window")
	if err != nil {
		return 0, err
	}
	if v == nil {
		return WindowNone, nil
	}
	w, ok := v.(Window)
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedType, "Apodization.window holds %T", v)
	}
	return w, nil
}

func (a *Apodization) Probe() (Node, error)              { return a.node("probe") }
func (a *Apodization) Focus() (Node, error)              { return a.node("focus") }
func (a *Apodization) Sequence() ([]*Wave, error)        { return nodesAs[*Wave](&a.object, "sequence") }
func (a *Apodization) FNumber() (Numeric, error)         { return a.numeric("f_number") }
func (a *Apodization) MLA() (Numeric, error)             { return a.numeric("MLA") }
func (a *Apodization) MLAOverlap() (Numeric, error)      { return a.numeric("MLA_overlap") }
func (a *Apodization) Tilt() (Numeric, error)            { return a.numeric("tilt") }
func (a *Apodization) MinimumAperture() (Numeric, error) { return a.numeric("minimum_aperture") }
func (a *Apodization) MaximumAperture() (Numeric, error) { return a.numeric("maximum_aperture") }
func (a *Apodization) Origin() (*Point, error)           { return nodeAs[*Point](&a.object, "origin") }
func (a *Apodization) NElements() (int, error)           { return computedInt(a, "N_elements") }
