package uff

import "github.com/pkg/errors"

// Wave is one transmitted wave: its wavefront, the point it is steered from
// and the apodization used to produce it.
type Wave struct{ object }

var waveSchema = defineSchema("uff.wave", "Wave", uffSchema, func() Node { return &Wave{} },
	required("wavefront", "shape of the wavefront", orDefault("wavefront", enumAt("wavefront", wavefrontClass), WavefrontSpherical)),
	required("source", "source of the wave, or its direction for plane waves", nodeAt("source", "uff.point")),
	required("origin", "origin of the wave", nodeAt("origin", "uff.point")),
	required("apodization", "apodization producing the wave", nodeAt("apodization", "uff.apodization")),
	optional("probe", "probe transmitting the wave", familyAt("probe", "uff.probe")),
	optional("event", "index of the transmit and receive event", lazyScalarAt("event")),
	optional("delay", "time from t0 to the start of acquisition [s]", orDefault("delay", lazyScalarAt("delay"), Scalar(0.0))),
	optional("sound_speed", "reference speed of sound [m/s]", orDefault("sound_speed", lazyScalarAt("sound_speed"), Scalar(1540.0))),
	computed("N_elements", "number of probe elements", func(n Node) (interface{}, error) {
		probe, err := n.base().needNode("probe")
		if err != nil {
			return nil, err
		}
		return probeElements(probe)
	}),
	computed("delay_values", "per element transmit delays [s]", notSupported("Wave.delay_values")),
	computed("apodization_values", "per element transmit apodization", notSupported("Wave.apodization_values")),
)

// NewWave returns an unbound wave holding values.
func NewWave(values Values) (*Wave, error) { return build[*Wave](waveSchema, values) }

// Wavefront returns the wavefront shape.
func (w *Wave) Wavefront() (Wavefront, error) {
	v, err := w.Get("wavefront")
	if err != nil {
		return 0, err
	}
	if v == nil {
		return WavefrontSpherical, nil
	}
	wf, ok := v.(Wavefront)
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedType, "Wave.wavefront holds %T", v)
	}
	return wf, nil
}

func (w *Wave) Source() (*Point, error)             { return nodeAs[*Point](&w.object, "source") }
func (w *Wave) Origin() (*Point, error)             { return nodeAs[*Point](&w.object, "origin") }
func (w *Wave) Apodization() (*Apodization, error)  { return nodeAs[*Apodization](&w.object, "apodization") }
func (w *Wave) Probe() (Node, error)                { return w.node("probe") }
func (w *Wave) Event() (Numeric, error)             { return w.numeric("event") }
func (w *Wave) Delay() (Numeric, error)             { return w.numeric("delay") }
func (w *Wave) SoundSpeed() (Numeric, error)        { return w.numeric("sound_speed") }
func (w *Wave) NElements() (int, error)             { return computedInt(w, "N_elements") }
