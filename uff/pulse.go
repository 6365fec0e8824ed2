package uff

// Pulse describes the transmitted pulse.
type Pulse struct{ object }

var pulseSchema = defineSchema("uff.pulse", "Pulse", uffSchema, func() Node { return &Pulse{} },
	required("center_frequency", "center frequency [Hz]", lazyScalarAt("center_frequency")),
	required("fractional_bandwidth", "fractional bandwidth", lazyScalarAt("fractional_bandwidth")),
	required("phase", "initial phase [rad]", lazyScalarAt("phase")),
	required("waveform", "sampled waveform", lazyArrayAt("waveform")),
)

// NewPulse returns an unbound pulse holding values.
func NewPulse(values Values) (*Pulse, error) { return build[*Pulse](pulseSchema, values) }

func (p *Pulse) CenterFrequency() (Numeric, error)     { return p.numeric("center_frequency") }
func (p *Pulse) FractionalBandwidth() (Numeric, error) { return p.numeric("fractional_bandwidth") }
func (p *Pulse) Phase() (Numeric, error)               { return p.numeric("phase") }
func (p *Pulse) Waveform() (Numeric, error)            { return p.numeric("waveform") }
