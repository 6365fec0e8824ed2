package uff

import (
	"github.com/pkg/errors"
)

// ChannelData holds raw data as acquired by a scanner. Data is exposed with
// dimensions [time, channel, wave, frame] and stored with the dimensions
// reversed.
type ChannelData struct{ object }

var channelDataSchema = func() *Schema {
	s := defineSchema("uff.channel_data", "ChannelData", uffSchema, func() Node { return &ChannelData{} },
		required("sampling_frequency", "sampling frequency [Hz]", lazyScalarAt("sampling_frequency")),
		required("initial_time", "time of the first sample [s]", lazyScalarAt("initial_time")),
		required("sound_speed", "reference speed of sound [m/s]", lazyScalarAt("sound_speed")),
		required("modulation_frequency", "modulation frequency [Hz]", lazyScalarAt("modulation_frequency")),
		required("sequence", "transmitted waves", nodeAt("sequence", "uff.wave")),
		required("probe", "receiving probe", familyAt("probe", "uff.probe")),
		required("data", "samples [time, channel, wave, frame]", transposedAt("data")),
		optional("pulse", "transmitted pulse", nodeAt("pulse", "uff.pulse")),
		optional("phantom", "simulated phantom", nodeAt("phantom", "uff.phantom")),
		optional("PRF", "pulse repetition frequency [Hz]", firstOf([]string{"PRF", "prf"}, lazyScalarAt)),
		optional("N_active_elements", "number of active elements on receive", lazyScalarAt("N_active_elements")),
		computed("N_samples", "number of samples", dataAxis(0, false)),
		computed("N_elements", "number of probe elements", channelCount),
		computed("N_channels", "number of channels", channelCount),
		computed("N_waves", "number of transmitted waves", func(n Node) (interface{}, error) {
			seq, err := n.base().nodes("sequence")
			if err != nil {
				return nil, err
			}
			return len(seq), nil
		}),
		computed("N_frames", "number of frames", func(n Node) (interface{}, error) {
			shape, err := n.base().needShape("data")
			if err != nil {
				return nil, err
			}
			if len(shape) == 4 {
				return shape[3], nil
			}
			return 1, nil
		}),
		computed("wavelength", "wavelength at the pulse center frequency [m]", func(n Node) (interface{}, error) {
			o := n.base()
			c, err := o.needFloat("sound_speed")
			if err != nil {
				return nil, err
			}
			pulse, err := o.needNode("pulse")
			if err != nil {
				return nil, err
			}
			f, err := pulse.base().needFloat("center_frequency")
			if err != nil {
				return nil, err
			}
			if f == 0 {
				return nil, errors.Wrap(ErrMissingPrerequisite, "Pulse.center_frequency is zero")
			}
			return Scalar(c / f), nil
		}),
	)
	s.prepare = func(field string, v interface{}) (interface{}, error) {
		if field != "data" {
			return v, nil
		}
		switch x := v.(type) {
		case *LazyArray:
			return x.T(), nil
		case *Array:
			return x.Transpose(), nil
		}
		return nil, errors.Wrapf(ErrUnsupportedType, "ChannelData.data holds %T", v)
	}
	return s
}()

// NewChannelData returns an unbound channel data node holding values.
func NewChannelData(values Values) (*ChannelData, error) {
	return build[*ChannelData](channelDataSchema, values)
}

func channelCount(n Node) (interface{}, error) {
	probe, err := n.base().needNode("probe")
	if err != nil {
		return nil, err
	}
	return probeElements(probe)
}

// dataAxis returns the length of one axis of the data field. With orOne set
// a missing axis counts as 1.
func dataAxis(axis int, orOne bool) Computer {
	return func(n Node) (interface{}, error) {
		shape, err := n.base().needShape("data")
		if err != nil {
			return nil, err
		}
		if axis >= len(shape) {
			if orOne {
				return 1, nil
			}
			return nil, errors.Wrapf(ErrIndex, "data of shape %s has no axis %d", formatShape(shape), axis)
		}
		return shape[axis], nil
	}
}

func (c *ChannelData) SamplingFrequency() (Numeric, error)   { return c.numeric("sampling_frequency") }
func (c *ChannelData) InitialTime() (Numeric, error)         { return c.numeric("initial_time") }
func (c *ChannelData) SoundSpeed() (Numeric, error)          { return c.numeric("sound_speed") }
func (c *ChannelData) ModulationFrequency() (Numeric, error) { return c.numeric("modulation_frequency") }
func (c *ChannelData) Sequence() ([]*Wave, error)            { return nodesAs[*Wave](&c.object, "sequence") }
func (c *ChannelData) Probe() (Node, error)                  { return c.node("probe") }
func (c *ChannelData) Data() (Numeric, error)                { return c.numeric("data") }
func (c *ChannelData) Pulse() (*Pulse, error)                { return nodeAs[*Pulse](&c.object, "pulse") }
func (c *ChannelData) Phantom() (*Phantom, error)            { return nodeAs[*Phantom](&c.object, "phantom") }
func (c *ChannelData) PRF() (Numeric, error)                 { return c.numeric("PRF") }
func (c *ChannelData) NSamples() (int, error)                { return computedInt(c, "N_samples") }
func (c *ChannelData) NElements() (int, error)               { return computedInt(c, "N_elements") }
func (c *ChannelData) NChannels() (int, error)               { return computedInt(c, "N_channels") }
func (c *ChannelData) NWaves() (int, error)                  { return computedInt(c, "N_waves") }
func (c *ChannelData) NFrames() (int, error)                 { return computedInt(c, "N_frames") }

// Wavelength returns sound_speed divided by the pulse center frequency.
func (c *ChannelData) Wavelength() (float64, error) { return computedFloat(c, "wavelength") }
