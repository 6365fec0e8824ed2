package uff

// BeamformedData holds beamformed data with dimensions [pixel, channel,
// wave, frame].
type BeamformedData struct{ object }

var beamformedDataSchema = defineSchema("uff.beamformed_data", "BeamformedData", uffSchema, func() Node { return &BeamformedData{} },
	required("scan", "pixel positions", familyAt("scan", "uff.scan")),
	required("data", "samples [pixel, channel, wave, frame]", lazyArrayAt("data")),
	optional("phantom", "simulated phantom", nodeAt("phantom", "uff.phantom")),
	optional("sequence", "transmitted waves", nodeAt("sequence", "uff.wave")),
	optional("probe", "probe", familyAt("probe", "uff.probe")),
	optional("pulse", "transmitted pulse", nodeAt("pulse", "uff.pulse")),
	optional("sampling_frequency", "sampling frequency along depth [Hz]", lazyScalarAt("sampling_frequency")),
	optional("modulation_frequency", "modulation frequency [Hz]", lazyScalarAt("modulation_frequency")),
	optional("frame_rate", "frame rate for playback [fps]", lazyScalarAt("frame_rate")),
	computed("N_pixels", "number of pixels", dataAxis(0, true)),
	computed("N_channels", "number of channels", dataAxis(1, true)),
	computed("N_waves", "number of waves", dataAxis(2, true)),
	computed("N_frames", "number of frames", dataAxis(3, true)),
)

// NewBeamformedData returns an unbound beamformed data node holding values.
func NewBeamformedData(values Values) (*BeamformedData, error) {
	return build[*BeamformedData](beamformedDataSchema, values)
}

func (b *BeamformedData) Scan() (Node, error)                   { return b.node("scan") }
func (b *BeamformedData) Data() (Numeric, error)                { return b.numeric("data") }
func (b *BeamformedData) Phantom() (*Phantom, error)            { return nodeAs[*Phantom](&b.object, "phantom") }
func (b *BeamformedData) Sequence() ([]*Wave, error)            { return nodesAs[*Wave](&b.object, "sequence") }
func (b *BeamformedData) Probe() (Node, error)                  { return b.node("probe") }
func (b *BeamformedData) Pulse() (*Pulse, error)                { return nodeAs[*Pulse](&b.object, "pulse") }
func (b *BeamformedData) SamplingFrequency() (Numeric, error)   { return b.numeric("sampling_frequency") }
func (b *BeamformedData) ModulationFrequency() (Numeric, error) { return b.numeric("modulation_frequency") }
func (b *BeamformedData) FrameRate() (Numeric, error)           { return b.numeric("frame_rate") }
func (b *BeamformedData) NPixels() (int, error)                 { return computedInt(b, "N_pixels") }
func (b *BeamformedData) NChannels() (int, error)               { return computedInt(b, "N_channels") }
func (b *BeamformedData) NWaves() (int, error)                  { return computedInt(b, "N_waves") }
func (b *BeamformedData) NFrames() (int, error)                 { return computedInt(b, "N_frames") }
