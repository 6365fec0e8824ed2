package uff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Enum is a registered enumeration stored as a (1,1) integer dataset.
type Enum interface {
	Class() string
	Int() int
	String() string
}

const (
	windowClass    = "uff.window"
	wavefrontClass = "uff.wavefront"
)

// Window is the apodization window.
type Window int

// Several names share one value. WindowSTA and WindowTukey80 are both 7, so
// a stored 7 always reads back as WindowTukey80.
const (
	WindowNone        Window = 0
	WindowBoxcar      Window = 1
	WindowRectangular Window = 1
	WindowFlat        Window = 1
	WindowHanning     Window = 2
	WindowHamming     Window = 3
	WindowTukey25     Window = 4
	WindowTukey50     Window = 5
	WindowTukey75     Window = 6
	WindowTukey80     Window = 7
	WindowSTA         Window = 7
	WindowScanline    Window = 8
)

var windowNames = map[Window]string{
	WindowNone:     "none",
	WindowBoxcar:   "boxcar",
	WindowHanning:  "hanning",
	WindowHamming:  "hamming",
	WindowTukey25:  "tukey25",
	WindowTukey50:  "tukey50",
	WindowTukey75:  "tukey75",
	WindowTukey80:  "tukey80",
	WindowScanline: "scanline",
}

var windowAliases = map[string]Window{
	"rectangular": WindowRectangular,
	"flat":        WindowFlat,
	"sta":         WindowSTA,
}

// ParseWindow converts a stored value to a Window.
func ParseWindow(v int) (Window, error) {
	w := Window(v)
	if _, ok := windowNames[w]; !ok {
		return 0, errors.Wrapf(ErrUnsupportedType, "%d is not a valid window", v)
	}
	return w, nil
}

// WindowByName returns the window with the given name or alias.
func WindowByName(name string) (Window, error) {
	if w, ok := windowAliases[name]; ok {
		return w, nil
	}
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedType, "%q is not a valid window", name)
}

func (w Window) Class() string { return windowClass }
func (w Window) Int() int      { return int(w) }

func (w Window) String() string {
	if n, ok := windowNames[w]; ok {
		return "Window." + n
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// Wavefront is the shape of a transmitted wave.
type Wavefront int

const (
	WavefrontPlane         Wavefront = 0
	WavefrontSpherical     Wavefront = 1
	WavefrontPhotoacoustic Wavefront = 2
)

var wavefrontNames = map[Wavefront]string{
	WavefrontPlane:         "plane",
	WavefrontSpherical:     "spherical",
	WavefrontPhotoacoustic: "photoacoustic",
}

// ParseWavefront converts a stored value to a Wavefront.
func ParseWavefront(v int) (Wavefront, error) {
	w := Wavefront(v)
	if _, ok := wavefrontNames[w]; !ok {
		return 0, errors.Wrapf(ErrUnsupportedType, "%d is not a valid wavefront", v)
	}
	return w, nil
}

func (w Wavefront) Class() string { return wavefrontClass }
func (w Wavefront) Int() int      { return int(w) }

func (w Wavefront) String() string {
	if n, ok := wavefrontNames[w]; ok {
		return "Wavefront." + n
	}
	return fmt.Sprintf("Wavefront(%d)", int(w))
}
