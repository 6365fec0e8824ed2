package uff

import (
	"math"

	"github.com/pkg/errors"
)

// Scan is a collection of pixel positions.
type Scan struct{ object }

var scanSchema = defineSchema("uff.scan", "Scan", uffSchema, func() Node { return &Scan{} },
	required("x", "x coordinate of each pixel [m]", lazyArrayAt("x")),
	required("y", "y coordinate of each pixel [m]", lazyArrayAt("y")),
	required("z", "z coordinate of each pixel [m]", lazyArrayAt("z")),
	computed("xyz", "pixel positions, N_pixels by 3 [m]", func(n Node) (interface{}, error) {
		x, err := computedOrStored(n, "x")
		if err != nil {
			return nil, err
		}
		y, err := computedOrStored(n, "y")
		if err != nil {
			return nil, err
		}
		z, err := computedOrStored(n, "z")
		if err != nil {
			return nil, err
		}
		return stack(x.Flatten(), y.Flatten(), z.Flatten())
	}),
)

// NewScan returns an unbound scan holding values.
func NewScan(values Values) (*Scan, error) { return build[*Scan](scanSchema, values) }

// computedOrStored returns a field that subtypes may either store or derive.
func computedOrStored(n Node, name string) (*Array, error) {
	return n.base().needArray(name)
}

func (s *Scan) X() (Numeric, error) { return s.numeric("x") }
func (s *Scan) Y() (Numeric, error) { return s.numeric("y") }
func (s *Scan) Z() (Numeric, error) { return s.numeric("z") }

// XYZ returns the pixel positions as an N_pixels by 3 array.
func (s *Scan) XYZ() (*Array, error) { return computedArray(s, "xyz") }

func axisLength(key string) Computer {
	return func(n Node) (interface{}, error) { return n.base().needLen(key) }
}

func axisStep(key string) Computer {
	return func(n Node) (interface{}, error) {
		a, err := n.base().needArray(key)
		if err != nil {
			return nil, err
		}
		return Scalar(meanStep(a)), nil
	}
}

func referenceDistanceZ(n Node) (interface{}, error) { return computedOrStored(n, "z") }

// LinearScan is a rectangular grid of pixels in the xz plane.
type LinearScan struct{ object }

var linearScanSchema = defineSchema("uff.linear_scan", "LinearScan", scanSchema, func() Node { return &LinearScan{} },
	required("x_axis", "x coordinates of the grid [m]", lazyArrayAt("x_axis")),
	required("z_axis", "z coordinates of the grid [m]", lazyArrayAt("z_axis")),
	computed("N_x_axis", "number of pixels along x", axisLength("x_axis")),
	computed("N_z_axis", "number of pixels along z", axisLength("z_axis")),
	computed("x_step", "mean spacing along x [m]", axisStep("x_axis")),
	computed("z_step", "mean spacing along z [m]", axisStep("z_axis")),
	computed("reference_distance", "distance used for the phase term [m]", referenceDistanceZ),
	computed("x", "x coordinate of each pixel [m]", func(n Node) (interface{}, error) {
		gx, _, err := n.(*LinearScan).grid()
		return gx, err
	}),
	computed("y", "y coordinate of each pixel [m]", func(n Node) (interface{}, error) {
		gx, _, err := n.(*LinearScan).grid()
		if err != nil {
			return nil, err
		}
		return newArray(Float64, filled(gx.Size(), 0), nil, nil)
	}),
	computed("z", "z coordinate of each pixel [m]", func(n Node) (interface{}, error) {
		_, gz, err := n.(*LinearScan).grid()
		return gz, err
	}),
)

// NewLinearScan returns an unbound linear scan holding values.
func NewLinearScan(values Values) (*LinearScan, error) {
	return build[*LinearScan](linearScanSchema, values)
}

// grid returns the flattened pixel coordinates with z varying fastest.
func (s *LinearScan) grid() (x, z *Array, err error) {
	xa, err := s.needArray("x_axis")
	if err != nil {
		return nil, nil, err
	}
	za, err := s.needArray("z_axis")
	if err != nil {
		return nil, nil, err
	}
	gx, gz := meshgridIJ(xa.Flatten(), za.Flatten())
	return gx.Flatten(), gz.Flatten(), nil
}

func (s *LinearScan) XAxis() (Numeric, error) { return s.numeric("x_axis") }
func (s *LinearScan) ZAxis() (Numeric, error) { return s.numeric("z_axis") }
func (s *LinearScan) NXAxis() (int, error)    { return computedInt(s, "N_x_axis") }
func (s *LinearScan) NZAxis() (int, error)    { return computedInt(s, "N_z_axis") }
func (s *LinearScan) XYZ() (*Array, error)    { return computedArray(s, "xyz") }

// LinearScanRotated is a linear scan rotated around a point. Its pixel
// positions are stored.
type LinearScanRotated struct{ object }

var linearScanRotatedSchema = defineSchema("uff.linear_scan_rotated", "LinearScanRotated", scanSchema, func() Node { return &LinearScanRotated{} },
	required("x_axis", "x coordinates of the unrotated grid [m]", lazyArrayAt("x_axis")),
	required("z_axis", "z coordinates of the unrotated grid [m]", lazyArrayAt("z_axis")),
	required("rotation_angle", "rotation angle [rad]", lazyScalarAt("rotation_angle")),
	required("center_of_rotation", "(x, y, z) of the rotation point [m]", lazyArrayAt("center_of_rotation")),
	computed("N_x_axis", "number of pixels along x", axisLength("x_axis")),
	computed("N_z_axis", "number of pixels along z", axisLength("z_axis")),
	computed("x_step", "mean spacing along x [m]", axisStep("x_axis")),
	computed("z_step", "mean spacing along z [m]", axisStep("z_axis")),
	computed("reference_distance", "distance used for the phase term [m]", referenceDistanceZ),
)

// NewLinearScanRotated returns an unbound rotated linear scan holding values.
func NewLinearScanRotated(values Values) (*LinearScanRotated, error) {
	return build[*LinearScanRotated](linearScanRotatedSchema, values)
}

func (s *LinearScanRotated) RotationAngle() (Numeric, error)    { return s.numeric("rotation_angle") }
func (s *LinearScanRotated) CenterOfRotation() (Numeric, error) { return s.numeric("center_of_rotation") }
func (s *LinearScanRotated) XYZ() (*Array, error)               { return computedArray(s, "xyz") }

// Linear3DScan is a grid in a plane rolled around the z axis. Its pixel
// positions are stored.
type Linear3DScan struct{ object }

var linear3DScanSchema = defineSchema("uff.linear_3d_scan", "Linear3DScan", scanSchema, func() Node { return &Linear3DScan{} },
	required("radial_axis", "coordinates along the radial axis [m]", lazyArrayAt("radial_axis")),
	required("axial_axis", "coordinates along the axial axis [m]", lazyArrayAt("axial_axis")),
	required("roll", "angle between the radial axis and the x axis [rad]", lazyScalarAt("roll")),
	computed("N_radial_axis", "number of pixels along the radial axis", axisLength("radial_axis")),
	computed("N_axial_axis", "number of pixels along the axial axis", axisLength("axial_axis")),
)

// NewLinear3DScan returns an unbound 3D linear scan holding values.
func NewLinear3DScan(values Values) (*Linear3DScan, error) {
	return build[*Linear3DScan](linear3DScanSchema, values)
}

func (s *Linear3DScan) Roll() (Numeric, error) { return s.numeric("roll") }
func (s *Linear3DScan) XYZ() (*Array, error)   { return computedArray(s, "xyz") }

// SectorScan is a polar grid of depth by azimuth around one origin, or
// around one origin per azimuth column.
type SectorScan struct{ object }

var sectorScanSchema = defineSchema("uff.sector_scan", "SectorScan", scanSchema, func() Node { return &SectorScan{} },
	required("azimuth_axis", "azimuth of each column [rad]", lazyArrayAt("azimuth_axis")),
	required("depth_axis", "distance of each row from the origin [m]", lazyArrayAt("depth_axis")),
	required("origin", "origin of the scan lines", firstOf([]string{"origin", "apex"}, func(key string) Resolver {
		return nodeAt(key, "uff.point")
	})),
	computed("N_azimuth_axis", "number of pixels along azimuth", axisLength("azimuth_axis")),
	computed("N_depth_axis", "number of pixels along depth", axisLength("depth_axis")),
	computed("N_origins", "number of scan line origins", func(n Node) (interface{}, error) {
		origins, err := n.base().nodes("origin")
		if err != nil {
			return nil, err
		}
		if origins == nil {
			return nil, errors.Wrapf(ErrMissingPrerequisite, "SectorScan.origin is not set")
		}
		return len(origins), nil
	}),
	computed("depth_step", "mean spacing along depth [m]", axisStep("depth_axis")),
	computed("reference_distance", "distance used for the phase term [m]", notSupported("SectorScan.reference_distance")),
	computed("x", "x coordinate of each pixel [m]", sectorCoordinate(func(rho, theta float64, o [3]float64) float64 {
		return rho*math.Sin(theta) + o[0]
	})),
	computed("y", "y coordinate of each pixel [m]", sectorCoordinate(func(rho, theta float64, o [3]float64) float64 {
		return o[1]
	})),
	computed("z", "z coordinate of each pixel [m]", sectorCoordinate(func(rho, theta float64, o [3]float64) float64 {
		return rho*math.Cos(theta) + o[2]
	})),
)

// NewSectorScan returns an unbound sector scan holding values.
func NewSectorScan(values Values) (*SectorScan, error) {
	return build[*SectorScan](sectorScanSchema, values)
}

// sectorCoordinate evaluates fn on the depth by azimuth grid, flattened with
// azimuth varying fastest. With one origin per azimuth column, column j uses
// origin j.
func sectorCoordinate(fn func(rho, theta float64, origin [3]float64) float64) Computer {
	return func(n Node) (interface{}, error) {
		s := n.(*SectorScan)
		depth, err := s.needArray("depth_axis")
		if err != nil {
			return nil, err
		}
		azimuth, err := s.needArray("azimuth_axis")
		if err != nil {
			return nil, err
		}
		if _, err := s.need("origin"); err != nil {
			return nil, err
		}
		origins, err := s.Origins()
		if err != nil {
			return nil, err
		}
		na := azimuth.Size()
		if len(origins) != 1 && len(origins) != na {
			return nil, errors.Errorf("%d origins for %d azimuth columns", len(origins), na)
		}
		pos := make([][3]float64, len(origins))
		for i, o := range origins {
			x, y, z, err := o.XYZ()
			if err != nil {
				return nil, errors.Wrapf(err, "origin %d", i)
			}
			pos[i] = [3]float64{x, y, z}
		}
		rho, theta := meshgridIJ(depth.Flatten(), azimuth.Flatten())
		out := make([]float64, rho.Size())
		for k := range out {
			o := pos[0]
			if len(pos) > 1 {
				o = pos[k%na]
			}
			out[k] = fn(rho.re[k], theta.re[k], o)
		}
		return newArray(Float64, out, nil, nil)
	}
}

func (s *SectorScan) AzimuthAxis() (Numeric, error) { return s.numeric("azimuth_axis") }
func (s *SectorScan) DepthAxis() (Numeric, error)   { return s.numeric("depth_axis") }

// Origins returns the scan line origins. A scan with a single origin
// returns one point.
func (s *SectorScan) Origins() ([]*Point, error) { return nodesAs[*Point](&s.object, "origin") }

func (s *SectorScan) XYZ() (*Array, error) { return computedArray(s, "xyz") }
