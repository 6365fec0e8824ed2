package uff

import (
	"math"
	"testing"

	"github.com/robert-malhotra/go-uff/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNode(t *testing.T, class string, values Values) Node {
	t.Helper()
	n, err := New(class, values)
	require.NoError(t, err)
	return n
}

func sampleLinearArray(t *testing.T) Node {
	return mustNode(t, "uff.linear_array", Values{
		"N":             4,
		"pitch":         3e-4,
		"element_width": 2.7e-4,
		"origin":        mustPoint(t, 0, 0, 0),
	})
}

func sampleLinearScan(t *testing.T) Node {
	return mustNode(t, "uff.linear_scan", Values{
		"x_axis": []float64{-1e-3, 0, 1e-3},
		"z_axis": []float64{10e-3, 20e-3},
	})
}

func sampleWave(t *testing.T, event int) *Wave {
	t.Helper()
	w, err := NewWave(Values{
		"wavefront": WavefrontPlane,
		"source":    mustPoint(t, math.Inf(1), 0.1*float64(event), 0),
		"origin":    mustPoint(t, 0, 0, 0),
		"event":     event,
		"delay":     1e-6,
	})
	require.NoError(t, err)
	return w
}

func TestRoundTripEveryClass(t *testing.T) {
	complexData, err := NewComplexArray([]complex64{1 + 1i, 2, 3i, -4, 5 - 5i, 6}, 6, 1)
	require.NoError(t, err)
	channels := make([]float64, 4*2*2)
	for i := range channels {
		channels[i] = float64(i) - 8
	}
	channelData, err := NewArray(channels, 4, 2, 2)
	require.NoError(t, err)

	cases := map[string]Values{
		"uff.point": {"distance": 3.5, "azimuth": 0.1, "elevation": -0.2},
		"uff.pulse": {
			"center_frequency":     5e6,
			"fractional_bandwidth": 0.6,
			"phase":                0.0,
			"waveform":             []float64{0, 1, 0, -1},
			"name":                 "excitation",
		},
		"uff.phantom": {
			"points":      [][]float64{{0, 0, 0.02, 1}, {1e-3, 0, 0.03, 0.5}},
			"time":        0.0,
			"sound_speed": 1540.0,
			"density":     1020.0,
			"alpha":       0.5,
		},
		"uff.probe": {
			"geometry": [][]float64{
				{-1e-4, 1e-4}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {2e-4, 2e-4}, {5e-3, 5e-3},
			},
			"origin": mustPoint(t, 0, 0, 0),
		},
		"uff.linear_array":      {"N": 4, "pitch": 3e-4, "element_width": 2.7e-4, "origin": mustPoint(t, 0, 0, 0)},
		"uff.curvilinear_array": {"N": 8, "pitch": 5e-4, "radius": 0.06, "element_height": 7e-3},
		"uff.matrix_array":      {"pitch_x": 3e-4, "pitch_y": 3e-4, "N_x": 2, "N_y": 3},
		"uff.curvilinear_matrix_array": {
			"pitch_x": 3e-4, "pitch_y": 3e-4, "N_x": 4, "N_y": 2, "radius_x": 0.05,
		},
		"uff.scan": {"x": []float64{0, 1e-3}, "y": []float64{0, 0}, "z": []float64{0.01, 0.02}},
		"uff.linear_scan": {
			"x_axis": []float64{-1e-3, 0, 1e-3},
			"z_axis": []float64{10e-3, 20e-3},
		},
		"uff.linear_scan_rotated": {
			"x_axis":             []float64{-1e-3, 1e-3},
			"z_axis":             []float64{10e-3, 20e-3},
			"rotation_angle":     0.1,
			"center_of_rotation": []float64{0, 0, 0.02},
		},
		"uff.linear_3d_scan": {
			"radial_axis": []float64{-1e-3, 0, 1e-3},
			"axial_axis":  []float64{5e-3, 6e-3},
			"roll":        0.2,
		},
		"uff.sector_scan": {
			"azimuth_axis": []float64{-0.1, 0, 0.1},
			"depth_axis":   []float64{0.01, 0.02},
			"origin":       mustPoint(t, 0, 0, 0),
		},
		"uff.wave": {
			"wavefront":   WavefrontPlane,
			"source":      mustPoint(t, math.Inf(1), 0.1, 0),
			"origin":      mustPoint(t, 0, 0, 0),
			"probe":       sampleLinearArray(t),
			"event":       2,
			"sound_speed": 1480.0,
		},
		"uff.apodization": {
			"probe":    sampleLinearArray(t),
			"focus":    sampleLinearScan(t),
			"window":   WindowHanning,
			"f_number": []float64{1.7, 1.7},
			"MLA":      int64(2),
			"origin":   mustPoint(t, 0.01, 0, 0),
		},
		"uff.channel_data": {
			"sampling_frequency":   20e6,
			"initial_time":         0.0,
			"sound_speed":          1540.0,
			"modulation_frequency": 0.0,
			"sequence":             []*Wave{sampleWave(t, 1), sampleWave(t, 2)},
			"probe":                sampleLinearArray(t),
			"data":                 channelData,
			"PRF":                  4000.0,
		},
		"uff.beamformed_data": {
			"scan":       sampleLinearScan(t),
			"data":       complexData,
			"frame_rate": 25.0,
		},
		"uff": {
			"focus":  mustPoint(t, 0.02, 0, 0),
			"author": []string{"first author", "second author"},
		},
	}
	for _, class := range Classes() {
		if _, isNode := Lookup(class); !isNode {
			continue
		}
		_, ok := cases[class]
		assert.True(t, ok, "no round trip case for %s", class)
	}

	for class, values := range cases {
		t.Run(class, func(t *testing.T) {
			path := tempFile(t)
			want := mustNode(t, class, values)
			mustWrite(t, path, "object", want, AllowMissingRequired())

			v := mustRead(t, path, "object")
			got, ok := v.(Node)
			require.True(t, ok, "read %T", v)
			assert.Equal(t, class, got.Class())
			assert.Equal(t, want.Schema(), got.Schema())
			requireEqualNodes(t, want, got)
		})
	}
}

func TestPointDistanceScalar(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "point", mustPoint(t, 3.5, 0, 0))

	distance := NewLazyScalar(mustLocation(t, path, "point", "distance"))
	shape, err := distance.Shape()
	require.NoError(t, err)
	assert.Empty(t, shape)
	dtype, err := distance.DType()
	require.NoError(t, err)
	assert.Equal(t, Float64, dtype)
	eq, err := distance.Equal(3.5)
	require.NoError(t, err)
	assert.True(t, eq)

	p, ok := mustRead(t, path, "point").(*Point)
	require.True(t, ok)
	d, err := p.Distance()
	require.NoError(t, err)
	_, lazy := d.(*LazyArray)
	assert.True(t, lazy, "stored fields read lazily")
	assert.Equal(t, 3.5, mustFloat(t, d))
}

func TestPointXYZ(t *testing.T) {
	x, y, z, err := mustPoint(t, 2, math.Pi/2, 0).XYZ()
	require.NoError(t, err)
	assert.InDelta(t, 2, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
	assert.InDelta(t, 0, z, 1e-12)

	p := mustPoint(t, 1, 0, math.Pi/6)
	xyz, err := computedArray(p, "xyz")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, math.Sqrt(3) / 2}, xyz.Real(), 1e-12)
}

func TestUnboundDefaults(t *testing.T) {
	p, err := NewPoint(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mustFloat(t, mustGet(t, p, "distance")))

	apod, err := NewApodization(nil)
	require.NoError(t, err)
	w, err := apod.Window()
	require.NoError(t, err)
	assert.Equal(t, WindowNone, w)
	fnum, err := apod.FNumber()
	require.NoError(t, err)
	a, err := fnum.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, a.Ints())
	assert.Nil(t, mustGet(t, apod, "focus"))

	wave, err := NewWave(nil)
	require.NoError(t, err)
	wf, err := wave.Wavefront()
	require.NoError(t, err)
	assert.Equal(t, WavefrontSpherical, wf)
	assert.Equal(t, 1540.0, mustFloat(t, mustGet(t, wave, "sound_speed")))
}

func TestSingleItemListStaysList(t *testing.T) {
	path := tempFile(t)
	cd, err := NewChannelData(Values{"sequence": []*Wave{sampleWave(t, 1)}})
	require.NoError(t, err)
	mustWrite(t, path, "cd", cd, AllowMissingRequired())

	attrs, err := mustLocation(t, path, "cd", "sequence").Attrs()
	require.NoError(t, err)
	assert.True(t, attrs.isList())
	size, err := attrs.Size()
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 1}, size)

	got := mustRead(t, path, "cd").(*ChannelData)
	v := mustGet(t, got, "sequence")
	items, ok := v.([]Node)
	require.True(t, ok, "sequence read as %T", v)
	assert.Len(t, items, 1)

	n, err := got.NWaves()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// A single node stored under the same field reads back as a node.
	mustWrite(t, path, "single", sampleWave(t, 1))
	_, ok = mustRead(t, path, "single").(*Wave)
	assert.True(t, ok)
}

func TestIsList(t *testing.T) {
	tests := []struct {
		attrs Attrs
		want  bool
	}{
		{Attrs{}, false},
		{Attrs{"size": []int64{1, 1}}, false},
		{Attrs{"size": []int64{1, 3}}, true},
		{Attrs{"size": []int64{1, 1}, "array": []int64{1}}, true},
		{Attrs{"size": []int64{1, 2}, "array": []int64{0}}, true},
		{Attrs{"array": int64(0)}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.attrs.isList(), "%v", tt.attrs)
	}
}

func TestSortItems(t *testing.T) {
	got := sortItems([]string{"item_10000", "item_0002", "item_9999", "other", "item_0001"})
	assert.Equal(t, []string{"other", "item_0001", "item_0002", "item_9999", "item_10000"}, got)
	assert.Equal(t, "sequence_0001", itemName("sequence", 0))
	assert.Equal(t, "sequence_12345", itemName("sequence", 12344))
}

func TestListItemsReadInNumericOrder(t *testing.T) {
	path := tempFile(t)
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	seq, err := f.Root().CreateGroup("points")
	require.NoError(t, err)
	for _, attr := range []struct {
		name  string
		value interface{}
	}{
		{"class", "uff.point"},
		{"name", "points"},
		{"array", []int64{1}},
		{"size", []int64{1, 3}},
	} {
		require.NoError(t, seq.SetAttr(attr.name, attr.value))
	}
	for _, item := range []struct {
		name     string
		distance float64
	}{
		{"points_10", 10},
		{"points_2", 2},
		{"points_1", 1},
	} {
		g, err := seq.CreateGroup(item.name)
		require.NoError(t, err)
		require.NoError(t, g.SetAttr("class", "uff.point"))
		_, err = g.CreateDataset("distance", []float64{item.distance},
			hdf5.WithShape(1, 1),
			hdf5.WithAttribute("class", "single"),
			hdf5.WithAttribute("complex", []int64{0}))
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	items, ok := mustRead(t, path, "points").([]Node)
	require.True(t, ok)
	require.Len(t, items, 3)
	var distances []float64
	for _, n := range items {
		distances = append(distances, mustFloat(t, mustGet(t, n, "distance")))
	}
	assert.Equal(t, []float64{1, 2, 10}, distances)
}

func TestMissingRequiredField(t *testing.T) {
	path := tempFile(t)
	pulse, err := NewPulse(Values{"center_frequency": 5e6})
	require.NoError(t, err)

	err = Write(path, "pulse", pulse)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "fractional_bandwidth")

	mustWrite(t, path, "pulse2", pulse, AllowMissingRequired())
	got := mustRead(t, path, "pulse2").(*Pulse)
	assert.Nil(t, mustGet(t, got, "phase"))
	assert.Equal(t, 5e6, mustFloat(t, mustGet(t, got, "center_frequency")))
}

func TestWindowAliasReadsBackCanonical(t *testing.T) {
	path := tempFile(t)
	apod, err := NewApodization(Values{"window": WindowSTA})
	require.NoError(t, err)
	mustWrite(t, path, "apod", apod, AllowMissingRequired())

	got := mustRead(t, path, "apod").(*Apodization)
	w, err := got.Window()
	require.NoError(t, err)
	assert.Equal(t, WindowTukey80, w)
	assert.Equal(t, "Window.tukey80", w.String())

	v, err := ReadNode(mustLocation(t, path, "apod", "window"))
	require.NoError(t, err)
	assert.Equal(t, WindowTukey80, v)

	for name, want := range map[string]Window{"sta": WindowTukey80, "rectangular": WindowBoxcar, "flat": WindowBoxcar, "hamming": WindowHamming} {
		got, err := WindowByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	_, err = WindowByName("gaussian")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = ParseWindow(42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, "Window(42)", Window(42).String())
	_, err = ParseWavefront(3)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCopyPerformsNoIO(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "point", mustPoint(t, 3.5, 0.1, 0))
	p := mustRead(t, path, "point").(*Point)
	d := mustGet(t, p, "distance")

	before := Stats()
	cp := p.Copy()
	cd := mustGet(t, cp, "distance")
	after := Stats()

	assert.Equal(t, before, after)
	assert.Same(t, d, cd)
	assert.True(t, cp.Location().Equal(p.Location()))

	require.NoError(t, cp.Set("distance", 1.0))
	assert.Equal(t, 3.5, mustFloat(t, mustGet(t, p, "distance")), "copy shares no state")
}

func TestMaterializeDetachesFromFile(t *testing.T) {
	path := tempFile(t)
	data, err := NewArray([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	cd, err := NewChannelData(Values{
		"sound_speed": 1540.0,
		"sequence":    []*Wave{sampleWave(t, 1), sampleWave(t, 2)},
		"data":        data,
		"pulse":       mustNode(t, "uff.pulse", Values{"center_frequency": 5e6}),
	})
	require.NoError(t, err)
	mustWrite(t, path, "cd", cd, AllowMissingRequired())

	bound := mustRead(t, path, "cd").(*ChannelData)
	m, err := MaterializeAs(bound)
	require.NoError(t, err)
	assert.True(t, m.Location().IsZero())

	before := Stats()
	v := mustGet(t, m, "data")
	_, isArray := v.(*Array)
	assert.True(t, isArray, "materialized data is %T", v)
	ns, err := m.NSamples()
	require.NoError(t, err)
	assert.Equal(t, 3, ns)
	nw, err := m.NWaves()
	require.NoError(t, err)
	assert.Equal(t, 2, nw)
	wl, err := m.Wavelength()
	require.NoError(t, err)
	assert.InDelta(t, 1540.0/5e6, wl, 1e-15)
	assert.Equal(t, before, Stats())

	requireEqualNodes(t, cd, m)
	requireEqualNodes(t, bound, m)
}

func TestCompareAttributes(t *testing.T) {
	path := tempFile(t)
	apod, err := NewApodization(Values{"focus": sampleLinearScan(t)})
	require.NoError(t, err)
	mustWrite(t, path, "a", apod, AllowMissingRequired())

	bare, err := NewApodization(nil)
	require.NoError(t, err)
	mustWrite(t, path, "b", bare, AllowMissingRequired())
	mustWrite(t, path, "b/scan", sampleLinearScan(t))

	a := mustRead(t, path, "a").(*Apodization)
	b := mustRead(t, path, "b").(*Apodization)
	fa, err := a.Focus()
	require.NoError(t, err)
	fb, err := b.Focus()
	require.NoError(t, err)
	require.NotNil(t, fb, "focus falls back to the older scan name")

	requireEqualNodes(t, fa, fb)
	requireEqualNodes(t, fa, fb, CompareAttributes())

	eq, err := Equal(fa, fb, CompareAttributes(), StrictNames())
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = Equal(a, b, CompareAttributes())
	require.NoError(t, err)
	assert.False(t, eq, "top level names differ")
}

func TestEqualDetectsDifferences(t *testing.T) {
	a := mustPoint(t, 1, 0, 0)
	b := mustPoint(t, 1, 0, 0)
	requireEqualNodes(t, a, b)

	require.NoError(t, b.Set("azimuth", 0.5))
	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = Equal(a, mustNode(t, "uff.pulse", nil))
	require.NoError(t, err)
	assert.False(t, eq, "different types")

	eq, err = Equal(nil, nil)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestWriteExistingLocation(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "point", mustPoint(t, 1, 0, 0))

	err := Write(path, "point", mustPoint(t, 2, 0, 0))
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1.0, mustFloat(t, mustGet(t, mustRead(t, path, "point").(Node), "distance")))

	mustWrite(t, path, "point", mustPoint(t, 2, 0, 0), Overwrite())
	assert.Equal(t, 2.0, mustFloat(t, mustGet(t, mustRead(t, path, "point").(Node), "distance")))
}

func TestWriteChunked(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "grid", grid(t), WithChunking())
	got, err := NewLazyArray(mustLocation(t, path, "grid")).Read(Span(0, 2), At(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6, 7, 16, 17, 18, 19}, got.Real())
}

func TestStringsAndCells(t *testing.T) {
	path := tempFile(t)
	p, err := NewPoint(Values{
		"distance": 1.0,
		"name":     "focal point µ",
		"author":   []string{"Ada", "Grace"},
	})
	require.NoError(t, err)
	mustWrite(t, path, "p", p)
	mustWrite(t, path, "note", "free text")

	got := mustRead(t, path, "p").(*Point)
	assert.Equal(t, "focal point µ", mustGet(t, got, "name"))
	assert.Equal(t, []string{"Ada", "Grace"}, mustGet(t, got, "author"))
	assert.Nil(t, mustGet(t, got, "info"))
	assert.Equal(t, "free text", mustRead(t, path, "note"))

	attrs, err := mustLocation(t, path, "p", "author").Attrs()
	require.NoError(t, err)
	class, err := attrs.Text("class")
	require.NoError(t, err)
	assert.Equal(t, "cell", class)
}

func TestWriteRejectsUnsupported(t *testing.T) {
	path := tempFile(t)
	cases := []struct {
		name     string
		location string
		value    interface{}
		contains []string
	}{
		{"mixed node list", "mixed", []Node{mustPoint(t, 1, 0, 0), mustNode(t, "uff.pulse", nil)}, []string{"field mixed", "Point", "Pulse"}},
		{"empty node list", "nodes", []Node{}, []string{"field nodes", "empty list"}},
		{"empty string list", "names", []string{}, []string{"field names", "empty list"}},
		{"struct value", "x", struct{}{}, []string{"field x", "struct {}"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Write(path, c.location, c.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedType)
			for _, want := range c.contains {
				assert.Contains(t, err.Error(), want)
			}
			root := mustLocation(t, path)
			assert.False(t, root.Has(c.location), "%s was written", c.location)
		})
	}
}

func TestGetReadsOnlyMissingMembersAsUnset(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "p", mustPoint(t, 1, 0, 0))

	s := &Schema{
		class:    "test.nested",
		typeName: "Nested",
		index:    map[string]int{"distance": 0, "absent": 1, "aliased": 2, "deep": 3},
		newNode:  func() Node { return &Point{} },
		fields: []Field{
			optional("distance", "", lazyScalarAt("distance")),
			optional("absent", "", lazyArrayAt("absent")),
			optional("aliased", "", firstOf([]string{"new_name", "old_name"}, lazyArrayAt)),
			optional("deep", "", func(loc Location) (interface{}, error) {
				child, err := member(loc, "distance")
				if err != nil {
					return nil, err
				}
				_, err = child.Descend("missing")
				return nil, err
			}),
		},
	}
	n := s.Bind(mustLocation(t, path, "p"))

	assert.Equal(t, 1.0, mustFloat(t, mustGet(t, n, "distance")))
	assert.Nil(t, mustGet(t, n, "absent"))
	assert.Nil(t, mustGet(t, n, "aliased"))

	_, err := n.Get("deep")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Nested.deep")
}

func TestSetRejectsUnknownAndComputed(t *testing.T) {
	p := mustPoint(t, 1, 0, 0)
	assert.ErrorIs(t, p.Set("bogus", 1), ErrUnknownField)
	assert.ErrorIs(t, p.Set("xyz", []float64{1, 2, 3}), ErrUnsupportedType)
	assert.ErrorIs(t, p.Set("distance", struct{}{}), ErrUnsupportedType)
	_, err := p.Get("bogus")
	assert.ErrorIs(t, err, ErrUnknownField)

	u, err := NewUff(Values{"anything": 1.0})
	require.NoError(t, err)
	assert.Contains(t, u.Fields(), "anything")
}

func TestFieldKinds(t *testing.T) {
	s, ok := Lookup("uff.curvilinear_array")
	require.True(t, ok)
	assert.NotContains(t, s.Fields(Required, Optional), "geometry", "geometry is derived")
	assert.Contains(t, s.Fields(Computed), "geometry")
	assert.Contains(t, s.Fields(Required), "origin")

	f, ok := s.Field("radius")
	require.True(t, ok)
	assert.Equal(t, Required, f.Kind)
}
