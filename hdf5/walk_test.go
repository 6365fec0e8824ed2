package hdf5

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAttrPath(t *testing.T) {
	tests := []struct {
		path       string
		wantObject string
		wantAttr   string
		wantErr    bool
	}{
		{"/@root_attr", "/", "root_attr", false},
		{"/data@units", "/data", "units", false},
		{"/group/dataset@attr", "/group/dataset", "attr", false},
		{"/a/b/c@d", "/a/b/c", "d", false},
		{"data@attr", "/data", "attr", false}, // relative path normalized
		{"", "", "", true},                    // empty
		{"/path/no/at", "", "", true},         // missing @
		{"/path@", "", "", true},              // empty attr name
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			obj, attr, err := ParseAttrPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.path)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for %q: %v", tt.path, err)
				return
			}
			if obj != tt.wantObject {
				t.Errorf("object path: got %q, want %q", obj, tt.wantObject)
			}
			if attr != tt.wantAttr {
				t.Errorf("attr name: got %q, want %q", attr, tt.wantAttr)
			}
		})
	}
}

func TestJoinAttrPath(t *testing.T) {
	tests := []struct {
		objectPath string
		attrName   string
		want       string
	}{
		{"/", "attr", "/@attr"},
		{"/data", "units", "/data@units"},
		{"/group/dataset", "calibration", "/group/dataset@calibration"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := JoinAttrPath(tt.objectPath, tt.attrName)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// writeNodeLayout writes the structure of a small UFF file: typed groups
// stamped with class attributes, a list of items and numeric leaves.
func writeNodeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.uff")
	f, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cd, err := f.Root().CreateGroup("channel_data")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	stamp := func(g *Group, class string, size int64) {
		t.Helper()
		for name, value := range map[string]interface{}{
			"class": class,
			"size":  []int64{1, size},
		} {
			if err := g.SetAttr(name, value); err != nil {
				t.Fatalf("SetAttr(%s) failed: %v", name, err)
			}
		}
	}
	stamp(cd, "uff.channel_data", 1)
	if _, err := cd.CreateDataset("sampling_frequency", []float64{20e6},
		WithShape(1, 1),
		WithAttribute("class", "single"),
		WithAttribute("complex", []int64{0})); err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}

	seq, err := cd.CreateGroup("sequence")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	stamp(seq, "uff.wave", 2)
	for _, name := range []string{"sequence_0001", "sequence_0002"} {
		item, err := seq.CreateGroup(name)
		if err != nil {
			t.Fatalf("CreateGroup(%s) failed: %v", name, err)
		}
		stamp(item, "uff.wave", 1)
	}

	point, err := f.Root().CreateGroup("point")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	stamp(point, "uff.point", 1)
	if _, err := point.CreateDataset("distance", []float64{3.5},
		WithShape(1, 1),
		WithAttribute("class", "single"),
		WithAttribute("units", "m"),
		WithAttribute("scale", 0.5)); err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func openNodeLayout(t *testing.T) *File {
	t.Helper()
	f, err := Open(writeNodeLayout(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestAttributeValue(t *testing.T) {
	f := openNodeLayout(t)

	ds, err := f.OpenDataset("point/distance")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}

	attr := ds.Attr("scale")
	if attr == nil {
		t.Fatal("scale not found")
	}
	val, err := attr.Value()
	if err != nil {
		t.Fatalf("Value() failed for scale: %v", err)
	}
	if v, ok := val.(float64); !ok || v != 0.5 {
		t.Errorf("scale: got %v (%T), want 0.5", val, val)
	}

	val, err = ds.Attr("units").Value()
	if err != nil {
		t.Fatalf("Value() failed for units: %v", err)
	}
	if v, ok := val.(string); !ok || v != "m" {
		t.Errorf("units: got %v (%T), want \"m\"", val, val)
	}

	g, err := f.OpenGroup("channel_data/sequence")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	val, err = g.Attr("size").Value()
	if err != nil {
		t.Fatalf("Value() failed for size: %v", err)
	}
	if v, ok := val.([]int64); !ok || len(v) != 2 || v[1] != 2 {
		t.Errorf("size: got %v (%T), want [1 2]", val, val)
	}
}

func TestGetAttr(t *testing.T) {
	f := openNodeLayout(t)

	attr, err := f.GetAttr("/point/distance@scale")
	if err != nil {
		t.Fatalf("GetAttr failed: %v", err)
	}
	if attr == nil {
		t.Fatal("GetAttr returned nil")
	}
	val, err := attr.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v, ok := val.(float64); !ok || v != 0.5 {
		t.Errorf("got %v (%T), want 0.5", val, val)
	}
}

func TestReadAttr(t *testing.T) {
	f := openNodeLayout(t)

	val, err := f.ReadAttr("/channel_data@class")
	if err != nil {
		t.Fatalf("ReadAttr failed: %v", err)
	}
	if v, ok := val.(string); !ok || v != "uff.channel_data" {
		t.Errorf("got %v (%T), want uff.channel_data", val, val)
	}
}

func TestGetAttrNotFound(t *testing.T) {
	f := openNodeLayout(t)

	if _, err := f.GetAttr("/point/distance@nonexistent"); err == nil {
		t.Error("expected error for non-existent attribute")
	}
	if _, err := f.GetAttr("/nonexistent@class"); err == nil {
		t.Error("expected error for non-existent object")
	}
}

func TestWalkAttrs(t *testing.T) {
	f := openNodeLayout(t)

	classes := make(map[string]interface{})
	err := f.WalkAttrs(func(info AttrInfo) error {
		if info.Name == "class" {
			classes[info.ObjectPath] = info.Value
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkAttrs failed: %v", err)
	}

	want := map[string]string{
		"/channel_data":                        "uff.channel_data",
		"/channel_data/sampling_frequency":     "single",
		"/channel_data/sequence":               "uff.wave",
		"/channel_data/sequence/sequence_0002": "uff.wave",
		"/point":                               "uff.point",
		"/point/distance":                      "single",
	}
	for path, class := range want {
		if got := classes[path]; got != class {
			t.Errorf("%s@class: got %v, want %q", path, got, class)
		}
	}
	if len(classes) != 7 {
		t.Errorf("expected 7 class attributes, got %d: %v", len(classes), classes)
	}
}

func TestWalkAttrsStopEarly(t *testing.T) {
	f := openNodeLayout(t)

	count := 0
	err := f.WalkAttrs(func(info AttrInfo) error {
		count++
		return ErrStopWalk
	})
	if !IsStopWalk(err) {
		t.Errorf("expected ErrStopWalk, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected walk to stop after 1 attribute, got %d", count)
	}
}

func TestAttrInfoFields(t *testing.T) {
	f := openNodeLayout(t)

	err := f.WalkAttrs(func(info AttrInfo) error {
		if info.Path == "" {
			t.Error("Path is empty")
		}
		if info.ObjectPath == "" {
			t.Error("ObjectPath is empty")
		}
		wantType := "group"
		if strings.HasSuffix(info.ObjectPath, "distance") || strings.HasSuffix(info.ObjectPath, "frequency") {
			wantType = "dataset"
		}
		if info.ObjectType != wantType {
			t.Errorf("%s: ObjectType %q, want %q", info.Path, info.ObjectType, wantType)
		}
		if info.Attr == nil {
			t.Error("Attr is nil")
		}
		if info.Err != nil {
			t.Errorf("%s: %v", info.Path, info.Err)
		}
		if expected := JoinAttrPath(info.ObjectPath, info.Name); info.Path != expected {
			t.Errorf("Path %q doesn't match ObjectPath@Name (%q)", info.Path, expected)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkAttrs failed: %v", err)
	}
}

func TestWalk(t *testing.T) {
	f := openNodeLayout(t)

	var groups, datasets []string
	err := Walk(f.Root(), func(path string, obj interface{}, err error) error {
		if err != nil {
			return err
		}
		switch o := obj.(type) {
		case *Group:
			groups = append(groups, path)
		case *Dataset:
			datasets = append(datasets, path)
			if shape := o.Shape(); len(shape) != 2 || shape[0] != 1 || shape[1] != 1 {
				t.Errorf("%s: shape %v, want [1 1]", path, shape)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(groups) != 6 {
		t.Errorf("expected 6 groups including the root, got %v", groups)
	}
	if len(datasets) != 2 {
		t.Errorf("expected 2 datasets, got %v", datasets)
	}
	if len(groups) > 0 && groups[0] != "/" {
		t.Errorf("walk starts at %q, want /", groups[0])
	}
}
