package uff

import (
	"os"
	"strings"
	"unicode/utf16"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/robert-malhotra/go-uff/hdf5"
	"github.com/sirupsen/logrus"
)

// WriteOption configures Write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	overwrite    bool
	allowMissing bool
	chunked      bool
}

// Overwrite replaces whatever is stored at the destination. Without it,
// writing to an existing location fails with ErrAlreadyExists.
func Overwrite() WriteOption {
	return func(o *writeOptions) { o.overwrite = true }
}

// AllowMissingRequired writes nodes even if required fields are nil. Such
// fields are left out and read back as nil.
func AllowMissingRequired() WriteOption {
	return func(o *writeOptions) { o.allowMissing = true }
}

// WithChunking stores numeric datasets in a single chunk instead of
// contiguously.
func WithChunking() WriteOption {
	return func(o *writeOptions) { o.chunked = true }
}

// Write stores value in the file at path under location, a slash separated
// path inside the file. The file is created if it does not exist. Intermediate
// groups are created as needed.
//
// value may be a Node, a list of nodes, a string or list of strings, an
// enumeration, a numeric value (Array, LazyArray, Go number or slice of Go
// numbers) or nil, which writes nothing. A failed write is not rolled back;
// fields written before the failure remain in the file.
func Write(path, location string, value interface{}, opts ...WriteOption) (err error) {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}
	segments := hdf5.SplitPath(location)
	if len(segments) == 0 {
		return errors.Errorf("writing to %s: empty location", path)
	}

	f, err := openWritable(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s for writing", path)
	}
	defer func() {
		stats := f.AllocStats()
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
		logger.WithFields(logrus.Fields{
			"file":     path,
			"location": location,
			"written":  humanize.Bytes(stats.Bytes),
		}).Debug("write finished")
	}()

	parent := f.Root()
	for _, seg := range segments[:len(segments)-1] {
		if parent, err = ensureGroup(parent, seg); err != nil {
			return err
		}
	}
	w := &writer{path: path, opts: o}
	return w.write(parent, segments, value)
}

func openWritable(path string) (*hdf5.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return hdf5.Create(path)
	}
	return hdf5.OpenReadWrite(path)
}

func ensureGroup(parent *hdf5.Group, name string) (*hdf5.Group, error) {
	if !parent.Has(name) {
		return parent.CreateGroup(name)
	}
	g, err := parent.OpenGroup(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s/%s", strings.TrimSuffix(parent.Path(), "/"), name)
	}
	return g, nil
}

type writer struct {
	path string
	opts writeOptions
}

func (w *writer) log(segments []string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"file": w.path, "location": strings.Join(segments, "/")})
}

func (w *writer) write(parent *hdf5.Group, segments []string, value interface{}) error {
	name := segments[len(segments)-1]
	location := strings.Join(segments, "/")
	if parent.Has(name) {
		if !w.opts.overwrite {
			return errors.Wrapf(ErrAlreadyExists, "location '%s' already exists in the file '%s', use Overwrite to replace it", location, w.path)
		}
		if err := parent.Unlink(name); err != nil {
			return errors.Wrapf(err, "removing %s", location)
		}
		w.log(segments).Debug("removed existing location")
	}

	v, err := normalize(value)
	if err != nil {
		return errors.Wrapf(err, "field %s", name)
	}
	switch x := v.(type) {
	case nil:
		return nil
	case Node:
		return w.writeNode(parent, segments, x)
	case []Node:
		if len(x) == 0 {
			return errors.Wrapf(ErrUnsupportedType, "field %s is an empty list", name)
		}
		s := x[0].Schema()
		for _, n := range x[1:] {
			if n.Schema() != s {
				return errors.Wrapf(ErrUnsupportedType, "field %s mixes %s and %s", name, s.typeName, n.Schema().typeName)
			}
		}
		return w.writeList(parent, segments, s.class, len(x), func(i int) interface{} { return x[i] })
	case string:
		return w.writeString(parent, segments, x)
	case []string:
		if len(x) == 0 {
			return errors.Wrapf(ErrUnsupportedType, "field %s is an empty list", name)
		}
		return w.writeList(parent, segments, "cell", len(x), func(i int) interface{} { return x[i] })
	case Enum:
		_, err := parent.CreateDataset(name, []int64{int64(x.Int())},
			hdf5.WithShape(1, 1),
			hdf5.WithAttribute("class", x.Class()),
			hdf5.WithAttribute("name", name),
			hdf5.WithAttribute("complex", []int64{0}),
			hdf5.WithAttribute("imaginary", []int64{0}))
		return errors.Wrapf(err, "writing %s", location)
	case *Array:
		return w.writeNumeric(parent, segments, x)
	case *LazyArray:
		a, err := x.Load()
		if err != nil {
			return err
		}
		return w.writeNumeric(parent, segments, a)
	}
	return errors.Wrapf(ErrUnsupportedType, "field %s has type %T", name, v)
}

func (w *writer) writeNode(parent *hdf5.Group, segments []string, n Node) error {
	name := segments[len(segments)-1]
	g, err := parent.CreateGroup(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", strings.Join(segments, "/"))
	}
	attrs, err := n.Attrs()
	if err != nil {
		return err
	}
	for _, k := range attrs.Names() {
		if err := g.SetAttr(k, attrs[k]); err != nil {
			w.log(segments).WithError(err).Debugf("skipping attribute %q", k)
		}
	}
	stored := name
	if s, err := attrs.Text("name"); err == nil {
		stored = s
	}
	for _, a := range []struct {
		name  string
		value interface{}
	}{
		{"class", n.Class()},
		{"name", stored},
		{"array", []int64{0}},
		{"size", []int64{1, 1}},
	} {
		if err := g.SetAttr(a.name, a.value); err != nil {
			return errors.Wrapf(err, "stamping %s", strings.Join(segments, "/"))
		}
	}
	w.log(segments).WithField("class", n.Class()).Debug("write node")

	o := n.base()
	for _, field := range o.storedFields() {
		v, err := o.Get(field)
		if err != nil {
			return err
		}
		if v == nil {
			f, _ := o.field(field)
			if f.Kind == Required && !w.opts.allowMissing {
				return errors.Wrapf(ErrMissingRequiredField,
					"the required field '%s' of %s is nil, set it or pass AllowMissingRequired", field, o.schema.typeName)
			}
			continue
		}
		if o.schema.prepare != nil {
			if v, err = o.schema.prepare(field, v); err != nil {
				return errors.Wrapf(err, "preparing %s.%s", o.schema.typeName, field)
			}
		}
		child := append(append([]string(nil), segments...), field)
		if err := w.write(g, child, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeList(parent *hdf5.Group, segments []string, class string, n int, item func(i int) interface{}) error {
	name := segments[len(segments)-1]
	g, err := parent.CreateGroup(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", strings.Join(segments, "/"))
	}
	for _, a := range []struct {
		name  string
		value interface{}
	}{
		{"class", class},
		{"name", name},
		{"array", []int64{1}},
		{"size", []int64{1, int64(n)}},
	} {
		if err := g.SetAttr(a.name, a.value); err != nil {
			return errors.Wrapf(err, "stamping %s", strings.Join(segments, "/"))
		}
	}
	for i := 0; i < n; i++ {
		child := append(append([]string(nil), segments...), itemName(name, i))
		if err := w.write(g, child, item(i)); err != nil {
			return err
		}
	}
	return nil
}

// writeString stores UTF-16 code units as an (N,1) uint16 dataset.
func (w *writer) writeString(parent *hdf5.Group, segments []string, s string) error {
	name := segments[len(segments)-1]
	units := utf16.Encode([]rune(s))
	_, err := parent.CreateDataset(name, units,
		hdf5.WithShape(uint64(len(units)), 1),
		hdf5.WithAttribute("class", "char"),
		hdf5.WithAttribute("name", name))
	return errors.Wrapf(err, "writing %s", strings.Join(segments, "/"))
}

func (w *writer) writeNumeric(parent *hdf5.Group, segments []string, a *Array) error {
	name := segments[len(segments)-1]
	location := strings.Join(segments, "/")
	shape := a.Shape()
	if len(shape) == 0 {
		shape = []int{1, 1}
	}
	dims := make([]uint64, len(shape))
	for i, d := range shape {
		dims[i] = uint64(d)
	}
	re, im := a.values()
	w.log(segments).WithFields(logrus.Fields{
		"shape": shape,
		"dtype": a.DType(),
		"size":  humanize.Bytes(uint64(a.Size() * a.DType().ItemSize())),
	}).Debug("write array")

	if im == nil {
		opts := append(w.layout(dims),
			hdf5.WithAttribute("class", "single"),
			hdf5.WithAttribute("name", name),
			hdf5.WithAttribute("complex", []int64{0}),
			hdf5.WithAttribute("imaginary", []int64{0}))
		_, err := parent.CreateDataset(name, re, opts...)
		return errors.Wrapf(err, "writing %s", location)
	}

	g, err := parent.CreateGroup(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", location)
	}
	for _, attr := range []struct {
		name  string
		value interface{}
	}{
		{"class", "single"},
		{"name", name},
		{"complex", []int64{1}},
		{"imaginary", []int64{0}},
	} {
		if err := g.SetAttr(attr.name, attr.value); err != nil {
			return errors.Wrapf(err, "stamping %s", location)
		}
	}
	for i, part := range []interface{}{re, im} {
		opts := append(w.layout(dims),
			hdf5.WithAttribute("imaginary", []int64{int64(i)}),
			hdf5.WithAttribute("class", "single"),
			hdf5.WithAttribute("name", name))
		child := [...]string{"real", "imag"}[i]
		if _, err := g.CreateDataset(child, part, opts...); err != nil {
			return errors.Wrapf(err, "writing %s/%s", location, child)
		}
	}
	return nil
}

// layout returns the dataset options for the storage layout.
func (w *writer) layout(dims []uint64) []hdf5.DatasetOption {
	opts := []hdf5.DatasetOption{hdf5.WithShape(dims...)}
	if !w.opts.chunked {
		return opts
	}
	for _, d := range dims {
		if d == 0 {
			return opts
		}
	}
	return append(opts, hdf5.WithChunks(dims...))
}
