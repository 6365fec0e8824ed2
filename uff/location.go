package uff

import (
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/robert-malhotra/go-uff/hdf5"
	"github.com/sirupsen/logrus"
)

// Location addresses a group or dataset inside a file by its file path and
// the sequence of member names leading to it. A Location holds no open
// handle; the file is opened for the duration of each access and closed
// again before the access returns.
//
// The zero Location is unbound: it exists nowhere and every access to it
// fails with ErrNotFound.
type Location struct {
	file string
	path []string
}

// NewLocation returns the location of segments inside the file at path. Each
// segment may itself contain '/' separators. The location must exist.
func NewLocation(path string, segments ...string) (Location, error) {
	root := Location{file: path}
	if err := root.Open(func(*Handle) error { return nil }); err != nil {
		return Location{}, err
	}
	return root.Descend(segments...)
}

// Descend returns the location of a descendant. It fails with ErrNotFound if
// the descendant does not exist.
func (l Location) Descend(segments ...string) (Location, error) {
	next := l.join(segments...)
	if len(next.path) == len(l.path) {
		return l, nil
	}
	if !next.Exists() {
		return Location{}, errors.Wrapf(ErrNotFound, "%s", next)
	}
	return next, nil
}

// join extends the path without checking that the result exists.
func (l Location) join(segments ...string) Location {
	next := Location{file: l.file, path: make([]string, len(l.path), len(l.path)+len(segments))}
	copy(next.path, l.path)
	for _, s := range segments {
		next.path = append(next.path, hdf5.SplitPath(s)...)
	}
	return next
}

// Exists reports whether the location can be opened.
func (l Location) Exists() bool {
	return l.Open(func(*Handle) error { return nil }) == nil
}

// Has reports whether the location is a group with a direct member called
// name.
func (l Location) Has(name string) bool {
	if l.IsZero() {
		return false
	}
	found := false
	err := l.Open(func(h *Handle) error {
		if g, ok := h.obj.(*hdf5.Group); ok {
			found = g.Has(name)
		}
		return nil
	})
	return err == nil && found
}

// Children returns the member names of a group location. Datasets have no
// children.
func (l Location) Children() ([]string, error) {
	var keys []string
	err := l.Open(func(h *Handle) error {
		var err error
		keys, err = h.Keys()
		return err
	})
	return keys, err
}

// Attrs reads all attributes of the location.
func (l Location) Attrs() (Attrs, error) {
	var attrs Attrs
	err := l.Open(func(h *Handle) error {
		var err error
		attrs, err = h.Attrs()
		return err
	})
	return attrs, err
}

// Open opens the file, resolves the location and calls fn with a handle to
// it. The file is closed when fn returns, even if fn panics. The handle must
// not be retained.
func (l Location) Open(fn func(h *Handle) error) (err error) {
	if l.IsZero() {
		return errors.Wrap(ErrNotFound, "unbound location")
	}
	f, err := hdf5.Open(l.file)
	if err != nil {
		return errors.Wrapf(err, "opening %s", l.file)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", l.file)
		}
	}()
	atomic.AddInt64(&stats.opens, 1)

	var obj hdf5.Object = f.Root()
	if len(l.path) > 0 {
		obj, err = f.Root().Object(strings.Join(l.path, "/"))
		if err != nil {
			if errors.Is(err, hdf5.ErrNotFound) || errors.Is(err, hdf5.ErrNotGroup) {
				return errors.Wrapf(ErrNotFound, "%s", l)
			}
			return errors.Wrapf(err, "resolving %s", l)
		}
	}
	logger.WithFields(logrus.Fields{"file": l.file, "path": l.Path()}).Debug("opened location")
	return fn(&Handle{loc: l, obj: obj})
}

// File returns the path of the file.
func (l Location) File() string { return l.file }

// Path returns the slash separated path inside the file.
func (l Location) Path() string { return "/" + strings.Join(l.path, "/") }

// Segments returns a copy of the member names leading to the location.
func (l Location) Segments() []string {
	return append([]string(nil), l.path...)
}

// Name returns the last path segment, or "" for the root.
func (l Location) Name() string {
	if len(l.path) == 0 {
		return ""
	}
	return l.path[len(l.path)-1]
}

// IsZero reports whether the location is unbound.
func (l Location) IsZero() bool { return l.file == "" }

// Equal reports whether both locations address the same object.
func (l Location) Equal(o Location) bool {
	if l.file != o.file || len(l.path) != len(o.path) {
		return false
	}
	for i := range l.path {
		if l.path[i] != o.path[i] {
			return false
		}
	}
	return true
}

func (l Location) String() string {
	if l.IsZero() {
		return "<unbound>"
	}
	return l.file + ":" + l.Path()
}

// Handle is an open group or dataset. It is only valid inside the function
// passed to Location.Open.
type Handle struct {
	loc Location
	obj hdf5.Object
}

// Location returns the location the handle was opened from.
func (h *Handle) Location() Location { return h.loc }

// Group returns the handle as a group.
func (h *Handle) Group() (*hdf5.Group, bool) {
	g, ok := h.obj.(*hdf5.Group)
	return g, ok
}

// Dataset returns the handle as a dataset.
func (h *Handle) Dataset() (*hdf5.Dataset, bool) {
	d, ok := h.obj.(*hdf5.Dataset)
	return d, ok
}

// Keys returns the member names of a group, or nil for a dataset.
func (h *Handle) Keys() ([]string, error) {
	g, ok := h.Group()
	if !ok {
		return nil, nil
	}
	keys, err := g.Members()
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", h.loc)
	}
	return keys, nil
}

// Attrs decodes all attributes of the object.
func (h *Handle) Attrs() (Attrs, error) {
	names := h.obj.Attrs()
	attrs := make(Attrs, len(names))
	for _, name := range names {
		a := h.obj.Attr(name)
		if a == nil {
			continue
		}
		v, err := a.Value()
		if err != nil {
			return nil, errors.Wrapf(err, "reading attribute %q of %s", name, h.loc)
		}
		attrs[name] = v
	}
	return attrs, nil
}

// Child opens a direct member of a group handle.
func (h *Handle) Child(name string) (*Handle, error) {
	g, ok := h.Group()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s is not a group", h.loc)
	}
	loc := h.loc.join(name)
	obj, err := g.Object(name)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "%s", loc)
		}
		return nil, errors.Wrapf(err, "resolving %s", loc)
	}
	return &Handle{loc: loc, obj: obj}, nil
}

// IOStats counts file accesses made by the package.
type IOStats struct {
	Opens        int64
	PayloadReads int64
	BytesRead    int64
}

var stats struct {
	opens, payloadReads, bytesRead int64
}

// Stats returns the number of file opens and dataset payload reads performed
// since the program started.
func Stats() IOStats {
	return IOStats{
		Opens:        atomic.LoadInt64(&stats.opens),
		PayloadReads: atomic.LoadInt64(&stats.payloadReads),
		BytesRead:    atomic.LoadInt64(&stats.bytesRead),
	}
}
