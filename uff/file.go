package uff

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/robert-malhotra/go-uff/hdf5"
)

// File is an open UFF container. It holds only the path; each access opens
// and closes the underlying file.
type File struct {
	root Location
}

// Open checks that path is a readable HDF5 file and returns it as a
// container.
func Open(path string) (*File, error) {
	root, err := NewLocation(path)
	if err != nil {
		return nil, err
	}
	return &File{root: root}, nil
}

// Path returns the file path.
func (f *File) Path() string { return f.root.File() }

// Location returns the location of the root group.
func (f *File) Location() Location { return f.root }

// Keys returns the names of the top-level members in sorted order.
func (f *File) Keys() ([]string, error) {
	keys, err := f.root.Children()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Read reads a top-level member, or a deeper one given a slash separated
// path, by its stored class.
func (f *File) Read(name string) (interface{}, error) {
	loc, err := f.root.Descend(name)
	if err != nil {
		return nil, err
	}
	return ReadNode(loc)
}

// Root returns the root group as a container node whose fields are the
// top-level members.
func (f *File) Root() *Uff {
	return uffSchema.Bind(f.root).(*Uff)
}

// Entry is a typed object found by Index.
type Entry struct {
	Path  string
	Class string
}

// Index lists every group and dataset in the file whose class attribute
// names a registered node type or enumeration, in path order. Items of
// lists are included.
func (f *File) Index() ([]Entry, error) {
	h, err := hdf5.Open(f.root.File())
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", f.root.File())
	}
	defer h.Close()
	atomic.AddInt64(&stats.opens, 1)

	var entries []Entry
	err = h.WalkAttrs(func(info hdf5.AttrInfo) error {
		if info.Name != "class" || info.Err != nil {
			return nil
		}
		class, ok := info.Value.(string)
		if !ok {
			return nil
		}
		_, isNode := registry.schemas[class]
		_, isEnum := registry.enums[class]
		if isNode || isEnum {
			entries = append(entries, Entry{Path: info.ObjectPath, Class: class})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "indexing %s", f.root.File())
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// String lists the top-level members: typed members as Type(<...>), others
// as <...>.
func (f *File) String() string {
	keys, err := f.Keys()
	if err != nil {
		return "Uff(<error: " + err.Error() + ">)"
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+presentMember(f.root.join(k)))
	}
	return joinFields("Uff", parts)
}

// presentMember renders a stored member without reading any payload.
func presentMember(loc Location) string {
	attrs, err := loc.Attrs()
	if err != nil || !attrs.Has("class") {
		return "<...>"
	}
	v, err := ReadNode(loc)
	if err != nil {
		if errors.Is(err, ErrUnknownClass) {
			return "<...>"
		}
		return "<error: " + strings.TrimSpace(err.Error()) + ">"
	}
	return present(v)
}
