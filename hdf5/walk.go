package hdf5

import "errors"

// WalkFunc is called by Walk for every object. obj is a *Group or a
// *Dataset. When a member opens as neither, obj is nil and err says why.
// Returning a non-nil error stops the walk.
type WalkFunc func(path string, obj interface{}, err error) error

// Walk visits g and every object below it, depth first and in member order.
// Groups are visited before their members.
func Walk(g *Group, fn WalkFunc) error {
	return visit(g, func(p string, obj Object, err error) error {
		if obj == nil {
			return fn(p, nil, err)
		}
		return fn(p, obj, nil)
	})
}

func visit(g *Group, fn func(path string, obj Object, err error) error) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}
	members, err := g.Members()
	if err != nil {
		return err
	}
	for _, name := range members {
		p := childPath(g.Path(), name)
		if child, err := g.OpenGroup(name); err == nil {
			if err := visit(child, fn); err != nil {
				return err
			}
			continue
		}
		ds, err := g.OpenDataset(name)
		if err != nil {
			if err := fn(p, nil, err); err != nil {
				return err
			}
			continue
		}
		if err := fn(p, ds, nil); err != nil {
			return err
		}
	}
	return nil
}

// AttrInfo describes one attribute met by WalkAttrs.
type AttrInfo struct {
	Path       string // object@name
	ObjectPath string
	ObjectType string // "group" or "dataset"
	Name       string
	Attr       *Attribute

	// Value holds the decoded value, or nil when decoding failed with Err.
	Value interface{}
	Err   error
}

// WalkAttrsFunc is called by WalkAttrs for every attribute. Returning a
// non-nil error stops the walk.
type WalkAttrsFunc func(info AttrInfo) error

// WalkAttrs visits every attribute of every group and dataset in the file,
// in the order Walk visits their owners. Objects that cannot be opened are
// skipped. A class index of a UFF file is built this way:
//
//	f.WalkAttrs(func(info hdf5.AttrInfo) error {
//	    if info.Name == "class" {
//	        fmt.Println(info.ObjectPath, info.Value)
//	    }
//	    return nil
//	})
func (f *File) WalkAttrs(fn WalkAttrsFunc) error {
	if f.closed {
		return ErrClosed
	}
	return visit(f.root, func(p string, obj Object, err error) error {
		if obj == nil {
			return nil
		}
		kind := "dataset"
		if _, ok := obj.(*Group); ok {
			kind = "group"
		}
		for _, name := range obj.Attrs() {
			info := AttrInfo{
				Path:       JoinAttrPath(p, name),
				ObjectPath: p,
				ObjectType: kind,
				Name:       name,
				Attr:       obj.Attr(name),
			}
			if info.Attr != nil {
				info.Value, info.Err = info.Attr.Value()
			}
			if err := fn(info); err != nil {
				return err
			}
		}
		return nil
	})
}

// ErrStopWalk may be returned by a walk callback to end the walk early.
// The walk then returns it unchanged.
var ErrStopWalk = errors.New("walk stopped")

// IsStopWalk reports whether err is, or wraps, ErrStopWalk.
func IsStopWalk(err error) bool {
	return errors.Is(err, ErrStopWalk)
}
