package uff

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

type enumEntry struct {
	class string
	parse func(v int) (Enum, error)
}

// registry maps class names to node schemas and enumerations. It is filled
// in init and never changes afterwards.
var registry = struct {
	schemas map[string]*Schema
	enums   map[string]enumEntry
}{
	schemas: make(map[string]*Schema),
	enums:   make(map[string]enumEntry),
}

// classNames is the complete list of registered classes.
var classNames = []string{
	"uff",
	"uff.apodization",
	"uff.beamformed_data",
	"uff.channel_data",
	"uff.curvilinear_array",
	"uff.curvilinear_matrix_array",
	"uff.linear_3d_scan",
	"uff.linear_array",
	"uff.linear_scan",
	"uff.linear_scan_rotated",
	"uff.matrix_array",
	"uff.phantom",
	"uff.point",
	"uff.probe",
	"uff.pulse",
	"uff.scan",
	"uff.sector_scan",
	"uff.wave",
	"uff.wavefront",
	"uff.window",
}

func init() {
	registerEnum(enumEntry{class: windowClass, parse: func(v int) (Enum, error) { return ParseWindow(v) }})
	registerEnum(enumEntry{class: wavefrontClass, parse: func(v int) (Enum, error) { return ParseWavefront(v) }})
	types := make(map[string]string)
	for _, s := range schemas {
		if _, dup := registry.schemas[s.class]; dup {
			panic(fmt.Sprintf("uff: class %q registered twice", s.class))
		}
		if other, dup := types[s.typeName]; dup {
			panic(fmt.Sprintf("uff: type %s registered as %q and %q", s.typeName, other, s.class))
		}
		if got := s.newNode(); fmt.Sprintf("%T", got) != "*uff."+s.typeName {
			panic(fmt.Sprintf("uff: class %q constructs %T, expected *uff.%s", s.class, got, s.typeName))
		}
		types[s.typeName] = s.class
		registry.schemas[s.class] = s
	}
	if err := checkRegistry(); err != nil {
		panic("uff: " + err.Error())
	}
}

func registerEnum(e enumEntry) {
	if _, dup := registry.enums[e.class]; dup {
		panic(fmt.Sprintf("uff: enumeration %q registered twice", e.class))
	}
	registry.enums[e.class] = e
}

// checkRegistry verifies that every listed class is registered exactly once
// and that nothing is registered that is not listed.
func checkRegistry() error {
	listed := make(map[string]bool, len(classNames))
	for _, name := range classNames {
		listed[name] = true
		_, isSchema := registry.schemas[name]
		_, isEnum := registry.enums[name]
		if isSchema == isEnum {
			return errors.Errorf("class %q must be exactly one of node or enumeration", name)
		}
	}
	for name := range registry.schemas {
		if !listed[name] {
			return errors.Errorf("node class %q is not listed", name)
		}
	}
	for name := range registry.enums {
		if !listed[name] {
			return errors.Errorf("enumeration %q is not listed", name)
		}
	}
	return nil
}

// Lookup returns the schema registered for a node class.
func Lookup(class string) (*Schema, bool) {
	s, ok := registry.schemas[class]
	return s, ok
}

func lookupSchema(class string) (*Schema, error) {
	s, ok := registry.schemas[class]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "%q", class)
	}
	return s, nil
}

// Classes returns every registered class name, node types and enumerations,
// in sorted order.
func Classes() []string {
	out := append([]string(nil), classNames...)
	sort.Strings(out)
	return out
}

// classOf returns the registered class for a value that can be stored as a
// typed node or enumeration.
func classOf(v interface{}) (string, bool) {
	switch x := v.(type) {
	case Node:
		return x.Class(), true
	case Enum:
		return x.Class(), true
	}
	return "", false
}
