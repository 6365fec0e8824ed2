package uff

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

const renderWidth = 80

// render formats a node as Type(field=value, ...), on one line if it fits
// and one field per line otherwise. Nested nodes are not expanded.
func render(n Node) string {
	o := n.base()
	var parts []string
	for _, name := range o.storedFields() {
		if c, ok := o.cells[name]; o.schema.dynamic && !(ok && c.Resolved()) && o.loc.Has(name) {
			if _, declared := o.schema.Field(name); !declared {
				parts = append(parts, name+"="+presentMember(o.loc.join(name)))
				continue
			}
		}
		v, err := o.Get(name)
		switch {
		case errors.Is(err, ErrNotSupported):
			parts = append(parts, name+"=NotImplemented")
		case err != nil:
			parts = append(parts, fmt.Sprintf("%s=<error: %v>", name, err))
		case v != nil:
			parts = append(parts, name+"="+present(v))
		}
	}
	return joinFields(o.schema.typeName, parts)
}

func joinFields(typeName string, parts []string) string {
	line := typeName + "(" + strings.Join(parts, ", ") + ")"
	if len(line) <= renderWidth {
		return line
	}
	return typeName + "(\n    " + strings.Join(parts, ",\n    ") + "\n)"
}

func present(v interface{}) string {
	switch x := v.(type) {
	case Node:
		return x.Schema().typeName + "(<...>)"
	case []Node:
		return presentList(len(x), func(i int) string { return present(x[i]) })
	case []string:
		return presentList(len(x), func(i int) string { return x[i] })
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func presentList(n int, item func(i int) string) string {
	switch n {
	case 0:
		return "[]"
	case 1:
		return "[" + item(0) + "]"
	}
	return fmt.Sprintf("<[%s... (%d items in total)]>", item(0), n)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          false,
	SortKeys:                true,
	MaxDepth:                6,
}

// Dump returns a detailed listing of a node for debugging: its class,
// location and every field value already resolved. Dump performs no I/O.
func Dump(n Node) string {
	o := n.base()
	resolved := make(map[string]interface{})
	for name, c := range o.cells {
		if v, ok := c.Peek(); ok {
			resolved[name] = dumpValue(v)
		}
	}
	return dumpConfig.Sdump(struct {
		Class    string
		Location string
		Fields   map[string]interface{}
	}{o.schema.class, o.loc.String(), resolved})
}

func dumpValue(v interface{}) interface{} {
	switch x := v.(type) {
	case Node:
		return x.Schema().typeName + "(" + x.Location().String() + ")"
	case []Node:
		out := make([]interface{}, len(x))
		for i, n := range x {
			out[i] = dumpValue(n)
		}
		return out
	case *LazyArray:
		return "LazyArray(" + x.Location().String() + ")"
	case *Array:
		if x.Size() <= 16 {
			if x.IsComplex() {
				return x.Complex128s()
			}
			return x.Real()
		}
		return x.String()
	}
	return v
}
