package uff

// Descriptive fields shared by every node type.
var commonFields = []Field{
	optional("name", "name of the object", stringsAt("name")),
	optional("reference", "publication or source the object comes from", stringsAt("reference")),
	optional("author", "authors of the object", stringsAt("author")),
	optional("version", "version of the format that wrote the object", stringsAt("version")),
	optional("info", "free text description", stringsAt("info")),
}

// Uff is the root of a container. Its fields are the members stored at its
// location together with any set on it.
type Uff struct{ object }

var uffSchema = func() *Schema {
	s := defineSchema("uff", "Uff", nil, func() Node { return &Uff{} }, commonFields...)
	s.dynamic = true
	return s
}()

// NewUff returns an unbound root node holding values.
func NewUff(values Values) (*Uff, error) { return build[*Uff](uffSchema, values) }

