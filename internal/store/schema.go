package store

// ColumnKind is one of the first-class column encodings from the schema
// build contract.
type ColumnKind int

const (
	Hex ColumnKind = iota
	Bytes
	BigInt
	Integer
	SmallInt
	Int8
	Boolean
	Text
	Varchar
	Char
	Numeric
	Real
	DoublePrecision
	JSON
	Array
	Enum
	Point
	Line
	Timestamp
)

func (k ColumnKind) String() string {
	switch k {
	case Hex:
		return "hex"
	case Bytes:
		return "bytes"
	case BigInt:
		return "bigint"
	case Integer:
		return "integer"
	case SmallInt:
		return "smallint"
	case Int8:
		return "int8"
	case Boolean:
		return "boolean"
	case Text:
		return "text"
	case Varchar:
		return "varchar"
	case Char:
		return "char"
	case Numeric:
		return "numeric"
	case Real:
		return "real"
	case DoublePrecision:
		return "doublePrecision"
	case JSON:
		return "json"
	case Array:
		return "array"
	case Enum:
		return "enum"
	case Point:
		return "point"
	case Line:
		return "line"
	case Timestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// ColumnSpec describes one column of a TableSpec. Use TableSpec.Column to
// add one, then chain the modifiers below.
type ColumnSpec struct {
	Name         string
	Kind         ColumnKind
	IsNotNull    bool
	IsPrimaryKey bool
	DefaultValue any
	DefaultFunc  func() any
	OnUpdateFunc func(current any) any

	// ArrayElem is the element kind when Kind == Array.
	ArrayElem ColumnKind
	// EnumValues is the closed value set when Kind == Enum.
	EnumValues []string
}

// NotNull marks the column as required.
func (c *ColumnSpec) NotNull() *ColumnSpec {
	c.IsNotNull = true
	return c
}

// PrimaryKey marks the column as (part of) the table's primary key.
func (c *ColumnSpec) PrimaryKey() *ColumnSpec {
	c.IsPrimaryKey = true
	c.IsNotNull = true
	return c
}

// Default fills the column with v when an insert omits it.
func (c *ColumnSpec) Default(v any) *ColumnSpec {
	c.DefaultValue = v
	return c
}

// DefaultFn calls fn at insert time for rows that omit this column.
func (c *ColumnSpec) DefaultFn(fn func() any) *ColumnSpec {
	c.DefaultFunc = fn
	return c
}

// OnUpdateFn calls fn with the row's current value at update time, unless
// the update explicitly sets this column.
func (c *ColumnSpec) OnUpdateFn(fn func(current any) any) *ColumnSpec {
	c.OnUpdateFunc = fn
	return c
}

// OfElements sets the element kind for an Array column.
func (c *ColumnSpec) OfElements(elem ColumnKind) *ColumnSpec {
	c.ArrayElem = elem
	return c
}

// OfValues sets the closed value set for an Enum column.
func (c *ColumnSpec) OfValues(values ...string) *ColumnSpec {
	c.EnumValues = values
	return c
}

// TableSpec describes one onchain table: its name and ordered columns.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
}

// NewTable starts a builder for a table named name.
func NewTable(name string) *TableSpec {
	return &TableSpec{Name: name}
}

// Column appends a column of the given kind and returns it for chaining
// modifiers (NotNull, PrimaryKey, Default, ...).
func (t *TableSpec) Column(name string, kind ColumnKind) *ColumnSpec {
	t.Columns = append(t.Columns, ColumnSpec{Name: name, Kind: kind})
	return &t.Columns[len(t.Columns)-1]
}

// ColumnByName looks up a column definition by name.
func (t *TableSpec) ColumnByName(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// PrimaryKeyColumns returns the names of every column marked PrimaryKey, in
// declaration order.
func (t *TableSpec) PrimaryKeyColumns() []string {
	var keys []string
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	return keys
}
