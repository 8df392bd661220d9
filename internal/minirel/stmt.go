package minirel

type StatementKind int

const (
	CreateTable StatementKind = iota + 1
	DropTable
	Insert
	Select
	Update
	Delete
)

func (s StatementKind) String() string {
	switch s {
	case CreateTable:
		return "CREATE TABLE"
	case DropTable:
		return "DROP TABLE"
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	case Update:
		return "UPDATE"
	case Delete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// ReadOnly statements take the shared catalog lock, everything else takes
// the exclusive one.
func (s StatementKind) ReadOnly() bool {
	return s == Select
}

type Column struct {
	Kind   ValueKind
	Unique bool
	Name   string
}

type Field struct {
	Name string
}

func fieldsFromColumns(columns ...Column) []Field {
	fields := make([]Field, 0, len(columns))
	for _, aColumn := range columns {
		fields = append(fields, Field{Name: aColumn.Name})
	}
	return fields
}

type Direction int

const (
	Asc Direction = iota + 1
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "ASC"
	case Desc:
		return "DESC"
	default:
		return "UNKNOWN"
	}
}

type OrderBy struct {
	Field     Field
	Direction Direction
}

// Statement is the structured, engine-facing form of a parsed SQL statement.
// The parser (or any other front end) produces it; the engine only consumes it.
type Statement struct {
	Kind      StatementKind
	TableName string
	// TableNames holds SELECT sources; one table, or two for an implicit
	// comma join. Write statements use TableName.
	TableNames []string
	Columns    []Column // used for CREATE TABLE
	// Fields holds SELECTed field names and INSERTed field names. An empty
	// Fields on INSERT means values follow declared column order, on SELECT
	// it means "*".
	Fields     []Field
	Inserts    [][]Value
	Updates    map[string]Value
	Conditions OneOrMore // used for WHERE
	OrderBy    []OrderBy
	Limit      *int64
	Offset     *int64
}

// IsSelectAll reports whether the statement projects all columns.
func (s Statement) IsSelectAll() bool {
	if len(s.Fields) == 0 {
		return true
	}
	return len(s.Fields) == 1 && s.Fields[0].Name == "*"
}

func (s Statement) sourceTables() []string {
	if len(s.TableNames) > 0 {
		return s.TableNames
	}
	if s.TableName != "" {
		return []string{s.TableName}
	}
	return nil
}
