package minirel

import (
	"fmt"
)

type Operator int

const (
	// Eq -> "="
	Eq Operator = iota + 1
	// Ne -> "<>"
	Ne
	// Gt -> ">"
	Gt
	// Lt -> "<"
	Lt
	// Gte -> ">="
	Gte
	// Lte -> "<="
	Lte
)

func (o Operator) String() string {
	switch o {
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Gte:
		return ">="
	case Lte:
		return "<="
	default:
		return "Unknown"
	}
}

type OperandType int

const (
	OperandField OperandType = iota + 1
	OperandLiteral
)

// Operand is either a column reference or a literal value.
type Operand struct {
	Type    OperandType
	Field   Field
	Literal Value
}

func (o Operand) IsField() bool {
	return o.Type == OperandField
}

// resolve evaluates the operand against a row.
func (o Operand) resolve(aRow Row) (Value, error) {
	if o.Type != OperandField {
		return o.Literal, nil
	}
	aValue, ok := aRow.GetValue(o.Field.Name)
	if !ok {
		return Value{}, UnknownColumnError{Column: o.Field.Name}
	}
	return aValue, nil
}

type Condition struct {
	// Operand1 is the left hand side operand
	Operand1 Operand
	// Operator is e.g. "=", ">"
	Operator Operator
	// Operand2 is the right hand side operand
	Operand2 Operand
}

func (c Condition) Operands() []Operand {
	return []Operand{c.Operand1, c.Operand2}
}

// Check evaluates the condition against a row.
func (c Condition) Check(aRow Row) (bool, error) {
	value1, err := c.Operand1.resolve(aRow)
	if err != nil {
		return false, err
	}
	value2, err := c.Operand2.resolve(aRow)
	if err != nil {
		return false, err
	}
	cmp, err := value1.Compare(value2)
	if err != nil {
		return false, err
	}
	switch c.Operator {
	case Eq:
		return cmp == 0, nil
	case Ne:
		return cmp != 0, nil
	case Gt:
		return cmp > 0, nil
	case Lt:
		return cmp < 0, nil
	case Gte:
		return cmp >= 0, nil
	case Lte:
		return cmp <= 0, nil
	}
	return false, fmt.Errorf("unknown operator '%s'", c.Operator)
}

type Conditions []Condition

// OneOrMore contains a slice of multiple groups of singular condition, each
// group joined by OR boolean operator. Every singular condition in each group
// is joined by AND with other conditions in the same slice.
type OneOrMore []Conditions

func NewOneOrMore(conditionGroups ...Conditions) OneOrMore {
	return OneOrMore(conditionGroups)
}

func (o OneOrMore) LastCondition() (Condition, bool) {
	if len(o) == 0 {
		return Condition{}, false
	}
	lastConditionGroup := o[len(o)-1]
	if len(lastConditionGroup) > 0 {
		return lastConditionGroup[len(lastConditionGroup)-1], true
	}
	return Condition{}, false
}

func (o OneOrMore) Append(aCondition Condition) OneOrMore {
	if len(o) == 0 {
		o = append(o, make(Conditions, 0, 1))
	}
	o[len(o)-1] = append(o[len(o)-1], aCondition)
	return o
}

func (o OneOrMore) NewGroup() OneOrMore {
	return append(o, make(Conditions, 0, 1))
}

func (o OneOrMore) UpdateLast(aCondition Condition) {
	o[len(o)-1][len(o[len(o)-1])-1] = aCondition
}

func FieldIsEqual(fieldName string, value Value) Condition {
	return FieldCompares(fieldName, Eq, value)
}

func FieldIsGreater(fieldName string, value Value) Condition {
	return FieldCompares(fieldName, Gt, value)
}

func FieldCompares(fieldName string, operator Operator, value Value) Condition {
	return Condition{
		Operand1: Operand{
			Type:  OperandField,
			Field: Field{Name: fieldName},
		},
		Operator: operator,
		Operand2: Operand{
			Type:    OperandLiteral,
			Literal: value,
		},
	}
}

// FieldsAreEqual builds the equi-join predicate comparing a column from each
// side of a two table query.
func FieldsAreEqual(fieldName1, fieldName2 string) Condition {
	return Condition{
		Operand1: Operand{
			Type:  OperandField,
			Field: Field{Name: fieldName1},
		},
		Operator: Eq,
		Operand2: Operand{
			Type:  OperandField,
			Field: Field{Name: fieldName2},
		},
	}
}
