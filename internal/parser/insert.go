package parser

import (
	"fmt"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errNoRowsToInsert                = fmt.Errorf("at INSERT INTO: need at least one row to insert")
	errInsertFieldValueCountMismatch = fmt.Errorf("at INSERT INTO: value count doesn't match field count")
	errInsertNoFields                = fmt.Errorf("at INSERT INTO: expected at least one field to insert")
)

// INSERT INTO table_name [ ( field [ , ... ] ) ] VALUES ( value [ , ... ] ) [ , ( ... ) ]
//
// Omitting the field list means values follow declared column order.
func (p *parser) doParseInsert() error {
	switch p.step {
	case stepInsertTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at INSERT INTO: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepInsertFieldsOrValues
	case stepInsertFieldsOrValues:
		switch strings.ToUpper(p.peek()) {
		case "(":
			p.pop()
			p.step = stepInsertFields
		case "VALUES":
			p.step = stepInsertValuesRWord
		default:
			return fmt.Errorf("at INSERT INTO: expected opening parens or 'VALUES'")
		}
	case stepInsertFields:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errInsertNoFields
		}
		p.Fields = append(p.Fields, minirel.Field{Name: identifier})
		p.pop()
		p.step = stepInsertFieldsCommaOrClosingParens
	case stepInsertFieldsCommaOrClosingParens:
		commaOrClosingParens := p.peek()
		if commaOrClosingParens != "," && commaOrClosingParens != ")" {
			return fmt.Errorf("at INSERT INTO: expected comma or closing parens")
		}
		p.pop()
		if commaOrClosingParens == "," {
			p.step = stepInsertFields
			return nil
		}
		p.step = stepInsertValuesRWord
	case stepInsertValuesRWord:
		valuesRWord := p.peek()
		if strings.ToUpper(valuesRWord) != "VALUES" {
			return fmt.Errorf("at INSERT INTO: expected 'VALUES'")
		}
		p.pop()
		p.step = stepInsertValuesOpeningParens
	case stepInsertValuesOpeningParens:
		openingParens := p.peek()
		if openingParens != "(" {
			return fmt.Errorf("at INSERT INTO: expected opening parens")
		}
		p.Inserts = append(p.Inserts, []minirel.Value{})
		p.pop()
		p.step = stepInsertValues
	case stepInsertValues:
		value, ln := p.peekValue()
		if ln == 0 {
			return fmt.Errorf("at INSERT INTO: expected quoted value or number value")
		}
		p.Inserts[len(p.Inserts)-1] = append(p.Inserts[len(p.Inserts)-1], value)
		p.pop()
		p.step = stepInsertValuesCommaOrClosingParens
	case stepInsertValuesCommaOrClosingParens:
		commaOrClosingParens := p.peek()
		if commaOrClosingParens != "," && commaOrClosingParens != ")" {
			return fmt.Errorf("at INSERT INTO: expected comma or closing parens")
		}
		p.pop()
		if commaOrClosingParens == "," {
			p.step = stepInsertValues
			return nil
		}
		currentInsertRow := p.Inserts[len(p.Inserts)-1]
		if len(p.Fields) > 0 && len(currentInsertRow) != len(p.Fields) {
			return errInsertFieldValueCountMismatch
		}
		p.step = stepInsertValuesCommaBeforeOpeningParens
	case stepInsertValuesCommaBeforeOpeningParens:
		commaOrEnd := p.peek()
		if commaOrEnd == ";" {
			p.step = stepStatementEnd
			return nil
		}
		if commaOrEnd != "," {
			return fmt.Errorf("at INSERT INTO: expected comma")
		}
		p.pop()
		p.step = stepInsertValuesOpeningParens
	}
	return nil
}
