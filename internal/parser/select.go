package parser

import (
	"fmt"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errSelectWithoutFields     = fmt.Errorf("at SELECT: expected field to SELECT")
	errSelectExpectedTableName = fmt.Errorf("at SELECT: expected table name identifier")
	errCannotCombineAsterisk   = fmt.Errorf(`at SELECT: cannot combine "*" with other fields`)
	errExpectedFrom            = fmt.Errorf("at SELECT: expected FROM")
	errSelectTooManyTables     = fmt.Errorf("at FROM: at most two tables are supported")
)

/*
SELECT select_list

	    FROM table_expression [ , table_expression ]
		[ WHERE ... ]
	    [ ORDER BY ... ]
	    [ LIMIT count ]
	    [ OFFSET start ]
*/
func (p *parser) doParseSelect() error {
	switch p.step {
	case stepSelectField:
		identifier := p.peek()
		if !isIdentifier(identifier) && identifier != "*" {
			return errSelectWithoutFields
		}

		p.Fields = append(p.Fields, minirel.Field{Name: identifier})
		p.pop()
		maybeFrom := strings.ToUpper(p.peek())

		// Handle * for selecting all columns
		if identifier == "*" {
			if len(p.Fields) > 1 {
				return errCannotCombineAsterisk
			}
			if maybeFrom != "FROM" {
				return errExpectedFrom
			}
			p.step = stepSelectFrom
			return nil
		}

		if maybeFrom == "FROM" {
			p.step = stepSelectFrom
			return nil
		}

		p.step = stepSelectComma
	case stepSelectComma:
		commaRWord := p.peek()
		if commaRWord != "," {
			return fmt.Errorf("at SELECT: expected comma or FROM")
		}
		p.pop()
		p.step = stepSelectField
	case stepSelectFrom:
		from := strings.ToUpper(p.peek())
		if from != "FROM" {
			return errExpectedFrom
		}
		p.pop()
		p.step = stepSelectFromTable
	case stepSelectFromTable:
		tableName, _ := p.peekIdentifierWithLength()
		if !isIdentifier(tableName) {
			return errSelectExpectedTableName
		}
		p.TableNames = append(p.TableNames, tableName)
		if p.TableName == "" {
			p.TableName = tableName
		}
		if len(p.TableNames) > 2 {
			return errSelectTooManyTables
		}
		p.pop()
		p.step = stepSelectTableComma
	case stepSelectTableComma:
		commaRWord := p.peek()
		if commaRWord != "," {
			p.step = stepSelectOrderBy
			return nil
		}
		p.pop()
		p.step = stepSelectFromTable
	case stepSelectOrderBy:
		orderByRWord := p.peek()
		if strings.ToUpper(orderByRWord) != "ORDER BY" {
			p.step = stepSelectLimit
			return nil
		}
		p.pop()
		p.step = stepSelectOrderByField
	case stepSelectOrderByField:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			if len(p.OrderBy) == 0 {
				return fmt.Errorf(`at ORDER BY: expected identifier`)
			}
			p.step = stepSelectLimit
			return nil
		}
		p.pop()
		// Start with default direction as ASC
		theDirection := minirel.Asc
		if direction := strings.ToUpper(p.peek()); direction == "ASC" || direction == "DESC" {
			if direction == "DESC" {
				theDirection = minirel.Desc
			}
			p.pop()
		}
		p.OrderBy = append(p.OrderBy, minirel.OrderBy{
			Field:     minirel.Field{Name: identifier},
			Direction: theDirection,
		})
		p.step = stepSelectOrderByComma
	case stepSelectOrderByComma:
		commaRWord := p.peek()
		if commaRWord != "," {
			p.step = stepSelectLimit
			return nil
		}
		p.pop()
		p.step = stepSelectOrderByField
	case stepSelectLimit:
		limitRWord := p.peek()
		if strings.ToUpper(limitRWord) != "LIMIT" {
			p.step = stepSelectOffset
			return nil
		}
		p.pop()
		limitValue, n := p.peekIntWithLength()
		if n == 0 {
			return fmt.Errorf("at SELECT: expected integer value for LIMIT")
		}
		p.Limit = &limitValue
		p.pop()
		p.step = stepSelectOffset
	case stepSelectOffset:
		offsetRWord := p.peek()
		if strings.ToUpper(offsetRWord) != "OFFSET" {
			if p.Offset == nil {
				p.step = stepWhere
				return nil
			}
			p.step = stepStatementEnd
			return nil
		}
		p.pop()
		offsetValue, n := p.peekIntWithLength()
		if n == 0 {
			return fmt.Errorf("at SELECT: expected integer value for OFFSET")
		}
		p.Offset = &offsetValue
		p.pop()
		p.step = stepStatementEnd
	}
	return nil
}
