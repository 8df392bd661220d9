package parser

import (
	"fmt"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errCreateTableNoColumns       = fmt.Errorf("at CREATE TABLE: no columns specified")
	errCreateTableInvalidColumDef = fmt.Errorf("at CREATE TABLE: invalid column definition")
)

// CREATE TABLE table_name ( column_name type [ UNIQUE ] [ , ... ] )
//
// Supported types are INTEGER (alias INT), REAL and TEXT.
func (p *parser) doParseCreateTable() error {
	switch p.step {
	case stepCreateTableName:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at CREATE TABLE: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepCreateTableOpeningParens
	case stepCreateTableOpeningParens:
		openingParens := p.peek()
		if openingParens != "(" {
			return fmt.Errorf("at CREATE TABLE: expected opening parens")
		}
		p.pop()
		p.step = stepCreateTableColumn
	case stepCreateTableColumn:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errCreateTableNoColumns
		}
		p.Columns = append(p.Columns, minirel.Column{
			Name: identifier,
		})
		p.pop()
		p.step = stepCreateTableColumnDef
	case stepCreateTableColumnDef:
		kind, ok := columnKind(p.peek())
		if !ok {
			return errCreateTableInvalidColumDef
		}
		p.pop()
		p.Columns[len(p.Columns)-1].Kind = kind
		p.step = stepCreateTableColumnUnique
	case stepCreateTableColumnUnique:
		unique := strings.ToUpper(p.peek())
		p.step = stepCreateTableCommaOrClosingParens
		if unique != "UNIQUE" {
			return nil
		}
		p.Columns[len(p.Columns)-1].Unique = true
		p.pop()
	case stepCreateTableCommaOrClosingParens:
		commaOrClosingParens := p.peek()
		if commaOrClosingParens != "," && commaOrClosingParens != ")" {
			return fmt.Errorf("at CREATE TABLE: expected comma or closing parens")
		}
		p.pop()
		if commaOrClosingParens == "," {
			p.step = stepCreateTableColumn
			return nil
		}
		p.step = stepStatementEnd
	}
	return nil
}

func (p *parser) doParseDropTable() error {
	switch p.step {
	case stepDropTableName:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at DROP TABLE: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepStatementEnd
	}
	return nil
}

func columnKind(token string) (minirel.ValueKind, bool) {
	switch strings.ToUpper(token) {
	case "INTEGER", "INT":
		return minirel.Integer, true
	case "REAL":
		return minirel.Real, true
	case "TEXT":
		return minirel.Text, true
	default:
		return 0, false
	}
}
