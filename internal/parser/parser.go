package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errInvalidStatementKind = fmt.Errorf("invalid statement kind")
	errEmptyStatementKind   = fmt.Errorf("statement kind cannot be empty")
	errEmptyTableName       = fmt.Errorf("table name cannot be empty")
)

var reservedWords = []string{
	// operators
	"(", ")", ">=", "<=", "<>", "!=", ",", "=", ">", "<",
	// column types
	"INTEGER", "INT", "REAL", "TEXT",
	// statement types
	"CREATE TABLE", "DROP TABLE", "SELECT", "INSERT INTO", "VALUES", "UPDATE", "DELETE FROM",
	// statement other
	"*", "UNIQUE", "WHERE", "FROM", "SET", "ASC", "DESC",
	"ORDER BY", "LIMIT", "OFFSET",
	";",
}

type step int

const (
	stepBeginning step = iota + 1
	stepCreateTableName
	stepCreateTableOpeningParens
	stepCreateTableColumn
	stepCreateTableColumnDef
	stepCreateTableColumnUnique
	stepCreateTableCommaOrClosingParens
	stepDropTableName
	stepInsertTable
	stepInsertFieldsOrValues
	stepInsertFields
	stepInsertFieldsCommaOrClosingParens
	stepInsertValuesRWord
	stepInsertValuesOpeningParens
	stepInsertValues
	stepInsertValuesCommaOrClosingParens
	stepInsertValuesCommaBeforeOpeningParens
	stepUpdateTable
	stepUpdateSet
	stepUpdateField
	stepUpdateEquals
	stepUpdateValue
	stepUpdateComma
	stepDeleteFromTable
	stepSelectField
	stepSelectComma
	stepSelectFrom
	stepSelectFromTable
	stepSelectTableComma
	stepSelectOrderBy
	stepSelectOrderByField
	stepSelectOrderByComma
	stepSelectLimit
	stepSelectOffset
	stepWhere
	stepWhereConditionField
	stepWhereConditionOperator
	stepWhereConditionValue
	stepWhereOperator
	stepStatementEnd
)

type parser struct {
	minirel.Statement
	i               int // where we are in the query
	sql             string
	step            step
	nextUpdateField string
}

func New() *parser {
	return new(parser)
}

// Parse turns SQL text into one or more structured statements. Statements
// are separated by semicolons, a trailing semicolon is optional.
func (p *parser) Parse(ctx context.Context, sql string) ([]minirel.Statement, error) {
	p.reset()
	p.sql = normalizeWhitespace(sql)

	return p.doParse()
}

// normalizeWhitespace collapses whitespace runs into single spaces and trims
// the ends, leaving quoted string literals untouched so stored text keeps its
// exact spacing.
func normalizeWhitespace(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	inQuote := false
	pendingSpace := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if inQuote {
			b.WriteByte(c)
			if c == '\'' && sql[i-1] != '\\' {
				inQuote = false
			}
			continue
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		if c == '\'' {
			inQuote = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (p *parser) reset() {
	p.Statement = minirel.Statement{}
	p.sql = ""
	p.step = stepBeginning
	p.i = 0
	p.nextUpdateField = ""
}

func (p *parser) doParse() ([]minirel.Statement, error) {
	var statements []minirel.Statement
	for p.i < len(p.sql) {
		switch p.step {
		// -----------------
		// QUERY TYPE
		//------------------
		case stepBeginning:
			switch strings.ToUpper(p.peek()) {
			case "CREATE TABLE":
				p.Kind = minirel.CreateTable
				p.pop()
				p.step = stepCreateTableName
			case "DROP TABLE":
				p.Kind = minirel.DropTable
				p.pop()
				p.step = stepDropTableName
			case "SELECT":
				p.Kind = minirel.Select
				p.pop()
				p.step = stepSelectField
			case "INSERT INTO":
				p.Kind = minirel.Insert
				p.pop()
				p.step = stepInsertTable
			case "UPDATE":
				p.Kind = minirel.Update
				p.pop()
				p.step = stepUpdateTable
			case "DELETE FROM":
				p.Kind = minirel.Delete
				p.pop()
				p.step = stepDeleteFromTable
			default:
				return statements, errInvalidStatementKind
			}
		// -----------------
		// CREATE TABLE
		//------------------
		case stepCreateTableName,
			stepCreateTableOpeningParens,
			stepCreateTableColumn,
			stepCreateTableColumnDef,
			stepCreateTableColumnUnique,
			stepCreateTableCommaOrClosingParens:
			if err := p.doParseCreateTable(); err != nil {
				return statements, err
			}
		// -----------------
		// DROP TABLE
		//------------------
		case stepDropTableName:
			if err := p.doParseDropTable(); err != nil {
				return statements, err
			}
		// -----------------
		// INSERT INTO
		//------------------
		case stepInsertTable,
			stepInsertFieldsOrValues,
			stepInsertFields,
			stepInsertFieldsCommaOrClosingParens,
			stepInsertValuesRWord,
			stepInsertValuesOpeningParens,
			stepInsertValues,
			stepInsertValuesCommaOrClosingParens,
			stepInsertValuesCommaBeforeOpeningParens:
			if err := p.doParseInsert(); err != nil {
				return statements, err
			}
		// -----------------
		// SELECT
		//------------------
		case stepSelectField,
			stepSelectComma,
			stepSelectFrom,
			stepSelectFromTable,
			stepSelectTableComma,
			stepSelectOrderBy,
			stepSelectOrderByField,
			stepSelectOrderByComma,
			stepSelectLimit,
			stepSelectOffset:
			if err := p.doParseSelect(); err != nil {
				return statements, err
			}
		// -----------------
		// UPDATE
		//------------------
		case stepUpdateTable,
			stepUpdateSet,
			stepUpdateField,
			stepUpdateEquals,
			stepUpdateValue,
			stepUpdateComma:
			if err := p.doParseUpdate(); err != nil {
				return statements, err
			}
		// -----------------
		// DELETE FROM
		//------------------
		case stepDeleteFromTable:
			if err := p.doParseDelete(); err != nil {
				return statements, err
			}
		// -----------------
		// WHERE
		//------------------
		case stepWhere,
			stepWhereConditionField,
			stepWhereConditionOperator,
			stepWhereConditionValue,
			stepWhereOperator:
			if err := p.doParseWhere(); err != nil {
				return statements, err
			}
		case stepStatementEnd:
			semicolon := p.peek()
			if semicolon != ";" && len(semicolon) != 0 {
				return statements, fmt.Errorf("expected semicolon")
			}
			if semicolon == ";" {
				p.pop()
				if err := p.validate(p.Statement); err != nil {
					return nil, err
				}
				statements = append(statements, p.Statement)
				if p.i < len(p.sql)-1 {
					p.step = stepBeginning
					p.Statement = minirel.Statement{}
					p.nextUpdateField = ""
				} else {
					return statements, nil
				}
			}
		}
	}

	if p.step != stepStatementEnd {
		if err := p.validate(p.Statement); err != nil {
			return nil, err
		}
		statements = append(statements, p.Statement)
	}

	return statements, nil
}

func (p *parser) peek() string {
	peeked, _ := p.peekWithLength()
	return peeked
}

func (p *parser) pop() string {
	peeked, ln := p.peekWithLength()
	p.i += ln
	p.popWhitespace()
	return peeked
}

func (p *parser) popWhitespace() {
	for ; p.i < len(p.sql) && p.sql[p.i] == ' '; p.i++ {
	}
}

func (p *parser) peekWithLength() (string, int) {
	if p.i >= len(p.sql) {
		return "", 0
	}
	// First check for reserved words. Word-like reserved words must end on a
	// word boundary so identifiers such as "integer_count" or "texts" lex as
	// identifiers, not as a type keyword plus a remainder.
	for _, rWord := range reservedWords {
		token := strings.ToUpper(p.sql[p.i:min(len(p.sql), p.i+len(rWord))])
		if token != rWord {
			continue
		}
		if isWordToken(rWord) {
			if next := p.i + len(rWord); next < len(p.sql) && isIdentifierChar(p.sql[next]) {
				continue
			}
		}
		return token, len(token)
	}
	// Next for quoted string literals
	if p.sql[p.i] == '\'' {
		return p.peekQuotedStringWithLength()
	}
	// Next for numbers (floats or integers, possibly negative)
	if unicode.IsDigit(rune(p.sql[p.i])) || p.sql[p.i] == '-' {
		_, ln := p.peekNumberWithLength()
		if ln > 0 {
			return p.sql[p.i : p.i+ln], ln
		}
	}
	// And finally for identifiers
	return p.peekIdentifierWithLength()
}

func (p *parser) peekQuotedStringWithLength() (string, int) {
	if len(p.sql) < p.i || p.sql[p.i] != '\'' {
		return "", 0
	}
	for i := p.i + 1; i < len(p.sql); i++ {
		if p.sql[i] == '\'' && p.sql[i-1] != '\\' {
			return p.sql[p.i+1 : i], len(p.sql[p.i+1:i]) + 2 // +2 for the two quotes
		}
	}
	return "", 0
}

func (p *parser) peekIntWithLength() (int64, int) {
	number, ln := p.peekNumberWithLength()
	if ln == 0 || float64(int64(number)) != number {
		return 0, 0
	}
	return int64(number), ln
}

func (p *parser) peekNumberWithLength() (float64, int) {
	if p.i >= len(p.sql) {
		return 0.0, 0
	}
	end := p.i
	if p.sql[end] == '-' {
		end++
	}
	digits := 0
	for ; end < len(p.sql); end++ {
		if unicode.IsDigit(rune(p.sql[end])) {
			digits++
			continue
		}
		if p.sql[end] == '.' {
			continue
		}
		break
	}
	if digits == 0 {
		return 0.0, 0
	}
	floatValue, err := strconv.ParseFloat(p.sql[p.i:end], 64)
	if err != nil {
		return 0.0, 0
	}
	return floatValue, end - p.i
}

// peekValue lexes a literal and converts it to an engine value. Integer
// literals without a decimal point become integers, everything else numeric
// becomes a real.
func (p *parser) peekValue() (minirel.Value, int) {
	number, ln := p.peekNumberWithLength()
	if ln > 0 {
		if strings.Contains(p.sql[p.i:p.i+ln], ".") {
			return minirel.NewReal(number), ln
		}
		return minirel.NewInteger(int64(number)), ln
	}
	quotedValue, ln := p.peekQuotedStringWithLength()
	if ln > 0 {
		return minirel.NewText(quotedValue), ln
	}
	return minirel.Value{}, 0
}

// identifierCharRegexp includes the dot so table qualified references such
// as "users.id" lex as a single identifier.
var identifierCharRegexp = regexp.MustCompile(`[a-zA-Z_0-9.]`)

func isIdentifierChar(c byte) bool {
	return identifierCharRegexp.MatchString(string(c))
}

func isWordToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if !unicode.IsLetter(rune(s[i])) && s[i] != ' ' {
			return false
		}
	}
	return len(s) > 0
}

func (p *parser) peekIdentifierWithLength() (string, int) {
	var i int
	for i = p.i; i < len(p.sql); i++ {
		if !isIdentifierChar(p.sql[i]) {
			break
		}
	}
	return p.sql[p.i:i], i - p.i
}

var identifierRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*(\.[a-zA-Z_][a-zA-Z_0-9]*)?$`)

func isIdentifier(s string) bool {
	for _, rWord := range reservedWords {
		if strings.ToUpper(s) == rWord {
			return false
		}
	}
	return identifierRegexp.MatchString(s)
}

func (p *parser) validate(stmt minirel.Statement) error {
	if len(stmt.Conditions) == 0 && p.step == stepWhereConditionField {
		return errEmptyWhereClause
	}
	if stmt.Kind == 0 {
		return errEmptyStatementKind
	}
	if stmt.Kind == minirel.Select {
		if len(stmt.TableNames) == 0 {
			return errEmptyTableName
		}
		if len(stmt.TableNames) > 2 {
			return errSelectTooManyTables
		}
	} else if stmt.TableName == "" {
		return errEmptyTableName
	}
	if stmt.Kind == minirel.CreateTable && len(stmt.Columns) == 0 {
		return errCreateTableNoColumns
	}
	for _, aConditionGroup := range stmt.Conditions {
		for _, aCondition := range aConditionGroup {
			if aCondition.Operator == 0 {
				return errWhereWithoutOperator
			}
		}
	}
	if stmt.Kind == minirel.Insert {
		if len(stmt.Inserts) == 0 {
			return errNoRowsToInsert
		}
		if len(stmt.Fields) > 0 {
			for _, anInsert := range stmt.Inserts {
				if len(anInsert) != len(stmt.Fields) {
					return errInsertFieldValueCountMismatch
				}
			}
		}
	}
	if stmt.Kind == minirel.Update && len(stmt.Updates) == 0 {
		return errNoFieldsToUpdate
	}
	return nil
}
