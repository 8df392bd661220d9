package parser

import (
	"fmt"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errUpdateExpectedSet            = fmt.Errorf("at UPDATE: expected 'SET'")
	errUpdateExpectedEquals         = fmt.Errorf("at UPDATE: expected '='")
	errUpdateExpectedQuotedOrNumber = fmt.Errorf("at UPDATE: expected quoted value or number value")
	errNoFieldsToUpdate             = fmt.Errorf("at UPDATE: expected at least one field to update")
)

func (p *parser) doParseUpdate() error {
	switch p.step {
	case stepUpdateTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at UPDATE: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepUpdateSet
	case stepUpdateSet:
		setRWord := p.peek()
		if strings.ToUpper(setRWord) != "SET" {
			return errUpdateExpectedSet
		}
		p.pop()
		p.step = stepUpdateField
	case stepUpdateField:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errNoFieldsToUpdate
		}
		p.nextUpdateField = identifier
		p.pop()
		p.step = stepUpdateEquals
	case stepUpdateEquals:
		equalsRWord := p.peek()
		if equalsRWord != "=" {
			return errUpdateExpectedEquals
		}
		p.pop()
		p.step = stepUpdateValue
	case stepUpdateValue:
		value, ln := p.peekValue()
		if ln == 0 {
			return errUpdateExpectedQuotedOrNumber
		}
		p.setUpdate(p.nextUpdateField, value)
		p.nextUpdateField = ""
		p.pop()
		if strings.ToUpper(p.peek()) == "WHERE" {
			p.step = stepWhere
			return nil
		}
		p.step = stepUpdateComma
	case stepUpdateComma:
		commaOrEnd := p.peek()
		if commaOrEnd == ";" {
			p.step = stepStatementEnd
			return nil
		}
		if commaOrEnd != "," {
			return fmt.Errorf("at UPDATE: expected ','")
		}
		p.pop()
		p.step = stepUpdateField
	}
	return nil
}

func (p *parser) setUpdate(field string, value minirel.Value) {
	if p.Updates == nil {
		p.Updates = make(map[string]minirel.Value)
	}
	p.Updates[field] = value
}
