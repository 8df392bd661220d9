package parser

import (
	"fmt"
)

func (p *parser) doParseDelete() error {
	switch p.step {
	case stepDeleteFromTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at DELETE FROM: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepWhere
	}
	return nil
}
