package parser

import (
	"fmt"
	"strings"

	"github.com/minirel/minirel/internal/minirel"
)

var (
	errEmptyWhereClause                            = fmt.Errorf("at WHERE: empty WHERE clause")
	errWhereWithoutOperator                        = fmt.Errorf("at WHERE: condition without operator")
	errWhereExpectedField                          = fmt.Errorf("at WHERE: expected field")
	errWhereExpectedAndOr                          = fmt.Errorf("expected one of AND / OR")
	errWhereExpectedIdentifierQuotedStringOrNumber = fmt.Errorf("at WHERE: expected identifier, quoted string or number value")
	errWhereUnknownOperator                        = fmt.Errorf("at WHERE: unknown operator")
)

func (p *parser) doParseWhere() error {
	switch p.step {
	case stepWhere:
		whereOrEnd := p.peek()
		if whereOrEnd == ";" {
			p.step = stepStatementEnd
			return nil
		}
		whereRWord := strings.ToUpper(whereOrEnd)
		if whereRWord != "WHERE" {
			return fmt.Errorf("expected WHERE")
		}
		if len(p.OrderBy) > 0 {
			return fmt.Errorf("at WHERE: ORDER BY must be after WHERE clause")
		}
		if p.Limit != nil || p.Offset != nil {
			return fmt.Errorf("at WHERE: OFFSET / LIMIT must be after WHERE clause")
		}
		if len(p.Conditions) > 0 {
			return fmt.Errorf("at WHERE: multiple WHERE clauses are not supported")
		}
		p.pop()
		p.step = stepWhereConditionField
	case stepWhereConditionField:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errWhereExpectedField
		}
		p.Statement.Conditions = p.Statement.Conditions.Append(minirel.Condition{
			Operand1: minirel.Operand{
				Type:  minirel.OperandField,
				Field: minirel.Field{Name: identifier},
			},
		})
		p.pop()
		p.step = stepWhereConditionOperator
	case stepWhereConditionOperator:
		currentCondition, _ := p.Conditions.LastCondition()
		switch p.peek() {
		case "=":
			currentCondition.Operator = minirel.Eq
		case ">":
			currentCondition.Operator = minirel.Gt
		case ">=":
			currentCondition.Operator = minirel.Gte
		case "<":
			currentCondition.Operator = minirel.Lt
		case "<=":
			currentCondition.Operator = minirel.Lte
		case "<>", "!=":
			currentCondition.Operator = minirel.Ne
		default:
			return errWhereUnknownOperator
		}
		p.Conditions.UpdateLast(currentCondition)
		p.pop()
		p.step = stepWhereConditionValue
	case stepWhereConditionValue:
		currentCondition, _ := p.Conditions.LastCondition()
		value, ln := p.peekValue()
		if ln == 0 {
			identifier := p.peek()
			if !isIdentifier(identifier) {
				return errWhereExpectedIdentifierQuotedStringOrNumber
			}
			currentCondition.Operand2 = minirel.Operand{
				Type:  minirel.OperandField,
				Field: minirel.Field{Name: identifier},
			}
		} else {
			currentCondition.Operand2 = minirel.Operand{
				Type:    minirel.OperandLiteral,
				Literal: value,
			}
		}
		p.Conditions.UpdateLast(currentCondition)
		p.pop()
		p.step = stepWhereOperator
	case stepWhereOperator:
		rWord := strings.ToUpper(p.peek())
		if rWord == ";" {
			p.step = stepStatementEnd
			return nil
		}
		if p.Kind == minirel.Select && (rWord == "ORDER BY" || rWord == "LIMIT" || rWord == "OFFSET") {
			p.step = stepSelectOrderBy
			return nil
		}
		if rWord != "AND" && rWord != "OR" {
			return errWhereExpectedAndOr
		}
		if rWord == "OR" {
			p.Conditions = p.Conditions.NewGroup()
		}
		p.pop()
		p.step = stepWhereConditionField
	}
	return nil
}
