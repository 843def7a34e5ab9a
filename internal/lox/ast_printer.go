package lox

import (
	"fmt"
	"strings"
)

// AstPrinter renders an expression tree in a Lisp-ish prefix notation. It is
// a debugging aid, not part of the interpreter pipeline.
type AstPrinter struct{}

func (printer *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(printer)
	return fmt.Sprintf("%v", s)
}

func (printer *AstPrinter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(= %s %v)", expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, _ := expr.Lhs.Accept(printer)
	rhs, _ := expr.Rhs.Accept(printer)
	return fmt.Sprintf("(%s %v %v)", expr.Op.Lexeme, lhs, rhs), nil
}

func (printer *AstPrinter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, _ := expr.Callee.Accept(printer)
	parts := []string{fmt.Sprintf("(call %v", callee)}
	for _, arg := range expr.Args {
		a, _ := arg.Accept(printer)
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return strings.Join(parts, " ") + ")", nil
}

func (printer *AstPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	obj, _ := expr.Obj.Accept(printer)
	return fmt.Sprintf("(. %v %s)", obj, expr.Name.Lexeme), nil
}

func (printer *AstPrinter) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	inner, _ := expr.Expr.Accept(printer)
	return fmt.Sprintf("(group %v)", inner), nil
}

func (printer *AstPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return stringify(expr.Val), nil
}

func (printer *AstPrinter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, _ := expr.Lhs.Accept(printer)
	rhs, _ := expr.Rhs.Accept(printer)
	return fmt.Sprintf("(%s %v %v)", expr.Op.Lexeme, lhs, rhs), nil
}

func (printer *AstPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	obj, _ := expr.Obj.Accept(printer)
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(= (. %v %s) %v)", obj, expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (printer *AstPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	inner, _ := expr.Expr.Accept(printer)
	return fmt.Sprintf("(%s %v)", expr.Op.Lexeme, inner), nil
}

func (printer *AstPrinter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}
