package lox

import "fmt"

// maxCallArgs bounds the number of arguments in a call and parameters in a
// function declaration.
const maxCallArgs = 255

// Parser composes the syntax tree for the Lox language from the sequence of
// tokens produced by the scanner. See the package documentation for the
// grammar being parsed.
type Parser struct {
	current  int
	tokens   []*Token
	reporter Reporter
}

// NewParser creates a new parser for the Lox language
func NewParser(tokens []*Token, reporter Reporter) *Parser {
	return &Parser{0, tokens, reporter}
}

// Parse runs through the token sequence and collects the statements that
// were found. A declaration that fails to parse is reported and skipped
// after synchronizing to the next statement boundary, so the returned
// program is parsed to completion even in the presence of errors.
func (parser *Parser) Parse() []Stmt {
	statements := make([]Stmt, 0)
	for !parser.isEOF() {
		if stmt := parser.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// declaration --> classDecl | funDecl | varDecl | stmt ;
func (parser *Parser) declaration() Stmt {
	var stmt Stmt
	var err error
	switch {
	case parser.match(CLASS):
		stmt, err = parser.classDeclaration()
	case parser.match(FUN):
		stmt, err = parser.function("function")
	case parser.match(VAR):
		stmt, err = parser.varDeclaration()
	default:
		stmt, err = parser.statement()
	}
	if err != nil {
		parser.reporter.Report(err)
		parser.sync()
		return nil
	}
	return stmt
}

// classDecl --> "class" IDENT "{" function* "}" ;
func (parser *Parser) classDeclaration() (Stmt, error) {
	if err := parser.consume(IDENTIFIER, "Expect class name."); err != nil {
		return nil, err
	}
	name := parser.prev()
	if err := parser.consume(
		LEFT_BRACE,
		"Expect '{' before class body.",
	); err != nil {
		return nil, err
	}
	methods := make([]*FunctionStmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		method, err := parser.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if err := parser.consume(
		RIGHT_BRACE,
		"Expect '}' after class body.",
	); err != nil {
		return nil, err
	}
	return NewClassStmt(name, methods), nil
}

// function --> IDENT "(" params? ")" block ;
// params   --> IDENT ( "," IDENT )* ;
func (parser *Parser) function(kind string) (*FunctionStmt, error) {
	if err := parser.consume(
		IDENTIFIER,
		fmt.Sprintf("Expect %s name.", kind),
	); err != nil {
		return nil, err
	}
	name := parser.prev()
	if err := parser.consume(
		LEFT_PAREN,
		fmt.Sprintf("Expect '(' after %s name.", kind),
	); err != nil {
		return nil, err
	}

	params := make([]*Token, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArgs {
				// report without unwinding, the declaration is still parsed
				parser.reporter.Report(NewParseError(parser.peek(),
					"Can't have more than 255 parameters in a function."))
			}
			if err := parser.consume(
				IDENTIFIER,
				"Expect parameter name.",
			); err != nil {
				return nil, err
			}
			params = append(params, parser.prev())
			if !parser.match(COMMA) {
				break
			}
		}
	}
	if err := parser.consume(
		RIGHT_PAREN,
		"Expect ')' after parameters.",
	); err != nil {
		return nil, err
	}

	if err := parser.consume(
		LEFT_BRACE,
		fmt.Sprintf("Expect '{' before %s body.", kind),
	); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}
	return NewFunctionStmt(name, params, body), nil
}

// varDecl --> "var" IDENT ( "=" expr )? ";" ;
func (parser *Parser) varDeclaration() (Stmt, error) {
	if err := parser.consume(IDENTIFIER, "Expect variable name."); err != nil {
		return nil, err
	}
	name := parser.prev()

	var init Expr
	if parser.match(EQUAL) {
		var err error
		init, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if err := parser.consume(
		SEMICOLON,
		"Expect ';' after variable declaration.",
	); err != nil {
		return nil, err
	}
	return NewVarStmt(name, init), nil
}

// stmt --> block | exprStmt | forStmt | ifStmt | printStmt | returnStmt
//        | whileStmt ;
func (parser *Parser) statement() (Stmt, error) {
	switch {
	case parser.match(FOR):
		return parser.forStatement()
	case parser.match(IF):
		return parser.ifStatement()
	case parser.match(PRINT):
		return parser.printStatement()
	case parser.match(RETURN):
		return parser.returnStatement()
	case parser.match(WHILE):
		return parser.whileStatement()
	case parser.match(LEFT_BRACE):
		stmts, err := parser.block()
		if err != nil {
			return nil, err
		}
		return NewBlockStmt(stmts), nil
	}
	return parser.expressionStatement()
}

// forStmt --> "for" "(" ( varDecl | exprStmt | ";" ) expr? ";" expr? ")"
//             stmt ;
//
// The loop is desugared into a while statement, so the interpreter never
// sees a dedicated for node.
func (parser *Parser) forStatement() (Stmt, error) {
	if err := parser.consume(
		LEFT_PAREN,
		"Expected '(' after 'for' keyword",
	); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case parser.match(SEMICOLON):
		init = nil
	case parser.match(VAR):
		init, err = parser.varDeclaration()
	default:
		init, err = parser.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !parser.check(SEMICOLON) {
		cond, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		SEMICOLON,
		"Expected a ';' after for loop condition.",
	); err != nil {
		return nil, err
	}

	var incr Expr
	if !parser.check(RIGHT_PAREN) {
		incr, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		RIGHT_PAREN,
		"Expected ')' after 'for' clause",
	); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	// append the increment to the body of the loop
	if incr != nil {
		body = NewBlockStmt([]Stmt{body, NewExprStmt(incr)})
	}
	// an absent condition makes the loop infinite
	if cond == nil {
		cond = NewLiteralExpr(true)
	}
	body = NewWhileStmt(cond, body)
	// the initializer runs once before the loop begins
	if init != nil {
		body = NewBlockStmt([]Stmt{init, body})
	}
	return body, nil
}

// ifStmt --> "if" "(" expr ")" stmt ( "else" stmt )? ;
func (parser *Parser) ifStatement() (Stmt, error) {
	if err := parser.consume(
		LEFT_PAREN,
		"Expected '(' after 'if' keyword.",
	); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(
		RIGHT_PAREN,
		"Expected ')' at end of 'if' condition.",
	); err != nil {
		return nil, err
	}

	thenBranch, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if parser.match(ELSE) {
		elseBranch, err = parser.statement()
		if err != nil {
			return nil, err
		}
	}
	return NewIfStmt(cond, thenBranch, elseBranch), nil
}

// printStmt --> "print" expr ";" ;
func (parser *Parser) printStatement() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return NewPrintStmt(expr), nil
}

// returnStmt --> "return" expr? ";" ;
func (parser *Parser) returnStatement() (Stmt, error) {
	keyword := parser.prev()
	var val Expr
	if !parser.check(SEMICOLON) {
		var err error
		val, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		SEMICOLON,
		"Expect ';' after return value.",
	); err != nil {
		return nil, err
	}
	return NewReturnStmt(keyword, val), nil
}

// whileStmt --> "while" "(" expr ")" stmt ;
func (parser *Parser) whileStatement() (Stmt, error) {
	if err := parser.consume(
		LEFT_PAREN,
		"Expected a '(' after 'while'.",
	); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(
		RIGHT_PAREN,
		"Expected a ')' at the end of while loop condition.",
	); err != nil {
		return nil, err
	}
	body, err := parser.statement()
	if err != nil {
		return nil, err
	}
	return NewWhileStmt(cond, body), nil
}

// block --> "{" decl* "}" ;
func (parser *Parser) block() ([]Stmt, error) {
	statements := make([]Stmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		if stmt := parser.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if err := parser.consume(
		RIGHT_BRACE,
		"Expect '}' at end of block.",
	); err != nil {
		return nil, err
	}
	return statements, nil
}

// exprStmt --> expr ";" ;
func (parser *Parser) expressionStatement() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(
		SEMICOLON,
		"Expect ';' after expression.",
	); err != nil {
		return nil, err
	}
	return NewExprStmt(expr), nil
}

// expr --> assign ;
func (parser *Parser) expression() (Expr, error) {
	return parser.assignment()
}

// assign --> ( call "." )? IDENT "=" assign | or ;
//
// The left-hand side is parsed as an ordinary expression and rewritten into
// an assignment target once '=' is seen. An invalid target is reported
// without unwinding, so parsing continues with the expression as-is.
func (parser *Parser) assignment() (Expr, error) {
	expr, err := parser.or()
	if err != nil {
		return nil, err
	}

	if parser.match(EQUAL) {
		equals := parser.prev()
		val, err := parser.assignment()
		if err != nil {
			return nil, err
		}

		switch lhs := expr.(type) {
		case *VarExpr:
			return NewAssignExpr(lhs.Name, val), nil
		case *GetExpr:
			return NewSetExpr(lhs.Obj, lhs.Name, val), nil
		}
		parser.reporter.Report(
			NewParseError(equals, "Invalid Assignment Target."),
		)
	}
	return expr, nil
}

// or --> and ( "or" and )* ;
func (parser *Parser) or() (Expr, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}
	for parser.match(OR) {
		op := parser.prev()
		right, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// and --> equality ( "and" equality )* ;
func (parser *Parser) and() (Expr, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}
	for parser.match(AND) {
		op := parser.prev()
		right, err := parser.equality()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// Creates a left-associative nested tree of binary operator nodes. Matches a
// higher precedence rule `comparison` if it does not hit "!=" or "==".
//
// equality --> comparison ( ( "!=" | "==" ) comparison )* ;
func (parser *Parser) equality() (Expr, error) {
	expr, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := parser.prev()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (parser *Parser) comparison() (Expr, error) {
	expr, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		op := parser.prev()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// term --> factor ( ( "-" | "+" ) factor )* ;
func (parser *Parser) term() (Expr, error) {
	expr, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.match(MINUS, PLUS) {
		op := parser.prev()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// factor --> unary ( ( "/" | "*" ) unary )* ;
func (parser *Parser) factor() (Expr, error) {
	expr, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.match(SLASH, STAR) {
		op := parser.prev()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// unary --> ( "!" | "-" ) unary | call ;
func (parser *Parser) unary() (Expr, error) {
	if parser.match(BANG, MINUS) {
		op := parser.prev()
		expr, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(op, expr), nil
	}
	return parser.call()
}

// call --> primary ( "(" args? ")" | "." IDENT )* ;
func (parser *Parser) call() (Expr, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}
	for {
		if parser.match(LEFT_PAREN) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if parser.match(DOT) {
			if err := parser.consume(
				IDENTIFIER,
				"Expect property name after '.'.",
			); err != nil {
				return nil, err
			}
			expr = NewGetExpr(expr, parser.prev())
		} else {
			break
		}
	}
	return expr, nil
}

// args --> expr ( "," expr )* ;
func (parser *Parser) finishCall(callee Expr) (Expr, error) {
	args := make([]Expr, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxCallArgs {
				// report without unwinding, the call is still parsed
				parser.reporter.Report(NewParseError(parser.peek(),
					"Can't have more than 255 arguments in a function."))
			}
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !parser.match(COMMA) {
				break
			}
		}
	}
	if err := parser.consume(
		RIGHT_PAREN,
		"Expect ')' after function arguments",
	); err != nil {
		return nil, err
	}
	return NewCallExpr(callee, parser.prev(), args), nil
}

// primary --> NUMBER | STRING | IDENT
//           | "true" | "false" | "nil" | "this"
//           | "(" expr ")" ;
func (parser *Parser) primary() (Expr, error) {
	switch {
	case parser.match(FALSE):
		return NewLiteralExpr(false), nil
	case parser.match(TRUE):
		return NewLiteralExpr(true), nil
	case parser.match(NIL):
		return NewLiteralExpr(nil), nil
	case parser.match(NUMBER, STRING):
		return NewLiteralExpr(parser.prev().Literal), nil
	case parser.match(THIS):
		return NewThisExpr(parser.prev()), nil
	case parser.match(IDENTIFIER):
		return NewVarExpr(parser.prev()), nil
	case parser.match(LEFT_PAREN):
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(
			RIGHT_PAREN,
			"Expect ')' after expression.",
		); err != nil {
			return nil, err
		}
		return NewGroupExpr(expr), nil
	}
	return nil, NewParseError(parser.peek(), "Expected Expression!")
}

func (parser *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if parser.check(tt) {
			parser.advance()
			return true
		}
	}
	return false
}

func (parser *Parser) consume(typ TokenType, message string) error {
	if parser.check(typ) {
		parser.advance()
		return nil
	}
	return NewParseError(parser.peek(), message)
}

func (parser *Parser) check(tt TokenType) bool {
	if parser.isEOF() {
		return false
	}
	return parser.peek().Typ == tt
}

func (parser *Parser) advance() *Token {
	if !parser.isEOF() {
		parser.current++
	}
	return parser.prev()
}

func (parser *Parser) isEOF() bool {
	return parser.peek().Typ == EOF
}

func (parser *Parser) peek() *Token {
	return parser.tokens[parser.current]
}

func (parser *Parser) prev() *Token {
	return parser.tokens[parser.current-1]
}

// sync discards tokens until a statement boundary so the parser can keep
// going after an error.
func (parser *Parser) sync() {
	parser.advance()
	for !parser.isEOF() {
		if parser.prev().Typ == SEMICOLON {
			return
		}
		switch parser.peek().Typ {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		parser.advance()
	}
}
