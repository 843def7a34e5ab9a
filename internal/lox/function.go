package lox

import "fmt"

// loxReturn carries the value of a return statement while it unwinds the
// evaluation stack. It implements error so it can travel through the
// interpreter's normal error propagation until a function call boundary
// intercepts it.
type loxReturn struct {
	val interface{}
}

func newLoxReturn(val interface{}) *loxReturn {
	r := new(loxReturn)
	r.val = val
	return r
}

func (r *loxReturn) Error() string {
	return fmt.Sprintf("return %v", stringify(r.val))
}

// loxFunction represents a user-defined Lox function together with the
// environment it closed over.
type loxFunction struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func newLoxFunction(
	decl *FunctionStmt,
	closure *Environment,
	isInitializer bool,
) *loxFunction {
	fn := new(loxFunction)
	fn.decl = decl
	fn.closure = closure
	fn.isInitializer = isInitializer
	return fn
}

func (fn *loxFunction) arity() int {
	return len(fn.decl.Params)
}

func (fn *loxFunction) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	/*
		A function encapsulates its parameters, which means each function gets
		its own environment where it stores the encapsulated variables. Each
		call dynamically creates a new environment, otherwise recursion would
		break. If there are multiple calls to the same function in play at the
		same time, each needs its own environment, even though they are all
		calls to the same function.
	*/
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.execBlock(fn.decl.Body, env); err != nil {
		ret, ok := err.(*loxReturn)
		if !ok {
			return nil, err
		}
		if fn.isInitializer {
			// an initializer always yields the instance, even on a bare
			// return
			return fn.closure.GetAt(0, "this"), nil
		}
		return ret.val, nil
	}
	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// bind returns a copy of the function whose closure has 'this' bound to the
// given instance, so methods can refer to the instance they were accessed
// on.
func (fn *loxFunction) bind(instance *loxInstance) *loxFunction {
	env := NewEnvironment(fn.closure)
	env.Define("this", instance)
	return newLoxFunction(fn.decl, env, fn.isInitializer)
}

func (fn *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", fn.decl.Name.Lexeme)
}
