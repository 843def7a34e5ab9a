package lox

import "fmt"

// loxClass is the runtime representation of a class declaration. Calling
// the class constructs an instance.
type loxClass struct {
	name    string
	methods map[string]*loxFunction
}

func newLoxClass(name string, methods map[string]*loxFunction) *loxClass {
	c := new(loxClass)
	c.name = name
	c.methods = methods
	return c
}

func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	return nil
}

// arity of a class is the arity of its initializer, or zero if it has none.
func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	instance := newLoxInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *loxClass) String() string {
	return c.name
}

// loxInstance holds the per-object state of a class instance. Fields are
// created on first assignment.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	instance := new(loxInstance)
	instance.class = class
	instance.fields = make(map[string]interface{})
	return instance
}

// get returns the value of a field, or a method of the instance's class
// bound to the instance. Fields shadow methods.
func (instance *loxInstance) get(name *Token) (interface{}, error) {
	if val, ok := instance.fields[name.Lexeme]; ok {
		return val, nil
	}
	if method := instance.class.findMethod(name.Lexeme); method != nil {
		return method.bind(instance), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}

func (instance *loxInstance) set(name *Token, value interface{}) {
	instance.fields[name.Lexeme] = value
}

func (instance *loxInstance) String() string {
	return fmt.Sprintf("%s instance", instance.class.name)
}
