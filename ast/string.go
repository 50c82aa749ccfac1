package ast

import (
	"fmt"
	"strings"
)

func typeToString(t Type) string {
	if t == nil {
		return ""
	}

	switch v := t.(type) {
	case SimpleType:
		return v.String()
	}

	panic("unhandled")
}

func exprToString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.(fmt.Stringer).String()
}

func (t SimpleType) String() string {
	if name, ok := simpleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SimpleType(%d)", int(t))
}

func (o Operator) String() string {
	if o < Plus || o > Mod {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return [...]string{"+", "-", "*", "/", "%"}[o]
}

func (f FunctionDeclaration) String() string {
	var args []string
	for _, arg := range f.Parameters {
		args = append(args, arg.Name+": "+typeToString(arg.Datatype))
	}
	return fmt.Sprintf("fn %s(%s) -> %s", f.Name, strings.Join(args, ", "), typeToString(f.ReturnType))
}

func (v BinOpExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", exprToString(v.Left), v.Op, exprToString(v.Right))
}

func (v LiteralExpression) String() string {
	return v.Value
}

func (v VariableReferenceExpression) String() string {
	return v.Name
}

func (v FunctionCallExpression) String() string {
	var args []string
	for _, arg := range v.Arguments {
		args = append(args, exprToString(arg))
	}
	return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
}

func (v BadExpression) String() string {
	return "<bad expression>"
}
