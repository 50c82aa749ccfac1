// Package irdecl lowers function signatures to LLVM declarations.
package irdecl

import (
	"encoding/json"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/fnc/ast"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/fnc", "irdecl")

// TypeInfoSymbol names the global holding the JSON signature table.
const TypeInfoSymbol = "__fnc_types"

// Signedness is not part of an LLVM integer type, u32 and i32 both lower to
// i32.
var irTypes = map[ast.SimpleType]types.Type{
	ast.I8:   types.I8,
	ast.I16:  types.I16,
	ast.I32:  types.I32,
	ast.I64:  types.I64,
	ast.U8:   types.I8,
	ast.U16:  types.I16,
	ast.U32:  types.I32,
	ast.U64:  types.I64,
	ast.Void: types.Void,
}

type TypeInfo struct {
	Functions map[string]string `json:"functions"`
}

func IRType(t ast.Type) (types.Type, error) {
	st, ok := t.(ast.SimpleType)
	if !ok {
		return nil, tracerr.Errorf("unhandled type %T", t)
	}

	ret, ok := irTypes[st]
	if !ok {
		return nil, tracerr.Errorf("type %s has no IR representation", st)
	}
	return ret, nil
}

// Declarations returns a module declaring every function of prog, without
// bodies, plus the signature table.
func Declarations(prog *ast.Program) (*ir.Module, error) {
	m := ir.NewModule()
	info := TypeInfo{Functions: make(map[string]string)}

	for _, decl := range prog.Declarations {
		fn, ok := decl.(*ast.FunctionDeclaration)
		if !ok {
			return nil, tracerr.Errorf("unhandled declaration %T", decl)
		}

		if _, dup := info.Functions[fn.Name]; dup {
			return nil, tracerr.Errorf("function %s declared twice", fn.Name)
		}

		if err := declare(m, fn); err != nil {
			return nil, err
		}
		info.Functions[fn.Name] = fn.String()
	}

	if err := registerTypeInfo(m, info); err != nil {
		return nil, err
	}

	plog.Debugf("declared %d functions", len(m.Funcs))
	return m, nil
}

func declare(m *ir.Module, fn *ast.FunctionDeclaration) error {
	ret, err := IRType(fn.ReturnType)
	if err != nil {
		return tracerr.Errorf("return type of %s: %v", fn.Name, err)
	}

	var params []*ir.Param
	for _, param := range fn.Parameters {
		typ, err := IRType(param.Datatype)
		if err != nil {
			return tracerr.Errorf("parameter %s of %s: %v", param.Name, fn.Name, err)
		}
		if _, void := typ.(*types.VoidType); void {
			return tracerr.Errorf("parameter %s of %s: void is not a value type", param.Name, fn.Name)
		}

		params = append(params, ir.NewParam(param.Name, typ))
	}

	m.NewFunc(fn.Name, ret, params...)
	return nil
}

func registerTypeInfo(m *ir.Module, info TypeInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return tracerr.Wrap(err)
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

// ReadTypeInfo decodes the table stored by Declarations.
func ReadTypeInfo(m *ir.Module) (TypeInfo, error) {
	for _, g := range m.Globals {
		if g.Name() != TypeInfoSymbol {
			continue
		}

		arr, ok := g.Init.(*constant.CharArray)
		if !ok || len(arr.X) == 0 {
			return TypeInfo{}, tracerr.Errorf("%s is not a string", TypeInfoSymbol)
		}

		return DecodeTypeInfo(arr.X[:len(arr.X)-1])
	}

	return TypeInfo{}, tracerr.Errorf("module has no %s", TypeInfoSymbol)
}

// DecodeTypeInfo decodes the contents of the table without its trailing NUL.
func DecodeTypeInfo(data []byte) (TypeInfo, error) {
	var info TypeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return TypeInfo{}, tracerr.Wrap(err)
	}
	return info, nil
}
