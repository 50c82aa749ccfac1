// Package reader recovers the signature table from a compiled module.
package reader

import (
	"github.com/coreos/pkg/dlopen"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/fnc/irdecl"
)

import "C"

// ReadTypeInfo loads the shared object at path and decodes its
// irdecl.TypeInfoSymbol table.
func ReadTypeInfo(path string) (irdecl.TypeInfo, error) {
	handle, err := dlopen.GetHandle([]string{path})
	if err != nil {
		return irdecl.TypeInfo{}, tracerr.Wrap(err)
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(irdecl.TypeInfoSymbol)
	if err != nil {
		return irdecl.TypeInfo{}, tracerr.Wrap(err)
	}

	str := C.GoString((*C.char)(sym))
	return irdecl.DecodeTypeInfo([]byte(str))
}
