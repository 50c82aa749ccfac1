// Command adtGen turns a file of algebraic type declarations into Go
// sum types built from marker interfaces.
//
//	type Statement = | If | Return of "*ReturnValue";
//	type Block = "[]Statement";
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type Schema struct {
	Decls []*TypeDecl `@@*`
}

// Variant is one alternative of a sum type. Without a Payload it names a
// type declared by hand elsewhere in the package.
type Variant struct {
	Name    string  `@Ident`
	Payload *string `("of" (@Ident | @String | @RawString))?`
}

type TypeDecl struct {
	Name     string     `"type" @Ident "="`
	Alias    *string    `(  (@Ident | @String | @RawString)`
	Variants *[]Variant ` | ("|" (@@))*)`
	End      struct{}   `";"`
}

var schemaParser = participle.MustBuild(&Schema{}, participle.Unquote())

func ParseSchema(src []byte) (*Schema, error) {
	s := &Schema{}
	if err := schemaParser.ParseBytes(src, s); err != nil {
		return nil, err
	}
	return s, s.validate()
}

func (s *Schema) validate() error {
	seen := make(map[string]bool)
	for _, decl := range s.Decls {
		if seen[decl.Name] {
			return fmt.Errorf("type %s declared twice", decl.Name)
		}
		seen[decl.Name] = true
	}
	return nil
}

func (s *Schema) IsSumType(name string) bool {
	for _, decl := range s.Decls {
		if decl.Name == name && decl.Variants != nil {
			return true
		}
	}
	return false
}

func marker(sum string) string {
	return "is_" + sum
}

func (s *Schema) genSum(f *File, decl *TypeDecl) {
	f.Type().Id(decl.Name).Interface(
		Id(marker(decl.Name)).Params(),
	)

	for _, v := range *decl.Variants {
		switch {
		case v.Payload == nil:
		case s.IsSumType(*v.Payload):
			// an interface cannot carry methods, embed it instead
			f.Type().Id(v.Name).Struct(Id(*v.Payload))
		default:
			f.Type().Id(v.Name).Id(*v.Payload)
		}

		f.Func().Params(Id("v").Id(v.Name)).Id(marker(decl.Name)).Params().Block()
	}
}

// Generate renders the Go source for s as package pkg.
func (s *Schema) Generate(pkg string) string {
	f := NewFile(pkg)
	f.HeaderComment("Code generated by adtGen. DO NOT EDIT.")

	for _, decl := range s.Decls {
		switch {
		case decl.Alias != nil:
			f.Type().Id(decl.Name).Id(*decl.Alias)
		case decl.Variants != nil:
			s.genSum(f, decl)
		}
	}

	return fmt.Sprintf("%#v", f)
}

func run(in, out, pkg string) error {
	src, err := ioutil.ReadFile(in)
	if err != nil {
		return err
	}

	s, err := ParseSchema(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	return ioutil.WriteFile(out, []byte(s.Generate(pkg)), 0644)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <input.adt> <output.go> <package>")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
