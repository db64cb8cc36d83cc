// Package typeref models GraphQL type references as a closed sum type and
// projects them into TypeScript-style type expressions for model codegen.
package typeref

import (
	"fmt"
	"strings"

	"github.com/aexol-studio/axolotl-sub001/internal/language"
)

// TypeRef is one of Name, Required or List.
type TypeRef interface {
	typeRef()
}

// Name is a named type leaf, e.g. Person or ID.
type Name string

// Required wraps a reference with GraphQL's non-null marker (!).
type Required struct {
	Of TypeRef
}

// List wraps a reference with GraphQL's list brackets.
type List struct {
	Of TypeRef
}

func (Name) typeRef()     {}
func (Required) typeRef() {}
func (List) typeRef()     {}

const nullable = " | undefined | null"

// Project renders ref as a TypeScript type expression. base is written at the
// leaf verbatim, so it may be any expression such as S['ID']. An empty base
// falls back to the leaf's own name.
func Project(base string, ref TypeRef) string {
	switch r := ref.(type) {
	case Name:
		if base == "" {
			base = string(r)
		}
		return base + nullable
	case Required:
		return strings.TrimSuffix(Project(base, r.Of), nullable)
	case List:
		return "Array<" + Project(base, r.Of) + ">" + nullable
	}
	panic("unreachable")
}

// Named returns the innermost type name of ref.
func Named(ref TypeRef) string {
	for {
		switch r := ref.(type) {
		case Name:
			return string(r)
		case Required:
			ref = r.Of
		case List:
			ref = r.Of
		default:
			return ""
		}
	}
}

// String renders ref back into GraphQL type syntax.
func String(ref TypeRef) string {
	switch r := ref.(type) {
	case Name:
		return string(r)
	case Required:
		return String(r.Of) + "!"
	case List:
		return "[" + String(r.Of) + "]"
	}
	return ""
}

// FromAST converts a parsed gqlparser type into a TypeRef.
func FromAST(t *language.Type) TypeRef {
	if t == nil {
		return nil
	}
	var ref TypeRef
	if t.Elem != nil {
		ref = List{Of: FromAST(t.Elem)}
	} else {
		ref = Name(t.NamedType)
	}
	if t.NonNull {
		ref = Required{Of: ref}
	}
	return ref
}

// Parse reads GraphQL type syntax such as [ID!]! into a TypeRef.
func Parse(expr string) (TypeRef, error) {
	doc, err := language.ParseSchema("typeref", "type T { f: "+expr+" }")
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	if len(doc.Definitions) != 1 || len(doc.Definitions[0].Fields) != 1 {
		return nil, fmt.Errorf("parse type %q: not a single type reference", expr)
	}
	return FromAST(doc.Definitions[0].Fields[0].Type), nil
}
