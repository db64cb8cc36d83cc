package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	Source                      = ast.Source
	SchemaDocument              = ast.SchemaDocument
	SchemaDefinition            = ast.SchemaDefinition
	SchemaDefinitionList        = ast.SchemaDefinitionList
	OperationTypeDefinition     = ast.OperationTypeDefinition
	OperationTypeDefinitionList = ast.OperationTypeDefinitionList
	Definition                  = ast.Definition
	DefinitionList              = ast.DefinitionList
	DirectiveDefinition         = ast.DirectiveDefinition
	DirectiveDefinitionList     = ast.DirectiveDefinitionList
	Directive                   = ast.Directive
	DirectiveList               = ast.DirectiveList
	Argument                    = ast.Argument
	ArgumentList                = ast.ArgumentList
	FieldDefinition             = ast.FieldDefinition
	FieldList                   = ast.FieldList
	ArgumentDefinition          = ast.ArgumentDefinition
	ArgumentDefinitionList      = ast.ArgumentDefinitionList
	EnumValueDefinition         = ast.EnumValueDefinition
	EnumValueList               = ast.EnumValueList
	Type                        = ast.Type
	Value                       = ast.Value
	Position                    = ast.Position
	DefinitionKind              = ast.DefinitionKind
	Operation                   = ast.Operation
	DirectiveLocation           = ast.DirectiveLocation
)

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject

	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription
)
