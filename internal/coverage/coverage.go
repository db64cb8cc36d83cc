// Package coverage lists schema fields that have no resolver.
package coverage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aexol-studio/axolotl-sub001/internal/language"
	"github.com/aexol-studio/axolotl-sub001/internal/resolver"
)

// Inspect parses schemaText and returns every "Type.field" declared on an
// object type that m does not resolve. Gaps are diagnostics, not errors: the
// error is non-nil only when the schema cannot be parsed.
func Inspect(m resolver.Map, schemaText string) ([]string, error) {
	doc, err := language.ParseSchema("schema", schemaText)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return InspectDocument(m, doc), nil
}

// InspectDocument reports gaps in declaration order, definitions before
// extensions. Introspection types and fields are skipped.
func InspectDocument(m resolver.Map, doc *language.SchemaDocument) []string {
	var gaps []string
	seen := make(map[string]bool)
	for _, defs := range []language.DefinitionList{doc.Definitions, doc.Extensions} {
		for _, def := range defs {
			if def.Kind != language.Object || language.IsReservedName(def.Name) {
				continue
			}
			for _, f := range def.Fields {
				key := def.Name + "." + f.Name
				if language.IsReservedName(f.Name) || seen[key] {
					continue
				}
				seen[key] = true
				if _, ok := m.Lookup(def.Name, f.Name); !ok {
					gaps = append(gaps, key)
				}
			}
		}
	}
	return gaps
}

// Report logs one warning per gap.
func Report(logger *zap.Logger, gaps []string) {
	for _, gap := range gaps {
		logger.Warn("field has no resolver", zap.String("field", gap))
	}
}
