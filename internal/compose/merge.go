package compose

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/aexol-studio/axolotl-sub001/internal/language"
)

// MergeDocuments merges b into a and returns a new document. Neither input is
// modified. Extensions are folded into the definition they extend when that
// definition exists in either document. All conflicts found are returned; the
// document is only meaningful when there are none.
func MergeDocuments(a, b *language.SchemaDocument) (*language.SchemaDocument, []Conflict) {
	m := &merger{out: &language.SchemaDocument{}}

	for _, doc := range []*language.SchemaDocument{a, b} {
		if doc == nil {
			continue
		}
		for _, def := range doc.Definitions {
			m.definition(def)
		}
		for _, dir := range doc.Directives {
			m.directive(dir)
		}
		for _, s := range doc.Schema {
			m.schema(s)
		}
		for _, s := range doc.SchemaExtension {
			m.schema(s)
		}
	}
	for _, doc := range []*language.SchemaDocument{a, b} {
		if doc == nil {
			continue
		}
		for _, ext := range doc.Extensions {
			m.extension(ext)
		}
	}
	return m.out, m.conflicts
}

type merger struct {
	out       *language.SchemaDocument
	conflicts []Conflict
}

func (m *merger) conflict(typ, field string) {
	m.conflicts = append(m.conflicts, Conflict{Type: typ, Field: field})
}

func (m *merger) definition(def *language.Definition) {
	existing := m.out.Definitions.ForName(def.Name)
	if existing == nil {
		m.out.Definitions = append(m.out.Definitions, cloneDefinition(def))
		return
	}
	m.mergeInto(existing, def)
}

func (m *merger) extension(ext *language.Definition) {
	if base := m.out.Definitions.ForName(ext.Name); base != nil {
		m.mergeInto(base, ext)
		return
	}
	if prev := m.out.Extensions.ForName(ext.Name); prev != nil {
		m.mergeInto(prev, ext)
		return
	}
	m.out.Extensions = append(m.out.Extensions, cloneDefinition(ext))
}

// mergeInto folds src into dst, which is owned by the output document.
func (m *merger) mergeInto(dst, src *language.Definition) {
	if dst.Kind != src.Kind {
		m.conflict(dst.Name, "")
		return
	}
	dst.Description = joinDescriptions(dst.Description, src.Description)
	dst.Directives = unionDirectives(dst.Directives, src.Directives)
	dst.Interfaces = lo.Uniq(append(dst.Interfaces, src.Interfaces...))

	switch dst.Kind {
	case language.Object, language.Interface, language.InputObject:
		for _, f := range src.Fields {
			prev := dst.Fields.ForName(f.Name)
			switch {
			case prev == nil:
				dst.Fields = append(dst.Fields, f)
			case !sameField(prev, f):
				m.conflict(dst.Name, f.Name)
			}
		}
	case language.Enum:
		for _, v := range src.EnumValues {
			if dst.EnumValues.ForName(v.Name) == nil {
				dst.EnumValues = append(dst.EnumValues, v)
			}
		}
	case language.Union:
		dst.Types = lo.Uniq(append(dst.Types, src.Types...))
	}
}

func (m *merger) directive(dir *language.DirectiveDefinition) {
	prev := m.out.Directives.ForName(dir.Name)
	if prev == nil {
		m.out.Directives = append(m.out.Directives, dir)
		return
	}
	if !sameDirectiveDefinition(prev, dir) {
		m.conflict("@"+dir.Name, "")
	}
}

// schema merges every schema definition and extension into a single one.
func (m *merger) schema(s *language.SchemaDefinition) {
	if len(m.out.Schema) == 0 {
		m.out.Schema = language.SchemaDefinitionList{{
			Description: s.Description,
			Position:    s.Position,
		}}
	}
	dst := m.out.Schema[0]
	dst.Description = joinDescriptions(dst.Description, s.Description)
	dst.Directives = unionDirectives(dst.Directives, s.Directives)
	for _, op := range s.OperationTypes {
		prev, found := lo.Find(dst.OperationTypes, func(o *language.OperationTypeDefinition) bool {
			return o.Operation == op.Operation
		})
		switch {
		case !found:
			dst.OperationTypes = append(dst.OperationTypes, op)
		case prev.Type != op.Type:
			m.conflict("schema", string(op.Operation))
		}
	}
}

func cloneDefinition(def *language.Definition) *language.Definition {
	c := *def
	c.Directives = slices.Clone(def.Directives)
	c.Interfaces = slices.Clone(def.Interfaces)
	c.Fields = slices.Clone(def.Fields)
	c.Types = slices.Clone(def.Types)
	c.EnumValues = slices.Clone(def.EnumValues)
	return &c
}

func joinDescriptions(a, b string) string {
	switch {
	case b == "" || a == b:
		return a
	case a == "":
		return b
	default:
		return a + "\n\n" + b
	}
}

func unionDirectives(dst, src language.DirectiveList) language.DirectiveList {
	out := slices.Clone(dst)
	for _, d := range src {
		key := directiveKey(d)
		if !lo.ContainsBy(out, func(o *language.Directive) bool { return directiveKey(o) == key }) {
			out = append(out, d)
		}
	}
	return out
}

func directiveKey(d *language.Directive) string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	for _, arg := range d.Arguments {
		sb.WriteString(" " + arg.Name + ":" + valueString(arg.Value))
	}
	return sb.String()
}

func sameField(a, b *language.FieldDefinition) bool {
	return a.Type.String() == b.Type.String() &&
		valueString(a.DefaultValue) == valueString(b.DefaultValue) &&
		sameArguments(a.Arguments, b.Arguments)
}

func sameArguments(a, b language.ArgumentDefinitionList) bool {
	if len(a) != len(b) {
		return false
	}
	for _, arg := range a {
		other := b.ForName(arg.Name)
		if other == nil ||
			arg.Type.String() != other.Type.String() ||
			valueString(arg.DefaultValue) != valueString(other.DefaultValue) {
			return false
		}
	}
	return true
}

func sameDirectiveDefinition(a, b *language.DirectiveDefinition) bool {
	if a.IsRepeatable != b.IsRepeatable || !sameArguments(a.Arguments, b.Arguments) {
		return false
	}
	return len(a.Locations) == len(b.Locations) &&
		lo.Every(a.Locations, b.Locations)
}

func valueString(v *language.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
