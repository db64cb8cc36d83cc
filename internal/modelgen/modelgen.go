// Package modelgen renders TypeScript model declarations for a schema.
//
// Every field type goes through typeref.Project. Scalars are referenced through
// a Scalars record aliased as S, so hosts can remap custom scalars without
// touching the rest of the file.
package modelgen

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/aexol-studio/axolotl-sub001/internal/compose"
	"github.com/aexol-studio/axolotl-sub001/internal/language"
	"github.com/aexol-studio/axolotl-sub001/internal/typeref"
)

// Header starts every generated file.
const Header = "// Code generated by axolotl. DO NOT EDIT."

const indent = "  "

var builtinScalars = map[string]string{
	"Boolean": "boolean",
	"Float":   "number",
	"ID":      "string",
	"Int":     "number",
	"String":  "string",
}

// Options tunes the generated file.
type Options struct {
	// Scalars maps scalar names to TypeScript types. Entries override the
	// built-in mapping; custom scalars default to unknown.
	Scalars map[string]string
}

// Generate parses schemaText and writes the models file to w. Extensions are
// folded into their base definitions first.
func Generate(w io.Writer, schemaText string, opts Options) error {
	doc, err := compose.ComposeDocuments(compose.Source{Name: "schema", Content: schemaText})
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	_, err = io.WriteString(w, Render(doc, opts))
	return err
}

// Render produces the models file for doc.
func Render(doc *language.SchemaDocument, opts Options) string {
	defs := lo.Filter(slices.Concat(doc.Definitions, doc.Extensions), func(d *language.Definition, _ int) bool {
		return !language.IsReservedName(d.Name)
	})
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	g := &generator{scalars: scalarTypes(defs, opts.Scalars)}
	g.line(Header)
	g.line("")
	g.scalarBlock()
	for _, def := range defs {
		switch def.Kind {
		case language.Object, language.Interface, language.InputObject:
			g.line("")
			g.object(def)
			g.arguments(def)
		case language.Enum:
			g.line("")
			g.description(def.Description, "")
			names := lo.Map(def.EnumValues, func(v *language.EnumValueDefinition, _ int) string { return "'" + v.Name + "'" })
			g.line("export type %s = %s;", def.Name, strings.Join(names, " | "))
		case language.Union:
			g.line("")
			g.description(def.Description, "")
			g.line("export type %s = %s;", def.Name, strings.Join(def.Types, " | "))
		}
	}
	g.modelsBlock(defs)
	return g.sb.String()
}

type generator struct {
	sb      strings.Builder
	scalars map[string]string
}

func (g *generator) line(format string, args ...any) {
	if len(args) == 0 {
		g.sb.WriteString(format)
	} else {
		fmt.Fprintf(&g.sb, format, args...)
	}
	g.sb.WriteByte('\n')
}

func scalarTypes(defs []*language.Definition, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(builtinScalars))
	for name, ts := range builtinScalars {
		out[name] = ts
	}
	for _, def := range defs {
		if def.Kind == language.Scalar {
			if _, ok := out[def.Name]; !ok {
				out[def.Name] = "unknown"
			}
		}
	}
	for name, ts := range overrides {
		out[name] = ts
	}
	return out
}

func (g *generator) scalarBlock() {
	names := lo.Keys(g.scalars)
	sort.Strings(names)
	g.line("export type Scalars = {")
	for _, name := range names {
		g.line("%s['%s']: %s;", indent, name, g.scalars[name])
	}
	g.line("};")
	g.line("type S = Scalars;")
}

func (g *generator) object(def *language.Definition) {
	g.description(def.Description, "")
	g.line("export interface %s {", def.Name)
	for _, f := range def.Fields {
		g.description(f.Description, indent)
		g.line("%s%s: %s;", indent, f.Name, g.project(f.Type))
	}
	g.line("}")
}

// arguments emits an args interface per field that takes arguments.
func (g *generator) arguments(def *language.Definition) {
	for _, f := range def.Fields {
		if len(f.Arguments) == 0 {
			continue
		}
		g.line("")
		g.line("export interface %s%sArgs {", def.Name, upperFirst(f.Name))
		for _, arg := range f.Arguments {
			g.line("%s%s: %s;", indent, arg.Name, g.project(arg.Type))
		}
		g.line("}")
	}
}

func (g *generator) modelsBlock(defs []*language.Definition) {
	objects := lo.Filter(defs, func(d *language.Definition, _ int) bool { return d.Kind == language.Object })
	if len(objects) == 0 {
		return
	}
	g.line("")
	g.line("export type Models = {")
	for _, def := range objects {
		g.line("%s['%s']: %s;", indent, def.Name, def.Name)
	}
	g.line("};")
}

func (g *generator) project(t *language.Type) string {
	ref := typeref.FromAST(t)
	name := typeref.Named(ref)
	base := name
	if _, ok := g.scalars[name]; ok {
		base = "S['" + name + "']"
	}
	return typeref.Project(base, ref)
}

func (g *generator) description(desc, prefix string) {
	if desc == "" {
		return
	}
	lines := strings.Split(desc, "\n")
	if len(lines) == 1 {
		g.line("%s/** %s */", prefix, desc)
		return
	}
	g.line("%s/**", prefix)
	for _, l := range lines {
		g.line("%s%s", prefix, strings.TrimRight(" * "+l, " "))
	}
	g.line("%s */", prefix)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
