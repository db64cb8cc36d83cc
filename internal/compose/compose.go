// Package compose merges independently authored SDL fragments into a single
// schema.
//
// Fragments are reduced left to right with MergeDocuments. The first merge
// that reports conflicts stops the reduction, and its conflicts (and only
// those) are returned in a *ConflictError.
package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/events"
	"github.com/aexol-studio/axolotl-sub001/internal/language"
	"github.com/aexol-studio/axolotl-sub001/internal/reqid"
)

// Source is a named SDL fragment.
type Source struct {
	Name    string
	Content string
}

// Conflict names a definition, or a field of one, that two fragments declare
// incompatibly. Field is empty for type-level conflicts.
type Conflict struct {
	Type  string
	Field string
}

func (c Conflict) String() string {
	if c.Field == "" {
		return c.Type
	}
	return c.Type + "." + c.Field
}

// ConflictError is returned when a pairwise merge fails.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return "conflicting definitions: " + strings.Join(conflictNames(e.Conflicts), ", ")
}

func conflictNames(cs []Conflict) []string {
	return lo.Map(cs, func(c Conflict, _ int) string { return c.String() })
}

// MergeSDL merges two SDL documents.
func MergeSDL(a, b string) (string, error) {
	return Compose(a, b)
}

// Compose merges SDL documents in order and prints the result.
func Compose(sdl ...string) (string, error) {
	sources := make([]Source, len(sdl))
	for i, s := range sdl {
		sources[i] = Source{Name: fmt.Sprintf("document %d", i), Content: s}
	}
	return ComposeSources(context.Background(), sources...)
}

// ComposeSources merges sources in order and prints the result. Composing no
// sources yields an empty schema.
func ComposeSources(ctx context.Context, sources ...Source) (out string, err error) {
	ctx, _ = reqid.Ensure(ctx)
	names := lo.Map(sources, func(s Source, _ int) string { return s.Name })
	start := time.Now()
	eventbus.Emit(ctx, events.ComposeStart{Documents: names})
	defer func() {
		finish := events.ComposeFinish{Documents: names, Err: err, Duration: time.Since(start)}
		var cerr *ConflictError
		if errors.As(err, &cerr) {
			finish.Conflicts = conflictNames(cerr.Conflicts)
		}
		eventbus.Emit(ctx, finish)
	}()

	doc, err := ComposeDocuments(sources...)
	if err != nil {
		return "", err
	}
	return language.FormatSchema(doc), nil
}

// ComposeDocuments parses and merges sources without printing.
func ComposeDocuments(sources ...Source) (*language.SchemaDocument, error) {
	acc := &language.SchemaDocument{}
	for _, src := range sources {
		doc, err := language.ParseSchema(src.Name, src.Content)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.Name, err)
		}
		merged, conflicts := MergeDocuments(acc, doc)
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}
		acc = merged
	}
	return acc, nil
}
