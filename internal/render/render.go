// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns adapter results into tile XML documents.
//
// Templates are raw XML with {name} placeholders, filled by pure string
// substitution. Every interpolated value is XML-escaped first, and a
// document that still contains a placeholder after substitution is a render
// failure; the caller serves the domain's fallback document instead. Each
// template carries all three size-variant bindings; the consuming client
// silently drops tiles missing a requested size, so omitting one is a defect.
package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/openmetro/tile-engine/pkg/types"
)

//go:embed templates/*.xml
var builtinTemplates embed.FS

// placeholderPattern matches an unresolved {name} placeholder.
var placeholderPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)

// xmlEscaper covers the five XML special characters. Applied to every value
// before interpolation; no raw upstream text reaches the output.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Renderer loads tile templates and fills them.
type Renderer struct {
	// OverrideDir optionally holds template files that shadow the embedded
	// set, looked up as <dir>/<kind>.xml.
	OverrideDir string
}

// New returns a Renderer using cfg's template directory, if any.
func New(cfg types.RenderConfig) *Renderer {
	return &Renderer{OverrideDir: cfg.TemplateDir}
}

// loadTemplate returns the raw template text for kind, preferring the
// override directory over the embedded defaults.
func (r *Renderer) loadTemplate(kind types.TileKind) (string, error) {
	name := string(kind) + ".xml"
	if r.OverrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(r.OverrideDir, name)); err == nil {
			return string(data), nil
		}
	}
	data, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("no template for tile kind %q: %w", kind, err)
	}
	return string(data), nil
}

// Render fills kind's template with vars and returns the finished document.
// It errors when the template is missing or a placeholder was left
// unresolved; callers fall back to Fallback(kind) on any error.
func (r *Renderer) Render(kind types.TileKind, vars map[string]string) (types.TileDocument, error) {
	tmpl, err := r.loadTemplate(kind)
	if err != nil {
		return types.TileDocument{}, err
	}

	pairs := make([]string, 0, 2*len(vars))
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", xmlEscaper.Replace(value))
	}
	doc := strings.NewReplacer(pairs...).Replace(tmpl)

	if leftover := placeholderPattern.FindString(doc); leftover != "" {
		return types.TileDocument{}, fmt.Errorf("template %q: unresolved placeholder %s", kind, leftover)
	}

	return types.TileDocument{XML: doc, ContentType: types.XMLContentType}, nil
}

// Escape exposes the renderer's XML escaping for callers that compose
// free text outside a template.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}
