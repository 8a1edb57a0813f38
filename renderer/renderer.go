// Package renderer renders reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderSplit renders the token amounts needed to open a position.
func RenderSplit(s *Split) string {
	return renderTemplate("split", "split.md", map[string]string{"pool_title": "pool_title.md"}, s)
}

// RenderSolve renders the price at which a position reaches a split.
func RenderSolve(s *Solve) string {
	return renderTemplate("solve", "solve.md", map[string]string{"pool_title": "pool_title.md"}, s)
}

// RenderLadder renders the value of a position over a list of prices.
func RenderLadder(l *Ladder) string {
	return renderTemplate("ladder", "ladder.md", map[string]string{"pool_title": "pool_title.md"}, l)
}

// RenderIL renders an impermanent loss valuation.
func RenderIL(v *IL) string {
	return renderTemplate("il", "il.md", map[string]string{"pool_title": "pool_title.md"}, v)
}

// RenderHedge renders the delta exposure of a position.
func RenderHedge(h *Hedge) string {
	return renderTemplate("hedge", "hedge.md", map[string]string{"pool_title": "pool_title.md"}, h)
}

// RenderEarnings renders the earnings report.
func RenderEarnings(e *Earnings) string {
	partials := map[string]string{
		"earnings_sources": "earnings_sources.md",
		"earnings_tokens":  "earnings_tokens.md",
	}
	return renderTemplate("earnings", "earnings.md", partials, e)
}

// RenderPositions renders the liquidity pool positions report.
func RenderPositions(p *Positions) string {
	return renderTemplate("positions", "positions.md", nil, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
