package formatter

import (
	"html"
	"strings"
)

// paragraphStyles maps each role to the inline style the preview pane renders
// with. Petition conventions: centered bold captions, justified body text with
// a first-line indent, deep-indented small-print quotations.
var paragraphStyles = map[Role]string{
	RoleCentered:      "text-align: center; font-weight: bold;",
	RoleSectionTitle:  "text-align: left; font-weight: bold; margin-top: 1em;",
	RoleQuotation:     "text-align: justify; margin-left: 4cm; font-size: 10pt;",
	RoleQualification: "text-align: justify;",
	RoleBody:          "text-align: justify; text-indent: 1.25cm;",
}

// RenderHTML turns formatted paragraphs into the markup shown in the preview
// pane. Unlike prompt assembly, this side feeds a markup renderer, so text is
// HTML-escaped.
func RenderHTML(paragraphs []Paragraph) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		style := paragraphStyles[p.Role]
		sb.WriteString(`<p style="`)
		sb.WriteString(style)
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(p.Text))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

// FormatHTML is the full pipeline used by the generation service: clean,
// classify, render.
func FormatHTML(raw string) string {
	return RenderHTML(Format(raw))
}
