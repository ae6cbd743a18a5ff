package ui

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// row is one entry block of the console document as plain text.
type row struct {
	class string
	text  string
}

// docStyle holds the colors declared by a document's style header.
type docStyle struct {
	background string
	text       string
	border     string
	classes    map[string]string
}

var (
	bodyRuleRe   = regexp.MustCompile(`body \{ background-color: (#[0-9a-fA-F]{6}); color: (#[0-9a-fA-F]{6}); \}`)
	borderRuleRe = regexp.MustCompile(`border-top: 1px solid (#[0-9a-fA-F]{6})`)
	classRuleRe  = regexp.MustCompile(`\.([a-z]+) \{ background-color: (#[0-9a-fA-F]{6}); \}`)
)

// parseStyle reads colors from the style header. Missing rules leave fields empty.
func parseStyle(css string) docStyle {
	st := docStyle{classes: make(map[string]string)}
	if m := bodyRuleRe.FindStringSubmatch(css); m != nil {
		st.background, st.text = m[1], m[2]
	}
	if m := borderRuleRe.FindStringSubmatch(css); m != nil {
		st.border = m[1]
	}
	for _, m := range classRuleRe.FindAllStringSubmatch(css, -1) {
		st.classes[m[1]] = m[2]
	}
	return st
}

func (s docStyle) colorFor(class string) string {
	if c, ok := s.classes[class]; ok {
		return c
	}
	return s.background
}

// parseDocument splits a full console document into its style and rows.
func parseDocument(markup string) (docStyle, []row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return docStyle{}, nil, err
	}
	st := parseStyle(doc.Find("style").First().Text())
	return st, collectRows(doc), nil
}

// parseFragment parses entry blocks appended after a known document prefix.
func parseFragment(markup string) ([]row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return collectRows(doc), nil
}

func collectRows(doc *goquery.Document) []row {
	var rows []row
	doc.Find("body").ChildrenFiltered("div").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		rows = append(rows, row{class: class, text: flattenText(s.Text())})
	})
	return rows
}

var flattenReplacer = strings.NewReplacer("\u00a0", " ", "\r\n", " ", "\n", " ", "\t", "    ")

func flattenText(s string) string {
	return flattenReplacer.Replace(s)
}

// renderRow draws a row as a single terminal line of exactly width cells.
func renderRow(r row, st docStyle, width int) string {
	if width <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Width(width)
	if bg := st.colorFor(r.class); bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	if st.text != "" {
		style = style.Foreground(lipgloss.Color(st.text))
	}
	return style.Render(ansi.Truncate(r.text, width, "…"))
}

// renderRows draws rows for the viewport, one line each.
func renderRows(rows []row, st docStyle, width int) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = renderRow(r, st, width)
	}
	return lines
}
