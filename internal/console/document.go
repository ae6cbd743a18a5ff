package console

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

const nbsp = "&nbsp;"

// styleHeader renders the document preamble for a palette. Every reset of the
// document starts from exactly one of these.
func styleHeader(p Palette, fontFamily string) string {
	var b strings.Builder
	b.WriteString("<html><head><style>")
	fmt.Fprintf(&b, "body { background-color: %s; color: %s; } ", p.Background.Hex(), p.Text.Hex())
	fmt.Fprintf(&b, "div { white-space: nowrap; font-family: %s; width: 100%%; border-top: 1px solid %s; padding-top: 5px; padding-bottom: 5px; margin-top: 0px; }",
		fontFamily, p.Border.Hex())
	for _, l := range Levels() {
		fmt.Fprintf(&b, " .%s { background-color: %s; }", l.Class(), p.ForLevel(l).Hex())
	}
	b.WriteString("</style></head>")
	return b.String()
}

// entry is a single log call ready to be rendered.
type entry struct {
	level     Level
	timestamp string
	caller    string
	text      string
}

// writeEntry appends one entry block to b. With escape set, caller and text are
// HTML-escaped; otherwise they are embedded as markup.
func writeEntry(b *strings.Builder, e entry, width int, escape bool) {
	caller, text := e.caller, e.text
	if escape {
		caller, text = html.EscapeString(caller), html.EscapeString(text)
	}
	b.WriteString(`<div class="`)
	b.WriteString(e.level.Class())
	b.WriteString(`">`)
	b.WriteString(e.timestamp)
	writeCentered(b, caller, utf8.RuneCountInString(e.caller), width)
	b.WriteString(text)
	b.WriteString("</div>")
}

// writeCentered pads a label of n characters with non-breaking spaces so it sits
// in the middle of a width-unit column. Even-length labels get one extra unit on
// the right.
func writeCentered(b *strings.Builder, label string, n, width int) {
	pad := strings.Repeat(nbsp, callerPadding(n, width))
	b.WriteString(pad)
	b.WriteString(label)
	b.WriteString(pad)
	if n%2 == 0 {
		b.WriteString(nbsp)
	}
}

func callerPadding(labelLen, width int) int {
	if labelLen >= width {
		return 0
	}
	return (width - labelLen) / 2
}
