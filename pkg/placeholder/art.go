// Package placeholder renders deterministic inline preview art for
// videos whose real thumbnail could not be fetched. The output is a
// self-contained SVG data URI, so displaying it costs no extra network
// round trip and identical inputs always produce byte-identical URIs.
package placeholder

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
)

const (
	canvasWidth  = 640
	canvasHeight = 360

	defaultAccent     = "#7c3aed"
	defaultBackground = "#312e81"

	labelWrapWidth    = 18
	subtitleWrapWidth = 24
)

// Generate builds the placeholder image for label with an optional
// subtitle line. Empty colors fall back to the site palette. All text is
// escaped before it reaches the markup.
func Generate(label, subtitle, accentColor, backgroundColor string) string {
	if accentColor == "" {
		accentColor = defaultAccent
	}
	if backgroundColor == "" {
		backgroundColor = defaultBackground
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		canvasWidth, canvasHeight, canvasWidth, canvasHeight)
	fmt.Fprintf(&b, `<defs><linearGradient id="bg" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs>`,
		html.EscapeString(accentColor), html.EscapeString(backgroundColor))
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#bg)"/>`, canvasWidth, canvasHeight)

	labelLines := wrapLines(label, labelWrapWidth)
	subtitleLines := wrapLines(subtitle, subtitleWrapWidth)

	blockHeight := len(labelLines)*34 + len(subtitleLines)*24
	y := canvasHeight/2 - blockHeight/2 + 24

	for _, line := range labelLines {
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="28" font-weight="700" fill="#ffffff">%s</text>`,
			canvasWidth/2, y, html.EscapeString(line))
		y += 34
	}
	for _, line := range subtitleLines {
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="18" fill="rgba(226,232,240,0.85)">%s</text>`,
			canvasWidth/2, y, html.EscapeString(line))
		y += 24
	}

	b.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(b.String()))
}

func wrapLines(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len([]rune(candidate)) <= maxChars {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
