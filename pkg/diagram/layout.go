package diagram

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// point is a node position on the canvas.
type point struct {
	X float64
	Y float64
}

// orbitPoint places node i of n on an orbit of radius r, spacing the
// nodes equally and starting at twelve o'clock plus the ring offset.
// Placement depends only on (i, n), never on neighboring content.
func orbitPoint(i, n int, r, offset float64) point {
	angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2 + offset
	return point{
		X: centerX + r*math.Cos(angle),
		Y: centerY + r*math.Sin(angle),
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// centerName renders the dossier name for the score disc, shortening
// long names with a two-dot ellipsis.
func centerName(name string) string {
	if len([]rune(name)) > maxCenterName {
		return truncate(name, maxCenterName) + ".."
	}
	return name
}

var networkTitle = cases.Title(language.French)

// networkLabel renders a network slot name as its caption.
func networkLabel(n string) string {
	return networkTitle.String(strings.ToLower(n))
}
