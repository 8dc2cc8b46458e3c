package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/score"
)

// xmlEscaper covers the characters that would terminate an SVG text
// node or attribute value.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// coord formats a computed coordinate with fixed precision so output
// bytes are reproducible.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Render draws the authority diagram of a dossier as standalone SVG.
// The score disc shows the authority score under the given profile.
// Output is a pure function of the inputs: identical entity,
// relations, links, and profile produce identical bytes.
func Render(e *entity.Entity, relations entity.Relations, links entity.SocialLinks, profile score.Profile) string {
	included := relations.Included()
	present := links.Present()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" style="background:white; border-radius:20px;">`,
		width, height, width, height)
	b.WriteString(`<defs><filter id="sh"><feDropShadow dx="0" dy="2" stdDeviation="3" flood-opacity="0.15"/></filter>`)
	b.WriteString(`<linearGradient id="gr" x1="0%" y1="0%" x2="100%" y2="100%"><stop offset="0%" stop-color="#3B82F6"/><stop offset="100%" stop-color="#1E40AF"/></linearGradient></defs>`)

	writeGuides(&b, len(included) > 0, len(present) > 0)
	writeIdentifiers(&b, e)
	writeRelations(&b, included)
	writeSocial(&b, present)
	writeCenter(&b, e, profile)

	b.WriteString(`</svg>`)
	return b.String()
}

// writeGuides draws the dashed orbit circles. The identifier orbit is
// always present; the outer two appear only when populated.
func writeGuides(b *strings.Builder, withRelations, withSocial bool) {
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%d" fill="none" stroke="#F1F5F9" stroke-width="2" stroke-dasharray="10,5" />`,
		centerX, centerY, orbitIdentifiers)
	if withRelations {
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%d" fill="none" stroke="#F1F5F9" stroke-width="2" stroke-dasharray="5,5" />`,
			centerX, centerY, orbitRelations)
	}
	if withSocial {
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%d" fill="none" stroke="#F1F5F9" stroke-width="1" stroke-dasharray="2,2" />`,
			centerX, centerY, orbitSocial)
	}
}

// writeIdentifiers draws the six fixed slots of the first orbit.
func writeIdentifiers(b *strings.Builder, e *entity.Entity) {
	slots := identifierSlots()
	for i, s := range slots {
		p := orbitPoint(i, len(slots), orbitIdentifiers, 0)

		spoke := s.Color
		fill := s.Color
		iconFill := "white"
		labelFill := "#1E293B"
		opacity := "1"
		if !e.Has(s.Field) {
			spoke = "#E2E8F0"
			fill = "#F8FAFC"
			iconFill = "#94A3B8"
			labelFill = "#94A3B8"
			opacity = "0.6"
		}

		fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%s" y2="%s" stroke="%s" stroke-width="1.5" opacity="0.3" />`,
			centerX, centerY, coord(p.X), coord(p.Y), spoke)
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%d" fill="%s" filter="url(#sh)" opacity="%s" />`,
			coord(p.X), coord(p.Y), nodeIdentifier, fill, opacity)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="20" fill="%s">%s</text>`,
			coord(p.X), coord(p.Y+7), iconFill, s.Icon)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="10" fill="%s">%s</text>`,
			coord(p.X), coord(p.Y+50), labelFill, s.Label)
	}
}

// writeRelations draws the included ecosystem relations on the second
// orbit.
func writeRelations(b *strings.Builder, included entity.Relations) {
	for i, rel := range included {
		p := orbitPoint(i, len(included), orbitRelations, offsetRelations)
		fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%s" y2="%s" stroke="#6366F1" stroke-width="1" opacity="0.2" />`,
			centerX, centerY, coord(p.X), coord(p.Y))
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%d" fill="#6366F1" filter="url(#sh)" />`,
			coord(p.X), coord(p.Y), nodeRelation)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="9" fill="#4338CA">%s</text>`,
			coord(p.X), coord(p.Y+40), escape(truncate(rel.Name, maxRelationName)))
	}
}

// writeSocial draws the populated social slots on the outer orbit.
func writeSocial(b *strings.Builder, present []entity.Network) {
	for i, n := range present {
		style := styleFor(n)
		p := orbitPoint(i, len(present), orbitSocial, offsetSocial)
		fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%s" y2="%s" stroke="%s" stroke-width="1" opacity="0.1" stroke-dasharray="2,2" />`,
			centerX, centerY, coord(p.X), coord(p.Y), style.Color)
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%d" fill="%s" filter="url(#sh)" />`,
			coord(p.X), coord(p.Y), nodeSocial, style.Color)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="13" fill="white">%s</text>`,
			coord(p.X), coord(p.Y+6), style.Icon)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="9" fill="#64748B">%s</text>`,
			coord(p.X), coord(p.Y+40), escape(networkLabel(n.String())))
	}
}

// writeCenter draws the score disc with the truncated name, the score
// percentage, and the caption.
func writeCenter(b *strings.Builder, e *entity.Entity, profile score.Profile) {
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%d" fill="url(#gr)" filter="url(#sh)" />`,
		centerX, centerY, nodeCenter)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="13" fill="white">%s</text>`,
		centerX, centerY-15, escape(centerName(e.Name)))
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="40" fill="white">%d%%</text>`,
		centerX, centerY+22, score.Compute(e, profile))
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-family="Arial" font-size="9" fill="rgba(255,255,255,0.85)">SCORE D'AUTORITÉ</text>`,
		centerX, centerY+42)
}
