// Package diagram renders the authority diagram of a dossier: three
// concentric orbits around a central score disc. Orbit 1 carries the
// fixed identifier slots, orbit 2 the included ecosystem relations,
// orbit 3 the social presence. Output is standalone SVG and
// byte-identical for identical input, so projections can be diffed
// and golden-tested.
package diagram

import "github.com/entityscope/orbite/pkg/entity"

// Canvas geometry. Orbits grow outward from the score disc; the
// center sits slightly above the vertical midpoint to leave room for
// labels on the bottom arc.
const (
	width  = 850
	height = 720

	centerX = 425 // width / 2
	centerY = 340 // height / 2 - 20

	orbitIdentifiers = 180
	orbitRelations   = 260
	orbitSocial      = 330

	nodeIdentifier = 34
	nodeRelation   = 26
	nodeSocial     = 24
	nodeCenter     = 78
)

// Ring start offsets in radians. Every orbit starts at twelve o'clock;
// the outer two are rotated slightly in opposite directions so nodes
// on different orbits do not stack on the same spoke.
const (
	offsetRelations = 0.2
	offsetSocial    = -0.2
)

// Truncation widths for text on the diagram, in runes.
const (
	maxCenterName   = 18
	maxRelationName = 15
)

// slot is one fixed identifier position on the first orbit.
type slot struct {
	Label string       // Caption under the node
	Field entity.Field // Attribute whose presence lights the slot
	Color string       // Fill when the attribute is present
	Icon  string       // Letter inside the node
}

// identifierSlots returns the first orbit in display order. The orbit
// is always drawn in full; slots without a value render dimmed.
func identifierSlots() []slot {
	return []slot{
		{Label: "Wikidata", Field: entity.FieldQID, Color: "#22C55E", Icon: "W"},
		{Label: "INSEE", Field: entity.FieldSIREN, Color: "#F97316", Icon: "S"},
		{Label: "ISNI", Field: entity.FieldISNI, Color: "#A855F7", Icon: "I"},
		{Label: "ROR", Field: entity.FieldROR, Color: "#EC4899", Icon: "R"},
		{Label: "LEI", Field: entity.FieldLEI, Color: "#06B6D4", Icon: "L"},
		{Label: "Web", Field: entity.FieldWebsite, Color: "#3B82F6", Icon: "W"},
	}
}

// socialStyle is the brand color and icon of one social network.
type socialStyle struct {
	Color string
	Icon  string
}

// socialStyles maps each fixed network slot to its brand style.
// Networks outside the table render with the gray fallback.
var socialStyles = map[entity.Network]socialStyle{
	entity.NetworkLinkedIn:  {Color: "#0077B5", Icon: "In"},
	entity.NetworkTwitter:   {Color: "#1DA1F2", Icon: "X"},
	entity.NetworkFacebook:  {Color: "#1877F2", Icon: "Fb"},
	entity.NetworkInstagram: {Color: "#E4405F", Icon: "Ig"},
	entity.NetworkYouTube:   {Color: "#FF0000", Icon: "Yt"},
	entity.NetworkTikTok:    {Color: "#000000", Icon: "Tk"},
}

// socialFallback styles networks that have no entry in socialStyles.
var socialFallback = socialStyle{Color: "#64748B", Icon: "S"}

// styleFor returns the style of a network, falling back to gray for
// networks imported from older state files.
func styleFor(n entity.Network) socialStyle {
	if style, ok := socialStyles[n]; ok {
		return style
	}
	return socialFallback
}
