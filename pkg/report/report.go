// Package report renders a dossier as a Markdown audit document:
// identity, identifiers, score breakdown, ecosystem, social profiles,
// and the journal of merge conflicts. Output is deterministic for a
// given dossier state.
package report

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/reconcile"
	"github.com/entityscope/orbite/pkg/score"
)

// absent marks an empty value in report tables.
const absent = "—"

// Write renders the dossier report to w.
func Write(w io.Writer, e *entity.Entity, rels entity.Relations, links entity.SocialLinks, conflicts []reconcile.Conflict, breakdown score.Breakdown) error {
	b := md.NewMarkdown(w)

	b.H1("Dossier — " + e.DisplayName()).LF()
	b.PlainTextf("Type: %s. Score d'autorité: %d/%d (profil %s).",
		e.OrgType.String(), breakdown.Score, breakdown.Max, breakdown.Profile).LF()

	writeIdentity(b, e)
	writeIdentifiers(b, e)
	writeScore(b, breakdown)
	writeNarrative(b, e)
	writeEcosystem(b, rels)
	writeSocial(b, links)
	writeConflicts(b, conflicts)

	return b.Build()
}

// identityRows lists the non-empty identity and address attributes.
func identityRows(e *entity.Entity) [][]string {
	candidates := []struct {
		label string
		value string
	}{
		{"Nom", e.Name},
		{"Nom (en)", e.NameEN},
		{"Raison sociale", e.LegalName},
		{"Site web", e.Website},
		{"Création", e.CreationDate},
		{"Adresse", joinAddress(e)},
		{"Organisation parente", parentLabel(e)},
	}
	var rows [][]string
	for _, c := range candidates {
		if c.value != "" {
			rows = append(rows, []string{c.label, c.value})
		}
	}
	return rows
}

func writeIdentity(b *md.Markdown, e *entity.Entity) {
	b.H2("Identité").LF()
	rows := identityRows(e)
	if len(rows) == 0 {
		b.PlainText("Aucun champ d'identité renseigné.").LF()
		return
	}
	b.Table(md.TableSet{
		Header: []string{"Champ", "Valeur"},
		Rows:   rows,
	}).LF()
}

func writeIdentifiers(b *md.Markdown, e *entity.Entity) {
	b.H2("Identifiants").LF()
	rows := [][]string{
		{"Wikidata QID", orAbsent(e.QID)},
		{"SIREN", orAbsent(e.SIREN)},
		{"SIRET", orAbsent(e.SIRET)},
		{"NAF", orAbsent(e.NAF)},
		{"ISNI", orAbsent(e.ISNI)},
		{"ROR", orAbsent(e.ROR)},
		{"LEI", orAbsent(e.LEI)},
	}
	b.Table(md.TableSet{
		Header: []string{"Identifiant", "Valeur"},
		Rows:   rows,
	}).LF()
}

func writeScore(b *md.Markdown, breakdown score.Breakdown) {
	b.H2("Score d'autorité").LF()
	rows := make([][]string, 0, len(breakdown.Details))
	for _, d := range breakdown.Details {
		mark := absent
		if d.Present {
			mark = "✓"
		}
		rows = append(rows, []string{
			d.Label,
			mark,
			fmt.Sprintf("%d/%d", d.Earned, d.Points),
		})
	}
	b.Table(md.TableSet{
		Header: []string{"Signal", "Présent", "Points"},
		Rows:   rows,
	}).LF()
}

func writeNarrative(b *md.Markdown, e *entity.Entity) {
	if e.DescriptionFR == "" && e.DescriptionEN == "" && e.ExpertiseFR == "" && e.ExpertiseEN == "" {
		return
	}
	b.H2("Description").LF()
	if e.DescriptionFR != "" {
		b.PlainText(e.DescriptionFR).LF()
	}
	if e.DescriptionEN != "" {
		b.PlainText(e.DescriptionEN).LF()
	}
	if e.ExpertiseFR != "" {
		b.PlainText("Expertise : " + e.ExpertiseFR).LF()
	}
	if e.ExpertiseEN != "" {
		b.PlainText("Expertise (en) : " + e.ExpertiseEN).LF()
	}
}

func writeEcosystem(b *md.Markdown, rels entity.Relations) {
	b.H2("Écosystème").LF()
	if len(rels) == 0 {
		b.PlainText("Aucune organisation liée.").LF()
		return
	}
	rows := make([][]string, 0, len(rels))
	for _, rel := range rels {
		mark := absent
		if rel.Include {
			mark = "✓"
		}
		rows = append(rows, []string{
			rel.Name,
			rel.SchemaType.String(),
			orAbsent(rel.QID),
			mark,
		})
	}
	b.Table(md.TableSet{
		Header: []string{"Organisation", "Relation", "Wikidata", "Incluse"},
		Rows:   rows,
	}).LF()
}

func writeSocial(b *md.Markdown, links entity.SocialLinks) {
	present := links.Present()
	if len(present) == 0 {
		return
	}
	b.H2("Profils sociaux").LF()
	rows := make([][]string, 0, len(present))
	for _, n := range present {
		rows = append(rows, []string{n.String(), links[n]})
	}
	b.Table(md.TableSet{
		Header: []string{"Réseau", "URL"},
		Rows:   rows,
	}).LF()
}

func writeConflicts(b *md.Markdown, conflicts []reconcile.Conflict) {
	b.H2("Conflits de fusion").LF()
	if len(conflicts) == 0 {
		b.PlainText("Aucun conflit journalisé.").LF()
		return
	}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.Field.String(),
			c.Kept,
			c.Dropped,
			c.Source.String(),
		})
	}
	b.Table(md.TableSet{
		Header: []string{"Champ", "Valeur conservée", "Valeur écartée", "Source"},
		Rows:   rows,
	}).LF()
}

// joinAddress flattens the address fields into one display line. Like
// the JSON-LD projection, an address without a city is not shown.
func joinAddress(e *entity.Entity) string {
	if e.AddressCity == "" {
		return ""
	}
	var parts []string
	for _, p := range []string{e.AddressStreet, e.AddressPostal, e.AddressCity, e.AddressCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// parentLabel formats the parent organization with its QID when known.
func parentLabel(e *entity.Entity) string {
	if e.ParentOrgName == "" {
		return ""
	}
	if e.ParentOrgQID != "" {
		return fmt.Sprintf("%s (%s)", e.ParentOrgName, e.ParentOrgQID)
	}
	return e.ParentOrgName
}

// orAbsent substitutes the absence mark for empty values.
func orAbsent(v string) string {
	if v == "" {
		return absent
	}
	return v
}
