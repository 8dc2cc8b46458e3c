package wikidata

import "fmt"

// claimsQuery returns the SPARQL lookup for the structured claims of
// one item: registry ids (P1616 SIREN, P1185 SIRET), name authorities
// (P213 ISNI, P6782 ROR), P1278 LEI, P856 website, P571 inception,
// P159 headquarters, and the P749 parent organization with its label
// resolved in place (depth exactly 1).
func claimsQuery(qid string) string {
	return fmt.Sprintf(`SELECT ?siren ?siret ?isni ?ror ?lei ?website ?inception ?hqLabel ?parent ?parentLabel WHERE {
  BIND(wd:%s AS ?item)
  OPTIONAL { ?item wdt:P1616 ?siren. } OPTIONAL { ?item wdt:P1185 ?siret. }
  OPTIONAL { ?item wdt:P213 ?isni. } OPTIONAL { ?item wdt:P6782 ?ror. }
  OPTIONAL { ?item wdt:P1278 ?lei. } OPTIONAL { ?item wdt:P856 ?website. }
  OPTIONAL { ?item wdt:P571 ?inception. } OPTIONAL { ?item wdt:P159 ?hq. }
  OPTIONAL { ?item wdt:P749 ?parent. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "fr,en". }
} LIMIT 1`, qid)
}

// relationsQuery returns the SPARQL lookup for affiliated
// organizations: P355 subsidiary links followed in both directions,
// capped so one conglomerate cannot flood the dossier.
func relationsQuery(qid string, limit int) string {
	return fmt.Sprintf(`SELECT DISTINCT ?item ?itemLabel WHERE { { wd:%s wdt:P355 ?item. } UNION { ?item wdt:P355 wd:%s. } SERVICE wikibase:label { bd:serviceParam wikibase:language "fr,en". } } LIMIT %d`, qid, qid, limit)
}
