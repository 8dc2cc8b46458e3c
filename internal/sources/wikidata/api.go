package wikidata

import "strings"

// searchResponse is the wbsearchentities payload.
type searchResponse struct {
	Search []searchResult `json:"search"`
}

type searchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// entitiesResponse is the wbgetentities payload, trimmed to the label
// and description props the adapter asks for.
type entitiesResponse struct {
	Entities map[string]entityData `json:"entities"`
}

type entityData struct {
	Labels       map[string]langValue `json:"labels"`
	Descriptions map[string]langValue `json:"descriptions"`
}

type langValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// sparqlResponse is the SPARQL JSON results envelope. Bindings are kept
// loosely keyed; absent optional variables simply have no key, and a
// missing or misshapen one reads as an empty value.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// binding reads one variable from a SPARQL binding row, "" if absent.
func binding(row map[string]sparqlValue, name string) string {
	return row[name].Value
}

// entityURIToQID extracts the trailing Q-number from a Wikidata entity
// URI such as http://www.wikidata.org/entity/Q1431486.
func entityURIToQID(uri string) string {
	if uri == "" {
		return ""
	}
	parts := strings.Split(uri, "/")
	return parts[len(parts)-1]
}

// isoDate trims a full SPARQL timestamp to its date part.
func isoDate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
