package entity

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatYAML returns a sectioned YAML view of the dossier with comment
// headers, suitable for terminal review and change diffs.
func (e *Entity) FormatYAML() string {
	commentMap := yaml.CommentMap{}

	commentMap["$"] = []*yaml.Comment{
		yaml.HeadComment(fmt.Sprintf(" %s - organization dossier", e.DisplayName())),
	}
	commentMap["$.description_fr"] = []*yaml.Comment{
		yaml.HeadComment(" Narrative"),
	}
	commentMap["$.qid"] = []*yaml.Comment{
		yaml.HeadComment(" Identifiers"),
	}
	commentMap["$.parent_org_name"] = []*yaml.Comment{
		yaml.HeadComment(" Hierarchy"),
	}
	commentMap["$.address_street"] = []*yaml.Comment{
		yaml.HeadComment(" Address"),
	}
	commentMap["$.creation_date"] = []*yaml.Comment{
		yaml.HeadComment(" Lifecycle"),
	}
	commentMap["$.source_wikidata"] = []*yaml.Comment{
		yaml.HeadComment(" Provenance"),
	}

	data, err := yaml.MarshalWithOptions(e,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.UseLiteralStyleIfMultiline(true),
		yaml.WithComment(commentMap),
	)
	if err != nil {
		// Fallback to basic marshal if comment marshaling fails
		data, _ = yaml.Marshal(e)
	}

	return postProcessEntityYAML(string(data))
}

// postProcessEntityYAML inserts blank lines between the commented
// sections so the view reads like a form.
func postProcessEntityYAML(yamlContent string) string {
	sectionHeaders := []string{
		"# Narrative",
		"# Identifiers",
		"# Hierarchy",
		"# Address",
		"# Lifecycle",
		"# Provenance",
	}

	lines := strings.Split(yamlContent, "\n")
	result := make([]string, 0, len(lines)+len(sectionHeaders))
	for i, line := range lines {
		for _, header := range sectionHeaders {
			if line == header && i > 0 {
				result = append(result, "")
				break
			}
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
