package gcloud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats for policy tags
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
	FormatDBT  = "dbt"
)

// Formats lists the supported output formats
var Formats = []string{FormatJSON, FormatYAML, FormatRaw, FormatDBT}

// Title is the heading printed above the formatted output
func Title(format string) string {
	switch format {
	case FormatJSON:
		return "Policy Tag IDs in JSON format:"
	case FormatYAML:
		return "Policy Tag IDs in YAML format:"
	case FormatDBT:
		return "Policy Tag IDs in DBT format:"
	default:
		return "Raw Policy Tag IDs:"
	}
}

// Format renders tags in the requested format
func Format(tags PolicyTags, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(tags, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		return encodeYAML(tags)
	case FormatRaw:
		return fmt.Sprintf("%v", map[string]map[string]map[string]string(tags)), nil
	case FormatDBT:
		return encodeYAML(DBTKeys(tags))
	default:
		return "", fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// DBTKeys flattens taxonomy and tag into one lowercase snake key per NRO
func DBTKeys(tags PolicyTags) map[string]map[string]string {
	lower := cases.Lower(language.Und)
	out := make(map[string]map[string]string, len(tags))
	for nro, taxonomies := range tags {
		flat := map[string]string{}
		for taxonomy, byTag := range taxonomies {
			for tag, path := range byTag {
				key := strings.ReplaceAll(lower.String(taxonomy+"_"+tag), "-", "_")
				flat[key] = path
			}
		}
		out[nro] = flat
	}
	return out
}

func encodeYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.String(), nil
}
