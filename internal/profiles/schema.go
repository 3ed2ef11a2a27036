package profiles

// BuildProfileSchema returns the profile JSON-Schema (draft 2020-12 subset) as
// a generic map. Validated locally before compiling; the same map documents
// the accepted shape.
func BuildProfileSchema() map[string]any {
	sectionSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":           map[string]any{"type": "string", "minLength": 1},
			"covered":        map[string]any{"type": "boolean"},
			"start_pattern":  map[string]any{"type": "string", "minLength": 1},
			"end_pattern":    map[string]any{"type": "string"},
			"header_pattern": map[string]any{"type": "string", "minLength": 1},
			"footer_pattern": map[string]any{"type": "string"},
		},
		"required": []string{"name", "start_pattern", "header_pattern"},
	}

	summarySchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"start_pattern":  map[string]any{"type": "string", "minLength": 1},
			"end_pattern":    map[string]any{"type": "string"},
			"amount_pattern": map[string]any{"type": "string"},
			"weight_pattern": map[string]any{"type": "string"},
			"count_pattern":  map[string]any{"type": "string"},
		},
		"required": []string{"start_pattern"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "minLength": 1},
			"number_style": map[string]any{"type": "string", "enum": []string{"comma-decimal", "dot-decimal"}},
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    sectionSchema,
			},
			"summary": summarySchema,
			"summary_keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"synonyms": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		"required": []string{"name", "sections"},
	}
}
