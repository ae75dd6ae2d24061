package content

import "github.com/founderpath/founderpath/internal/llm"

// LessonSchema defines the JSON schema for lesson generation. Counts and
// index bounds are checked after decoding, since strict structured-output
// modes reject minItems and minimum.
var LessonSchema = &llm.Schema{
	Name:        "founder-lesson",
	Description: "A micro-learning lesson for a startup founder with reading sections and a short quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Engaging lesson title (3-8 words)",
			},
			"duration": map[string]any{
				"type":        "string",
				"description": "Estimated reading time, e.g. \"5 min read\"",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"Beginner", "Intermediate", "Advanced"},
			},
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":   map[string]any{"type": "string"},
						"content": map[string]any{"type": "string"},
					},
					"required":             []any{"title", "content"},
					"additionalProperties": false,
				},
			},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
					},
					"required":             []any{"question", "options", "correctIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "duration", "difficulty", "sections", "quiz"},
		"additionalProperties": false,
	},
}
