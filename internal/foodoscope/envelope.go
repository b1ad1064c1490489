package foodoscope

import (
	"bytes"
	"encoding/json"

	"flavourfit/internal/models"
)

// Shape names the place in a response body where the recipe list was found.
type Shape string

const (
	ShapePayloadData Shape = "payload.data"
	ShapeRecipes     Shape = "recipes"
	ShapePayload     Shape = "payload"
	ShapeBareArray   Shape = "array"
	ShapeNone        Shape = "none"
)

type envelope struct {
	Payload json.RawMessage `json:"payload"`
	Recipes json.RawMessage `json:"recipes"`
}

type payloadEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type candidate struct {
	shape Shape
	raw   json.RawMessage
}

// candidates lists the known envelope positions in priority order. A body
// that is not a JSON object still yields the bare-array candidate.
func candidates(body []byte) []candidate {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []candidate{{shape: ShapeBareArray, raw: body}}
	}

	var payload payloadEnvelope
	_ = json.Unmarshal(env.Payload, &payload)

	return []candidate{
		{shape: ShapePayloadData, raw: payload.Data},
		{shape: ShapeRecipes, raw: env.Recipes},
		{shape: ShapePayload, raw: env.Payload},
		{shape: ShapeBareArray, raw: body},
	}
}

// ParseRecipes extracts the recipe list from a catalog response body. The
// first candidate holding a JSON array of objects wins; when none does the
// result is an empty list with ShapeNone.
func ParseRecipes(body []byte) ([]models.RawRecipe, Shape) {
	for _, c := range candidates(body) {
		if list, ok := decodeList(c.raw); ok {
			return list, c.shape
		}
	}
	return []models.RawRecipe{}, ShapeNone
}

func decodeList(raw json.RawMessage) ([]models.RawRecipe, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var items []models.RawRecipe
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	out := make([]models.RawRecipe, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out, true
}
