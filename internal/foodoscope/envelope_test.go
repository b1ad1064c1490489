package foodoscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape Shape
		wantCount int
	}{
		{"payload data", `{"payload":{"data":[{"a":1}]}}`, ShapePayloadData, 1},
		{"payload data wins over recipes", `{"payload":{"data":[{"a":1}]},"recipes":[{"b":1},{"b":2}]}`, ShapePayloadData, 1},
		{"recipes when payload data is not a list", `{"payload":{"data":{"a":1}},"recipes":[{"b":1},{"b":2}]}`, ShapeRecipes, 2},
		{"payload list", `{"payload":[{"a":1}]}`, ShapePayload, 1},
		{"bare list", ` [{"a":1},{"a":2}]`, ShapeBareArray, 2},
		{"null entries dropped", `[{"a":1},null]`, ShapeBareArray, 1},
		{"list of scalars", `{"recipes":["x","y"]}`, ShapeNone, 0},
		{"empty list", `{"recipes":[]}`, ShapeRecipes, 0},
		{"null payload", `{"payload":null}`, ShapeNone, 0},
		{"not json", `nope`, ShapeNone, 0},
		{"empty body", ``, ShapeNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, shape := ParseRecipes([]byte(tt.body))
			assert.Equal(t, tt.wantShape, shape)
			assert.Len(t, recipes, tt.wantCount)
			assert.NotNil(t, recipes)
		})
	}
}
