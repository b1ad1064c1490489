// Package docs holds the Swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/get-preferences": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Get dietary preferences",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}},
                    "404": {"description": "User not found", "schema": {"type": "object"}}
                }
            }
        },
        "/api/save-preferences": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Save dietary preferences",
                "parameters": [
                    {
                        "description": "Onboarding form",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.SavePreferencesRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Preferences saved successfully", "schema": {"type": "object"}},
                    "400": {"description": "Invalid preferences", "schema": {"type": "object"}},
                    "500": {"description": "Failed to save preferences", "schema": {"type": "object"}}
                }
            }
        },
        "/api/recipe-of-the-day": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Recipe of the day",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecipeDetail"}},
                    "400": {"description": "Catalog rejected the request", "schema": {"type": "object"}},
                    "500": {"description": "Failed to fetch daily recipe", "schema": {"type": "object"}}
                }
            }
        },
        "/api/recipes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Recipe detail",
                "parameters": [
                    {"type": "string", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecipeDetail"}},
                    "404": {"description": "Recipe not found", "schema": {"type": "object"}},
                    "500": {"description": "Failed to fetch recipe details", "schema": {"type": "object"}}
                }
            }
        },
        "/api/recipes/recommend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Recommendations for every nutrient category",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommendation.Overview"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/recipes/recommend/merged": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Merged recommendations ranked by match",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommendation.CategoryResult"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/recipes/recommend/{type}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Recommendations for one nutrient category",
                "parameters": [
                    {
                        "enum": ["calories", "energy", "carbs", "protein"],
                        "type": "string",
                        "description": "Nutrient category",
                        "name": "type",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommendation.CategoryResult"}},
                    "400": {"description": "Invalid nutrient type", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Database unreachable", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.SavePreferencesRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "number", "example": 29},
                "gender": {"type": "string", "example": "female"},
                "height": {"type": "number", "example": 168},
                "weight": {"type": "number", "example": 61.5},
                "activityLevel": {"type": "string", "example": "moderately-active"},
                "primaryGoal": {"type": "string", "example": "weight-loss"},
                "medicalHistory": {"type": "array", "items": {"type": "string"}},
                "allergies": {"type": "array", "items": {"type": "string"}},
                "dietaryPreference": {"type": "string", "example": "vegetarian"},
                "previousDiet": {"type": "string"},
                "previousDietRating": {"type": "string", "example": "neutral"},
                "alcohol": {"type": "string", "example": "none"},
                "cuisines": {"type": "array", "items": {"type": "string"}},
                "spiceLevel": {"type": "integer", "example": 3},
                "sweetness": {"type": "integer", "example": 3},
                "proteinLevel": {"type": "integer", "example": 4},
                "carbsLevel": {"type": "integer", "example": 2},
                "fatsLevel": {"type": "integer", "example": 3},
                "wakeUpTime": {"type": "string", "example": "07:00"},
                "sleepTime": {"type": "string", "example": "23:00"},
                "mealsPerDay": {"type": "string", "example": "3"},
                "mealTimes": {"$ref": "#/definitions/models.MealTimes"}
            }
        },
        "models.MealTimes": {
            "type": "object",
            "properties": {
                "breakfast": {"type": "string", "example": "08:00"},
                "lunch": {"type": "string", "example": "13:00"},
                "dinner": {"type": "string", "example": "20:00"}
            }
        },
        "models.Macros": {
            "type": "object",
            "properties": {
                "protein": {"type": "string", "example": "24g"},
                "carbs": {"type": "string", "example": "51g"},
                "fats": {"type": "string", "example": "N/A"}
            }
        },
        "models.RecipeDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "2800"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "calories": {"type": "integer"},
                "prepTime": {"type": "string", "example": "20 min"},
                "servings": {"type": "integer"},
                "difficulty": {"type": "string", "example": "Medium"},
                "rating": {"type": "number", "example": 4.5},
                "reviews": {"type": "integer", "example": 120},
                "tags": {"type": "array", "items": {"type": "string"}},
                "macros": {"$ref": "#/definitions/models.Macros"},
                "image": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "processes": {"type": "array", "items": {"type": "string"}},
                "utensils": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.RecipeSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "2800"},
                "name": {"type": "string", "example": "Spicy Lentil Soup"},
                "time": {"type": "string", "example": "25 min"},
                "calories": {"type": "integer", "example": 420},
                "tags": {"type": "array", "items": {"type": "string"}},
                "match": {"type": "string", "example": "92%"},
                "difficulty": {"type": "string", "example": "Easy"},
                "image": {"type": "string"}
            }
        },
        "recommendation.CategoryResult": {
            "type": "object",
            "properties": {
                "recipes": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeSummary"}},
                "error": {"type": "string"}
            }
        },
        "recommendation.Overview": {
            "type": "object",
            "properties": {
                "calories": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeSummary"}},
                "energy": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeSummary"}},
                "carbs": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeSummary"}},
                "protein": {"type": "array", "items": {"$ref": "#/definitions/models.RecipeSummary"}},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FlavourFit API",
	Description:      "Dietary preferences and nutrient-ranked recipe recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
