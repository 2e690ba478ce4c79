// Package docs registers the OpenAPI document served at /swagger/doc.json.
// It follows the layout `swag init` produces so it can be regenerated from the
// handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Owner registration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Registration details", "name": "registerBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Owner created, token provided", "schema": {"$ref": "#/definitions/auth.AuthenticationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Owner login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Login credentials", "name": "loginBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/auth.AuthenticationResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current owner",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Owner"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Change password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "New password", "name": "passwordBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.NewPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password updated", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/recipes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Search recipes",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of the description", "name": "description", "in": "query"},
                    {"type": "boolean", "description": "Vegan flag", "name": "isVegan", "in": "query"},
                    {"type": "integer", "description": "Exact number of servings", "name": "numServings", "in": "query"},
                    {"type": "string", "description": "Comma-separated ingredients that must all occur", "name": "ingredients", "in": "query"},
                    {"type": "string", "description": "Comma-separated ingredients that must not occur", "name": "excludeIngredients", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Zero-based page index", "name": "page", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recipes.SearchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Create recipe",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Recipe", "name": "recipe", "in": "body", "required": true, "schema": {"$ref": "#/definitions/recipes.RecipeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/recipes.RecipeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/recipes/{recipeID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Get recipe",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Recipe id", "name": "recipeID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recipes.RecipeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Update recipe",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Recipe id", "name": "recipeID", "in": "path", "required": true},
                    {"description": "Recipe", "name": "recipe", "in": "body", "required": true, "schema": {"$ref": "#/definitions/recipes.RecipeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recipes.RecipeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Recipes"],
                "summary": "Delete recipe",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Recipe id", "name": "recipeID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recipes.RecipeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get current owner's profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.ProfileResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "email"},
                "message": {"type": "string", "example": "Email is required"}
            }
        },
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Recipe with id 7 not found"},
                "status": {"type": "integer", "example": 404},
                "timestamp": {"type": "string", "example": "2024-05-01T10:00:00Z"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/apperror.FieldError"}}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "cook@example.com"},
                "first_name": {"type": "string", "example": "Julia"},
                "last_name": {"type": "string", "example": "Child"},
                "password": {"type": "string", "example": "strongpassword123"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "cook@example.com"},
                "password": {"type": "string", "example": "strongpassword123"}
            }
        },
        "auth.NewPasswordRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "evenstrongerpassword456"}
            }
        },
        "auth.AuthenticationResponse": {
            "type": "object",
            "properties": {
                "status_code": {"type": "integer", "example": 201},
                "message": {"type": "string", "example": "201 Created"},
                "token": {"type": "string"}
            }
        },
        "auth.Owner": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "email": {"type": "string", "example": "cook@example.com"},
                "first_name": {"type": "string", "example": "Julia"},
                "last_name": {"type": "string", "example": "Child"},
                "role": {"type": "string", "example": "ROLE_USER"},
                "created_at": {"type": "string"}
            }
        },
        "recipes.Recipe": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7},
                "description": {"type": "string", "example": "Tomato soup"},
                "is_vegan": {"type": "boolean", "example": true},
                "num_servings": {"type": "integer", "example": 4},
                "ingredients": {"type": "array", "items": {"type": "string"}}
            }
        },
        "recipes.RecipeRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "Tomato soup"},
                "is_vegan": {"type": "boolean", "example": true},
                "num_servings": {"type": "integer", "example": 4},
                "ingredients": {"type": "array", "items": {"type": "string"}}
            }
        },
        "recipes.RecipeResponse": {
            "type": "object",
            "properties": {
                "status_code": {"type": "integer", "example": 200},
                "message": {"type": "string", "example": "Recipe retrieved successfully"},
                "recipe": {"$ref": "#/definitions/recipes.Recipe"}
            }
        },
        "recipes.SearchResponse": {
            "type": "object",
            "properties": {
                "recipes": {"type": "array", "items": {"$ref": "#/definitions/recipes.Recipe"}},
                "total": {"type": "integer", "example": 42},
                "total_pages": {"type": "integer", "example": 5},
                "page": {"type": "integer", "example": 0},
                "page_size": {"type": "integer", "example": 10}
            }
        },
        "users.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "email": {"type": "string", "example": "cook@example.com"},
                "first_name": {"type": "string", "example": "Julia"},
                "last_name": {"type": "string", "example": "Child"},
                "role": {"type": "string", "example": "ROLE_USER"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Recipe Finder API",
	Description:      "Private, owner-scoped recipe collections with paginated multi-filter search.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
