// Package docs registers the OpenAPI description of the JSON API with swag so that
// gin-swagger can serve it under /swagger/.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "description": "Exchanges username and password for a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {
                        "description": "username and password",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.authCredentials"}
                    }
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/campaigns": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "All campaigns, most recently modified first.",
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List campaigns",
                "responses": {
                    "200": {"description": "count, campaigns", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/activity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Audit trail of campaign and account changes, filtered by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.",
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "List activity",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Only events by this user id", "name": "actor", "in": "query"},
                    {"type": "string", "description": "Only events about this campaign id or username", "name": "subject", "in": "query"},
                    {
                        "enum": ["CAMPAIGN_CREATED", "CAMPAIGN_UPDATED", "CAMPAIGN_DELETED", "USER_REGISTERED", "PROFILE_UPDATED", "PASSWORD_CHANGED"],
                        "type": "string",
                        "description": "Event type",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
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
	Title:            "Campaign Forum API",
	Description:      "JSON endpoints of the campaign forum.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
