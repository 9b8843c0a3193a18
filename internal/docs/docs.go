// Package docs registers the OpenAPI document served under /swagger.
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
        "/bets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "List bets",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 20, max 100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Filter by status (ACTIVE, DORMANT, ZOMBIE, WON, LOST)", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paginated bet summaries"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Create a bet",
                "parameters": [
                    {"description": "Bet details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateBetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Bet created"},
                    "400": {"description": "Invalid input, duplicate name or budget exceeded", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Parent bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/bets/root": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "List root bets",
                "responses": {"200": {"description": "Root bets"}}
            }
        },
        "/bets/tree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Get the bet tree",
                "responses": {"200": {"description": "Bet forest"}}
            }
        },
        "/bets/tree/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Get a bet subtree",
                "parameters": [{"type": "string", "description": "Bet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Bet subtree"},
                    "404": {"description": "Bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/bets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Get a bet",
                "parameters": [{"type": "string", "description": "Bet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Bet summary"},
                    "404": {"description": "Bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Update a bet",
                "parameters": [
                    {"type": "string", "description": "Bet ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateBetRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated bet"},
                    "400": {"description": "Invalid input, cycle or budget exceeded", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Bet or parent not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Mark a bet as lost",
                "parameters": [{"type": "string", "description": "Bet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Bet marked as lost"},
                    "404": {"description": "Bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/bets/{id}/financials": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bets"],
                "summary": "Get bet financials",
                "parameters": [{"type": "string", "description": "Bet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Bet financials"},
                    "404": {"description": "Bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 20, max 100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Filter by bet ID", "name": "bet_id", "in": "query"},
                    {"type": "string", "description": "Filter by transaction type (REVENUE, EXPENSE)", "name": "type", "in": "query"},
                    {"type": "string", "description": "Filter by start date (RFC3339 or YYYY-MM-DD)", "name": "from_date", "in": "query"},
                    {"type": "string", "description": "Filter by end date (RFC3339, or YYYY-MM-DD for the whole day)", "name": "to_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paginated transactions"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Transaction created"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Bet not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Transaction"},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Transaction deleted", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["metrics"],
                "summary": "Portfolio summary",
                "responses": {"200": {"description": "Portfolio summary"}}
            }
        },
        "/pipeline/sweep": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["pipeline"],
                "summary": "Run a classification sweep",
                "responses": {
                    "200": {"description": "Sweep result"},
                    "401": {"description": "Invalid or missing API key", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Pipeline not configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateBetRequest": {
            "type": "object",
            "required": ["budget", "name"],
            "properties": {
                "budget": {"type": "string"},
                "description": {"type": "string", "maxLength": 1000},
                "flagged": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 255, "minLength": 1},
                "parent_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.UpdateBetRequest": {
            "type": "object",
            "properties": {
                "budget": {"type": "string"},
                "description": {"type": "string", "maxLength": 1000},
                "flagged": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 255, "minLength": 1},
                "parent_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handlers.CreateTransactionRequest": {
            "type": "object",
            "required": ["amount", "bet_id", "description", "type"],
            "properties": {
                "amount": {"type": "string"},
                "bet_id": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string", "maxLength": 500, "minLength": 1},
                "source": {"type": "string", "maxLength": 255},
                "type": {"type": "string"}
            }
        },
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.ErrorDetail"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BetMetric API",
	Description:      "BetMetric tracks budgets, revenue and burn across a hierarchy of bets and classifies each bet's health.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
