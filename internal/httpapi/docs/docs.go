// Package docs registers the walletd OpenAPI document with swag so that
// http-swagger can serve it at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/networks": {
            "get": {
                "produces": ["application/json"],
                "summary": "List configured networks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.NetworksResponse"}}
                }
            }
        },
        "/networks/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Look up one network",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Network"}},
                    "404": {"description": "Unknown network", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "summary": "Current wallet session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SessionResponse"}}
                }
            }
        },
        "/session/connect": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Connect a wallet address",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ConnectRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SessionResponse"}},
                    "404": {"description": "Unknown network", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/session/disconnect": {
            "post": {
                "produces": ["application/json"],
                "summary": "Disconnect the wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SessionResponse"}}
                }
            }
        },
        "/session/network": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Switch the selected network",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.SwitchNetworkRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SessionResponse"}},
                    "404": {"description": "Unknown network", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/events/categories": {
            "get": {
                "produces": ["application/json"],
                "summary": "Categories with active listeners",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.CategoriesResponse"}}
                }
            }
        },
        "/events/{category}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Emit an event with a JSON payload",
                "parameters": [
                    {"type": "string", "name": "category", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EmitResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/events/stream": {
            "get": {
                "produces": ["application/x-ndjson"],
                "summary": "Stream events as NDJSON",
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "category", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "One types.Event per line", "schema": {"$ref": "#/definitions/types.Event"}},
                    "400": {"description": "No category given", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/events/ws": {
            "get": {
                "summary": "Stream events over a websocket, one types.Event per text message",
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "category", "in": "query", "required": true}],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "400": {"description": "No category given", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.Network": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "0xio-testnet"},
                "name": {"type": "string", "example": "0xio Testnet"},
                "rpc_url": {"type": "string", "example": "https://0xio.network"},
                "explorer_url": {"type": "string", "example": "https://0xioscan.io/"},
                "color": {"type": "string", "example": "#6366f1"},
                "is_testnet": {"type": "boolean", "example": true}
            }
        },
        "types.NetworksResponse": {
            "type": "object",
            "properties": {
                "networks": {"type": "array", "items": {"$ref": "#/definitions/types.Network"}},
                "default": {"type": "string", "example": "0xio-testnet"}
            }
        },
        "types.Event": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "connect"},
                "data": {},
                "timestamp": {"type": "integer", "example": 1700000000000}
            }
        },
        "types.CategoryStatus": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "networkChanged"},
                "listeners": {"type": "integer", "example": 2}
            }
        },
        "types.CategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/types.CategoryStatus"}}
            }
        },
        "types.EmitResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "balanceChanged"},
                "listeners": {"type": "integer", "example": 1}
            }
        },
        "types.ConnectRequest": {
            "type": "object",
            "properties": {
                "network": {"type": "string", "example": "0xio-testnet"},
                "address": {"type": "string", "example": "oct1q2w3e4r5t6y7u8i9o0p"}
            }
        },
        "types.SwitchNetworkRequest": {
            "type": "object",
            "properties": {
                "network": {"type": "string", "example": "octra-testnet"}
            }
        },
        "types.SessionResponse": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "address": {"type": "string"},
                "network": {"$ref": "#/definitions/types.Network"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "walletd API",
	Description:      "Wallet event notifications and network registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
