// Package docs registers the OpenAPI description of the HTTP API with swag.
// Keep it in step with the @Router annotations in internal/handler.
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
        "/messages": {
            "post": {
                "description": "Route a TRANSLATE_TEXT or SAVE_TRANSLATION envelope; the result reaches the tab's event stream",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Post a message",
                "parameters": [
                    {"type": "string", "description": "Sending tab", "name": "X-Tab-ID", "in": "header"},
                    {"description": "Message envelope", "name": "message", "in": "body", "required": true, "schema": {"$ref": "#/definitions/message.Envelope"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dispatch.Ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/notifications/events": {
            "get": {
                "description": "Server-sent NOTIFICATION events, e.g. after a translation is saved",
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Stream notifications",
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}}
                }
            }
        },
        "/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.settingsResponse"}}
                }
            },
            "patch": {
                "description": "Only the fields present in the body are changed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update settings",
                "parameters": [
                    {"description": "Partial settings", "name": "settings", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.settingsPatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.settingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/tabs": {
            "post": {
                "produces": ["application/json"],
                "tags": ["tabs"],
                "summary": "Register a tab",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.tabResponse"}}
                }
            }
        },
        "/tabs/{id}": {
            "delete": {
                "tags": ["tabs"],
                "summary": "Unregister a tab",
                "parameters": [
                    {"type": "string", "description": "Tab ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/tabs/{id}/events": {
            "get": {
                "description": "Server-sent events, one event per message; the event name is the message type",
                "produces": ["text/event-stream"],
                "tags": ["tabs"],
                "summary": "Stream tab messages",
                "parameters": [
                    {"type": "string", "description": "Tab ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/tabs/{id}/pointerup": {
            "post": {
                "description": "Sends TRANSLATE_TEXT for a non-empty selection outside input, textarea, select, option and contenteditable elements",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tabs"],
                "summary": "Report a pointer release",
                "parameters": [
                    {"type": "string", "description": "Tab ID", "name": "id", "in": "path", "required": true},
                    {"description": "Pointer release", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.pointerUpRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.pointerUpResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/tooltips/events": {
            "get": {
                "description": "Server-sent SHOW_TRANSLATION_TOOLTIP events",
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Stream tooltips",
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}}
                }
            }
        },
        "/translate": {
            "post": {
                "description": "Translate text into targetLanguage, or the configured target language when omitted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["translations"],
                "summary": "Translate text",
                "parameters": [
                    {"description": "Text to translate", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.translateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.translateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/translations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["translations"],
                "summary": "List saved translations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.SavedTranslation"}}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["translations"],
                "summary": "Delete a saved translation",
                "parameters": [
                    {"type": "string", "description": "Timestamp of the entry", "name": "timestamp", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deletedCountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/translations/all": {
            "delete": {
                "tags": ["translations"],
                "summary": "Clear saved translations",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dispatch.Ack": {
            "type": "object",
            "properties": {"received": {"type": "boolean"}}
        },
        "handler.deletedCountResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "integer"}}
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.pointerUpRequest": {
            "type": "object",
            "properties": {
                "contentEditable": {"type": "string"},
                "pageX": {"type": "number"},
                "pageY": {"type": "number"},
                "selection": {"type": "string"},
                "targetTag": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "handler.pointerUpResponse": {
            "type": "object",
            "properties": {"sent": {"type": "boolean"}}
        },
        "handler.settingsPatchRequest": {
            "type": "object",
            "properties": {
                "autoTranslate": {"type": "boolean"},
                "targetLanguage": {"type": "string"}
            }
        },
        "handler.settingsResponse": {
            "type": "object",
            "properties": {
                "autoTranslate": {"type": "boolean"},
                "targetLanguage": {"type": "string"}
            }
        },
        "handler.tabResponse": {
            "type": "object",
            "properties": {"tabId": {"type": "string"}}
        },
        "handler.translateRequest": {
            "type": "object",
            "properties": {
                "targetLanguage": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "handler.translateResponse": {
            "type": "object",
            "properties": {
                "failed": {"type": "boolean"},
                "translatedText": {"type": "string"}
            }
        },
        "message.Envelope": {
            "type": "object",
            "properties": {
                "payload": {"type": "object"},
                "type": {"type": "string"}
            }
        },
        "model.SavedTranslation": {
            "type": "object",
            "properties": {
                "originalText": {"type": "string"},
                "targetLanguage": {"type": "string"},
                "timestamp": {"type": "string"},
                "translatedText": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "hovertrans API",
	Description:      "Backend for the hovertrans select-to-translate extension.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
