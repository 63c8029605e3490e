// Package docs registers the console API description served at /swagger.
// Keep it in sync with the handler annotations.
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
        "/api/v1/config/form": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Current form",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}}}
            },
            "patch": {
                "description": "Partial update. Checkboxes take booleans, numeric fields take a number or its text.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Edit form fields",
                "parameters": [{"description": "Field changes", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/config/form/reset": {
            "post": {
                "description": "Discards edits and restores the last loaded configuration.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Reset form",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}}}
            }
        },
        "/api/v1/config/save": {
            "post": {
                "description": "Validates the form, stops the heartbeat and sends the settings. The device restarts on success.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Save configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}},
                    "422": {"description": "error, form", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "error, form", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/config/sections/{id}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Toggle section",
                "parameters": [{"enum": ["wifi", "misc", "transmission", "mqtt", "alarm", "lora"], "type": "string", "description": "Section id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/config/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Session state",
                "responses": {"200": {"description": "open, lease", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "description": "Starts the tick-suppression heartbeat and loads the device configuration.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Open configuration session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FormView"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "error, form", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "delete": {
                "description": "Stops the heartbeat; the device resumes ticking once its lease expires.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Close configuration session",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "description": "Latest telemetry snapshot (formatted), connection state and last-update text.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Current dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DashboardView"}}}
            }
        },
        "/api/v1/device/version": {
            "get": {
                "description": "Version reported by the device, or \"Unknown\".",
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Firmware version",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Filter logs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List logs",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["CONNECTED", "DISCONNECTED", "SESSION_OPENED", "SESSION_CLOSED", "CONFIG_LOADED", "CONFIG_LOAD_FAILED", "CONFIG_SAVED", "CONFIG_SAVE_FAILED"], "type": "string", "description": "Event type", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Return only the most recent N events", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket. Sends a \"dashboard\" envelope on connect, then \"telemetry\" and \"connection\" on every change and a \"clock\" envelope with the last-update text every interval.",
                "tags": ["dashboard"],
                "summary": "Dashboard stream",
                "parameters": [
                    {"type": "string", "example": "1s", "description": "Clock period as a Go duration, max 10s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Clock period in milliseconds, max 10000", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "models.ConnectionState": {
            "type": "object",
            "properties": {
                "changed_at": {"type": "string"},
                "status": {"type": "string", "enum": ["connected", "disconnected"]}
            }
        },
        "service.DashboardView": {
            "type": "object",
            "properties": {
                "connection": {"$ref": "#/definitions/models.ConnectionState"},
                "last_update": {"type": "string"},
                "telemetry": {"$ref": "#/definitions/service.TelemetryView"}
            }
        },
        "service.FormView": {
            "type": "object",
            "properties": {
                "fields": {"type": "object", "additionalProperties": true},
                "loaded": {"type": "boolean"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/service.SectionState"}},
                "status": {"$ref": "#/definitions/service.StatusMessage"}
            }
        },
        "service.SectionState": {
            "type": "object",
            "properties": {
                "expanded": {"type": "boolean"},
                "id": {"type": "string"},
                "last_visible": {"type": "boolean"},
                "title": {"type": "string"},
                "visible": {"type": "boolean"}
            }
        },
        "service.StatusMessage": {
            "type": "object",
            "properties": {
                "classification": {"type": "string"},
                "kind": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "service.TelemetryView": {
            "type": "object",
            "properties": {
                "counts": {"type": "string"},
                "cpm": {"type": "string"},
                "dose_rate": {"type": "string"},
                "env_visible": {"type": "boolean"},
                "humidity": {"type": "string"},
                "hv_error": {"type": "boolean"},
                "pressure": {"type": "string"},
                "received_at": {"type": "string"},
                "temperature": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MultiGeiger Console API",
	Description:      "Live dashboard and configuration console for a MultiGeiger radiation sensor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
