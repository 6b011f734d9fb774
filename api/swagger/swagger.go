package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HIS Portal API",
        "description": "Role-based school portal over in-memory seeded stores",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Mock sign-in and role routing"},
        {"name": "Permissions", "description": "Grade-view permission engine"},
        {"name": "Payments", "description": "Tuition ledger management"},
        {"name": "Messages", "description": "Internal portal messaging"},
        {"name": "Schedules", "description": "Weekly schedule grid"},
        {"name": "Dashboards", "description": "Role landing pages"},
        {"name": "Exports", "description": "Ledger statement downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in as a seeded account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown username", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/permissions": {
            "get": {
                "tags": ["Permissions"],
                "summary": "List grade-view permission records",
                "parameters": [
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/permissions/{studentId}": {
            "put": {
                "tags": ["Permissions"],
                "summary": "Request a grade-visibility change",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TogglePermissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Auto-grant protected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payment ledger records",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/payments/{studentId}": {
            "put": {
                "tags": ["Payments"],
                "summary": "Set a new paid amount",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyPaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/messages": {
            "post": {
                "tags": ["Messages"],
                "summary": "Send a message",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Receiver not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/messages/{id}": {
            "get": {
                "tags": ["Messages"],
                "summary": "Open a message detail (receiver view marks it read)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedule entries",
                "parameters": [
                    {"name": "courseCode", "in": "query", "type": "string"},
                    {"name": "timeBucket", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create or replace a schedule entry (teacher only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/grid": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Day-by-timeslot grid projection",
                "parameters": [
                    {"name": "courseCode", "in": "query", "type": "string"},
                    {"name": "timeBucket", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string"}
            }
        },
        "TogglePermissionRequest": {
            "type": "object",
            "required": ["canViewGrades"],
            "properties": {
                "canViewGrades": {"type": "boolean"},
                "confirmed": {"type": "boolean"}
            }
        },
        "ApplyPaymentRequest": {
            "type": "object",
            "required": ["paidAmount"],
            "properties": {
                "paidAmount": {"type": "integer"}
            }
        },
        "SendMessageRequest": {
            "type": "object",
            "required": ["receiverId", "subject", "content"],
            "properties": {
                "receiverId": {"type": "string"},
                "subject": {"type": "string"},
                "content": {"type": "string"},
                "priority": {"type": "string"}
            }
        },
        "UpsertScheduleRequest": {
            "type": "object",
            "required": ["courseCode", "courseName", "teacher", "room", "dayOfWeek", "startTime", "endTime", "type"],
            "properties": {
                "id": {"type": "string"},
                "courseCode": {"type": "string"},
                "courseName": {"type": "string"},
                "courseNameEn": {"type": "string"},
                "teacher": {"type": "string"},
                "room": {"type": "string"},
                "dayOfWeek": {"type": "integer"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "type": {"type": "string"},
                "year": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
