package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cancha Club API",
        "description": "Court availability and booking service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Free courts per time slot"},
        {"name": "Reserves", "description": "Reservation lifecycle"},
        {"name": "Materializer", "description": "Fixed-reserve materialization"}
    ],
    "paths": {
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Free courts per slot for one day",
                "parameters": [
                    {"name": "complexId", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, defaults to today"},
                    {"name": "sportTypeId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/slot": {
            "get": {
                "tags": ["Availability"],
                "summary": "Free courts for one slot",
                "parameters": [
                    {"name": "complexId", "in": "query", "required": true, "type": "string"},
                    {"name": "schedule", "in": "query", "required": true, "type": "string", "description": "HH:MM - HH:MM"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "sportTypeId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reservations/day": {
            "get": {
                "tags": ["Availability"],
                "summary": "Reservation detail per slot for one day",
                "parameters": [
                    {"name": "complexId", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "sportTypeId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reserves": {
            "get": {
                "tags": ["Reserves"],
                "summary": "List reserves",
                "parameters": [
                    {"name": "complexId", "in": "query", "required": true, "type": "string"},
                    {"name": "courtId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reserves"],
                "summary": "Book a court",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReserveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reserves/{id}": {
            "get": {
                "tags": ["Reserves"],
                "summary": "Get reserve",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Reserves"],
                "summary": "Cancel reserve",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reserves/{id}/status": {
            "patch": {
                "tags": ["Reserves"],
                "summary": "Transition reserve status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReserveStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/materializer/run": {
            "post": {
                "tags": ["Materializer"],
                "summary": "Trigger fixed-reserve materialization",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/MaterializeRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateReserveRequest": {
            "type": "object",
            "properties": {
                "complex_id": {"type": "string"},
                "court_id": {"type": "string"},
                "date": {"type": "string", "example": "2026-03-14"},
                "schedule": {"type": "string", "example": "18:00 - 19:00"},
                "client_name": {"type": "string"},
                "client_phone": {"type": "string"},
                "price": {"type": "number"},
                "reservation_amount": {"type": "number"},
                "type": {"type": "string", "enum": ["MANUAL", "FIJO", "ONLINE", "TORNEO", "ESCUELA", "EVENTO", "OTRO"]}
            },
            "required": ["complex_id", "court_id", "date", "schedule", "client_name", "type"]
        },
        "UpdateReserveStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["PENDIENTE", "APROBADO", "RECHAZADO", "CANCELADO", "COMPLETADO"]}
            },
            "required": ["status"]
        },
        "MaterializeRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-03-14"},
                "from": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
