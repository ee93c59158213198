package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "StudyCal API",
        "description": "Personalized exam study program generation, checkout, and delivery",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Programs", "description": "Study program generation and retrieval"},
        {"name": "Catalogs", "description": "Exam subject catalogs"},
        {"name": "Checkout", "description": "Order creation and payment webhooks"},
        {"name": "Downloads", "description": "Signed artifact downloads"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/programs": {
            "post": {
                "tags": ["Programs"],
                "summary": "Generate a study program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateProgramRequest"}}
                ],
                "responses": {
                    "201": {"description": "Program created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get a program by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Program", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Programs"],
                "summary": "Delete a program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/programs/{id}/summary": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get a program summary by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Program summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogs": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List supported exam types",
                "responses": {
                    "200": {"description": "Exam types", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogs/{examType}": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "Get the subject catalog for an exam type",
                "parameters": [
                    {"name": "examType", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Catalog", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown exam type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/orders": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Create a checkout order",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Order created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/orders/{id}": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Get order status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Order", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/orders/{id}/program": {
            "get": {
                "tags": ["Checkout"],
                "summary": "Get the program purchased through an order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Program", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "402": {"description": "Payment required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/checkout/webhook": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Payment provider webhook",
                "responses": {
                    "200": {"description": "Acknowledged"},
                    "401": {"description": "Invalid signature"}
                }
            }
        },
        "/downloads/{token}": {
            "get": {
                "tags": ["Downloads"],
                "summary": "Download a program artifact by signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Artifact stream"},
                    "403": {"description": "Invalid token"},
                    "410": {"description": "Expired link"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime metrics",
                "responses": {
                    "200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateProgramRequest": {
            "type": "object",
            "required": ["examType", "examDate", "studentName", "email"],
            "properties": {
                "examType": {"type": "string", "example": "YKS"},
                "examDate": {"type": "string", "example": "2026-06-20"},
                "startDate": {"type": "string", "example": "2026-01-05"},
                "studentName": {"type": "string"},
                "email": {"type": "string"},
                "title": {"type": "string"},
                "topicRatings": {"type": "object"},
                "subjectPriorities": {"type": "array", "items": {"type": "string"}},
                "dailyStudyHours": {"type": "integer"},
                "weekendStudyHours": {"type": "integer"},
                "includeBreaks": {"type": "boolean"}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "required": ["request"],
            "properties": {
                "request": {"$ref": "#/definitions/GenerateProgramRequest"}
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
                "pagination": {"type": "object"},
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
