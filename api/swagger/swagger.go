package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Admissions API",
        "description": "Admission-cycle management: applicant intake, competitive lists and passing scores",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Applicants", "description": "Applicant pool management"},
        {"name": "Lists", "description": "Competitive-list snapshots per program and date"},
        {"name": "Admission", "description": "Derived passing scores and rankings"},
        {"name": "Export", "description": "CSV, XLSX and PDF downloads"}
    ],
    "paths": {
        "/applicants": {
            "get": {
                "tags": ["Applicants"],
                "summary": "List applicants",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Applicants"],
                "summary": "Add one applicant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplicantInput"}}
                ],
                "responses": {
                    "200": {"description": "Duplicate identity, stored record returned"},
                    "201": {"description": "Created"}
                }
            },
            "delete": {
                "tags": ["Applicants"],
                "summary": "Delete every applicant",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/applicants/bulk": {
            "post": {
                "tags": ["Applicants"],
                "summary": "Add many applicants",
                "parameters": [
                    {"name": "auto_priority", "in": "query", "type": "boolean"},
                    {"name": "replace", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "Merge result"}}
            }
        },
        "/applicants/import": {
            "post": {
                "tags": ["Applicants"],
                "summary": "Import applicants from a CSV or XLSX file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "auto_priority", "in": "query", "type": "boolean"},
                    {"name": "replace", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Merge result"},
                    "400": {"description": "Unsupported format or missing columns"}
                }
            }
        },
        "/applicants/stats": {
            "get": {
                "tags": ["Applicants"],
                "summary": "Applicant pool statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applicants/{id}": {
            "patch": {
                "tags": ["Applicants"],
                "summary": "Update consent or priority",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["Applicants"],
                "summary": "Delete one applicant",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/lists": {
            "get": {
                "tags": ["Lists"],
                "summary": "List competitive-list entries",
                "parameters": [
                    {"name": "program", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Lists"],
                "summary": "Delete every competitive-list entry",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/lists/load": {
            "post": {
                "tags": ["Lists"],
                "summary": "Replace one (program, date) slice with a snapshot",
                "responses": {"200": {"description": "Reconciliation counts"}}
            }
        },
        "/lists/import": {
            "post": {
                "tags": ["Lists"],
                "summary": "Import competitive lists from an XLSX workbook",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {"200": {"description": "Per-sheet reconciliation counts"}}
            }
        },
        "/programs": {
            "get": {
                "tags": ["Lists"],
                "summary": "List the program catalog",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admission/passing-scores": {
            "get": {
                "tags": ["Admission"],
                "summary": "Passing scores for one admission date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admission/ranked": {
            "get": {
                "tags": ["Admission"],
                "summary": "One program's list in competitive order",
                "parameters": [
                    {"name": "program", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/export/applicants": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the applicant pool as CSV",
                "responses": {"200": {"description": "CSV file"}}
            }
        },
        "/export/lists": {
            "get": {
                "tags": ["Export"],
                "summary": "Download competitive lists as CSV or XLSX",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "program", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/export/passing-scores": {
            "get": {
                "tags": ["Export"],
                "summary": "Download passing scores as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "File"}}
            }
        }
    },
    "definitions": {
        "ApplicantInput": {
            "type": "object",
            "required": ["full_name"],
            "properties": {
                "full_name": {"type": "string"},
                "math_score": {"type": "integer"},
                "russian_score": {"type": "integer"},
                "informatics_score": {"type": "integer"},
                "priority": {"type": "integer"},
                "consent": {"type": "boolean"},
                "program": {"type": "string"}
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
