package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Vote API",
        "description": "Backend for school student-council elections: access codes, ballots and results.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Voting", "description": "Voting terminal endpoints"},
        {"name": "Config", "description": "School branding"},
        {"name": "Reports", "description": "Turnout and results"},
        {"name": "Admin", "description": "Admin panel, requires x-admin-code"},
        {"name": "System", "description": "Liveness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/check-status": {
            "get": {
                "tags": ["Voting"],
                "summary": "Election status and branding",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusResponse"}},
                    "500": {"description": "Error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/verify-code": {
            "post": {
                "tags": ["Voting"],
                "summary": "Validate an access code before voting",
                "parameters": [
                    {"name": "x-vote-password", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/VerifyCodeResponse"}},
                    "400": {"description": "Malformed code", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Wrong terminal password", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Code already used", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Unknown code", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/cast-vote": {
            "post": {
                "tags": ["Voting"],
                "summary": "Cast a vote",
                "parameters": [
                    {"name": "x-vote-password", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CastVoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CastVoteResponse"}},
                    "400": {"description": "Rejected", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Wrong terminal password", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/get-candidates": {
            "get": {
                "tags": ["Voting"],
                "summary": "List candidates on the ballot",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/config": {
            "get": {
                "tags": ["Config"],
                "summary": "Read school branding",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Branding"}}}
            },
            "post": {
                "tags": ["Config"],
                "summary": "Update school branding",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Branding"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Reports"],
                "summary": "Turnout and results for the admin dashboard",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/monitor": {
            "get": {
                "tags": ["Reports"],
                "summary": "Live participation per course and grade",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/results": {
            "get": {
                "tags": ["Reports"],
                "summary": "Public election results",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Admin"],
                "summary": "Connectivity probe for the admin panel",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/students": {
            "get": {
                "tags": ["Admin"],
                "summary": "List students",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a student",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IDRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "id required", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/admin/candidates": {
            "get": {
                "tags": ["Admin"],
                "summary": "List candidates with vote counts",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create a candidate",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCandidateRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "name required", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "put": {
                "tags": ["Admin"],
                "summary": "Replace a candidate photo",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCandidatePhotoRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a candidate and its votes",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IDRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/election": {
            "post": {
                "tags": ["Admin"],
                "summary": "Open or close the election",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ElectionActionRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid action", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/admin/import": {
            "post": {
                "tags": ["Admin"],
                "summary": "Bulk import students from JSON or an xlsx upload",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ImportStudentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ImportSummary"}},
                    "400": {"description": "Invalid roster", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/reset-codes": {
            "post": {
                "tags": ["Admin"],
                "summary": "Regenerate every access code",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/reset-votes": {
            "post": {
                "tags": ["Admin"],
                "summary": "Reset all votes",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Error", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/admin/clear-data": {
            "post": {
                "tags": ["Admin"],
                "summary": "Delete votes, students and candidates and close the election",
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClearDataRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing confirmation", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/admin/clear-students": {
            "post": {
                "tags": ["Admin"],
                "summary": "Delete every student",
                "parameters": [{"name": "x-admin-code", "in": "header", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download access codes or results",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "x-admin-code", "in": "header", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "required": true, "type": "string", "enum": ["codes", "results"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}, "400": {"description": "Invalid type or format", "schema": {"$ref": "#/definitions/Error"}}}
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "open": {"type": "boolean"},
                "status": {"type": "string"},
                "school_logo": {"type": "string"},
                "school_name": {"type": "string"}
            }
        },
        "Branding": {
            "type": "object",
            "properties": {
                "school_logo_url": {"type": "string"},
                "school_name": {"type": "string"}
            }
        },
        "VerifyCodeRequest": {
            "type": "object",
            "properties": {"access_code": {"type": "string"}}
        },
        "VerifyCodeResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "student": {
                    "type": "object",
                    "properties": {
                        "name": {"type": "string"},
                        "grade": {"type": "integer"},
                        "course": {"type": "integer"}
                    }
                }
            }
        },
        "CastVoteRequest": {
            "type": "object",
            "properties": {
                "access_code": {"type": "string"},
                "candidate_id": {"type": "string"}
            }
        },
        "CastVoteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "student": {"type": "object"}
            }
        },
        "IDRequest": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "CreateCandidateRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "party": {"type": "string"},
                "photo_url": {"type": "string"}
            }
        },
        "UpdateCandidatePhotoRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "photo_url": {"type": "string"}
            }
        },
        "ElectionActionRequest": {
            "type": "object",
            "properties": {"action": {"type": "string", "enum": ["open", "close"]}}
        },
        "ClearDataRequest": {
            "type": "object",
            "properties": {"confirm": {"type": "string"}}
        },
        "ImportStudentsRequest": {
            "type": "object",
            "properties": {
                "students": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "full_name": {"type": "string"},
                            "grade": {"type": "integer"},
                            "course": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "ImportSummary": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "imported": {"type": "integer"},
                "skipped": {"type": "integer"},
                "total": {"type": "integer"},
                "valid": {"type": "integer"},
                "groups": {"type": "integer"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "hasErrors": {"type": "boolean"}
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
