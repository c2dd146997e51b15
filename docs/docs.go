// Package docs registra la especificación OpenAPI de la API en swag.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/api/plans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Listar planes",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PlanResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Crear plan",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreatePlanRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PlanResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/plans/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Obtener plan por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PlanResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Actualizar plan",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PlanResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["plans"],
                "summary": "Eliminar plan",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/plans/{id}/features": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Agregar característica al plan",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FeatureDTO"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PlanResponse"}}}
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Quitar característica del plan",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FeatureDTO"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PlanResponse"}}}
            }
        },
        "/api/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Listar empresas",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CompanyResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Crear empresa",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCompanyRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CompanyResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/companies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Obtener empresa por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompanyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Actualizar empresa",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateCompanyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompanyResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["companies"],
                "summary": "Eliminar empresa",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/companies/{id}/subscribe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Suscribir empresa a un plan",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubscribeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompanyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/companies/{id}/cancel-subscription": {
            "post": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Cancelar suscripción activa",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CompanyResponse"}}}
            }
        },
        "/api/companies/{id}/subscriptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Historial de suscripciones",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SubscriptionResponse"}}}}
            }
        },
        "/api/companies/{id}/enterprise-users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Usuarios de la empresa",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}}}}
            }
        },
        "/api/enterprise-users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Listar usuarios",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Crear usuario empresarial",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateEnterpriseUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/enterprise-users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Iniciar sesión",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/enterprise-users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/enterprise-users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Obtener usuario por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["enterprise-users"],
                "summary": "Actualizar usuario",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateEnterpriseUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}}}
            },
            "delete": {
                "tags": ["enterprise-users"],
                "summary": "Eliminar usuario",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.FeatureDTO": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.CreatePlanRequest": {
            "type": "object",
            "required": ["name", "monthly_price", "user_limit"],
            "properties": {
                "name": {"type": "string"},
                "monthly_price": {"type": "string", "example": "29.99"},
                "currency": {"type": "string", "example": "USD"},
                "user_limit": {"type": "integer", "minimum": 1},
                "features": {"type": "array", "items": {"$ref": "#/definitions/dto.FeatureDTO"}}
            }
        },
        "dto.UpdatePlanRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "monthly_price": {"type": "string"},
                "currency": {"type": "string"},
                "user_limit": {"type": "integer", "minimum": 1},
                "features": {"type": "array", "items": {"$ref": "#/definitions/dto.FeatureDTO"}}
            }
        },
        "dto.PlanResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "monthly_price": {"type": "string"},
                "currency": {"type": "string"},
                "user_limit": {"type": "integer"},
                "features": {"type": "array", "items": {"$ref": "#/definitions/dto.FeatureDTO"}}
            }
        },
        "dto.CreateCompanyRequest": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "dto.UpdateCompanyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "dto.SubscribeRequest": {
            "type": "object",
            "required": ["plan_id"],
            "properties": {
                "plan_id": {"type": "integer"}
            }
        },
        "dto.SubscriptionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "plan_id": {"type": "integer"},
                "plan_name": {"type": "string"},
                "starts_at": {"type": "string", "format": "date-time"},
                "ends_at": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["active", "cancelled", "expired", "pending"]}
            }
        },
        "dto.CompanyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "active_subscription": {"$ref": "#/definitions/dto.SubscriptionResponse"},
                "seats_used": {"type": "integer"}
            }
        },
        "dto.CreateEnterpriseUserRequest": {
            "type": "object",
            "required": ["name", "email", "password", "company_id"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "company_id": {"type": "integer"}
            }
        },
        "dto.UpdateEnterpriseUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "dto.EnterpriseUserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "company_id": {"type": "integer"},
                "last_login_at": {"type": "string", "format": "date-time"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/dto.EnterpriseUserResponse"}
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

// SwaggerInfo información de la API expuesta en /docs/doc.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Suscripciones API",
	Description:      "Planes, empresas, suscripciones y usuarios empresariales con límite de asientos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
