// Package docs Region Map Service API.
//
// Регистрирует описание API для swaggo/fiber-swagger. Пересобирается через swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "API Support"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {"tags": ["System"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions": {
            "post": {"tags": ["Sessions"], "summary": "Открыть сессию карты", "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/sessions/{id}": {
            "get": {"tags": ["Sessions"], "summary": "Состояние сессии", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "SESSION_NOT_FOUND"}}},
            "delete": {"tags": ["Sessions"], "summary": "Закрыть сессию",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "SESSION_NOT_FOUND"}}}
        },
        "/api/v1/sessions/{id}/select/region": {
            "post": {"tags": ["Sessions"], "summary": "Выбрать регион", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "INVALID_REQUEST"}, "404": {"description": "REGION_NOT_FOUND"}}}
        },
        "/api/v1/sessions/{id}/select/subregion": {
            "post": {"tags": ["Sessions"], "summary": "Выбрать район", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "REGION_NOT_FOUND"}, "409": {"description": "NO_ACTIVE_PARENT or SUBREGION_OUTSIDE_PARENT"}}}
        },
        "/api/v1/sessions/{id}/search": {
            "post": {"tags": ["Sessions"], "summary": "Поиск с выбором", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SearchRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "EMPTY_QUERY"}, "404": {"description": "NO_MATCH"}}}
        },
        "/api/v1/sessions/{id}/clear": {
            "post": {"tags": ["Sessions"], "summary": "Сбросить выбор", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/layers/regions": {
            "get": {"tags": ["Sessions"], "summary": "Слой регионов", "produces": ["application/geo+json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "GeoJSON FeatureCollection"}}}
        },
        "/api/v1/sessions/{id}/layers/subregions": {
            "get": {"tags": ["Sessions"], "summary": "Слой районов", "produces": ["application/geo+json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "GeoJSON FeatureCollection"}}}
        },
        "/api/v1/search/suggest": {
            "get": {"tags": ["Search"], "summary": "Автодополнение по регионам и районам", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "EMPTY_QUERY"}}}
        },
        "/api/v1/stats/{name}": {
            "get": {"tags": ["Statistics"], "summary": "Панель статистики региона", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/stats/refresh": {
            "post": {"tags": ["Statistics"], "summary": "Перезагрузить статистику", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "STATS_UNAVAILABLE"}}}
        },
        "/api/v1/hierarchy/children": {
            "get": {"tags": ["Hierarchy"], "summary": "Следующий уровень иерархии", "produces": ["application/json"],
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "path", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "dto.SelectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 200}}
        },
        "dto.SearchRequest": {
            "type": "object",
            "properties": {"query": {"type": "string", "maxLength": 200}, "submit": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Region Map Service API",
	Description:      "Интерактивная карта административных регионов: выбор, раскраска, статистика и погода.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
