// Package docs регистрирует swagger-документ API. Шаблон ведётся вручную
// вместе с аннотациями хендлеров.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход администратора",
                "parameters": [
                    {"description": "Учётные данные", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/time-slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Сетка временных слотов",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds": {
            "get": {
                "produces": ["application/json"],
                "tags": ["playgrounds"],
                "summary": "Список площадок",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["playgrounds"],
                "summary": "Площадка с группами и командами",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/playgrounds/{playgroundID}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Таблицы групп",
                "parameters": [
                    {"type": "integer", "name": "playgroundID", "in": "path", "required": true},
                    {"type": "string", "description": "group_stage (по умолчанию), play_in, finals или all", "name": "phase", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/playgrounds/{playgroundID}/teams/{teamID}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Статистика команды",
                "parameters": [
                    {"type": "integer", "name": "playgroundID", "in": "path", "required": true},
                    {"type": "integer", "name": "teamID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/playgrounds/{playgroundID}/qualification": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Прямые квалификанты и пул плей-ина",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}/play-in": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Матчи и победители плей-ина",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}/bracket": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Сетка плей-офф",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}/calendar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Матчи по игровым дням",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}/top-scorers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Лучшие игроки по сумме очков",
                "parameters": [
                    {"type": "integer", "name": "playgroundID", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query", "description": "по умолчанию 10, 0 - всех"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/playgrounds/{playgroundID}/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Игроки площадки",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/playgrounds/{playgroundID}/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Матчи площадки",
                "parameters": [
                    {"type": "integer", "name": "playgroundID", "in": "path", "required": true},
                    {"type": "integer", "name": "day", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/playgrounds": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Создать площадку",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/groups": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Создать группу",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/teams": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Создать команду",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/matches": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Создать матч",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/schedule": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Сгенерировать групповой этап",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/publish": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Опубликовать снимок в хранилище",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Снять опубликованные документы",
                "parameters": [{"type": "integer", "name": "playgroundID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/admin/playgrounds/{playgroundID}/players": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["players"],
                "summary": "Добавить игрока в заявку команды",
                "parameters": [
                    {"type": "integer", "name": "playgroundID", "in": "path", "required": true},
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreatePlayerInput"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/matches/{matchID}/player-points": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["players"],
                "summary": "Внести очки игроков за матч",
                "parameters": [
                    {"type": "integer", "name": "matchID", "in": "path", "required": true},
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RecordPlayerPointsInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/players/{playerID}/warnings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "Выдать предупреждение (второе удаляет игрока)",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "Снять предупреждение",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/players/{playerID}/expulsion": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["players"],
                "summary": "Удалить игрока с турнира",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/matches/{matchID}/result": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Записать счёт матча",
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/admin/matches/{matchID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Удалить матч",
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "services.CreatePlayerInput": {
            "type": "object",
            "properties": {
                "team_id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "services.RecordPlayerPointsInput": {
            "type": "object",
            "properties": {
                "points": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "player_id": {"type": "integer"},
                            "points": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "services.LoginInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Playground Standings API",
	Description:      "Групповые таблицы, квалификация, плей-ин и сетка плей-офф площадки 3x3.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
