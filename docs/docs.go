// Package docs registers the OpenAPI description served under /swagger/.
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
        "/api/maze": {
            "post": {
                "description": "Generates a maze (or one per player in individual mode), runs all players in parallel and ranks the results.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Run every player and rank them",
                "parameters": [
                    {"description": "Players and maze settings", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.runTournamentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TournamentResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/maze/generate": {
            "get": {
                "description": "Builds a square maze with a guaranteed route from the top-left to the bottom-right cell. The same size and seed always give the same maze.",
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Generate a maze",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Side length, 5 to 20", "name": "size", "in": "query"},
                    {"type": "string", "description": "Seed for a reproducible maze", "name": "seed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.GeneratedMaze"}},
                    "400": {"description": "InvalidSize", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "GenerationRetryExhausted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/maze/solve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Shortest route through a maze",
                "parameters": [
                    {"description": "Maze to solve", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.solveMazeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/maze.Solution"}},
                    "400": {"description": "MalformedGrid", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/maze/run": {
            "post": {
                "description": "Plays the player through the given maze and records the run in the history.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Run one player through a maze",
                "parameters": [
                    {"description": "Player and maze", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.runPlayerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RunPlayerOutput"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/maze/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Recent runs",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.RunRecord"}}}}
                }
            }
        },
        "/api/maze/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Every stored run",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RunRecord"}}}
                }
            }
        },
        "/api/maze/rankings": {
            "get": {
                "description": "Completed runs first, then higher reward, then fewer steps.",
                "produces": ["application/json"],
                "tags": ["maze"],
                "summary": "Stored runs ranked",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RunRecord"}}}
                }
            }
        },
        "/api/bracket": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bracket"],
                "summary": "Latest bracket",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Bracket"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Players are ordered best to worst; the first player is seed 1.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bracket"],
                "summary": "Build a bracket from a ranking",
                "parameters": [
                    {"description": "Ranked players and optional format (SingleElimination or FixedSeeding)", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.buildBracketRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Bracket"}},
                    "400": {"description": "InsufficientPlayers, DuplicateOrEmptyName or UnknownFormat", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/bracket/tree": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bracket"],
                "summary": "Latest bracket as a match tree",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/bracket/match": {
            "put": {
                "description": "Sets the winner of the match at a dotted tree path such as root.left.right. Later rounds are not recomputed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bracket"],
                "summary": "Override a match winner",
                "parameters": [
                    {"description": "Match path and winner name", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.updateMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "InvalidMatchPath or WinnerNotInMatch", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws/bracket": {
            "get": {
                "tags": ["bracket"],
                "summary": "Live bracket updates",
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.buildBracketRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string"},
                "players": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.runPlayerRequest": {
            "type": "object",
            "properties": {
                "maze": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "playerName": {"type": "string"},
                "seed": {"type": "string"},
                "strategy": {"type": "string"}
            }
        },
        "handlers.runTournamentRequest": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "players": {"type": "array", "items": {"type": "string"}},
                "seed": {"type": "string"},
                "size": {"type": "integer"},
                "strategy": {"type": "string"}
            }
        },
        "handlers.solveMazeRequest": {
            "type": "object",
            "properties": {
                "maze": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}}
            }
        },
        "handlers.updateMatchRequest": {
            "type": "object",
            "properties": {
                "matchPath": {"type": "string"},
                "winner": {"type": "string"}
            }
        },
        "maze.Solution": {
            "type": "object",
            "properties": {
                "path": {"type": "array", "items": {"$ref": "#/definitions/models.Position"}},
                "reachedEnd": {"type": "boolean"},
                "score": {"type": "integer"}
            }
        },
        "models.Bracket": {
            "type": "object",
            "properties": {
                "players": {"type": "array", "items": {"$ref": "#/definitions/models.Seed"}},
                "rounds": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/models.Match"}}},
                "winner": {"type": "string"}
            }
        },
        "models.Match": {
            "type": "object",
            "properties": {
                "player1": {"$ref": "#/definitions/models.Seed"},
                "player2": {"$ref": "#/definitions/models.Seed"},
                "round": {"type": "integer"},
                "winner": {"$ref": "#/definitions/models.Seed"}
            }
        },
        "models.PlayerResult": {
            "type": "object",
            "properties": {
                "maze": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "name": {"type": "string"},
                "path": {"type": "array", "items": {"$ref": "#/definitions/models.Position"}},
                "pathLength": {"type": "integer"},
                "rank": {"type": "integer"},
                "reachedEnd": {"type": "boolean"},
                "seed": {"type": "string"},
                "totalReward": {"type": "integer"}
            }
        },
        "models.Position": {
            "type": "object",
            "properties": {
                "x": {"type": "integer"},
                "y": {"type": "integer"}
            }
        },
        "models.RunRecord": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "id": {"type": "string"},
                "mazeSize": {"type": "integer"},
                "playerName": {"type": "string"},
                "rank": {"type": "integer"},
                "stepsTaken": {"type": "integer"},
                "timestamp": {"type": "string"},
                "totalReward": {"type": "integer"}
            }
        },
        "models.Seed": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "seed": {"type": "integer"}
            }
        },
        "services.GeneratedMaze": {
            "type": "object",
            "properties": {
                "maze": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "seed": {"type": "string"}
            }
        },
        "services.RunPlayerOutput": {
            "type": "object",
            "properties": {
                "record": {"$ref": "#/definitions/models.RunRecord"},
                "result": {"$ref": "#/definitions/models.PlayerResult"}
            }
        },
        "services.TournamentResult": {
            "type": "object",
            "properties": {
                "maze": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "mode": {"type": "string"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerResult"}},
                "seed": {"type": "string"}
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
	Title:            "Maze Tournament API",
	Description:      "Maze generation, player runs and seeded single-elimination brackets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
