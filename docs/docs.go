// Package docs registers the OpenAPI document served at /swagger/*. It is
// maintained by hand alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts": {
            "get": {
                "description": "Render one page of posts ordered by id.",
                "produces": ["text/html"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Records to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "posts_list page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Create a post owned by the user given in the query string.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"type": "integer", "description": "Owner user ID", "name": "user_id", "in": "query", "required": true},
                    {
                        "description": "New post",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "content": {"type": "string"},
                                "title": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"type": "object", "properties": {"message": {"type": "string"}}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/create": {
            "get": {
                "produces": ["text/html"],
                "tags": ["posts"],
                "summary": "New post form",
                "responses": {
                    "200": {"description": "create_post page", "schema": {"type": "string"}}
                }
            }
        },
        "/posts/edit/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["posts"],
                "summary": "Edit post form",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "edit_post page", "schema": {"type": "string"}},
                    "404": {"description": "not_found page", "schema": {"type": "string"}}
                }
            }
        },
        "/posts/{id}": {
            "put": {
                "description": "Replace the content of a post. Responds with null when the post does not exist.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post content",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "New content", "name": "content", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "properties": {"message": {"type": "string"}}}
                    }
                }
            }
        },
        "/users": {
            "get": {
                "description": "Render one page of users ordered by id.",
                "produces": ["text/html"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Records to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "users_list page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Register a new user. The password is never echoed back.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [
                    {
                        "description": "New user",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.CreateUserInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/edit/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["users"],
                "summary": "Edit user form",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "edit_user page", "schema": {"type": "string"}},
                    "404": {"description": "not_found page", "schema": {"type": "string"}}
                }
            }
        },
        "/users/{id}": {
            "put": {
                "description": "Replace the email of a user. Responds with null when the user does not exist.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user email",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "New email address", "name": "new_email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Delete a user and all of its posts in one transaction.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "properties": {"message": {"type": "string"}}}
                    }
                }
            }
        },
        "/users/{id}/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List a user's posts",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 0, "description": "Records to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}
                    }
                }
            }
        },
        "/ws/events": {
            "get": {
                "description": "WebSocket stream of user and post change events. Each text frame is one JSON event.",
                "tags": ["events"],
                "summary": "Change event stream",
                "parameters": [
                    {"type": "string", "description": "Comma separated resources to follow (users, posts)", "name": "resource", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "switching protocols", "schema": {"type": "string"}},
                    "426": {"description": "Upgrade Required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "service.CreateUserInput": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Postboard API",
	Description:      "Users and posts CRUD backend with HTML list and form pages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
