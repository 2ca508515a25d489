// Package swagger registers the OpenAPI document served under /swagger.
package swagger

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
        "/search": {
            "get": {
                "tags": [
                    "search"
                ],
                "summary": "Search cards",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Index unavailable"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Compact query",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Name words",
                        "name": "name",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Oracle text words",
                        "name": "oracle",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Type line words",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Color letters WUBRGCM",
                        "name": "colors",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Color identity letters WUBRGCM",
                        "name": "identity",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma separated rarities",
                        "name": "rarity",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma separated set codes",
                        "name": "set",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma separated card types",
                        "name": "types",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Mana cost fragment",
                        "name": "manaCost",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum mana value",
                        "name": "mvMin",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Maximum mana value",
                        "name": "mvMax",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum power",
                        "name": "powerMin",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Maximum power",
                        "name": "powerMax",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Minimum toughness",
                        "name": "toughnessMin",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Maximum toughness",
                        "name": "toughnessMax",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Artist fragment",
                        "name": "artist",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Flavor text fragment",
                        "name": "flavor",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sort key",
                        "name": "sortKey",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "asc or desc",
                        "name": "sortDir",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Legacy sort",
                        "name": "sort",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Results to skip",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/cards/{canonicalKey}": {
            "get": {
                "tags": [
                    "search"
                ],
                "summary": "Card detail",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "503": {
                        "description": "Index unavailable"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Canonical key",
                        "name": "canonicalKey",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/sets": {
            "get": {
                "tags": [
                    "catalog"
                ],
                "summary": "List sets",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/printings/{id}": {
            "get": {
                "tags": [
                    "catalog"
                ],
                "summary": "Printing detail",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Printing id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/printings/{id}/canonical": {
            "get": {
                "tags": [
                    "catalog"
                ],
                "summary": "Canonical key of a printing",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Printing id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/printings/{id}/rulings": {
            "get": {
                "tags": [
                    "catalog"
                ],
                "summary": "Rulings of a printing",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Printing id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/printings/{id}/legalities": {
            "get": {
                "tags": [
                    "catalog"
                ],
                "summary": "Legalities of a printing",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Printing id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/index/rebuild": {
            "post": {
                "tags": [
                    "index"
                ],
                "summary": "Trigger a rebuild",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "202": {
                        "description": "Accepted"
                    },
                    "409": {
                        "description": "Rebuild in progress"
                    }
                }
            }
        },
        "/index/status": {
            "get": {
                "tags": [
                    "index"
                ],
                "summary": "Rebuild status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/collection": {
            "get": {
                "tags": [
                    "collection"
                ],
                "summary": "Quantities per printing",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated printing ids",
                        "name": "ids",
                        "in": "query"
                    }
                ]
            }
        },
        "/collection/owned": {
            "get": {
                "tags": [
                    "collection"
                ],
                "summary": "Owned cards grouped by canonical key",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/collection/{printingId}": {
            "post": {
                "tags": [
                    "collection"
                ],
                "summary": "Adjust quantities",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad request"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Printing id",
                        "name": "printingId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Quantity deltas",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "delta": {
                                    "type": "integer"
                                },
                                "foilDelta": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                ]
            }
        },
        "/integrity": {
            "get": {
                "tags": [
                    "integrity"
                ],
                "summary": "Run all integrity checks",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "tags": [
                    "integrity"
                ],
                "summary": "Check upstream schema",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/integrity/index": {
            "get": {
                "tags": [
                    "integrity"
                ],
                "summary": "Check index store",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/integrity/app": {
            "get": {
                "tags": [
                    "integrity"
                ],
                "summary": "Check app store",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/integrity/storage": {
            "get": {
                "tags": [
                    "integrity"
                ],
                "summary": "Check storage",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "mana-vault API",
	Description:      "Search, card detail and collection ownership over a canonical Magic: The Gathering card index.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
