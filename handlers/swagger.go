package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>xpres - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "xpres", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Error": { "type": "object", "required": ["error"], "properties": { "error": {"type":"string"}, "details": {"type":"string"} } },
      "Payload": { "type": "object", "minProperties": 1, "additionalProperties": true }
    }
  },
  "paths": {
    "/internal": {
      "get": { "summary": "Bundled data.json, loaded once per process", "responses": { "200": { "description": "{source: require, data}" }, "500": { "description": "load failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}} } } }
    },
    "/internal-async": {
      "get": { "summary": "Bundled data.json, read from disk on every call", "responses": { "200": { "description": "{source: fs.readFile, data}" }, "500": { "description": "read or parse failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}} } } }
    },
    "/external": {
      "get": {
        "summary": "Fetch JSON from any URL and relay it",
        "parameters": [ { "name": "url", "in": "query", "required": false, "schema": {"type":"string"} } ],
        "responses": { "200": { "description": "{source: external, url, data}" }, "502": { "description": "upstream unreachable" }, "default": { "description": "upstream status relayed" } }
      }
    },
    "/receive": {
      "post": {
        "summary": "Save a JSON object as received-<ms>.json",
        "requestBody": { "required": true, "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Payload"} } } },
        "responses": { "201": { "description": "{message, file}" }, "400": { "description": "empty or missing body" }, "500": { "description": "write failed" } }
      }
    },
    "/receive-mongo": {
      "post": {
        "summary": "Insert a JSON object into the received collection",
        "requestBody": { "required": true, "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Payload"} } } },
        "responses": { "201": { "description": "{message, _id}" }, "400": { "description": "empty or missing body" }, "503": { "description": "MongoDB not available" }, "500": { "description": "insert failed" } }
      }
    },
    "/received-mongo": {
      "get": { "summary": "Latest 100 received documents, newest first (bare array)", "responses": { "200": { "description": "array of documents" }, "503": { "description": "MongoDB not available" }, "500": { "description": "read failed" } } }
    }
  }
}`
