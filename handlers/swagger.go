package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
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
    <title>INVIROGENS website API</title>
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
  "info": { "title": "invirogens-website", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Product": { "type": "object", "properties": {
        "id": {"type":"integer"}, "name": {"type":"string"}, "slug": {"type":"string"},
        "catalogNumber": {"type":"string","nullable":true}, "category": {"type":"string"},
        "shortDescription": {"type":"string"}, "description": {"type":"string"},
        "components": {"type":"string","nullable":true}, "procedure": {"type":"string","nullable":true},
        "specifications": {"type":"string","nullable":true}, "troubleshooting": {"type":"string","nullable":true},
        "image": {"type":"string"}, "featured": {"type":"boolean"} } },
      "NewsArticle": { "type": "object", "properties": {
        "id": {"type":"integer"}, "title": {"type":"string"}, "slug": {"type":"string"},
        "excerpt": {"type":"string"}, "content": {"type":"string"}, "image": {"type":"string"},
        "publishedAt": {"type":"string","format":"date-time","nullable":true} } },
      "InsertContact": { "type": "object", "required": ["name","email","subject","message"], "properties": {
        "name": {"type":"string"}, "email": {"type":"string","format":"email"}, "company": {"type":"string","nullable":true},
        "subject": {"type":"string"}, "message": {"type":"string"} } },
      "Error": { "type": "object", "properties": { "message": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/products": {
      "get": { "summary": "List products in catalog order", "responses": { "200": { "description": "products", "content": { "application/json": { "schema": {"type":"array","items":{"$ref":"#/components/schemas/Product"}}}}}}}
    },
    "/api/products/{slug}": {
      "get": { "summary": "Get a product by slug", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "product" }, "404": { "description": "Product not found" } } }
    },
    "/api/news": {
      "get": { "summary": "List news articles by publication date", "responses": { "200": { "description": "articles", "content": { "application/json": { "schema": {"type":"array","items":{"$ref":"#/components/schemas/NewsArticle"}}}}}}}
    },
    "/api/news/{slug}": {
      "get": { "summary": "Get a news article by slug", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "article" }, "404": { "description": "Article not found" } } }
    },
    "/api/contact": {
      "post": { "summary": "Submit an inquiry", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/InsertContact"}}}}, "responses": { "201": { "description": "stored contact message" }, "400": { "description": "Invalid form data" }, "429": { "description": "rate limited" } } }
    },
    "/sitemap.xml": { "get": { "summary": "XML sitemap", "responses": { "200": { "description": "urlset" }, "500": { "description": "Failed to generate sitemap" } } } },
    "/robots.txt": { "get": { "summary": "Crawler rules", "responses": { "200": { "description": "robots.txt" } } } },
    "/rss.xml": { "get": { "summary": "News feed", "responses": { "200": { "description": "RSS 2.0" } } } },
    "/media/{key}": { "get": { "summary": "Redirect to a presigned media URL", "responses": { "302": { "description": "redirect" }, "404": { "description": "Media not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
