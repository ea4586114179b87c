package handlers

import (
	"net/http"

	"github.com/evsuite/chargepoint-server/internal/models"
	"github.com/gin-gonic/gin"
)

// SchemaHandler generates the OpenAPI document from the static field
// descriptors the models expose. No resource behavior depends on it.
type SchemaHandler struct{}

func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// GET /api/schema
func (h *SchemaHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, buildOpenAPI())
}

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>ChargePoint API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/api/schema", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`

// GET /api/docs
func (h *SchemaHandler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
}

func propertySchema(f models.FieldDescriptor) gin.H {
	prop := gin.H{"type": f.Type}
	if f.ReadOnly {
		prop["readOnly"] = true
	}
	if f.Nullable {
		prop["nullable"] = true
	}
	if f.MaxLength > 0 {
		prop["maxLength"] = f.MaxLength
	}
	if len(f.Enum) > 0 {
		prop["enum"] = f.Enum
	}
	return prop
}

func objectSchema(fields []models.FieldDescriptor) gin.H {
	properties := gin.H{}
	var required []string
	for _, f := range fields {
		properties[f.Name] = propertySchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	schema := gin.H{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func buildOpenAPI() gin.H {
	cpFields := models.ChargePointFields()
	cpSchema := objectSchema(cpFields)
	cpSchema["properties"].(gin.H)["connectors"] = gin.H{
		"type":     "array",
		"readOnly": true,
		"items":    gin.H{"$ref": "#/components/schemas/Connector"},
	}

	params := make([]gin.H, 0, len(models.ListParams()))
	for _, p := range models.ListParams() {
		params = append(params, gin.H{
			"name":        p.Name,
			"in":          "query",
			"required":    false,
			"description": p.Description,
			"schema":      gin.H{"type": p.Type},
		})
	}

	envelope := func(dataRef interface{}) gin.H {
		return gin.H{
			"type": "object",
			"properties": gin.H{
				"code":    gin.H{"type": "integer"},
				"message": gin.H{"type": "string"},
				"data":    dataRef,
				"errors":  gin.H{"nullable": true},
			},
		}
	}

	itemRef := gin.H{"$ref": "#/components/schemas/ChargePoint"}
	pageRef := gin.H{"$ref": "#/components/schemas/ChargePointPage"}

	jsonBody := func(schema gin.H) gin.H {
		return gin.H{"content": gin.H{"application/json": gin.H{"schema": schema}}}
	}

	return gin.H{
		"openapi": "3.0.3",
		"info": gin.H{
			"title":   "ChargePoint API",
			"version": "v1",
		},
		"paths": gin.H{
			"/api/v1/chargepoint": gin.H{
				"get": gin.H{
					"operationId": "chargepoints.list",
					"tags":        []string{"chargepoints"},
					"parameters":  params,
					"responses":   gin.H{"200": jsonBody(envelope(pageRef))},
				},
				"post": gin.H{
					"operationId": "chargepoints.create",
					"tags":        []string{"chargepoints"},
					"requestBody": jsonBody(itemRef),
					"responses":   gin.H{"201": jsonBody(envelope(itemRef))},
				},
			},
			"/api/v1/chargepoint/{id}": gin.H{
				"get": gin.H{
					"operationId": "chargepoints.retrieve",
					"tags":        []string{"chargepoints"},
					"responses":   gin.H{"200": jsonBody(envelope(itemRef))},
				},
				"put": gin.H{
					"operationId": "chargepoints.update",
					"tags":        []string{"chargepoints"},
					"requestBody": jsonBody(itemRef),
					"responses":   gin.H{"200": jsonBody(envelope(itemRef))},
				},
				"patch": gin.H{
					"operationId": "chargepoints.partial_update",
					"tags":        []string{"chargepoints"},
					"requestBody": jsonBody(itemRef),
					"responses":   gin.H{"200": jsonBody(envelope(itemRef))},
				},
				"delete": gin.H{
					"operationId": "chargepoints.destroy",
					"tags":        []string{"chargepoints"},
					"responses":   gin.H{"204": gin.H{"description": "No Content"}},
				},
			},
		},
		"components": gin.H{
			"schemas": gin.H{
				"ChargePoint": cpSchema,
				"Connector":   objectSchema(models.ConnectorFields()),
				"ChargePointPage": gin.H{
					"type": "object",
					"properties": gin.H{
						"count":    gin.H{"type": "integer"},
						"next":     gin.H{"type": "string", "nullable": true},
						"previous": gin.H{"type": "string", "nullable": true},
						"results":  gin.H{"type": "array", "items": itemRef},
					},
				},
			},
		},
	}
}
