// Package docs holds the OpenAPI description of the products API. It is
// pure metadata; nothing here affects runtime behavior.
package docs

import "github.com/gofiber/fiber/v2"

// Handler serves the OpenAPI document as JSON.
func Handler(c *fiber.Ctx) error {
	return c.JSON(openAPI)
}

var productSchema = fiber.Map{
	"type": "object",
	"properties": fiber.Map{
		"id": fiber.Map{
			"type":        "integer",
			"description": "The Product ID",
			"example":     1,
		},
		"name": fiber.Map{
			"type":        "string",
			"description": "The Product name",
			"example":     "49-inch curved monitor",
		},
		"price": fiber.Map{
			"type":        "number",
			"description": "The Product price",
			"example":     300.67,
		},
		"availability": fiber.Map{
			"type":        "boolean",
			"description": "The Product availability",
			"example":     true,
		},
	},
}

var productBody = fiber.Map{
	"required": true,
	"content": fiber.Map{
		"application/json": fiber.Map{
			"schema": fiber.Map{
				"type": "object",
				"properties": fiber.Map{
					"name":  fiber.Map{"type": "string", "example": "49-inch curved monitor"},
					"price": fiber.Map{"type": "number", "example": 300.67},
				},
			},
		},
	},
}

var idParam = fiber.Map{
	"in":          "path",
	"name":        "id",
	"description": "The ID of the product",
	"required":    true,
	"schema":      fiber.Map{"type": "integer"},
}

var openAPI = fiber.Map{
	"openapi": "3.0.3",
	"info": fiber.Map{
		"title":       "REST API Products",
		"version":     "1.0.0",
		"description": "API Docs for Products",
	},
	"tags": []fiber.Map{
		{"name": "Products", "description": "API operations related to products"},
	},
	"components": fiber.Map{
		"schemas": fiber.Map{"Product": productSchema},
	},
	"paths": fiber.Map{
		"/api/products": fiber.Map{
			"get": fiber.Map{
				"summary": "Returns a List of products",
				"tags":    []string{"Products"},
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
				},
			},
			"post": fiber.Map{
				"summary":     "Create a new product",
				"tags":        []string{"Products"},
				"requestBody": productBody,
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
					"400": fiber.Map{"description": "Bad Request - invalid input data"},
				},
			},
		},
		"/api/products/{id}": fiber.Map{
			"get": fiber.Map{
				"summary":    "Returns a product by ID",
				"tags":       []string{"Products"},
				"parameters": []fiber.Map{idParam},
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
					"400": fiber.Map{"description": "Bad Request - Invalid ID"},
					"404": fiber.Map{"description": "Not found"},
				},
			},
			"put": fiber.Map{
				"summary":     "Updates a product with user input",
				"tags":        []string{"Products"},
				"parameters":  []fiber.Map{idParam},
				"requestBody": productBody,
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
					"400": fiber.Map{"description": "Bad Request - Invalid ID or invalid input data"},
					"404": fiber.Map{"description": "Product Not Found"},
				},
			},
			"patch": fiber.Map{
				"summary":    "Update product availability",
				"tags":       []string{"Products"},
				"parameters": []fiber.Map{idParam},
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
					"400": fiber.Map{"description": "Bad Request - Invalid ID"},
					"404": fiber.Map{"description": "Product Not Found"},
				},
			},
			"delete": fiber.Map{
				"summary":    "Delete a product in the database",
				"tags":       []string{"Products"},
				"parameters": []fiber.Map{idParam},
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Successful response"},
					"400": fiber.Map{"description": "Bad Request - Invalid ID"},
					"404": fiber.Map{"description": "Product Not Found"},
				},
			},
		},
	},
}
