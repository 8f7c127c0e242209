package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/internal/validation"
)

const (
	msgNotFound      = "Product not Found"
	msgInternalError = "Internal Server Error: Something went wrong."
	msgNotUpdated    = "Internal Server Error: The product was not updated."
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Each
// mutating route is wired as: validation rules, gate, handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	idRule := func() *validation.Rule {
		return validation.Param("id").IsInt("Invalid ID")
	}
	nameRule := func() *validation.Rule {
		return validation.Body("name").NotEmpty("Product name can't be empty")
	}
	priceRule := func() *validation.Rule {
		return validation.Body("price").
			IsNumeric("Invalid Value").
			NotEmpty("Product price can't be empty").
			GreaterThan(0, "Invalid Price")
	}

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id",
		validation.Gate(idRule()),
		h.HandleGetProductByID)
	productRoutes.Post("/",
		validation.Gate(nameRule(), priceRule()),
		h.HandleCreateProduct)
	productRoutes.Put("/:id",
		validation.Gate(
			idRule(),
			nameRule(),
			priceRule(),
			validation.Body("availability").IsBoolean("Invalid Value for availability"),
		),
		h.HandleUpdateProduct)
	productRoutes.Patch("/:id",
		validation.Gate(idRule()),
		h.HandleToggleAvailability)
	productRoutes.Delete("/:id",
		validation.Gate(idRule()),
		h.HandleDeleteProduct)
}

// productRequest represents the mutable product fields accepted in a body.
type productRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": msgNotFound,
			})
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product from the request body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product := models.Product{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces all mutable fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": msgNotFound,
			})
		}
		log.Printf("Error fetching product %d for update: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Availability = req.Availability

	if err := h.service.UpdateProduct(product); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		if errors.Is(err, repositories.ErrNotUpdated) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": msgNotUpdated,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips a product's availability flag. No body
// fields are read.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	product, err := h.service.ToggleAvailability(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": msgNotFound,
			})
		}
		log.Printf("Error toggling availability for product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product after confirming it exists.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	if _, err := h.service.GetProductByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": msgNotFound,
			})
		}
		log.Printf("Error fetching product %d for deletion: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": msgNotFound,
			})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternalError,
		})
	}
	return c.JSON(fiber.Map{"data": "Product deleted."})
}
