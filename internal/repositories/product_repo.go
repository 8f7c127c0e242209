package repositories

import (
	"errors"

	"productsapi/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a stored product.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	ToggleAvailability(id int) (*models.Product, error)
	Delete(id int) error
}
