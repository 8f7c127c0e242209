package repositories

import (
	"fmt"

	"productsapi/internal/models"
)

// UnavailableProductRepository stands in for the store when the database
// could not be reached at startup. Every operation fails with the original
// connection error, so the process keeps serving and each request surfaces
// the outage as a storage failure.
type UnavailableProductRepository struct {
	cause error
}

// NewUnavailableProductRepository wraps the startup connection error.
func NewUnavailableProductRepository(cause error) *UnavailableProductRepository {
	return &UnavailableProductRepository{cause: cause}
}

func (r *UnavailableProductRepository) err() error {
	return fmt.Errorf("database unavailable: %w", r.cause)
}

func (r *UnavailableProductRepository) GetAll() ([]models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) GetByID(id int) (*models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) Create(product *models.Product) error {
	return r.err()
}

func (r *UnavailableProductRepository) Update(product *models.Product) error {
	return r.err()
}

func (r *UnavailableProductRepository) ToggleAvailability(id int) (*models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) Delete(id int) error {
	return r.err()
}
