package services

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"productsapi/internal/models"
	"productsapi/internal/repositories"
)

// EventPublisher publishes product lifecycle events. Implemented by
// pkg/events; a nil publisher disables event publishing.
type EventPublisher interface {
	PublishProductEvent(action string, productID int, product *models.Product) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and persists a new product. The store assigns the
// ID and the default availability.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish("created", product.ID, product)
	return nil
}

// UpdateProduct validates and saves all fields of an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish("updated", product.ID, product)
	return nil
}

// ToggleAvailability flips a product's availability flag and returns the
// updated record.
func (s *ProductService) ToggleAvailability(id int) (*models.Product, error) {
	product, err := s.repo.ToggleAvailability(id)
	if err != nil {
		return nil, err
	}
	s.publish("availability_toggled", id, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", id, nil)
	return nil
}

// publish sends a lifecycle event, best effort. A failed or absent broker
// never fails the request.
func (s *ProductService) publish(action string, id int, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(action, id, product); err != nil {
		log.Printf("Failed to publish product %s event for product %d: %v", action, id, err)
	}
}
