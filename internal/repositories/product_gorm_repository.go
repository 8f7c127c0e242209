package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"productsapi/internal/models"
)

// ErrNotUpdated is returned when an update touches zero rows.
var ErrNotUpdated = errors.New("product not updated")

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns the ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces all fields of an existing product. A plain Save would
// fall back to an upsert when the row is gone, resurrecting deleted ids;
// the selected update emits only an UPDATE, so a missing row surfaces as
// zero rows affected.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotUpdated
	}
	return nil
}

// ToggleAvailability flips the availability flag in a single conditional
// update, so concurrent toggles against the same row cannot interleave.
func (r *GORMProductRepository) ToggleAvailability(id int) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("availability", gorm.Expr("NOT availability"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to toggle availability for product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id int) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
