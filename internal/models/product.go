package models

// Product represents a product in the catalog.
// The store assigns the ID on creation; Availability defaults to true.
type Product struct {
	ID           int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string  `json:"name" gorm:"not null" validate:"required"`
	Price        float64 `json:"price" gorm:"not null" validate:"required,gt=0"`
	Availability bool    `json:"availability" gorm:"not null;default:true"`
}
