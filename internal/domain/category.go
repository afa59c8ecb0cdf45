package domain

// Category labels a transaction
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"` // Unique label
}

// TableName of the category table
func (Category) TableName() string { return "category" }
