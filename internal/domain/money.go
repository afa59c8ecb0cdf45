package domain

import (
	"github.com/shopspring/decimal" // Fixed-point arithmetic
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/schema"           // Field metadata
)

// Money is a fixed-point amount persisted without passing through float64.
// It is decimal(19,4) on MySQL and PostgreSQL and TEXT on SQLite, whose
// numeric affinity would otherwise store the value as REAL.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// GormDataType implements schema.GormDataTypeInterface
func (Money) GormDataType() string {
	return "decimal"
}

// GormDBDataType picks the column type per dialect
func (Money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "TEXT"
	}
	return "decimal(19,4)"
}
