package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var ALL_CRM_TABLES []interface{} = []interface{}{
	Customer{}, Product{}, Order{},
}

type Customer struct {
	ID        uint      `json:"id" gorm:"auto_increment;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID        uint            `json:"id" gorm:"auto_increment;primary_key"`
	Name      string          `json:"name" gorm:"index;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock     int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Order owns the rows in the order_products join table; TotalAmount is a
// snapshot of the product prices at creation time and is never recomputed.
type Order struct {
	ID          uint            `json:"id" gorm:"auto_increment;primary_key"`
	CustomerId  uint            `json:"customerId" gorm:"index;not null"`
	Customer    Customer        `json:"-" gorm:"foreignKey:CustomerId"`
	Products    []Product       `json:"-" gorm:"many2many:order_products"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	OrderDate   time.Time       `json:"orderDate" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
