package product

import (
	"fmt"

	"crm_system/constants"
	"crm_system/custom/apperr"
	"crm_system/custom/util"
	"crm_system/custom/validate"
	"crm_system/model"

	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestockPolicy Threshold and quantity used by UpdateLowStockProducts,
// injected at construction instead of hard-coded.
type RestockPolicy struct {
	Threshold int
	Amount    int
}

type HandlerContext struct {
	db      *gorm.DB
	restock RestockPolicy
}

func (ctx *HandlerContext) InitialHandlerContext(db *gorm.DB, restock RestockPolicy) {
	if restock.Threshold <= 0 {
		restock.Threshold = constants.DEFAULT_RESTOCK_THRESHOLD
	}
	if restock.Amount <= 0 {
		restock.Amount = constants.DEFAULT_RESTOCK_AMOUNT
	}
	ctx.db = db
	ctx.restock = restock
}

type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

// CreateProduct Create a new product, price must be positive and stock
// non-negative (default 0).
func (ctx *HandlerContext) CreateProduct(input CreateProductInput) (*model.Product, error) {
	// Validate payload
	if input.Name == "" {
		return nil, apperr.Validation(constants.NAME_REQUIRED)
	}
	if !validate.Price(input.Price) {
		return nil, apperr.Validation(constants.INVALID_PRICE)
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if !validate.Stock(stock) {
		return nil, apperr.Validation(constants.INVALID_STOCK)
	}

	newProduct := model.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}
	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&newProduct).Error
	})
	if errDb != nil {
		rlog.Error("Create product fail:", errDb.Error())
		return nil, errDb
	}

	rlog.Infof("Product %d (%s) was created", newProduct.ID, newProduct.Name)
	return &newProduct, nil
}

type RestockResult struct {
	Products []model.Product `json:"products"`
	Message  string          `json:"message"`
}

// UpdateLowStockProducts Restock every product with stock strictly below
// the configured threshold by the configured amount. A second call right
// after finds nothing below threshold and updates zero products.
func (ctx *HandlerContext) UpdateLowStockProducts() (*RestockResult, error) {
	updated := make([]model.Product, 0)
	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		lowStock := make([]model.Product, 0)
		if errTx := tx.Where("stock < ?", ctx.restock.Threshold).Find(&lowStock).Error; errTx != nil {
			return errTx
		}
		for i := range lowStock {
			lowStock[i].Stock += ctx.restock.Amount
			errTx := tx.Model(&model.Product{}).Where("id = ?", lowStock[i].ID).
				Update("stock", lowStock[i].Stock).Error
			if errTx != nil {
				return errTx
			}
			updated = append(updated, lowStock[i])
		}
		return nil
	})
	if errDb != nil {
		rlog.Error("Update low stock products fail:", errDb.Error())
		return nil, errDb
	}

	rlog.Infof("Restocked %d products", len(updated))
	return &RestockResult{
		Products: updated,
		Message:  fmt.Sprintf("Restocked %d products", len(updated)),
	}, nil
}

type ProductFilter struct {
	Name     *string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
	OrderBy  *string
	First    *int
}

var sortableProductFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

// ListProducts Filtered product listing.
func (ctx *HandlerContext) ListProducts(filter ProductFilter) ([]model.Product, error) {
	query := ctx.db.Model(&model.Product{})
	if filter.Name != nil {
		query = query.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.PriceGte != nil {
		query = query.Where("price >= ?", *filter.PriceGte)
	}
	if filter.PriceLte != nil {
		query = query.Where("price <= ?", *filter.PriceLte)
	}
	if filter.StockGte != nil {
		query = query.Where("stock >= ?", *filter.StockGte)
	}
	if filter.StockLte != nil {
		query = query.Where("stock <= ?", *filter.StockLte)
	}
	if filter.OrderBy != nil {
		clause, err := util.OrderClause(*filter.OrderBy, sortableProductFields)
		if err != nil {
			return nil, err
		}
		query = query.Order(clause)
	}
	if filter.First != nil && *filter.First > 0 {
		query = query.Limit(*filter.First)
	}

	products := make([]model.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		rlog.Error("List products fail:", err.Error())
		return nil, err
	}
	return products, nil
}
