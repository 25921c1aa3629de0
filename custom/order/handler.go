package order

import (
	"errors"
	"time"

	"crm_system/constants"
	"crm_system/custom/apperr"
	"crm_system/custom/util"
	"crm_system/model"

	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HandlerContext struct {
	db *gorm.DB
}

func (ctx *HandlerContext) InitialHandlerContext(db *gorm.DB) {
	ctx.db = db
}

type CreateOrderInput struct {
	CustomerId uint
	ProductIds []uint
	OrderDate  *time.Time
}

// CreateOrder Create an order inside one transaction: customer lookup,
// per-id product resolution (fail fast on the first missing id), decimal
// total accumulation, order insert and product association. TotalAmount is
// the sum of the resolved prices at creation time; duplicate product ids
// each count toward the total but map to a single association row.
func (ctx *HandlerContext) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	newOrder := model.Order{}
	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		orderCustomer := model.Customer{}
		if errTx := tx.First(&orderCustomer, input.CustomerId).Error; errTx != nil {
			if errors.Is(errTx, gorm.ErrRecordNotFound) {
				return apperr.NotFound(constants.INVALID_CUSTOMER_ID)
			}
			return errTx
		}

		if len(input.ProductIds) == 0 {
			return apperr.Validation(constants.NO_PRODUCT_IDS)
		}

		totalAmount := decimal.Zero
		resolved := make([]model.Product, 0, len(input.ProductIds))
		for _, productId := range input.ProductIds {
			orderProduct := model.Product{}
			if errTx := tx.First(&orderProduct, productId).Error; errTx != nil {
				if errors.Is(errTx, gorm.ErrRecordNotFound) {
					return apperr.NotFound("%s: %d", constants.INVALID_PRODUCT_ID, productId)
				}
				return errTx
			}
			totalAmount = totalAmount.Add(orderProduct.Price)
			resolved = append(resolved, orderProduct)
		}

		orderDate := time.Now()
		if input.OrderDate != nil {
			orderDate = *input.OrderDate
		}
		newOrder = model.Order{
			CustomerId:  orderCustomer.ID,
			TotalAmount: totalAmount,
			OrderDate:   orderDate,
			Products:    dedupeProducts(resolved),
		}
		// Omit("Products.*") writes the join rows without re-saving the
		// product records themselves.
		if errTx := tx.Omit("Products.*").Create(&newOrder).Error; errTx != nil {
			return errTx
		}
		newOrder.Customer = orderCustomer
		return nil
	})
	if errDb != nil {
		rlog.Error("Create order fail:", errDb.Error())
		return nil, errDb
	}

	rlog.Infof("Order %d was created for customer %d, total %s",
		newOrder.ID, newOrder.CustomerId, newOrder.TotalAmount.StringFixed(2))
	return &newOrder, nil
}

func dedupeProducts(products []model.Product) []model.Product {
	seen := make(map[uint]bool, len(products))
	deduped := make([]model.Product, 0, len(products))
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

type OrderFilter struct {
	CustomerId   *uint
	OrderDateGte *time.Time
	OrderDateLte *time.Time
	OrderBy      *string
	First        *int
}

var sortableOrderFields = map[string]string{
	"id":          "id",
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
}

// ListOrders Filtered order listing with customer and products preloaded.
func (ctx *HandlerContext) ListOrders(filter OrderFilter) ([]model.Order, error) {
	query := ctx.db.Model(&model.Order{}).Preload("Customer").Preload("Products")
	if filter.CustomerId != nil {
		query = query.Where("customer_id = ?", *filter.CustomerId)
	}
	if filter.OrderDateGte != nil {
		query = query.Where("order_date >= ?", *filter.OrderDateGte)
	}
	if filter.OrderDateLte != nil {
		query = query.Where("order_date <= ?", *filter.OrderDateLte)
	}
	if filter.OrderBy != nil {
		clause, err := util.OrderClause(*filter.OrderBy, sortableOrderFields)
		if err != nil {
			return nil, err
		}
		query = query.Order(clause)
	}
	if filter.First != nil && *filter.First > 0 {
		query = query.Limit(*filter.First)
	}

	orders := make([]model.Order, 0)
	if err := query.Find(&orders).Error; err != nil {
		rlog.Error("List orders fail:", err.Error())
		return nil, err
	}
	return orders, nil
}
