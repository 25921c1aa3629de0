package gql

import (
	"fmt"
	"strconv"
	"time"

	"crm_system/custom/apperr"
	"crm_system/custom/customer"
	"crm_system/custom/order"
	"crm_system/custom/product"
	"crm_system/model"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

type SchemaContext struct {
	customers *customer.HandlerContext
	products  *product.HandlerContext
	orders    *order.HandlerContext
}

func (ctx *SchemaContext) InitialSchemaContext(customers *customer.HandlerContext,
	products *product.HandlerContext, orders *order.HandlerContext) {
	ctx.customers = customers
	ctx.products = products
	ctx.orders = orders
}

// BuildSchema Assemble the GraphQL schema over the three entity handlers.
// Handler errors come back typed and surface through the GraphQL errors
// list; BulkCreateCustomers is the exception and reports row failures
// through its errors field instead.
func (ctx *SchemaContext) BuildSchema() (graphql.Schema, error) {
	customerType := newCustomerType()
	productType := newProductType()
	orderType := newOrderType(customerType, productType)

	customerConnection := newConnectionType("Customer", customerType)
	productConnection := newConnectionType("Product", productType)
	orderConnection := newConnectionType("Order", orderType)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"allCustomers": &graphql.Field{
				Type: customerConnection,
				Args: graphql.FieldConfigArgument{
					"name":         &graphql.ArgumentConfig{Type: graphql.String},
					"email":        &graphql.ArgumentConfig{Type: graphql.String},
					"createdAtGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
					"createdAtLte": &graphql.ArgumentConfig{Type: graphql.DateTime},
					"orderBy":      &graphql.ArgumentConfig{Type: graphql.String},
					"first":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: ctx.resolveAllCustomers,
			},
			"allProducts": &graphql.Field{
				Type: productConnection,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"priceGte": &graphql.ArgumentConfig{Type: graphql.Float},
					"priceLte": &graphql.ArgumentConfig{Type: graphql.Float},
					"stockGte": &graphql.ArgumentConfig{Type: graphql.Int},
					"stockLte": &graphql.ArgumentConfig{Type: graphql.Int},
					"orderBy":  &graphql.ArgumentConfig{Type: graphql.String},
					"first":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: ctx.resolveAllProducts,
			},
			"allOrders": &graphql.Field{
				Type: orderConnection,
				Args: graphql.FieldConfigArgument{
					"customerId":   &graphql.ArgumentConfig{Type: graphql.ID},
					"orderDateGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
					"orderDateLte": &graphql.ArgumentConfig{Type: graphql.DateTime},
					"orderBy":      &graphql.ArgumentConfig{Type: graphql.String},
					"first":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: ctx.resolveAllOrders,
			},
		},
	})

	bulkCustomerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BulkCustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createCustomerPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: customerType},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})
	bulkCreateCustomersPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewList(customerType)},
			"errors":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})
	createProductPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: productType},
		},
	})
	createOrderPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{Type: orderType},
		},
	})
	updateLowStockProductsPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateLowStockProductsPayload",
		Fields: graphql.Fields{
			"products": &graphql.Field{Type: graphql.NewList(productType)},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayload,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: ctx.resolveCreateCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewList(bulkCustomerInput)},
				},
				Resolve: ctx.resolveBulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type: createProductPayload,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"stock": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: ctx.resolveCreateProduct,
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayload,
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
					"orderDate":  &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: ctx.resolveCreateOrder,
			},
			"updateLowStockProducts": &graphql.Field{
				Type:    updateLowStockProductsPayload,
				Resolve: ctx.resolveUpdateLowStockProducts,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func (ctx *SchemaContext) resolveAllCustomers(p graphql.ResolveParams) (interface{}, error) {
	filter := customer.CustomerFilter{
		Name:         stringArg(p.Args, "name"),
		Email:        stringArg(p.Args, "email"),
		CreatedAtGte: timeArg(p.Args, "createdAtGte"),
		CreatedAtLte: timeArg(p.Args, "createdAtLte"),
		OrderBy:      stringArg(p.Args, "orderBy"),
		First:        intArg(p.Args, "first"),
	}
	customers, err := ctx.customers.ListCustomers(filter)
	if err != nil {
		return nil, err
	}
	return connectionOf(customers), nil
}

func (ctx *SchemaContext) resolveAllProducts(p graphql.ResolveParams) (interface{}, error) {
	filter := product.ProductFilter{
		Name:     stringArg(p.Args, "name"),
		PriceGte: decimalArg(p.Args, "priceGte"),
		PriceLte: decimalArg(p.Args, "priceLte"),
		StockGte: intArg(p.Args, "stockGte"),
		StockLte: intArg(p.Args, "stockLte"),
		OrderBy:  stringArg(p.Args, "orderBy"),
		First:    intArg(p.Args, "first"),
	}
	products, err := ctx.products.ListProducts(filter)
	if err != nil {
		return nil, err
	}
	return connectionOf(products), nil
}

func (ctx *SchemaContext) resolveAllOrders(p graphql.ResolveParams) (interface{}, error) {
	filter := order.OrderFilter{
		OrderDateGte: timeArg(p.Args, "orderDateGte"),
		OrderDateLte: timeArg(p.Args, "orderDateLte"),
		OrderBy:      stringArg(p.Args, "orderBy"),
		First:        intArg(p.Args, "first"),
	}
	if raw, ok := p.Args["customerId"]; ok {
		customerId, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		filter.CustomerId = &customerId
	}
	orders, err := ctx.orders.ListOrders(filter)
	if err != nil {
		return nil, err
	}
	return connectionOf(orders), nil
}

func (ctx *SchemaContext) resolveCreateCustomer(p graphql.ResolveParams) (interface{}, error) {
	input := customer.CreateCustomerInput{
		Name:  p.Args["name"].(string),
		Email: p.Args["email"].(string),
		Phone: stringArg(p.Args, "phone"),
	}
	return ctx.customers.CreateCustomer(input)
}

func (ctx *SchemaContext) resolveBulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	rawList, _ := p.Args["input"].([]interface{})
	records := make([]customer.BulkRecord, 0, len(rawList))
	for _, raw := range rawList {
		record := customer.BulkRecord{}
		if fields, ok := raw.(map[string]interface{}); ok {
			record.Name = stringArg(fields, "name")
			record.Email = stringArg(fields, "email")
			record.Phone = stringArg(fields, "phone")
		}
		records = append(records, record)
	}
	return ctx.customers.BulkCreateCustomers(records), nil
}

func (ctx *SchemaContext) resolveCreateProduct(p graphql.ResolveParams) (interface{}, error) {
	input := product.CreateProductInput{
		Name:  p.Args["name"].(string),
		Price: decimal.NewFromFloat(p.Args["price"].(float64)),
		Stock: intArg(p.Args, "stock"),
	}
	newProduct, err := ctx.products.CreateProduct(input)
	if err != nil {
		return nil, err
	}
	return struct {
		Product *model.Product `json:"product"`
	}{Product: newProduct}, nil
}

func (ctx *SchemaContext) resolveCreateOrder(p graphql.ResolveParams) (interface{}, error) {
	customerId, err := parseID(p.Args["customerId"])
	if err != nil {
		return nil, err
	}
	rawIds, _ := p.Args["productIds"].([]interface{})
	productIds := make([]uint, 0, len(rawIds))
	for _, raw := range rawIds {
		productId, errParse := parseID(raw)
		if errParse != nil {
			return nil, errParse
		}
		productIds = append(productIds, productId)
	}
	input := order.CreateOrderInput{
		CustomerId: customerId,
		ProductIds: productIds,
		OrderDate:  timeArg(p.Args, "orderDate"),
	}
	newOrder, err := ctx.orders.CreateOrder(input)
	if err != nil {
		return nil, err
	}
	return struct {
		Order *model.Order `json:"order"`
	}{Order: newOrder}, nil
}

func (ctx *SchemaContext) resolveUpdateLowStockProducts(p graphql.ResolveParams) (interface{}, error) {
	return ctx.products.UpdateLowStockProducts()
}

func stringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func timeArg(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func decimalArg(args map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := args[key].(float64); ok {
		d := decimal.NewFromFloat(v)
		return &d
	}
	return nil
}

func parseID(value interface{}) (uint, error) {
	s := fmt.Sprintf("%v", value)
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid ID %q", s)
	}
	return uint(id), nil
}
