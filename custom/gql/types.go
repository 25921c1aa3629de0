package gql

import (
	"crm_system/model"

	"github.com/graphql-go/graphql"
)

type Edge struct {
	Node interface{} `json:"node"`
}

// Connection Connection-style list result consumed by the report and
// reminder jobs.
type Connection struct {
	TotalCount int    `json:"totalCount"`
	Edges      []Edge `json:"edges"`
}

func connectionOf[T any](items []T) *Connection {
	edges := make([]Edge, 0, len(items))
	for i := range items {
		edges = append(edges, Edge{Node: items[i]})
	}
	return &Connection{TotalCount: len(items), Edges: edges}
}

func newConnectionType(name string, nodeType *graphql.Object) *graphql.Object {
	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"node": &graphql.Field{Type: nodeType},
		},
	})
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"edges":      &graphql.Field{Type: graphql.NewList(edgeType)},
		},
	})
}

func newCustomerType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod := productFromSource(p.Source); prod != nil {
						return prod.Price.InexactFloat64(), nil
					}
					return nil, nil
				},
			},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

func newOrderType(customerType *graphql.Object, productType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"customer": &graphql.Field{
				Type: customerType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o := orderFromSource(p.Source); o != nil {
						return o.Customer, nil
					}
					return nil, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o := orderFromSource(p.Source); o != nil {
						return o.Products, nil
					}
					return nil, nil
				},
			},
			"totalAmount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o := orderFromSource(p.Source); o != nil {
						return o.TotalAmount.InexactFloat64(), nil
					}
					return nil, nil
				},
			},
			"orderDate": &graphql.Field{Type: graphql.DateTime},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
}

func productFromSource(source interface{}) *model.Product {
	switch p := source.(type) {
	case model.Product:
		return &p
	case *model.Product:
		return p
	}
	return nil
}

func orderFromSource(source interface{}) *model.Order {
	switch o := source.(type) {
	case model.Order:
		return &o
	case *model.Order:
		return o
	}
	return nil
}
