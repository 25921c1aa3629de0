package gql

import (
	"database/sql"
	"testing"

	"crm_system/custom/customer"
	"crm_system/custom/order"
	"crm_system/custom/product"
	"crm_system/custom/util"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func buildTestSchema(t *testing.T) (*sql.DB, graphql.Schema, sqlmock.Sqlmock) {
	sqlDB, gormDB, mock := util.DbMock(t)

	customerCtx := customer.HandlerContext{}
	customerCtx.InitialHandlerContext(gormDB)
	productCtx := product.HandlerContext{}
	productCtx.InitialHandlerContext(gormDB, product.RestockPolicy{})
	orderCtx := order.HandlerContext{}
	orderCtx.InitialHandlerContext(gormDB)

	schemaCtx := SchemaContext{}
	schemaCtx.InitialSchemaContext(&customerCtx, &productCtx, &orderCtx)
	schema, err := schemaCtx.BuildSchema()
	if err != nil {
		t.Fatal(err)
	}
	return sqlDB, schema, mock
}

func dataField(t *testing.T, result *graphql.Result, field string) map[string]interface{} {
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %+v", result.Data)
	}
	payload, ok := data[field].(map[string]interface{})
	if !ok {
		t.Fatalf("missing field %s in %+v", field, data)
	}
	return payload
}

func TestHelloQuery(t *testing.T) {
	sqlDB, schema, _ := buildTestSchema(t)
	defer sqlDB.Close()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `query { hello }`})

	assert.Empty(t, result.Errors)
	assert.Equal(t, map[string]interface{}{"hello": "Hello, GraphQL!"}, result.Data)
}

func TestCreateCustomerMutation(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "customers" WHERE email = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "customers" .+ VALUES .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			createCustomer(name: "Alice", email: "alice@example.com", phone: "+1234567890") {
				message
				customer { id name email phone }
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Empty(t, result.Errors)
	payload := dataField(t, result, "createCustomer")
	assert.Equal(t, "Customer created successfully", payload["message"])
	newCustomer := payload["customer"].(map[string]interface{})
	assert.Equal(t, "Alice", newCustomer["name"])
	assert.Equal(t, "+1234567890", newCustomer["phone"])
}

// Duplicate emails surface through the GraphQL errors list.
func TestCreateCustomerMutationDuplicateEmail(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "customers" WHERE email = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			createCustomer(name: "Bob", email: "alice@example.com") {
				message
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Len(t, result.Errors, 1)
	assert.Regexp(t, "Email already exists", result.Errors[0].Message)
}

// Row failures are reported through the payload errors field, never the
// GraphQL errors list.
func TestBulkCreateCustomersMutationPartial(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "customers" WHERE email = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "customers" .+ VALUES .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			bulkCreateCustomers(input: [
				{name: "A", email: "a@x.com"},
				{email: "b@x.com"}
			]) {
				customers { email }
				errors
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Empty(t, result.Errors)
	payload := dataField(t, result, "bulkCreateCustomers")
	customers := payload["customers"].([]interface{})
	rowErrors := payload["errors"].([]interface{})
	assert.Len(t, customers, 1)
	assert.Len(t, rowErrors, 1)
	assert.Regexp(t, `^Row 2: `, rowErrors[0])
}

func TestAllCustomersConnection(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(1, "Alice", "alice@example.com").
		AddRow(2, "Bob", "bob@example.com")
	mock.ExpectQuery(`^SELECT \* FROM "customers".*`).WillReturnRows(rows)

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		query {
			allCustomers {
				totalCount
				edges { node { name email } }
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Empty(t, result.Errors)
	payload := dataField(t, result, "allCustomers")
	assert.Equal(t, 2, payload["totalCount"])
	edges := payload["edges"].([]interface{})
	assert.Len(t, edges, 2)
	firstNode := edges[0].(map[string]interface{})["node"].(map[string]interface{})
	assert.Equal(t, "Alice", firstNode["name"])
}

func TestCreateProductMutationInvalidPrice(t *testing.T) {
	sqlDB, schema, _ := buildTestSchema(t)
	defer sqlDB.Close()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			createProduct(name: "Mouse", price: -1.0) {
				product { id }
			}
		}`})

	assert.Len(t, result.Errors, 1)
	assert.Regexp(t, "Price must be positive", result.Errors[0].Message)
}

func TestCreateOrderMutationTotal(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	customerRows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(2, "Alice", "alice@example.com")
	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT \* FROM "customers" WHERE .*`).WillReturnRows(customerRows)
	mock.ExpectQuery(`^SELECT \* FROM "products" WHERE .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock"}).AddRow(1, "Mouse", "10.00", 10))
	mock.ExpectQuery(`^SELECT \* FROM "products" WHERE .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock"}).AddRow(5, "Cable", "15.50", 10))
	mock.ExpectQuery(`INSERT INTO "orders" .+ VALUES .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "order_products" .+`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			createOrder(customerId: "2", productIds: ["1", "5"]) {
				order {
					totalAmount
					customer { email }
					products { name }
				}
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Empty(t, result.Errors)
	payload := dataField(t, result, "createOrder")
	newOrder := payload["order"].(map[string]interface{})
	assert.Equal(t, 25.5, newOrder["totalAmount"])
	orderCustomer := newOrder["customer"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", orderCustomer["email"])
	assert.Len(t, newOrder["products"].([]interface{}), 2)
}

func TestUpdateLowStockProductsMutation(t *testing.T) {
	sqlDB, schema, mock := buildTestSchema(t)
	defer sqlDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(1, "Mouse", "15.00", 3)
	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT \* FROM "products" WHERE stock < .*`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "products" SET .+`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `
		mutation {
			updateLowStockProducts {
				message
				products { stock }
			}
		}`})

	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Empty(t, result.Errors)
	payload := dataField(t, result, "updateLowStockProducts")
	assert.Equal(t, "Restocked 1 products", payload["message"])
	products := payload["products"].([]interface{})
	assert.Equal(t, 13, products[0].(map[string]interface{})["stock"])
}
