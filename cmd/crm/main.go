package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"crm_system/custom/customer"
	"crm_system/custom/gql"
	"crm_system/custom/order"
	"crm_system/custom/product"
	"crm_system/custom/util"
	"crm_system/model"

	"github.com/graphql-go/handler"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	serverConfig := util.ServerConfig{}
	serverConfig.GetConf("./config/config.yaml")
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		serverConfig.Postgres.Host, serverConfig.Postgres.Port, serverConfig.Postgres.Username,
		serverConfig.Postgres.Password, serverConfig.Postgres.Database)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database" + err.Error())
	}
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Auto migrate table schemas
	err = db.AutoMigrate(model.ALL_CRM_TABLES...)
	if err != nil {
		panic("failed to migrate database" + err.Error())
	}

	// Initialize handler contexts
	customerCtx := customer.HandlerContext{}
	customerCtx.InitialHandlerContext(db)
	productCtx := product.HandlerContext{}
	productCtx.InitialHandlerContext(db, product.RestockPolicy{
		Threshold: serverConfig.Restock_threshold,
		Amount:    serverConfig.Restock_amount,
	})
	orderCtx := order.HandlerContext{}
	orderCtx.InitialHandlerContext(db)

	schemaCtx := gql.SchemaContext{}
	schemaCtx.InitialSchemaContext(&customerCtx, &productCtx, &orderCtx)
	schema, err := schemaCtx.BuildSchema()
	if err != nil {
		panic("failed to build graphql schema" + err.Error())
	}

	// Start GraphQL API
	graphqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	http.Handle("/graphql", gql.RequestID(graphqlHandler))

	log.Fatal(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", serverConfig.Crm_port), nil))
}
