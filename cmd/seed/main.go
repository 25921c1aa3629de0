package main

import (
	"fmt"

	"crm_system/custom/customer"
	"crm_system/custom/product"
	"crm_system/custom/util"
	"crm_system/model"

	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds a starter customer and product for local development.
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
	err = db.AutoMigrate(model.ALL_CRM_TABLES...)
	if err != nil {
		panic("failed to migrate database" + err.Error())
	}

	customerCtx := customer.HandlerContext{}
	customerCtx.InitialHandlerContext(db)
	productCtx := product.HandlerContext{}
	productCtx.InitialHandlerContext(db, product.RestockPolicy{
		Threshold: serverConfig.Restock_threshold,
		Amount:    serverConfig.Restock_amount,
	})

	stock := 10
	_, errCustomer := customerCtx.CreateCustomer(customer.CreateCustomerInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: util.GetStringPtr("+1234567890"),
	})
	if errCustomer != nil {
		rlog.Error("Seed customer fail:", errCustomer.Error())
	}
	_, errProduct := productCtx.CreateProduct(product.CreateProductInput{
		Name:  "Mouse",
		Price: decimal.NewFromFloat(15.0),
		Stock: &stock,
	})
	if errProduct != nil {
		rlog.Error("Seed product fail:", errProduct.Error())
	}
}
