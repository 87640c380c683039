package main

import "warehouse/cmd/app"

// @title						Warehouse API
// @version					1.0
// @description				Inventory management API: warehouses, categories, products and their attributes.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Access token in format: Bearer <token>
func main() {
	app.Run()
}
