// Fills the store with demo data: user with generated password,
// warehouses, categories and products with attributes.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"warehouse/cmd/app"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/inventory"

	"github.com/abaxoth0/go-pwgen"
	"github.com/akamensky/argparse"
)

var seedLogger = logger.NewSource("SEED", logger.Default)

type seedArgs struct {
	Config   *string
	EnvFile  *string
	Username *string
	Password *string
	Products *int
}

var args = new(seedArgs)

func (a *seedArgs) Parse() {
	parser := argparse.NewParser("warehouse-seed", "Fills warehouse DB with demo data")

	args.Config = parser.String("c", "config", &argparse.Options{
		Default: config.DefaultPath,
		Help:    "Path to the config file",
	})
	args.EnvFile = parser.String("e", "env", &argparse.Options{
		Default: ".env",
		Help:    "Path to the file with secrets",
	})
	args.Username = parser.String("u", "username", &argparse.Options{
		Default: "demo",
		Help:    "Name of the demo user",
	})
	args.Password = parser.String("p", "password", &argparse.Options{
		Help: "Password of the demo user, generated if not specified",
	})
	args.Products = parser.Int("n", "products", &argparse.Options{
		Default: 10,
		Help:    "Amount of products per warehouse",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func must[T any](v T, err *Error.Status) T {
	if err != nil {
		seedLogger.Fatal("Failed to seed store", err.Error(), nil)
	}
	return v
}

func main() {
	args.Parse()

	app.StartInit()

	cfg := config.MustLoad(*args.Config, *args.EnvFile)

	app.InitLogger(cfg)

	conns := app.InitConnections(cfg)
	defer app.Shutdown(conns)

	service := app.NewService(cfg, conns)

	ctx := context.Background()

	password := *args.Password
	if password == "" {
		generated, err := pwgen.Generate(16, pwgen.LOWER|pwgen.UPPER|pwgen.DIGITS)
		if err != nil {
			seedLogger.Fatal("Failed to generate password", err.Error(), nil)
		}
		password = generated
	}

	user := must(service.Register(ctx, &entity.UserCreate{
		Username: *args.Username,
		Password: password,
	}, nil))

	// Second user is needed to check that users can't modify each other
	guestPassword, err := pwgen.Generate(16, pwgen.LOWER|pwgen.UPPER|pwgen.DIGITS)
	if err != nil {
		seedLogger.Fatal("Failed to generate password", err.Error(), nil)
	}

	guest := must(service.Register(ctx, &entity.UserCreate{
		Username:  *args.Username + "-guest",
		Password:  guestPassword,
		FirstName: ptr("Guest"),
	}, nil))

	warehouses := []*entity.Warehouse{
		must(service.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "Central", Address: "1 Main Street"}, nil)),
		must(service.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "North", Address: "7 Harbor Road", Description: ptr("Cold storage")}, nil)),
		must(service.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "Reserve", Address: "12 Depot Lane", IsActive: ptr(false)}, nil)),
	}

	categories := []*entity.Category{
		must(service.CreateCategory(ctx, &entity.CategoryCreate{Name: "Tools"}, nil)),
		must(service.CreateCategory(ctx, &entity.CategoryCreate{Name: "Hardware"}, nil)),
		must(service.CreateCategory(ctx, &entity.CategoryCreate{Name: "Archive", IsActive: ptr(false)}, nil)),
	}

	seeded := seedProducts(ctx, service, user, warehouses, categories, *args.Products)

	fmt.Printf("\n  Seeded 2 users, %d warehouses, %d categories and %d products\n", len(warehouses), len(categories), seeded)
	fmt.Printf("  Login: %s\n  Password: %s\n", user.Username, password)
	fmt.Printf("  Login: %s\n  Password: %s\n\n", guest.Username, guestPassword)
}

func seedProducts(
	ctx context.Context,
	service *inventory.Service,
	user *entity.User,
	warehouses []*entity.Warehouse,
	categories []*entity.Category,
	perWarehouse int,
) int {
	count := 0

	for _, w := range warehouses {
		for i := range perWarehouse {
			category := categories[i%len(categories)]

			p := must(service.CreateProduct(ctx, &entity.ProductCreate{
				Name:        w.Name + " item " + strconv.Itoa(i+1),
				CategoryID:  category.ID,
				WarehouseID: w.ID,
				Quantity:    ptr(int64(i * 5)),
			}, user, nil))

			must(service.CreateAttribute(ctx, &entity.AttributeCreate{
				Name:      "sku",
				Value:     ptr(fmt.Sprintf("%s-%04d", category.Name[:3], p.ID)),
				ProductID: p.ID,
			}, nil))

			count++
		}
	}

	return count
}
