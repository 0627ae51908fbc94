package main

import (
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/craftnest/craftnest-backend/config"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/craftnest/craftnest-backend/pkg/util"
)

// Seeds a development database with a couple of artisans, their products
// and a customer account. Safe to re-run; existing emails are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())

	artisans := seedUsers(userRepo, addressRepo)
	seedProducts(productRepo, artisans)

	fmt.Println("Seed completed.")
}

func seedUsers(userRepo repository.UserRepository, addressRepo repository.AddressRepository) []model.User {
	passwordHash, err := util.HashPassword("craftnest-dev")
	if err != nil {
		log.Fatal("Failed to hash seed password:", err)
	}

	users := []model.User{
		{
			Email:        "elena@craftnest.example",
			PasswordHash: passwordHash,
			DisplayName:  "Elena Vasquez",
			Role:         model.RoleArtisan,
			CompanyName:  "Vasquez Ceramics",
			Bio:          "Hand-thrown stoneware from a small studio in Taos.",
			IsVerified:   true,
		},
		{
			Email:        "marcus@craftnest.example",
			PasswordHash: passwordHash,
			DisplayName:  "Marcus Lindqvist",
			Role:         model.RoleArtisan,
			CompanyName:  "Lindqvist Woodworks",
			Bio:          "Scandinavian-style carved kitchenware and furniture.",
			IsVerified:   true,
		},
		{
			Email:        "admin@craftnest.example",
			PasswordHash: passwordHash,
			DisplayName:  "CraftNest Admin",
			Role:         model.RoleAdmin,
			IsVerified:   true,
		},
		{
			Email:        "sofia@example.com",
			PasswordHash: passwordHash,
			DisplayName:  "Sofia Chen",
			Role:         model.RoleCustomer,
		},
	}

	var created []model.User
	for i := range users {
		existing, err := userRepo.FindByEmail(users[i].Email)
		if err == nil {
			fmt.Printf("Skipping existing user %s\n", existing.Email)
			created = append(created, *existing)
			continue
		}

		if err := userRepo.Create(&users[i]); err != nil {
			log.Fatal("Failed to create seed user:", err)
		}
		fmt.Printf("Created user %s (%s)\n", users[i].Email, users[i].Role)
		created = append(created, users[i])
	}

	// customer gets a default shipping address
	customer := created[len(created)-1]
	addrs, err := addressRepo.FindByUserID(customer.ID)
	if err == nil && len(addrs) == 0 {
		label := "Home"
		addr := model.Address{
			UserID:    customer.ID,
			Street:    "428 Maple Grove Lane",
			City:      "Portland",
			State:     "OR",
			ZipCode:   "97201",
			Country:   "USA",
			Label:     &label,
			IsDefault: true,
		}
		if err := addressRepo.Create(&addr); err != nil {
			log.Fatal("Failed to create seed address:", err)
		}
	}

	return created[:2]
}

func seedProducts(productRepo repository.ProductRepository, artisans []model.User) {
	discount := 38.0
	products := []model.Product{
		{
			Name:           "Glazed Stoneware Mug",
			Description:    "A 12oz mug wheel-thrown in speckled buff clay with a matte ocean glaze.",
			Price:          32,
			Currency:       "USD",
			Images:         pq.StringArray{"https://cdn.craftnest.example/p/stoneware-mug-1.jpg"},
			Category:       "ceramics",
			Subcategory:    "drinkware",
			ArtisanID:      artisans[0].ID,
			Inventory:      util.GenerateRandomNumber(5, 25),
			Tags:           pq.StringArray{"mug", "stoneware", "kitchen"},
			Materials:      pq.StringArray{"stoneware clay", "food-safe glaze"},
			IsCustomizable: true,
		},
		{
			Name:            "Serving Bowl, Birch",
			Description:     "Hand-carved birch serving bowl finished with food-grade mineral oil.",
			Price:           45,
			DiscountedPrice: &discount,
			Currency:        "USD",
			Images:          pq.StringArray{"https://cdn.craftnest.example/p/birch-bowl-1.jpg"},
			Category:        "woodwork",
			Subcategory:     "kitchen",
			ArtisanID:       artisans[1].ID,
			Inventory:       util.GenerateRandomNumber(3, 12),
			Tags:            pq.StringArray{"bowl", "birch", "serving"},
			Materials:       pq.StringArray{"birch"},
			Occasion:        "housewarming",
		},
		{
			Name:        "Bud Vase Trio",
			Description: "Set of three miniature vases in graduated heights, cobalt drip glaze.",
			Price:       58,
			Currency:    "USD",
			Images: pq.StringArray{
				"https://cdn.craftnest.example/p/bud-vase-trio-1.jpg",
				"https://cdn.craftnest.example/p/bud-vase-trio-2.jpg",
			},
			Category:  "ceramics",
			ArtisanID: artisans[0].ID,
			Inventory: util.GenerateRandomNumber(2, 8),
			Tags:      pq.StringArray{"vase", "decor"},
			Materials: pq.StringArray{"porcelain", "cobalt glaze"},
			Occasion:  "anniversary",
		},
	}

	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Fatal("Failed to create seed product:", err)
		}
		fmt.Printf("Created product %q (stock %d)\n", products[i].Name, products[i].Inventory)
	}
}
