package service

import (
	"testing"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	buyer := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "x",
		DisplayName:  "Test Buyer",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(buyer).Error)

	artisan := &model.User{
		Email:        "maker@example.com",
		PasswordHash: "x",
		DisplayName:  "Maker",
		Role:         model.RoleArtisan,
	}
	require.NoError(t, testDB.Create(artisan).Error)

	product := &model.Product{
		Name:        "Hand-thrown Mug",
		Description: "stoneware",
		Price:       32,
		Currency:    "USD",
		Images:      pq.StringArray{"mug.jpg"},
		Category:    "ceramics",
		ArtisanID:   artisan.ID,
		Inventory:   5,
	}
	require.NoError(t, testDB.Create(product).Error)

	svc := NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
	)
	return svc, buyer, product
}

func TestCartService_AddItem_FoldsIntoExistingLine(t *testing.T) {
	svc, buyer, product := setupCartServiceTest(t)

	require.NoError(t, svc.AddItem(buyer.ID, product.ID, 1, ""))
	require.NoError(t, svc.AddItem(buyer.ID, product.ID, 2, `{"engraving":"S"}`))

	items, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, `{"engraving":"S"}`, items[0].Customization)
}

func TestCartService_AddItem_AdvisoryStockCheck(t *testing.T) {
	svc, buyer, product := setupCartServiceTest(t)

	err := svc.AddItem(buyer.ID, product.ID, 6, "")
	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 6, insufficient.Requested)

	items, listErr := svc.GetCart(buyer.ID)
	require.NoError(t, listErr)
	assert.Empty(t, items)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc, buyer, _ := setupCartServiceTest(t)

	err := svc.AddItem(buyer.ID, 9999, 1, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc, buyer, product := setupCartServiceTest(t)

	require.NoError(t, svc.AddItem(buyer.ID, product.ID, 2, ""))
	require.NoError(t, svc.UpdateQuantity(buyer.ID, product.ID, 0))

	items, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	svc, buyer, product := setupCartServiceTest(t)

	err := svc.UpdateQuantity(buyer.ID, product.ID, 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	svc, buyer, product := setupCartServiceTest(t)

	require.NoError(t, svc.AddItem(buyer.ID, product.ID, 2, ""))
	require.NoError(t, svc.ClearCart(buyer.ID))

	items, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
