package repository

import (
	"fmt"
	"testing"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	artisan := &model.User{
		Email:        "maker@example.com",
		PasswordHash: "x",
		DisplayName:  "Maker",
		Role:         model.RoleArtisan,
	}
	require.NoError(t, testDB.Create(artisan).Error)

	repo := NewProductRepository(testDB)
	for i := 1; i <= 5; i++ {
		p := &model.Product{
			Name:        fmt.Sprintf("Mug %d", i),
			Description: "stoneware",
			Price:       float64(10 * i),
			Currency:    "USD",
			Images:      pq.StringArray{"mug.jpg"},
			Category:    "ceramics",
			ArtisanID:   artisan.ID,
			Inventory:   3,
		}
		if i == 5 {
			p.Category = "textiles"
			p.Name = "Woven Throw"
		}
		require.NoError(t, repo.Create(p))
	}
	return repo, testDB
}

func TestProductRepository_List_CategoryFilterAndTotal(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	products, total, err := repo.List(ProductFilter{Category: "ceramics"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, products, 4)
	for _, p := range products {
		assert.Equal(t, "ceramics", p.Category)
	}
}

func TestProductRepository_List_PriceRangeAndSearch(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	min, max := 15.0, 35.0
	products, total, err := repo.List(ProductFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}

	products, total, err = repo.List(ProductFilter{Search: "Woven"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Woven Throw", products[0].Name)
}

func TestProductRepository_List_KeysetCursor(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	first, total, err := repo.List(ProductFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, first, 2)
	// newest first
	assert.Greater(t, first[0].ID, first[1].ID)

	second, _, err := repo.List(ProductFilter{Limit: 2, AfterID: first[1].ID})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Less(t, second[0].ID, first[1].ID)

	// no overlap between pages
	seen := map[uint]bool{first[0].ID: true, first[1].ID: true}
	for _, p := range second {
		assert.False(t, seen[p.ID])
	}
}

func TestProductRepository_List_PriceSort(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	products, _, err := repo.List(ProductFilter{SortBy: "price_asc"})
	require.NoError(t, err)
	require.Len(t, products, 5)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}
}

func TestProductRepository_List_LimitClamped(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	products, _, err := repo.List(ProductFilter{Limit: 1000})
	require.NoError(t, err)
	// out-of-range limits fall back to the default page size
	assert.Len(t, products, 5)
}

func TestProductRepository_TimestampsRoundTrip(t *testing.T) {
	repo, testDB := setupProductRepositoryTest(t)

	created, _, err := repo.List(ProductFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.False(t, created[0].CreatedAt.IsZero())
	assert.False(t, created[0].UpdatedAt.IsZero())

	var raw model.Product
	require.NoError(t, testDB.First(&raw, created[0].ID).Error)
	assert.True(t, raw.CreatedAt.Equal(created[0].CreatedAt))
}
