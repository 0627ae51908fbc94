package service

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := NewOrderService(orderRepo, testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		DisplayName:  "Test Buyer",
		Role:         model.RoleCustomer,
	}
	testDB.Create(user)

	artisan := &model.User{
		Email:        "maker@example.com",
		PasswordHash: "hash",
		DisplayName:  "Test Maker",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)

	product := &model.Product{
		Name:        "Stoneware Mug",
		Description: "Hand-thrown mug",
		Price:       100,
		Currency:    "USD",
		Images:      pq.StringArray{"https://example.com/mug.jpg"},
		Category:    "ceramics",
		ArtisanID:   artisan.ID,
		Inventory:   10,
	}
	testDB.Create(product)

	return orderService, testDB, user, product
}

func testOrder(user *model.User, items ...model.OrderItem) *model.Order {
	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	return &model.Order{
		UserID:         user.ID,
		Subtotal:       subtotal,
		ShippingMethod: model.DeliveryStandard,
		Tax:            subtotal * 0.08,
		Total:          subtotal * 1.08,
		Status:         model.OrderStatusPending,
		PaymentMethod:  model.PaymentMethodCOD,
		PaymentStatus:  model.PaymentStatusPending,
		ShippingAddress: model.AddressSnapshot{
			Street:  "1 Test St",
			City:    "Portland",
			State:   "OR",
			ZipCode: "97201",
			Country: "USA",
		},
		Items: items,
	}
}

func lineFor(product *model.Product, quantity int) model.OrderItem {
	return model.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		TotalPrice:  product.Price * float64(quantity),
		Currency:    product.Currency,
		ArtisanID:   product.ArtisanID,
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	order, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 2)))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, float64(200), order.Items[0].TotalPrice)

	var updatedProduct model.Product
	testDB.First(&updatedProduct, product.ID)
	assert.Equal(t, 8, updatedProduct.Inventory)
}

func TestOrderService_PlaceOrder_InsufficientInventory(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	testDB.Model(product).Update("inventory", 1)

	order, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 2)))
	require.Error(t, err)
	assert.Nil(t, order)

	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, product.ID, insufficient.ProductID)
	assert.Equal(t, 1, insufficient.Available)
	assert.Equal(t, 2, insufficient.Requested)

	// nothing was written
	var updatedProduct model.Product
	testDB.First(&updatedProduct, product.ID)
	assert.Equal(t, 1, updatedProduct.Inventory)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestOrderService_PlaceOrder_ProductMissing(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	missing := *product
	missing.ID = 9999

	order, err := orderService.PlaceOrder(testOrder(user, lineFor(&missing, 1)))
	require.Error(t, err)
	assert.Nil(t, order)

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(9999), notFound.ProductID)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestOrderService_PlaceOrder_AtomicAcrossLines(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	scarce := &model.Product{
		Name:        "Bud Vase",
		Description: "Small vase",
		Price:       50,
		Currency:    "USD",
		Images:      pq.StringArray{"https://example.com/vase.jpg"},
		Category:    "ceramics",
		ArtisanID:   product.ArtisanID,
		Inventory:   1,
	}
	testDB.Create(scarce)

	// first line would succeed alone; second line fails the whole order
	order, err := orderService.PlaceOrder(testOrder(user,
		lineFor(product, 2),
		lineFor(scarce, 5),
	))
	require.Error(t, err)
	assert.Nil(t, order)

	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, scarce.ID, insufficient.ProductID)

	// the first line's decrement must have rolled back
	var p1, p2 model.Product
	testDB.First(&p1, product.ID)
	testDB.First(&p2, scarce.ID)
	assert.Equal(t, 10, p1.Inventory)
	assert.Equal(t, 1, p2.Inventory)
}

func TestOrderService_PlaceOrder_NoOvercommit(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	testDB.Model(product).Update("inventory", 3)

	_, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 2)))
	require.NoError(t, err)

	// a duplicate submission for the same quantity must not go negative
	_, err = orderService.PlaceOrder(testOrder(user, lineFor(product, 2)))
	require.Error(t, err)

	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Available)

	var updatedProduct model.Product
	testDB.First(&updatedProduct, product.ID)
	assert.Equal(t, 1, updatedProduct.Inventory)
}

func TestOrderService_PlaceOrder_EmptyItems(t *testing.T) {
	orderService, _, user, _ := setupOrderServiceTest(t)

	order, err := orderService.PlaceOrder(testOrder(user))
	assert.ErrorIs(t, err, ErrOrderNoItems)
	assert.Nil(t, order)
}

func TestOrderService_GetOrderByID_OwnershipEnforced(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	placed, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 1)))
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		DisplayName:  "Other",
		Role:         model.RoleCustomer,
	}
	testDB.Create(other)

	_, err = orderService.GetOrderByID(other.ID, placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	got, err := orderService.GetOrderByID(user.ID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, _, user, product := setupOrderServiceTest(t)

	placed, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 1)))
	require.NoError(t, err)

	// skipping a stage is rejected
	_, err = orderService.UpdateOrderStatus(placed.ID, model.OrderStatusShipped, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err := orderService.UpdateOrderStatus(placed.ID, model.OrderStatusProcessing, "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)

	order, err = orderService.UpdateOrderStatus(placed.ID, model.OrderStatusShipped, "CN12345")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
	assert.Equal(t, "CN12345", order.TrackingNumber)

	order, err = orderService.UpdateOrderStatus(placed.ID, model.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)

	// delivered is terminal, even for cancellation
	_, err = orderService.UpdateOrderStatus(placed.ID, model.OrderStatusCancelled, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_UpdateOrderStatus_CancelFromPending(t *testing.T) {
	orderService, _, user, product := setupOrderServiceTest(t)

	placed, err := orderService.PlaceOrder(testOrder(user, lineFor(product, 1)))
	require.NoError(t, err)

	order, err := orderService.UpdateOrderStatus(placed.ID, model.OrderStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
}

func TestOrderService_GetArtisanOrders_FiltersLines(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	otherArtisan := &model.User{
		Email:        "second-maker@example.com",
		PasswordHash: "hash",
		DisplayName:  "Second Maker",
		Role:         model.RoleArtisan,
	}
	testDB.Create(otherArtisan)

	otherProduct := &model.Product{
		Name:        "Birch Bowl",
		Description: "Carved bowl",
		Price:       45,
		Currency:    "USD",
		Images:      pq.StringArray{"https://example.com/bowl.jpg"},
		Category:    "woodwork",
		ArtisanID:   otherArtisan.ID,
		Inventory:   5,
	}
	testDB.Create(otherProduct)

	_, err := orderService.PlaceOrder(testOrder(user,
		lineFor(product, 1),
		lineFor(otherProduct, 2),
	))
	require.NoError(t, err)

	orders, err := orderService.GetArtisanOrders(otherArtisan.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, otherProduct.ID, orders[0].Items[0].ProductID)
}

func TestIsRetryableStoreError(t *testing.T) {
	assert.True(t, isRetryableStoreError(errors.New("database is locked")))
	assert.True(t, isRetryableStoreError(errors.New("pq: deadlock detected")))
	assert.True(t, isRetryableStoreError(errors.New("ERROR: could not serialize access")))
	assert.False(t, isRetryableStoreError(&ProductNotFoundError{ProductID: 1}))
	assert.False(t, isRetryableStoreError(&InsufficientInventoryError{ProductID: 1, Available: 0, Requested: 1}))
	assert.False(t, isRetryableStoreError(errors.New("some other failure")))
}

// flakyReadOrderRepo fails every FindByID with a conflict-shaped error.
type flakyReadOrderRepo struct {
	repository.OrderRepository
}

func (r *flakyReadOrderRepo) FindByID(id uint) (*model.Order, error) {
	return nil, errors.New("database is locked")
}

func TestOrderService_PlaceOrder_CommittedOrderSurvivesReadFailure(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		DisplayName:  "Test Buyer",
		Role:         model.RoleCustomer,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:        "Stoneware Mug",
		Description: "Hand-thrown mug",
		Price:       100,
		Currency:    "USD",
		Images:      pq.StringArray{"https://example.com/mug.jpg"},
		Category:    "ceramics",
		ArtisanID:   1,
		Inventory:   10,
	}
	testDB.Create(product)

	repo := &flakyReadOrderRepo{OrderRepository: repository.NewOrderRepository(testDB)}
	svc := NewOrderService(repo, testDB)

	placed, err := svc.PlaceOrder(testOrder(user, lineFor(product, 2)))
	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.NotZero(t, placed.ID)

	// exactly one placement: one order row, stock decremented once
	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)

	var fresh model.Product
	require.NoError(t, testDB.First(&fresh, product.ID).Error)
	assert.Equal(t, 8, fresh.Inventory)
}
