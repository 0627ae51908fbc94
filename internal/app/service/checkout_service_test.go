package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/craftnest/craftnest-backend/config"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingNotifier captures the orders handed to the mail path.
type recordingNotifier struct {
	sent chan uint
}

func (n *recordingNotifier) SendOrderEmails(order *model.Order, customer *model.User) {
	n.sent <- order.ID
}

func (n *recordingNotifier) SendOrderEmailsFromRequest(req OrderEmailRequest) error {
	return nil
}

type checkoutFixture struct {
	service  CheckoutService
	notifier *recordingNotifier
	db       *gorm.DB
	cartRepo repository.CartRepository
	user     *model.User
	address  *model.Address
	product  *model.Product
}

func testPricing() config.CheckoutConfig {
	return config.CheckoutConfig{
		TaxRate:               0.08,
		FreeShippingThreshold: 100,
		ReducedShippingAbove:  50,
		ReducedShippingCost:   5.99,
		BaseShippingCost:      9.99,
		ExpressShippingCost:   12.99,
		SOSShippingCost:       24.99,
	}
}

func setupCheckoutServiceTest(t *testing.T) *checkoutFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := NewOrderService(orderRepo, testDB)
	notifier := &recordingNotifier{sent: make(chan uint, 1)}

	svc := NewCheckoutService(orderService, notifier, userRepo, cartRepo, addressRepo, testPricing())

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

	label := "Home"
	address := &model.Address{
		UserID:    user.ID,
		Street:    "428 Maple Grove Lane",
		City:      "Portland",
		State:     "OR",
		ZipCode:   "97201",
		Country:   "USA",
		Label:     &label,
		IsDefault: true,
	}
	require.NoError(t, addressRepo.Create(address))

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

	return &checkoutFixture{
		service:  svc,
		notifier: notifier,
		db:       testDB,
		cartRepo: cartRepo,
		user:     user,
		address:  address,
		product:  product,
	}
}

func (f *checkoutFixture) addToCart(t *testing.T, product *model.Product, quantity int, customization string) {
	t.Helper()
	require.NoError(t, f.cartRepo.Upsert(&model.CartItem{
		UserID:        f.user.ID,
		ProductID:     product.ID,
		Quantity:      quantity,
		Customization: customization,
	}))
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	f := setupCheckoutServiceTest(t)
	f.addToCart(t, f.product, 2, "")

	order, err := f.service.Checkout(CheckoutInput{
		UserID:         f.user.ID,
		AddressID:      f.address.ID,
		DeliveryOption: model.DeliveryStandard,
	})
	require.NoError(t, err)

	// subtotal 200 qualifies for free standard shipping; 8% tax
	assert.Equal(t, float64(200), order.Subtotal)
	assert.Equal(t, float64(0), order.ShippingCost)
	assert.Equal(t, float64(16), order.Tax)
	assert.Equal(t, float64(216), order.Total)
	assert.Equal(t, model.PaymentMethodCOD, order.PaymentMethod)

	// address frozen into the order
	assert.Equal(t, f.address.ID, order.ShippingAddress.AddressID)
	assert.Equal(t, "428 Maple Grove Lane", order.ShippingAddress.Street)
	assert.Equal(t, "Home", order.ShippingAddress.Label)

	// stock decremented, cart cleared
	var product model.Product
	f.db.First(&product, f.product.ID)
	assert.Equal(t, 8, product.Inventory)

	items, _ := f.cartRepo.FindByUserID(f.user.ID)
	assert.Empty(t, items)

	select {
	case orderID := <-f.notifier.sent:
		assert.Equal(t, order.ID, orderID)
	case <-time.After(time.Second):
		t.Fatal("order emails were never dispatched")
	}
}

func TestCheckoutService_Checkout_SnapshotSurvivesAddressEdit(t *testing.T) {
	f := setupCheckoutServiceTest(t)
	f.addToCart(t, f.product, 1, "")

	order, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: f.address.ID,
	})
	require.NoError(t, err)

	f.db.Model(&model.Address{}).
		Where("id = ?", f.address.ID).
		Update("street", "99 Elsewhere Ave")

	var stored model.Order
	require.NoError(t, f.db.First(&stored, order.ID).Error)
	assert.Equal(t, "428 Maple Grove Lane", stored.ShippingAddress.Street)
}

func TestCheckoutService_Checkout_DiscountedPriceUsed(t *testing.T) {
	f := setupCheckoutServiceTest(t)

	discounted := 80.0
	f.db.Model(&model.Product{}).
		Where("id = ?", f.product.ID).
		Update("discounted_price", discounted)
	f.addToCart(t, f.product, 1, "")

	order, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: f.address.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(80), order.Subtotal)
	require.Len(t, order.Items, 1)
	assert.Equal(t, float64(80), order.Items[0].UnitPrice)
}

func TestCheckoutService_Checkout_CustomizationHandling(t *testing.T) {
	f := setupCheckoutServiceTest(t)

	second := &model.Product{
		Name:        "Bud Vase",
		Description: "Small vase",
		Price:       20,
		Currency:    "USD",
		Images:      pq.StringArray{"https://example.com/vase.jpg"},
		Category:    "ceramics",
		ArtisanID:   f.product.ArtisanID,
		Inventory:   5,
	}
	f.db.Create(second)

	f.addToCart(t, f.product, 1, `{"engraving":"E+M"}`)
	f.addToCart(t, second, 1, "not json at all")

	order, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: f.address.ID,
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	byProduct := map[uint]model.OrderItem{}
	for _, item := range order.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, `{"engraving":"E+M"}`, byProduct[f.product.ID].Customizations)
	// malformed customization is dropped, never fails the order
	assert.Empty(t, byProduct[second.ID].Customizations)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	f := setupCheckoutServiceTest(t)

	_, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: f.address.ID,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutService_Checkout_CartPreservedOnFailure(t *testing.T) {
	f := setupCheckoutServiceTest(t)

	f.db.Model(&model.Product{}).
		Where("id = ?", f.product.ID).
		Update("inventory", 1)
	f.addToCart(t, f.product, 2, "")

	_, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: f.address.ID,
	})
	require.Error(t, err)

	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)

	items, err := f.cartRepo.FindByUserID(f.user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCheckoutService_Checkout_ForeignAddressRejected(t *testing.T) {
	f := setupCheckoutServiceTest(t)
	f.addToCart(t, f.product, 1, "")

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		DisplayName:  "Other",
		Role:         model.RoleCustomer,
	}
	f.db.Create(other)

	otherAddress := &model.Address{
		UserID:  other.ID,
		Street:  "1 Other St",
		City:    "Seattle",
		State:   "WA",
		ZipCode: "98101",
		Country: "USA",
	}
	f.db.Create(otherAddress)

	_, err := f.service.Checkout(CheckoutInput{
		UserID:    f.user.ID,
		AddressID: otherAddress.ID,
	})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestCheckoutService_Quote_ShippingTiers(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		option       model.DeliveryOption
		wantShipping float64
	}{
		{name: "standard below reduced tier", quantity: 1, option: model.DeliveryStandard, wantShipping: 9.99},
		{name: "standard reduced tier", quantity: 3, option: model.DeliveryStandard, wantShipping: 5.99},
		{name: "standard free tier", quantity: 5, option: model.DeliveryStandard, wantShipping: 0},
		{name: "express is flat", quantity: 5, option: model.DeliveryExpress, wantShipping: 12.99},
		{name: "same-day is flat", quantity: 1, option: model.DeliverySOS, wantShipping: 24.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCheckoutServiceTest(t)

			// unit price 20 puts quantity 1 at 20, 3 at 60, 5 at 100
			f.db.Model(&model.Product{}).
				Where("id = ?", f.product.ID).
				Update("price", 20)
			f.addToCart(t, f.product, tt.quantity, "")

			quote, err := f.service.Quote(f.user.ID, tt.option)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShipping, quote.ShippingCost)
			assert.Equal(t, float64(20*tt.quantity), quote.Subtotal)
		})
	}
}

func TestCheckoutService_Quote_DoesNotTouchStock(t *testing.T) {
	f := setupCheckoutServiceTest(t)
	f.addToCart(t, f.product, 2, "")

	_, err := f.service.Quote(f.user.ID, model.DeliveryStandard)
	require.NoError(t, err)

	var product model.Product
	f.db.First(&product, f.product.ID)
	assert.Equal(t, 10, product.Inventory)
}

func TestCheckoutService_Checkout_InvalidDeliveryOption(t *testing.T) {
	f := setupCheckoutServiceTest(t)
	f.addToCart(t, f.product, 1, "")

	_, err := f.service.Checkout(CheckoutInput{
		UserID:         f.user.ID,
		AddressID:      f.address.ID,
		DeliveryOption: model.DeliveryOption("drone"),
	})
	assert.ErrorIs(t, err, ErrInvalidDeliveryOption)
}
