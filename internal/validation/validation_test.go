package validation

import (
	"testing"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() *model.Product {
	return &model.Product{
		Name:        "Hand-thrown Mug",
		Description: "Stoneware mug with a matte glaze",
		Price:       32,
		Currency:    "USD",
		Images:      pq.StringArray{"https://cdn.example.com/mug.jpg"},
		Category:    "ceramics",
		ArtisanID:   1,
		Inventory:   5,
	}
}

func TestValidate_ValidProductPasses(t *testing.T) {
	assert.NoError(t, Validate(validProduct()))
}

func TestValidate_NegativePriceRejected(t *testing.T) {
	p := validProduct()
	p.Price = -1

	err := Validate(p)
	require.Error(t, err)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "must be positive", fields.Fields()["price"])
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	p := validProduct()
	p.Name = ""
	p.Category = ""
	p.Inventory = -3

	err := Validate(p)
	require.Error(t, err)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	m := fields.Fields()
	assert.Equal(t, "is required", m["name"])
	assert.Equal(t, "is required", m["category"])
	assert.Contains(t, m["inventory"], "must be at least 0")
}

func TestValidate_Deterministic(t *testing.T) {
	p := validProduct()
	p.Price = -1

	first := Validate(p)
	second := Validate(p)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestValidate_NestedOrderItems(t *testing.T) {
	order := model.Order{
		UserID:   1,
		Subtotal: 10,
		Tax:      0.8,
		Total:    10.8,
		Items: []model.OrderItem{
			{
				ProductID:   1,
				ProductName: "Hand-thrown Mug",
				Quantity:    0, // invalid
				UnitPrice:   10,
				TotalPrice:  10,
				ArtisanID:   2,
			},
		},
	}

	err := Validate(&order)
	require.Error(t, err)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	_, ok := fields.Fields()["items[0].quantity"]
	assert.True(t, ok, "expected a violation on items[0].quantity, got %v", fields.Fields())
}
