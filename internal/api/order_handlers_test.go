package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ec-shop-api/internal/models"
)

func placeOrder(t *testing.T, env *testEnv, token string, p *models.Product) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"shippingInfo": map[string]any{
			"address": "221B Baker Street",
			"city":    "London",
			"state":   "Greater London",
			"zipcode": "NW16XE",
			"country": "UK",
			"phone":   "5550100",
		},
		"orderItems": []map[string]any{
			{"name": p.Title, "quantity": 1, "price": p.Price, "productId": p.ID.Hex()},
		},
		"paymentMethod": "cod",
		"itemsPrice":    p.Price,
		"taxPrice":      p.Price * 0.18,
		"totalAmount":   p.Price * 1.18,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	id, ok := order["id"].(string)
	require.True(t, ok)
	return id
}

func TestOrderCreate_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderCreate_AndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	p := env.addProduct(t, "Mouse", 29.99, 5, false)

	placeOrder(t, env, env.tokenFor(t, user), p)

	stored, err := env.products.GetByID(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Stock)
}

func TestOrderCreate_InvalidPayment(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	p := env.addProduct(t, "Mouse", 29.99, 5, false)

	w := env.do(t, http.MethodPost, "/api/orders", env.tokenFor(t, user), map[string]any{
		"shippingInfo": map[string]any{
			"address": "221B Baker Street",
			"city":    "London",
			"state":   "Greater London",
			"zipcode": "NW16XE",
			"country": "UK",
			"phone":   "5550100",
		},
		"orderItems": []map[string]any{
			{"name": p.Title, "quantity": 1, "price": p.Price, "productId": p.ID.Hex()},
		},
		"paymentMethod": "barter",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid payment method")
}

func TestOrderGet_OwnOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	p := env.addProduct(t, "Mouse", 29.99, 5, false)
	token := env.tokenFor(t, user)
	orderID := placeOrder(t, env, token, p)

	w := env.do(t, http.MethodGet, "/api/orders/"+orderID, token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	order := body["order"].(map[string]any)
	assert.Equal(t, string(models.StatusOrdered), order["orderStatus"])
}

func TestOrderGet_OtherUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	bob := env.addUser(t, "Bob", "bob@example.com", models.RoleUser)
	p := env.addProduct(t, "Mouse", 29.99, 5, false)
	orderID := placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodGet, "/api/orders/"+orderID, env.tokenFor(t, bob), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderGet_AdminCanReadAny(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 5, false)
	orderID := placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodGet, "/api/orders/"+orderID, env.tokenFor(t, admin), nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderListMine_EmptyIsOK(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)

	w := env.do(t, http.MethodGet, "/api/orders/mine", env.tokenFor(t, user), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	assert.Empty(t, orders)
}

func TestOrderListMine_OnlyOwnOrders(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	bob := env.addUser(t, "Bob", "bob@example.com", models.RoleUser)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	placeOrder(t, env, env.tokenFor(t, alice), p)
	placeOrder(t, env, env.tokenFor(t, bob), p)

	w := env.do(t, http.MethodGet, "/api/orders/mine", env.tokenFor(t, alice), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["orders"], 1)
}

func TestAdminOrderList(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodGet, "/api/admin/orders", env.tokenFor(t, admin), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["orders"], 1)
}

func TestAdminOrderStatus_Update(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	orderID := placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", env.tokenFor(t, admin), map[string]any{
		"status": "Shipped",
	})

	require.Equal(t, http.StatusOK, w.Code)
	updated, err := env.orders.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)
}

func TestAdminOrderStatus_InvalidValue(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	orderID := placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", env.tokenFor(t, admin), map[string]any{
		"status": "Teleported",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid order status")
}

func TestAdminOrderStatus_DeliveredIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	orderID := placeOrder(t, env, env.tokenFor(t, alice), p)
	adminToken := env.tokenFor(t, admin)

	w := env.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", adminToken, map[string]any{
		"status": "Delivered",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", adminToken, map[string]any{
		"status": "Cancelled",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already delivered")
}

func TestAdminUsers_ListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	adminToken := env.tokenFor(t, admin)

	w := env.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["users"], 2)

	w = env.do(t, http.MethodDelete, "/api/admin/users/"+alice.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/users/"+primitive.NewObjectID().Hex(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	alice := env.addUser(t, "Alice", "alice@example.com", models.RoleUser)
	admin := env.addUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	p := env.addProduct(t, "Mouse", 29.99, 10, false)
	placeOrder(t, env, env.tokenFor(t, alice), p)

	w := env.do(t, http.MethodGet, "/api/admin/stats", env.tokenFor(t, admin), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalUsers"])
	assert.Equal(t, float64(1), stats["totalProducts"])
	assert.Equal(t, float64(1), stats["salesToday"])
}
