package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store/mocks"
)

const testCookie = "token"

// stubUploader avoids touching the filesystem in handler tests.
type stubUploader struct{}

func (stubUploader) Save(file *multipart.FileHeader) (string, string, error) {
	return "/static/" + file.Filename, file.Filename, nil
}

type testEnv struct {
	router   *gin.Engine
	products *mocks.MockProductStore
	users    *mocks.MockUserStore
	orders   *mocks.MockOrderStore
	tokens   *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := mocks.NewMockProductStore()
	users := mocks.NewMockUserStore()
	orders := mocks.NewMockOrderStore()

	tokens := auth.NewTokenService("test-secret-key-for-testing-purposes", time.Hour)
	orderSvc := service.NewOrderService(orders, products, nil)
	reviewSvc := service.NewReviewService(products)
	statsSvc := service.NewStatsService(users, products, orders)

	router := NewRouter(RouterConfig{
		Products:   NewProductHandlers(products, users, reviewSvc, orderSvc, stubUploader{}),
		Users:      NewUserHandlers(users, orderSvc, tokens, testCookie),
		Orders:     NewOrderHandlers(orders, orderSvc),
		Admin:      NewAdminHandlers(users, statsSvc),
		Tokens:     tokens,
		CookieName: testCookie,
	})

	return &testEnv{
		router:   router,
		products: products,
		users:    users,
		orders:   orders,
		tokens:   tokens,
	}
}

func (e *testEnv) addUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := e.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) addProduct(t *testing.T, title string, price float64, stock int, featured bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:       title,
		Description: "test product",
		Price:       price,
		Category:    models.CategoryElectronics,
		Seller:      "Acme",
		Stock:       stock,
		IsFeatured:  featured,
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
