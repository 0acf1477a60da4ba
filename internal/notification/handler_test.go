package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop-api/internal/events"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/store/mocks"
)

type fakeMailer struct {
	confirmations []string
	statusUpdates []string
}

func (m *fakeMailer) SendOrderConfirmation(to, name, orderID string, total float64) error {
	m.confirmations = append(m.confirmations, orderID)
	return nil
}

func (m *fakeMailer) SendOrderStatusUpdate(to, name, orderID, status string) error {
	m.statusUpdates = append(m.statusUpdates, orderID+":"+status)
	return nil
}

func marshalEnvelope(t *testing.T, eventType string, payload any) []byte {
	t.Helper()
	envelope, err := events.Wrap(eventType, payload)
	require.NoError(t, err)
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return data
}

func newTestHandler(t *testing.T) (*Handler, *fakeMailer, *models.User) {
	t.Helper()
	users := mocks.NewMockUserStore()
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(context.Background(), user))
	mailer := &fakeMailer{}
	return NewHandler(mailer, users), mailer, user
}

func TestHandleEvent_OrderCreated(t *testing.T) {
	handler, mailer, user := newTestHandler(t)

	value := marshalEnvelope(t, events.TypeOrderCreated, events.OrderCreated{
		OrderID:     "order-1",
		UserID:      user.ID.Hex(),
		TotalAmount: 117.98,
		ItemCount:   2,
	})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	assert.Equal(t, []string{"order-1"}, mailer.confirmations)
}

func TestHandleEvent_StatusShipped(t *testing.T) {
	handler, mailer, user := newTestHandler(t)

	value := marshalEnvelope(t, events.TypeOrderStatusChanged, events.OrderStatusChanged{
		OrderID: "order-1",
		UserID:  user.ID.Hex(),
		Status:  string(models.StatusShipped),
	})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	assert.Equal(t, []string{"order-1:Shipped"}, mailer.statusUpdates)
}

func TestHandleEvent_CancelledIsSilent(t *testing.T) {
	handler, mailer, user := newTestHandler(t)

	value := marshalEnvelope(t, events.TypeOrderStatusChanged, events.OrderStatusChanged{
		OrderID: "order-1",
		UserID:  user.ID.Hex(),
		Status:  string(models.StatusCancelled),
	})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	assert.Empty(t, mailer.statusUpdates)
}

func TestHandleEvent_UnknownUserSwallowed(t *testing.T) {
	handler, mailer, _ := newTestHandler(t)

	value := marshalEnvelope(t, events.TypeOrderCreated, events.OrderCreated{
		OrderID: "order-1",
		UserID:  "missing-user",
	})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	assert.Empty(t, mailer.confirmations)
}

func TestHandleEvent_UnknownTypeIgnored(t *testing.T) {
	handler, mailer, _ := newTestHandler(t)

	value := marshalEnvelope(t, "order.archived", map[string]string{"order_id": "order-1"})

	err := handler.HandleEvent(context.Background(), []byte("order-1"), value)

	require.NoError(t, err)
	assert.Empty(t, mailer.confirmations)
	assert.Empty(t, mailer.statusUpdates)
}

func TestHandleEvent_MalformedPayload(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	err := handler.HandleEvent(context.Background(), []byte("order-1"), []byte("not json"))

	assert.Error(t, err)
}
