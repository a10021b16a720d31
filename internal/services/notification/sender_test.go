package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleMessage_SendsSMS(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Send", mock.Anything, "+27820000000", "Your subscription is active").Return(nil)

	sender := NewSender(discardLogger(), gateway)

	body, err := json.Marshal(models.SMSEvent{
		AccountUID: "uid-1",
		Phone:      "+27820000000",
		Body:       "Your subscription is active",
	})
	require.NoError(t, err)

	require.NoError(t, sender.HandleMessage(body))
	gateway.AssertExpectations(t)
}

func TestHandleMessage_GatewayErrorRequeues(t *testing.T) {
	gateway := new(mockGateway)
	gateway.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	sender := NewSender(discardLogger(), gateway)

	body, _ := json.Marshal(models.SMSEvent{Phone: "+27820000000", Body: "hi"})
	err := sender.HandleMessage(body)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHandleMessage_MalformedDropped(t *testing.T) {
	gateway := new(mockGateway)
	sender := NewSender(discardLogger(), gateway)

	assert.NoError(t, sender.HandleMessage([]byte("not-json")))
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_MissingPhoneDropped(t *testing.T) {
	gateway := new(mockGateway)
	sender := NewSender(discardLogger(), gateway)

	body, _ := json.Marshal(models.SMSEvent{AccountUID: "uid-1", Body: "hi"})
	assert.NoError(t, sender.HandleMessage(body))
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
