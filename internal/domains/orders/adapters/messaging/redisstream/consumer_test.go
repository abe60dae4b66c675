package redisstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
)

func TestDecodeDispatchedMessage(t *testing.T) {
	msg, err := decodeDispatchedMessage(map[string]any{
		"messageId": "2f3a9a6e-8f40-4a39-9d5e-0f6f1f1d8b77",
		"payload":   `{"orderId":42}`,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDispatchedMessage{OrderID: 42}, msg)
}

func TestDecodeDispatchedMessage_Invalid(t *testing.T) {
	cases := map[string]map[string]any{
		"missing payload": {"messageId": "x"},
		"empty payload":   {"payload": ""},
		"not json":        {"payload": "not-json"},
		"zero order id":   {"payload": `{"orderId":0}`},
		"payload not a string": {"payload": 7},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeDispatchedMessage(values)
			require.Error(t, err)
		})
	}
}
