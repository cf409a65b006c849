package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusDispatched, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusReturned, false},
		{OrderStatusDispatched, OrderStatusDelivered, true},
		{OrderStatusDispatched, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusReceived, true},
		{OrderStatusDelivered, OrderStatusReturned, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusReceived, OrderStatusReturned, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusReturned, OrderStatusDelivered, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusDispatched.Terminal())
	assert.False(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusReceived.Terminal())
	assert.True(t, OrderStatusReturned.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestEffectivePrice(t *testing.T) {
	regular := Product{Price: 100, SalePrice: 80}
	assert.Equal(t, 100.0, regular.EffectivePrice())

	onSale := Product{Price: 100, SalePrice: 80, OnSale: true}
	assert.Equal(t, 80.0, onSale.EffectivePrice())

	saleWithoutPrice := Product{Price: 100, OnSale: true}
	assert.Equal(t, 100.0, saleWithoutPrice.EffectivePrice())
}
