package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvanceTo(t *testing.T) {
	// 前進はOK（飛び級も可）
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusShipped))
	assert.True(t, OrderStatusConfirmed.CanAdvanceTo(OrderStatusDelivered))

	// 後退は不可
	assert.False(t, OrderStatusShipped.CanAdvanceTo(OrderStatusConfirmed))
	assert.False(t, OrderStatusDelivered.CanAdvanceTo(OrderStatusPending))

	// 同じ値は前進ではない
	assert.False(t, OrderStatusConfirmed.CanAdvanceTo(OrderStatusConfirmed))

	// CANCELLEDはこの経路では扱わない
	assert.False(t, OrderStatusPending.CanAdvanceTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanAdvanceTo(OrderStatusPending))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, OrderStatusPending.CanCancel())
	assert.True(t, OrderStatusConfirmed.CanCancel())
	assert.False(t, OrderStatusShipped.CanCancel())
	assert.False(t, OrderStatusDelivered.CanCancel())
	assert.False(t, OrderStatusCancelled.CanCancel())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}
