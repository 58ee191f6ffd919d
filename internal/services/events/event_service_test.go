package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
)

func TestPublish_DispatchesInRegistrationOrder(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	var order []string
	svc.Subscribe(interfaces.EventAlert, func(context.Context, interfaces.Event) {
		order = append(order, "first")
	})
	svc.Subscribe(interfaces.EventAlert, func(context.Context, interfaces.Event) {
		order = append(order, "second")
	})

	svc.Publish(context.Background(), interfaces.AlertEvent(interfaces.AlertInfo, "hello"))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublish_OnlyMatchingTypeReceives(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	received := 0
	svc.Subscribe(interfaces.EventStockUpdated, func(context.Context, interfaces.Event) {
		received++
	})

	svc.Publish(context.Background(), interfaces.AlertEvent(interfaces.AlertInfo, "ignored"))
	assert.Equal(t, 0, received)

	svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventStockUpdated})
	assert.Equal(t, 1, received)
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	assert.NotPanics(t, func() {
		svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventRefreshProgress})
	})
}

func TestSubscribe_NilHandlerIgnored(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	svc.Subscribe(interfaces.EventAlert, nil)
	assert.NotPanics(t, func() {
		svc.Publish(context.Background(), interfaces.AlertEvent(interfaces.AlertError, "x"))
	})
}

func TestClose_DropsSubscriptions(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	received := 0
	svc.Subscribe(interfaces.EventAlert, func(context.Context, interfaces.Event) {
		received++
	})

	svc.Close()
	svc.Publish(context.Background(), interfaces.AlertEvent(interfaces.AlertInfo, "after close"))
	assert.Equal(t, 0, received)
}
