package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocery-share/internal/models"
)

func TestNotifierDeliversToSubscribers(t *testing.T) {
	n := NewNotifier()

	var got []string
	n.Subscribe(func(ident *models.Identity) {
		got = append(got, ident.UID)
	})

	n.Notify(&models.Identity{UID: "u1"})
	n.Notify(&models.Identity{UID: "u2"})

	assert.Equal(t, []string{"u1", "u2"}, got)
}

func TestNotifierUnsubscribeStopsDelivery(t *testing.T) {
	n := NewNotifier()

	calls := 0
	unsubscribe := n.Subscribe(func(*models.Identity) { calls++ })

	n.Notify(&models.Identity{UID: "u1"})
	unsubscribe()
	n.Notify(&models.Identity{UID: "u2"})

	assert.Equal(t, 1, calls)

	// Disposer is idempotent
	unsubscribe()
	n.Notify(&models.Identity{UID: "u3"})
	assert.Equal(t, 1, calls)
}

func TestNotifierIndependentSubscribers(t *testing.T) {
	n := NewNotifier()

	a, b := 0, 0
	unsubA := n.Subscribe(func(*models.Identity) { a++ })
	n.Subscribe(func(*models.Identity) { b++ })

	n.Notify(&models.Identity{UID: "u1"})
	unsubA()
	n.Notify(&models.Identity{UID: "u2"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}
