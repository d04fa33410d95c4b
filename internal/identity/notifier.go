package identity

import (
	"sync"

	"grocery-share/internal/models"
)

// Notifier broadcasts sign-in events to explicitly registered observers.
// The core never depends on it for correctness; it exists so presentation
// code can react to auth-state changes without the storage layer growing
// hidden listener side effects.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*models.Identity)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(*models.Identity))}
}

// Subscribe registers fn and returns a disposer that removes it. The
// disposer is idempotent.
func (n *Notifier) Subscribe(fn func(*models.Identity)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify invokes every subscriber synchronously with the signed-in identity.
func (n *Notifier) Notify(ident *models.Identity) {
	n.mu.Lock()
	fns := make([]func(*models.Identity), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(ident)
	}
}
