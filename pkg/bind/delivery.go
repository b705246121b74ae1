package bind

import (
	"sync"

	"github.com/tether-go/tether/pkg/rx"
)

var (
	deliveryOnce sync.Once
	delivery     *rx.Loop
)

// Delivery returns the shared delivery loop two-way bindings use when no
// scheduler is supplied. It starts lazily and runs for the life of the
// process. Bindings that should deliver elsewhere, such as a per-session
// loop or a test loop, pass their own scheduler in BothOptions.
func Delivery() *rx.Loop {
	deliveryOnce.Do(func() {
		delivery = rx.NewLoop(rx.LoopOptions{Name: "delivery"})
	})
	return delivery
}
