// Package natsfeed exposes NATS subjects as observable streams, bridging
// external message feeds into the binding layer.
package natsfeed

import (
	"encoding/json"
	"fmt"
	"log/slog"

	natsgo "github.com/nats-io/nats.go"

	"github.com/tether-go/tether/pkg/rx"
)

// StreamOptions configures a subject stream.
type StreamOptions struct {
	// Logger for diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Queue joins each subscription to a NATS queue group, so every message
	// lands on exactly one member.
	Queue string
}

func mergeOptions(opts []StreamOptions) StreamOptions {
	var o StreamOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Stream turns a NATS subject into a raw byte stream. Each Subscribe creates
// its own NATS subscription; message payloads arrive as OnNext and a failed
// subscribe as OnError. Releasing the handle unsubscribes the NATS side.
//
// Streams returned here can terminate, unlike value-cell projections. Bind
// them with that in mind.
func Stream(nc *natsgo.Conn, subject string, opts ...StreamOptions) rx.Observable[[]byte] {
	o := mergeOptions(opts)
	return rx.Create(func(obs rx.Observer[[]byte]) func() {
		return subscribe(nc, subject, o, func(msg *natsgo.Msg) {
			obs.OnNext(msg.Data)
		}, obs.OnError)
	})
}

// StreamJSON turns a NATS subject carrying JSON payloads into a stream of T.
// A payload that does not decode terminates that subscription with the
// decode error; NATS keeps delivering to the subject's other subscribers.
func StreamJSON[T any](nc *natsgo.Conn, subject string, opts ...StreamOptions) rx.Observable[T] {
	o := mergeOptions(opts)
	return rx.Create(func(obs rx.Observer[T]) func() {
		return subscribe(nc, subject, o, func(msg *natsgo.Msg) {
			var v T
			if err := json.Unmarshal(msg.Data, &v); err != nil {
				obs.OnError(fmt.Errorf("natsfeed: decode %s: %w", subject, err))
				return
			}
			obs.OnNext(v)
		}, obs.OnError)
	})
}

// subscribe creates the NATS subscription and returns its teardown, or
// reports the failure through onError and returns nil.
func subscribe(nc *natsgo.Conn, subject string, o StreamOptions, h natsgo.MsgHandler, onError func(error)) func() {
	var sub *natsgo.Subscription
	var err error
	if o.Queue != "" {
		sub, err = nc.QueueSubscribe(subject, o.Queue, h)
	} else {
		sub, err = nc.Subscribe(subject, h)
	}
	if err != nil {
		onError(fmt.Errorf("natsfeed: subscribe %s: %w", subject, err))
		return nil
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			o.Logger.Warn("nats unsubscribe failed",
				slog.String("subject", subject),
				slog.Any("error", err))
		}
	}
}
