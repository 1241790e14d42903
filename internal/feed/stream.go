package feed

import (
	"context"

	"github.com/rickgao/pricefeed/internal/model"
)

// Stream opens a streaming session: it registers a subscriber, replays
// the current store snapshot, then relays live updates until ctx is
// cancelled. The returned channel is closed when the session ends; the
// subscriber is unregistered exactly once on every exit path.
func (p *Publisher) Stream(ctx context.Context) <-chan model.PriceUpdate {
	sub := p.registry.Register(p.cfg.QueueCapacity)
	out := make(chan model.PriceUpdate)

	// Snapshot before the relay starts so a price published while the
	// session is being set up lands on the queue rather than being
	// missed. A value can appear in both the snapshot and the queue;
	// subscribers only care about the latest value per ticker.
	snapshot := p.store.Snapshot()

	p.logger.Debug("streaming session started",
		"subscriber", sub.ID(),
		"snapshot_size", len(snapshot),
	)

	go func() {
		defer close(out)
		defer p.registry.Unregister(sub)

		// Unblock the queue read when the consumer goes away.
		stop := context.AfterFunc(ctx, sub.queue.Close)
		defer stop()

		for _, update := range snapshot {
			select {
			case out <- update:
			case <-ctx.Done():
				return
			}
		}

		for {
			update, ok := sub.queue.Receive()
			if !ok {
				return
			}
			select {
			case out <- update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
