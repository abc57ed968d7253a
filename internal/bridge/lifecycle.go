package bridge

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/tracing"
)

// Phase is the lifecycle position of a bridge. A bridge is attached at most
// once; after Detach it stays Retired.
type Phase int

const (
	Detached Phase = iota
	Attached
	Retired
)

func (p Phase) String() string {
	switch p {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	case Retired:
		return "retired"
	default:
		return "unknown"
	}
}

// Phase returns the current lifecycle phase.
func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Attach installs action tables and starts the manager. Only the first call
// has any effect; it reports whether this call attached.
func (b *Bridge) Attach() bool {
	b.mu.Lock()
	switch b.phase {
	case Attached:
		b.mu.Unlock()
		return false
	case Retired:
		b.mu.Unlock()
		log.Warn(log.CatBridge, "attach after detach ignored")
		return false
	}
	b.phase = Attached
	b.mu.Unlock()

	_, span := tracing.Start(context.Background(), b.opts.Tracer, tracing.SpanBridgeAttach)
	defer tracing.End(span, nil)

	b.Install()
	if b.manager != nil {
		b.manager.OnMounted()
	}
	log.Info(log.CatBridge, "attached", "modal", b.opts.ModalProvided)
	return true
}

// Detach closes the wallet view, then stops the manager, then retires every
// installed action table. Only the first call after Attach has any effect.
func (b *Bridge) Detach() bool {
	b.mu.Lock()
	if b.phase != Attached {
		b.mu.Unlock()
		return false
	}
	b.phase = Retired
	b.mu.Unlock()

	_, span := tracing.Start(context.Background(), b.opts.Tracer, tracing.SpanBridgeDetach,
		attribute.Bool(tracing.AttrViewOpen, b.cells.ViewOpen.Get()))
	defer tracing.End(span, nil)

	b.cells.ViewOpen.Set(false)
	span.AddEvent(tracing.EventModalClosed)
	if b.manager != nil {
		b.manager.OnUnmounted()
	}
	b.retire()
	log.Info(log.CatBridge, "detached")
	return true
}
