package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrChainName    = "chain.name"
	AttrChainID      = "chain.id"
	AttrWalletName   = "wallet.name"
	AttrWalletState  = "wallet.state"
	AttrGeneration   = "bridge.generation"
	AttrRepositories = "bridge.repositories"
	AttrConnectors   = "bridge.connectors"
	AttrPrimaries    = "bridge.primary_connectors"
	AttrViewOpen     = "view.open"
	AttrSessions     = "manager.sessions"
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanBridgeInstall    = "bridge.install"
	SpanBridgeAttach     = "bridge.attach"
	SpanBridgeDetach     = "bridge.detach"
	SpanManagerMount     = "manager.mount"
	SpanManagerUnmount   = "manager.unmount"
	SpanWalletConnect    = "wallet.connect"
	SpanWalletDisconnect = "wallet.disconnect"
	SpanClientInit       = "wallet.client_init"
)

// Event names.
const (
	EventModalClosed   = "view.closed"
	EventSessionReused = "session.restored"
)

// Start opens a span on tracer. A nil tracer gets a no-op span.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err (if any) on span and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
