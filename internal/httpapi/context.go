package httpapi

import (
	"context"
)

// serverBaseCtx is canceled on shutdown so long-lived streams end with the
// process rather than only when the client disconnects.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by stream handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// streamContext derives from the request context and is also canceled when
// the server base context ends. The returned cancel must be called.
func streamContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(serverBaseCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
