package util

import (
	"context"
)

// Sel runs f and waits for it or for ctx, whichever finishes first.
// A canceled ctx returns immediately without starting f. The result
// channel is buffered so an abandoned f still runs to completion and
// exits instead of blocking on the send forever.
func Sel(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var d = make(chan error, 1)
	go func() {
		d <- f()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-d:
		return err
	}
}
