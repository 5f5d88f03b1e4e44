package dynamo

import (
	"context"
)

type ctxKey int

var clientCtxKey ctxKey

// NewContext creates a new context associated with c.
func NewContext(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientCtxKey, c)
}

// FromContext retrieves the Client inside the given context, if any.
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(clientCtxKey).(*Client)
	return c
}
