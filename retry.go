package dynamo

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DefaultRetryTimeout is the maximum amount of time a call keeps retrying
// throttled or failed requests, unless changed with WithRetryTimeout.
// Higher values are better when using tables with lower throughput.
const DefaultRetryTimeout = 1 * time.Minute

func (c *Client) retry(ctx context.Context, op, table string, f func() error) error {
	if c.retryTimeout <= 0 {
		return f()
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.retryTimeout
	boff := backoff.WithContext(b, ctx)

	var err error
	var next time.Duration
	for attempt := 1; ; attempt++ {
		if err = f(); err == nil {
			return nil
		}

		if !canRetry(err) {
			return err
		}

		if next = boff.NextBackOff(); next == backoff.Stop {
			return err
		}

		c.log.Warn("retrying request",
			zap.String("operation", op),
			zap.String("table", table),
			zap.Int("attempt", attempt),
			zap.Duration("wait", next),
			zap.Error(err),
		)
		c.metrics.retried(op, table)

		if serr := sleep(ctx, next); serr != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func canRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "ProvisionedThroughputExceededException",
			"ThrottlingException",
			"RequestLimitExceeded",
			"InternalServerError",
			"ServiceUnavailable":
			return true
		}
	}

	var re *smithyhttp.ResponseError
	if errors.As(err, &re) {
		switch re.HTTPStatusCode() {
		case 500, 503:
			return true
		}
	}
	return false
}
