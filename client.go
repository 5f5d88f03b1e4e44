package dynamo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// API is the subset of the DynamoDB service client used by Client.
// *dynamodb.Client satisfies it.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// Client sends requests to DynamoDB.
type Client struct {
	api          API
	log          *zap.Logger
	retryTimeout time.Duration
	metrics      *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRetryTimeout bounds how long a call keeps retrying.
// Zero or less disables retrying.
func WithRetryTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.retryTimeout = d
	}
}

// WithMetrics records client activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a new client with the given configuration.
func New(cfg aws.Config, opts ...Option) *Client {
	return NewFromAPI(dynamodb.NewFromConfig(cfg), opts...)
}

// NewFromAPI creates a new client that sends requests through api.
func NewFromAPI(api API, opts ...Option) *Client {
	c := &Client{
		api:          api,
		log:          zap.NewNop(),
		retryTimeout: DefaultRetryTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// API returns the underlying service client.
func (c *Client) API() API {
	return c.api
}

func (c *Client) call(ctx context.Context, op, table string, f func() error) error {
	start := time.Now()
	err := c.retry(ctx, op, table, f)
	c.metrics.observe(op, table, start, err)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("operation", op),
			zap.String("table", table),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	c.log.Debug("request",
		zap.String("operation", op),
		zap.String("table", table),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// GetItem reads one item by primary key.
// A missing item is not an error; the result's Item is nil.
func (c *Client) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResult, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	input := req.input()
	var out *dynamodb.GetItemOutput
	err := c.call(ctx, "GetItem", req.tableName, func() error {
		var err error
		out, err = c.api.GetItem(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := getItemResultFromSDK(out)
	c.metrics.consumed("GetItem", req.tableName, res.cc)
	return res, nil
}

// PutItem creates or replaces an item.
func (c *Client) PutItem(ctx context.Context, req *PutItemRequest) (*PutItemResult, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	input := req.input()
	var out *dynamodb.PutItemOutput
	err := c.call(ctx, "PutItem", req.tableName, func() error {
		var err error
		out, err = c.api.PutItem(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := putItemResultFromSDK(out)
	c.metrics.consumed("PutItem", req.tableName, res.cc)
	return res, nil
}

// DeleteItem deletes an item by primary key.
func (c *Client) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResult, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	input := req.input()
	var out *dynamodb.DeleteItemOutput
	err := c.call(ctx, "DeleteItem", req.tableName, func() error {
		var err error
		out, err = c.api.DeleteItem(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := deleteItemResultFromSDK(out)
	c.metrics.consumed("DeleteItem", req.tableName, res.cc)
	return res, nil
}

// UpdateItem edits an item's attributes, creating the item if it does not exist.
func (c *Client) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResult, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	input := req.input()
	var out *dynamodb.UpdateItemOutput
	err := c.call(ctx, "UpdateItem", req.tableName, func() error {
		var err error
		out, err = c.api.UpdateItem(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := updateItemResultFromSDK(out)
	c.metrics.consumed("UpdateItem", req.tableName, res.cc)
	return res, nil
}

// Scan reads one page of a table or index.
func (c *Client) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	input := req.input()
	var out *dynamodb.ScanOutput
	err := c.call(ctx, "Scan", req.tableName, func() error {
		var err error
		out, err = c.api.Scan(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := scanResultFromSDK(out)
	c.metrics.consumed("Scan", req.tableName, res.cc)
	return res, nil
}

// ScanPages scans page after page, calling fn with each one, until the scan is complete.
// If fn returns ErrStopPaging, ScanPages stops and returns nil; any other error is returned as-is.
// req is not modified.
func (c *Client) ScanPages(ctx context.Context, req *ScanRequest, fn func(*ScanResult) error) error {
	if err := req.Err(); err != nil {
		return err
	}
	page := *req
	for {
		res, err := c.Scan(ctx, &page)
		if err != nil {
			return err
		}
		if err := fn(res); err != nil {
			if errors.Is(err, ErrStopPaging) {
				return nil
			}
			return err
		}
		if !res.MayHaveMore() {
			return nil
		}
		page.startKey = res.lastKey
	}
}

// ParallelScan splits the scan into segments and scans them concurrently.
// Calls to fn are serialised. The first error cancels the other segments and is returned;
// ErrStopPaging from fn stops only the segment that produced the page.
func (c *Client) ParallelScan(ctx context.Context, req *ScanRequest, segments int32, fn func(*ScanResult) error) error {
	if err := req.Err(); err != nil {
		return err
	}
	if segments < 1 {
		return req.segmentOf(0, segments).Err()
	}

	var mu sync.Mutex
	grp, ctx := errgroup.WithContext(ctx)
	for i := int32(0); i < segments; i++ {
		seg := req.segmentOf(i, segments)
		grp.Go(func() error {
			return c.ScanPages(ctx, seg, func(res *ScanResult) error {
				mu.Lock()
				defer mu.Unlock()
				return fn(res)
			})
		})
	}
	return grp.Wait()
}
