package dynamo

import (
	"context"
)

// Table is a DynamoDB table.
// Requests created from it are pre-filled with its name.
type Table struct {
	name   string
	client *Client
}

// Table returns a Table handle specified by name.
func (c *Client) Table(name string) Table {
	return Table{
		name:   name,
		client: c,
	}
}

// Name returns this table's name.
func (table Table) Name() string {
	return table.name
}

// Get begins a new request to read the item with the given key.
func (table Table) Get(key Item) *GetItemRequest {
	return NewGetItemRequest(table.name, key)
}

// Put begins a new request to write item.
func (table Table) Put(item Item) *PutItemRequest {
	return NewPutItemRequest(table.name, item)
}

// Delete begins a new request to delete the item with the given key.
func (table Table) Delete(key Item) *DeleteItemRequest {
	return NewDeleteItemRequest(table.name, key)
}

// Update begins a new request to edit the item with the given key.
func (table Table) Update(key Item) *UpdateItemRequest {
	return NewUpdateItemRequest(table.name, key)
}

// Scan begins a new request to read every item in this table.
func (table Table) Scan() *ScanRequest {
	return NewScanRequest(table.name)
}

// GetItem sends req to this table.
func (table Table) GetItem(ctx context.Context, req *GetItemRequest) (*GetItemResult, error) {
	return table.client.GetItem(ctx, req.WithTableName(table.name))
}

// PutItem sends req to this table.
func (table Table) PutItem(ctx context.Context, req *PutItemRequest) (*PutItemResult, error) {
	return table.client.PutItem(ctx, req.WithTableName(table.name))
}

// DeleteItem sends req to this table.
func (table Table) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResult, error) {
	return table.client.DeleteItem(ctx, req.WithTableName(table.name))
}

// UpdateItem sends req to this table.
func (table Table) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResult, error) {
	return table.client.UpdateItem(ctx, req.WithTableName(table.name))
}

// ScanPages scans this table page by page. See Client.ScanPages.
func (table Table) ScanPages(ctx context.Context, req *ScanRequest, fn func(*ScanResult) error) error {
	return table.client.ScanPages(ctx, req.WithTableName(table.name), fn)
}
