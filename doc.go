// Package dynamo offers typed DynamoDB requests and results, plus a small client to send them.
/*

Every request (GetItemRequest, PutItemRequest, DeleteItemRequest, UpdateItemRequest,
ScanRequest) is built with chained With methods that return the request itself.
Map-valued fields also have Add...Entry and Clear...Entries methods.
Mistakes made while building, such as adding the same key twice or setting an
enumeration to an unknown literal, are remembered: the first one is returned by Err,
and the request refuses to be encoded or sent.

Requests and results encode to and from the DynamoDB JSON protocol with
encoding/json, so they can be logged, stored and replayed.

*/
//
// # Simple Example
//
/*
	package main

	import (
		"context"
		"log"

		"github.com/aws/aws-sdk-go-v2/config"
		dynamo "github.com/lambdify/lambdify-aws-clients-sub001"
	)

	type widget struct {
		UserID int    // Hash key, a.k.a. partition key
		Time   string // Range key, a.k.a. sort key
		Msg    string `dynamodbav:"Message"`
	}

	func main() {
		ctx := context.Background()
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-west-2"))
		if err != nil {
			log.Fatal(err)
		}
		db := dynamo.New(cfg)
		table := db.Table("Widgets")

		// put item
		item, err := dynamo.MarshalItem(widget{UserID: 613, Time: "2015-12-04", Msg: "hello"})
		if err != nil {
			log.Fatal(err)
		}
		_, err = table.PutItem(ctx, table.Put(item))

		// update item field
		key, err := dynamo.NewKeyBuilder().Key("UserID", 613).Key("Time", "2015-12-04").Build()
		_, err = table.UpdateItem(ctx, table.Update(key).
			WithUpdateExpression("SET Message = :m").
			AddExpressionAttributeValuesEntry(":m", dynamo.StringValue("hello again")))

		// get the same item
		res, err := table.GetItem(ctx, table.Get(key).WithConsistentRead(true))
		var w widget
		err = res.Decode(&w)

		// scan every item
		var all []widget
		err = table.ScanPages(ctx, table.Scan(), func(page *dynamo.ScanResult) error {
			var ws []widget
			if err := page.DecodeAll(&ws); err != nil {
				return err
			}
			all = append(all, ws...)
			return nil
		})
	}
*/
//
// # Expressions
//
// Expressions are plain strings with #name and :value placeholders, filled in with
// the ExpressionAttributeNames and ExpressionAttributeValues methods.
// WithExpression copies everything from an expression built with
// github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression instead.
//
// # Retrying
//
// Throttled requests and server errors are retried with exponential backoff
// for up to DefaultRetryTimeout; see WithRetryTimeout.
package dynamo
