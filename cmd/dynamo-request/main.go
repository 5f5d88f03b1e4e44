// Command dynamo-request sends one DynamoDB request read from a JSON document
// and prints the JSON result.
//
//	dynamo-request -op put -in request.json [-config dynamo.yaml]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	dynamo "github.com/lambdify/lambdify-aws-clients-sub001"
)

var (
	opFlag     = flag.String("op", "", "Operation: get, put, delete, update or scan")
	inFlag     = flag.String("in", "-", "Request JSON file, or - for stdin")
	configFlag = flag.String("config", "", "YAML config file; the environment is used if empty")
	envFlag    = flag.String("env", "", "Optional .env file loaded before reading the environment")
	allFlag    = flag.Bool("all", false, "For scan: follow LastEvaluatedKey and print every page")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dynamo-request:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := cfg.NewClient(ctx)
	if err != nil {
		return err
	}

	data, err := readInput(*inFlag)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	switch *opFlag {
	case "get":
		var req dynamo.GetItemRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		res, err := client.GetItem(ctx, &req)
		if err != nil {
			return err
		}
		return enc.Encode(res)
	case "put":
		var req dynamo.PutItemRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		res, err := client.PutItem(ctx, &req)
		if err != nil {
			return err
		}
		return enc.Encode(res)
	case "delete":
		var req dynamo.DeleteItemRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		res, err := client.DeleteItem(ctx, &req)
		if err != nil {
			return err
		}
		return enc.Encode(res)
	case "update":
		var req dynamo.UpdateItemRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		res, err := client.UpdateItem(ctx, &req)
		if err != nil {
			return err
		}
		return enc.Encode(res)
	case "scan":
		var req dynamo.ScanRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return err
		}
		if !*allFlag {
			res, err := client.Scan(ctx, &req)
			if err != nil {
				return err
			}
			return enc.Encode(res)
		}
		return client.ScanPages(ctx, &req, func(res *dynamo.ScanResult) error {
			return enc.Encode(res)
		})
	case "":
		return errors.New("missing -op")
	default:
		return fmt.Errorf("unknown operation %q", *opFlag)
	}
}

func loadConfig() (*dynamo.Config, error) {
	var envFiles []string
	if *envFlag != "" {
		envFiles = append(envFiles, *envFlag)
	}
	if *configFlag == "" {
		return dynamo.LoadConfig(envFiles...)
	}
	if len(envFiles) > 0 {
		if _, err := dynamo.LoadConfig(envFiles...); err != nil {
			return nil, err
		}
	}
	return dynamo.LoadConfigFile(*configFlag)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
