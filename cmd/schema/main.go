package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/truckscope/pkg/config"
)

type opts struct {
	Check bool `long:"check" description:"fail if the schema file differs from the generated one"`
	Args  struct {
		Output string `positional-arg-name:"output" description:"schema file" default:"schema.json"`
	} `positional-args:"yes"`
}

func main() {
	var o opts
	if _, err := flags.Parse(&o); err != nil {
		os.Exit(1)
	}
	if err := run(o); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(o opts) error {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if o.Check {
		existing, err := os.ReadFile(o.Args.Output)
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}
		if !bytes.Equal(bytes.TrimSpace(existing), bytes.TrimSpace(data)) {
			return fmt.Errorf("schema %s is stale, run go generate ./pkg/config", o.Args.Output)
		}
		fmt.Printf("schema %s is up to date\n", o.Args.Output)
		return nil
	}

	if err := os.WriteFile(o.Args.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	fmt.Printf("schema generated at %s\n", o.Args.Output)
	return nil
}
