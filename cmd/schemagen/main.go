package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	server "stock-and-swipe/server"
)

// schemagen regenerates the JSON Schemas for the websocket wire messages.
// The message types carry jsonschema tags for their closed enums, so the
// reflected output keeps the constraints the checked-in schemas enforce.
// Run it after changing any snapshot or message type:
//
//	go run ./cmd/schemagen --out schemas
func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "schemas", "directory to write the schemas")
	flag.Parse()

	for _, target := range wireTargets() {
		data, err := reflectTarget(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to reflect %s: %v\n", target.name, err)
			os.Exit(1)
		}
		path := filepath.Join(outDir, target.name+".schema.json")
		if err := writeSchema(path, data); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

type target struct {
	name  string
	value any
	title string
}

func wireTargets() []target {
	return []target{
		{"state_message", new(server.StateMessage), "Stock & Swipe state broadcast"},
		{"client_message", new(server.ClientMessage), "Stock & Swipe client input"},
	}
}

func reflectTarget(t target) ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(t.value)
	schema.Title = t.title
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeSchema(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
