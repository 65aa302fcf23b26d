package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checks are limited to known properties and numeric bounds, full draft support isn't needed here.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Ref  string                     `json:"$ref"`
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	v := schemaVerifier{defs: map[string]schemaNode{}}
	for name, raw := range schema.Defs {
		var node schemaNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return fmt.Errorf("parse schema definition %s: %w", name, err)
		}
		v.defs[name] = node
	}
	if err := v.check("", schemaNode{Ref: schema.Ref}, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

type schemaNode struct {
	Ref        string                `json:"$ref"`
	Type       string                `json:"type"`
	Properties map[string]schemaNode `json:"properties"`
	Items      *schemaNode           `json:"items"`
	Minimum    *float64              `json:"minimum"`
	Maximum    *float64              `json:"maximum"`
}

type schemaVerifier struct {
	defs map[string]schemaNode
}

func (v schemaVerifier) check(path string, node schemaNode, value any) error {
	if node.Ref != "" {
		def, ok := v.defs[strings.TrimPrefix(node.Ref, "#/$defs/")]
		if !ok {
			return fmt.Errorf("%s: unknown schema reference %s", path, node.Ref)
		}
		node = def
	}

	switch val := value.(type) {
	case map[string]any:
		if node.Properties == nil {
			return nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			prop, ok := node.Properties[k]
			if !ok {
				return fmt.Errorf("%s: unknown property %q", path, k)
			}
			if err := v.check(strings.TrimPrefix(path+"."+k, "."), prop, val[k]); err != nil {
				return err
			}
		}
	case []any:
		if node.Items == nil {
			return nil
		}
		for i, item := range val {
			if err := v.check(fmt.Sprintf("%s[%d]", path, i), *node.Items, item); err != nil {
				return err
			}
		}
	case float64:
		if node.Minimum != nil && val < *node.Minimum {
			return fmt.Errorf("%s: %v is below minimum %v", path, val, *node.Minimum)
		}
		if node.Maximum != nil && val > *node.Maximum {
			return fmt.Errorf("%s: %v is above maximum %v", path, val, *node.Maximum)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Schedule.Enabled && cfg.Schedule.UpdateInterval == 0 {
		return fmt.Errorf("schedule.update_interval is required when schedule is enabled")
	}
	if cfg.Extraction.Enabled && cfg.Extraction.Timeout == 0 {
		return fmt.Errorf("extraction.timeout is required when extraction is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
