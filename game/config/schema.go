package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// citySchema is the JSON Schema every city file must satisfy before it is
// unmarshaled. Structural problems (wrong types, missing catalogs) are
// caught here; semantic rules (cost ordering, zone kinds) are enforced by
// engine.ValidateCityConfig afterwards.
const citySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "description", "delivery_types", "vehicles", "zones"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "starting_money": {"type": "integer", "minimum": 0},
    "starting_reputation": {"type": "number", "minimum": 0},
    "starting_vehicle": {"type": "string"},
    "pickup_radius": {"type": "number", "exclusiveMinimum": 0},
    "auto_fail_on_timeout": {"type": "boolean"},
    "destinations": {"type": "array", "items": {"type": "string"}},
    "delivery_types": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["reward", "time_limit"],
        "properties": {
          "reward": {"type": "integer", "exclusiveMinimum": 0},
          "time_limit": {"type": "integer", "exclusiveMinimum": 0},
          "reputation": {"type": "number", "minimum": 0}
        }
      }
    },
    "vehicles": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["cost"],
        "properties": {
          "speed": {"type": "number", "exclusiveMinimum": 0},
          "capacity": {"type": "integer", "exclusiveMinimum": 0},
          "cost": {"type": "integer", "minimum": 0}
        }
      }
    },
    "zones": {
      "type": "array",
      "minItems": 2,
      "items": {
        "type": "object",
        "required": ["id", "kind", "position"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "kind": {"type": "string", "enum": ["pickup", "delivery"]},
          "name": {"type": "string"},
          "radius": {"type": "number", "minimum": 0},
          "position": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"}
            }
          }
        }
      }
    },
    "messages": {"type": "object"}
  }
}`

var compiledCitySchema = jsonschema.MustCompileString("city.schema.json", citySchema)

// validateSchema checks raw config JSON against the city schema.
func validateSchema(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledCitySchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
