// Package schema publishes JSON Schemas for the frozen wire contract, so
// guest SDK authors can check their encoders against the exact shape each
// generation accepts.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/jvanz/policy-sdk-go/wireformat"
)

// GenerateSchema creates a JSON Schema (Draft 2020-12) from a Go struct.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// WireSchemas returns the JSON Schema of every variant of every released
// request generation, keyed by "<version>/<variant>". The key set itself
// documents the superset guarantee: every v1 variant appears again under v2.
func WireSchemas() (map[string][]byte, error) {
	variants := map[string]interface{}{
		"v1/SigstorePubKeyVerify":        wireformat.PubKeyVerifyV1{},
		"v1/SigstoreKeylessVerify":       wireformat.KeylessVerifyV1{},
		"v2/SigstorePubKeyVerify":        wireformat.PubKeyVerifyV2{},
		"v2/SigstoreKeylessVerify":       wireformat.KeylessVerifyV2{},
		"v2/SigstoreKeylessPrefixVerify": wireformat.KeylessPrefixVerifyV2{},
		"v2/SigstoreGithubActionsVerify": wireformat.GithubActionsVerifyV2{},
	}

	schemas := make(map[string][]byte, len(variants))
	for name, v := range variants {
		data, err := GenerateSchema(v)
		if err != nil {
			return nil, fmt.Errorf("cannot generate schema for %s: %w", name, err)
		}
		schemas[name] = data
	}
	return schemas, nil
}

// Names returns the sorted key set of WireSchemas.
func Names(schemas map[string][]byte) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
