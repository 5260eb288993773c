package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanz/policy-sdk-go/wireformat"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema(wireformat.PubKeyVerifyV1{})
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "expected an expanded object schema")
	assert.Contains(t, props, "image")
	assert.Contains(t, props, "pub_keys")
	assert.Contains(t, props, "annotations")
}

func TestWireSchemas_CoversEveryVariant(t *testing.T) {
	schemas, err := WireSchemas()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"v1/SigstoreKeylessVerify",
		"v1/SigstorePubKeyVerify",
		"v2/SigstoreGithubActionsVerify",
		"v2/SigstoreKeylessPrefixVerify",
		"v2/SigstoreKeylessVerify",
		"v2/SigstorePubKeyVerify",
	}, Names(schemas))

	for name, data := range schemas {
		assert.True(t, json.Valid(data), "schema %s is not valid JSON", name)
	}
}

// Every v1 variant must appear again under v2.
func TestWireSchemas_V2IsASupersetOfV1(t *testing.T) {
	schemas, err := WireSchemas()
	require.NoError(t, err)

	for name := range schemas {
		version, variant, ok := strings.Cut(name, "/")
		require.True(t, ok)
		if version != "v1" {
			continue
		}
		assert.Contains(t, schemas, "v2/"+variant)
	}
}
