package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONHandler(t *testing.T) {
	type digestReq struct {
		Image string `json:"image"`
	}
	type digestResp struct {
		Digest string `json:"digest"`
	}

	handler := NewJSONHandler(func(ctx context.Context, req digestReq) digestResp {
		return digestResp{Digest: "sha256:" + req.Image}
	})

	t.Run("success", func(t *testing.T) {
		respBytes, err := handler(context.Background(), []byte(`{"image":"busybox"}`))
		require.NoError(t, err)

		var resp digestResp
		require.NoError(t, json.Unmarshal(respBytes, &resp))
		assert.Equal(t, "sha256:busybox", resp.Digest)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := handler(context.Background(), []byte(`{not-json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal")
	})
}
