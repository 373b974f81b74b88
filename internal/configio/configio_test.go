package configio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

func TestDecode_OverlaysDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{"agent_size": 0.2, "hlh_type": 1}`))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, cfg.AgentSize, 1e-9)
	assert.Equal(t, 1, cfg.HLHType)
	assert.Equal(t, core.DefaultConnectedness, cfg.Connectedness)
}

func TestDecode_EmptyDocumentIsAllDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, core.DefaultConfig(), cfg)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.FocalWeight = 1.5

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cfg))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`not json`))
	assert.Error(t, err)
}
