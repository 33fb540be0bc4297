package kv

import (
	"testing"

	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/prysmaticlabs/slashing-oracle/testing/util"
)

func TestEncode_Nil(t *testing.T) {
	var att *ethpb.IndexedAttestation
	_, err := encode(att)
	require.ErrorContains(t, "cannot encode nil message", err)
}

func TestDecode_Corrupt(t *testing.T) {
	att := &ethpb.IndexedAttestation{}
	assert.NotNil(t, decode([]byte{0xff, 0x01, 0x02}, att))
}

func TestEncodeDecode(t *testing.T) {
	att := util.IndexedAtt([]uint64{3, 9}, 2, 4, 7)
	enc, err := encode(att)
	require.NoError(t, err)
	got := &ethpb.IndexedAttestation{}
	require.NoError(t, decode(enc, got))
	assert.DeepEqual(t, att, got)
}
