package util

import (
	"sync"
	"testing"
	"time"

	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
)

func TestIndexedAtt(t *testing.T) {
	indices := []uint64{1, 2}
	att := IndexedAtt(indices, 3, 4, 258)
	indices[0] = 9
	assert.DeepEqual(t, []uint64{1, 2}, att.AttestingIndices)
	assert.Equal(t, uint64(3), uint64(att.Data.Source.Epoch))
	assert.Equal(t, uint64(4), uint64(att.Data.Target.Epoch))
	assert.Equal(t, byte(1), att.Data.Target.Root[30])
	assert.Equal(t, byte(2), att.Data.Target.Root[31])
	assert.Equal(t, [32]byte{}, att.Data.Source.Root)
}

func TestAttSlashing_Copies(t *testing.T) {
	a := IndexedAtt([]uint64{1}, 0, 1, 0)
	b := IndexedAtt([]uint64{1}, 0, 1, 1)
	s := AttSlashing(a, b)
	a.AttestingIndices[0] = 5
	assert.Equal(t, uint64(1), s.Attestation_1.AttestingIndices[0])
}

func TestHydrateIndexedAttestation(t *testing.T) {
	a := HydrateIndexedAttestation(nil)
	_, err := a.HashTreeRoot()
	require.NoError(t, err)
	require.NotNil(t, a.Data.Source)
	require.NotNil(t, a.Data.Target)
	_, err = a.MarshalSSZ()
	require.NoError(t, err)
}

func TestHydrateAttestation(t *testing.T) {
	a := HydrateAttestation(nil)
	require.NotNil(t, a.Data)
	require.NotNil(t, a.Data.Target)
}

func TestWaitTimeout(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	assert.Equal(t, true, WaitTimeout(&wg, 10*time.Millisecond))
	wg.Done()
	assert.Equal(t, false, WaitTimeout(&wg, time.Second))
}
