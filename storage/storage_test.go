package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comcast/spamscan/records"
)

func TestNoop(t *testing.T) {
	var s Storage = &NoopStorage{}
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.WriteScan(ctx, &ScanRecord{Input: "x"}))
	srs, err := s.GetScans(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, srs)
	require.NoError(t, s.Close(ctx))
}

func TestFlagged(t *testing.T) {
	scan := func(ids ...int) *ScanRecord {
		return &ScanRecord{Result: &records.Result{Flagged: ids}}
	}

	assert.Nil(t, Flagged(nil))
	assert.Equal(t, []int{3, 1}, Flagged([]*ScanRecord{scan(3, 1)}))
	assert.Equal(t, []int{3, 5}, Flagged([]*ScanRecord{scan(3, 1, 5), scan(5, 3), scan(3, 5, 7)}))
	assert.Equal(t, []int{}, Flagged([]*ScanRecord{scan(1), scan(2)}))
	assert.Nil(t, Flagged([]*ScanRecord{scan(1), {}}))
}
