package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHostLimiterSpacesRequests(t *testing.T) {
	hl := NewHostLimiter(100, 1) // 10ms between requests
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, hl.WaitURL(ctx, "http://a.example/page"))
	}
	// burst of 1, so the 2nd and 3rd each wait ~10ms
	require.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestHostLimiterIndependentHosts(t *testing.T) {
	hl := NewHostLimiter(1, 1) // 1/s per host
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "http://a.example/x"))
	require.NoError(t, hl.WaitURL(ctx, "http://b.example/y"))
	// different hosts use separate buckets; no cross-host wait
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHostLimiterCancellation(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "http://a.example/x")) // consumes the burst

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, hl.WaitURL(ctx, "http://a.example/x"))
}
