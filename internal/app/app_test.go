package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
)

type countingTokenService struct {
	purges atomic.Int64
}

func (s *countingTokenService) CreateTokenPair(context.Context, int64) (*domain.TokenPair, error) {
	return nil, nil
}

func (s *countingTokenService) RefreshAccessToken(context.Context, string) (string, error) {
	return "", nil
}

func (s *countingTokenService) PurgeExpired(context.Context) error {
	s.purges.Add(1)
	return nil
}

func TestRunTokenPurge_PurgesAtStartupAndOnTick(t *testing.T) {
	tokens := &countingTokenService{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		runTokenPurge(ctx, tokens, 10*time.Millisecond, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return tokens.purges.Load() >= 2
	}, time.Second, 5*time.Millisecond, "expected a startup purge followed by at least one tick")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge loop did not stop on context cancellation")
	}
}
