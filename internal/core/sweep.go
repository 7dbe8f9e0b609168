package core

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// sweepConcurrency caps the number of sessions processed in parallel by the
// bulk helpers so a large expiry sweep cannot flood the cluster API.
const sweepConcurrency = 10

// UninstallAll uninstalls the application for every given session,
// processing sessions concurrently. Sessions whose resources are already
// gone count as successes. The first failure cancels the remaining work and
// is returned.
//
// This is the building block for an external expiry sweeper: the scheduler
// decides which sessions are expired, UninstallAll tears them down.
func (o *Orchestrator) UninstallAll(ctx context.Context, def *Definition, sessionIDs []string, waitUntilUninstalled bool) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, sessionID := range sessionIDs {
		g.Go(func() error {
			if err := o.Uninstall(gCtx, def, sessionID, waitUntilUninstalled); err != nil {
				return fmt.Errorf("sweep session %s: %w", sessionID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// RefreshAll refreshes instance details for every given session,
// concurrently, and returns them keyed by session identifier. The first
// failure cancels the remaining work and is returned.
func (o *Orchestrator) RefreshAll(ctx context.Context, def *Definition, sessionIDs []string) (map[string]Details, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]Details, len(sessionIDs))
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, sessionID := range sessionIDs {
		g.Go(func() error {
			details, err := o.Refresh(gCtx, def, sessionID)
			if err != nil {
				return fmt.Errorf("refresh session %s: %w", sessionID, err)
			}
			mu.Lock()
			results[sessionID] = details
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
