package consult

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/graph-gophers/dataloader"
	"github.com/meghashyamc/docregistry/models"
	"golang.org/x/sync/errgroup"
)

const (
	clientBatchWait      = 5 * time.Millisecond
	maxConcurrentLookups = 8
)

var _ ClientLookup = (*BatchedClients)(nil)

// BatchedClients coalesces concurrent GetByID calls into one batch so the
// same client is fetched once per batch. Nothing is cached across batches.
// SearchByName goes straight through.
type BatchedClients struct {
	inner  ClientLookup
	loader *dataloader.Loader
}

func NewBatchedClients(inner ClientLookup) *BatchedClients {
	b := &BatchedClients{inner: inner}
	b.loader = dataloader.NewBatchedLoader(
		b.batch,
		dataloader.WithWait(clientBatchWait),
		dataloader.WithCache(&dataloader.NoCache{}),
	)
	return b
}

func (b *BatchedClients) SearchByName(ctx context.Context, fragment string) ([]models.Client, error) {
	return b.inner.SearchByName(ctx, fragment)
}

func (b *BatchedClients) GetByID(ctx context.Context, id int) (models.Client, error) {
	data, err := b.loader.Load(ctx, dataloader.StringKey(strconv.Itoa(id)))()
	if err != nil {
		return models.Client{}, err
	}
	client, ok := data.(models.Client)
	if !ok {
		return models.Client{}, fmt.Errorf("unexpected client loader result %T", data)
	}
	return client, nil
}

// batch resolves every distinct id once and answers the keys in order.
func (b *BatchedClients) batch(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
	type lookup struct {
		client models.Client
		err    error
	}

	lookups := map[string]*lookup{}
	for _, key := range keys {
		lookups[key.String()] = &lookup{}
	}

	group := errgroup.Group{}
	group.SetLimit(maxConcurrentLookups)
	for key, result := range lookups {
		id, err := strconv.Atoi(key)
		if err != nil {
			result.err = fmt.Errorf("invalid client id %q: %w", key, err)
			continue
		}
		group.Go(func() error {
			result.client, result.err = b.inner.GetByID(ctx, id)
			return nil
		})
	}
	_ = group.Wait()

	results := make([]*dataloader.Result, len(keys))
	for i, key := range keys {
		result := lookups[key.String()]
		if result.err != nil {
			results[i] = &dataloader.Result{Error: result.err}
			continue
		}
		results[i] = &dataloader.Result{Data: result.client}
	}
	return results
}
