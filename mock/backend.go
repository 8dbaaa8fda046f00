// Package mock provides function-field implementations of the backend
// collaborators for tests.
package mock

import (
	"context"

	"github.com/meghashyamc/docregistry/models"
	"github.com/meghashyamc/docregistry/services/consult"
)

var _ consult.ClientLookup = (*ClientLookup)(nil)

// ClientLookup is a mock implementation of consult.ClientLookup.
type ClientLookup struct {
	SearchByNameFn func(ctx context.Context, fragment string) ([]models.Client, error)
	GetByIDFn      func(ctx context.Context, id int) (models.Client, error)
}

func (c *ClientLookup) SearchByName(ctx context.Context, fragment string) ([]models.Client, error) {
	return c.SearchByNameFn(ctx, fragment)
}

func (c *ClientLookup) GetByID(ctx context.Context, id int) (models.Client, error) {
	return c.GetByIDFn(ctx, id)
}

var _ consult.DocumentLookup = (*DocumentLookup)(nil)

// DocumentLookup is a mock implementation of consult.DocumentLookup.
type DocumentLookup struct {
	TypesFn  func(ctx context.Context) ([]models.DocumentType, error)
	SearchFn func(ctx context.Context, filter models.SearchFilter) ([]models.Document, error)
	DeleteFn func(ctx context.Context, id int) error
}

func (d *DocumentLookup) Types(ctx context.Context) ([]models.DocumentType, error) {
	return d.TypesFn(ctx)
}

func (d *DocumentLookup) Search(ctx context.Context, filter models.SearchFilter) ([]models.Document, error) {
	return d.SearchFn(ctx, filter)
}

func (d *DocumentLookup) Delete(ctx context.Context, id int) error {
	return d.DeleteFn(ctx, id)
}
