package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meghashyamc/docregistry/models"
)

type DocumentService struct {
	backend *Backend
}

func NewDocumentService(backend *Backend) *DocumentService {
	return &DocumentService{backend: backend}
}

func (s *DocumentService) Types(ctx context.Context) ([]models.DocumentType, error) {
	types := []models.DocumentType{}
	if err := s.backend.getJSON(ctx, "list document types", "documentTypes", nil, &types); err != nil {
		return nil, err
	}

	return types, nil
}

// Search sends every filter key, leaving the value empty for unset fields.
func (s *DocumentService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Document, error) {
	query := url.Values{}
	query.Set("cliente", optionalInt(filter.ClientID))
	query.Set("caixa", optionalInt(filter.Box))
	query.Set("tipo", optionalInt(filter.TypeID))
	query.Set("nome", filter.Name)

	documents := []models.Document{}
	if err := s.backend.getJSON(ctx, "search documents", "documents", query, &documents); err != nil {
		return nil, err
	}

	return documents, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int) error {
	return s.backend.delete(ctx, "delete document", "documents/"+strconv.Itoa(id))
}

func optionalInt(value int) string {
	if value == 0 {
		return ""
	}
	return strconv.Itoa(value)
}
