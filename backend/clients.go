package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meghashyamc/docregistry/models"
)

type ClientService struct {
	backend *Backend
}

func NewClientService(backend *Backend) *ClientService {
	return &ClientService{backend: backend}
}

// SearchByName returns the clients whose name matches fragment on the backend side.
func (s *ClientService) SearchByName(ctx context.Context, fragment string) ([]models.Client, error) {
	clients := []models.Client{}
	query := url.Values{"name": []string{fragment}}
	if err := s.backend.getJSON(ctx, "search clients", "clients", query, &clients); err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int) (models.Client, error) {
	var client models.Client
	if err := s.backend.getJSON(ctx, "get client", "clients/"+strconv.Itoa(id), nil, &client); err != nil {
		return models.Client{}, err
	}

	return client, nil
}
