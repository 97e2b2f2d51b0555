package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"diagnocare/internal/modules/catalog/domain"
	catalogout "diagnocare/internal/modules/catalog/port/out"
)

// CatalogService loads the symptom catalog once per process and filters it
// locally.
type CatalogService struct {
	gateway catalogout.Gateway

	mu     sync.Mutex
	cached []domain.Symptom
}

func NewCatalogService(gateway catalogout.Gateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

func (s *CatalogService) All(ctx context.Context) ([]domain.Symptom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}
	items, err := s.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	items = dedupe(items)
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
	s.cached = items
	return items, nil
}

func (s *CatalogService) Search(ctx context.Context, label string) ([]domain.Symptom, error) {
	items, err := s.gateway.Search(ctx, strings.TrimSpace(label))
	if err != nil {
		return nil, err
	}
	return dedupe(items), nil
}

func dedupe(items []domain.Symptom) []domain.Symptom {
	seen := map[int64]struct{}{}
	out := make([]domain.Symptom, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
