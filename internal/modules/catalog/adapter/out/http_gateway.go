package out

import (
	"context"
	"net/http"
	"net/url"

	"diagnocare/internal/modules/catalog/domain"
	catalogout "diagnocare/internal/modules/catalog/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ catalogout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) List(ctx context.Context) ([]domain.Symptom, error) {
	return httpapi.Call[[]domain.Symptom](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/diagnocare/symptoms",
		Auth:   true,
	})
}

func (g *HTTPGateway) Search(ctx context.Context, label string) ([]domain.Symptom, error) {
	return httpapi.Call[[]domain.Symptom](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/diagnocare/symptoms/search?label=" + url.QueryEscape(label),
		Auth:   true,
	})
}
