package out

import (
	"context"
	"fmt"
	"net/http"

	"diagnocare/internal/modules/summary/domain"
	summaryout "diagnocare/internal/modules/summary/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ summaryout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Get(ctx context.Context, predictionID int64) (domain.Summary, error) {
	return httpapi.Call[domain.Summary](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/consultation-summaries/%d", predictionID),
		Auth:   true,
	})
}

func (g *HTTPGateway) PDF(ctx context.Context, predictionID int64) ([]byte, error) {
	return g.client.Download(ctx, fmt.Sprintf("/api/v1/diagnocare/consultation-summaries/%d/pdf", predictionID))
}
