package out

import (
	"context"
	"fmt"
	"net/http"

	"diagnocare/internal/modules/prediction/domain"
	predictionout "diagnocare/internal/modules/prediction/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ predictionout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Create(ctx context.Context, req domain.CreateRequest) (domain.PredictionWithResults, error) {
	return httpapi.Call[domain.PredictionWithResults](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/predictions",
		Body:   req,
		Auth:   true,
	})
}

func (g *HTTPGateway) Get(ctx context.Context, predictionID int64) (domain.Prediction, error) {
	return httpapi.Call[domain.Prediction](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/predictions/%d", predictionID),
		Auth:   true,
	})
}

func (g *HTTPGateway) ListByUser(ctx context.Context, userID int64) ([]domain.Prediction, error) {
	return httpapi.Call[[]domain.Prediction](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/predictions/user/%d", userID),
		Auth:   true,
	})
}

func (g *HTTPGateway) PathologyResults(ctx context.Context, predictionID int64) ([]domain.PathologyResult, error) {
	return httpapi.Call[[]domain.PathologyResult](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/pathology-results/prediction/%d", predictionID),
		Auth:   true,
	})
}
