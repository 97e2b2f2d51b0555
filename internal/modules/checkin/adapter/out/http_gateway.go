package out

import (
	"context"
	"fmt"
	"net/http"

	"diagnocare/internal/modules/checkin/domain"
	checkinout "diagnocare/internal/modules/checkin/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ checkinout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Submit(ctx context.Context, req domain.CreateRequest) (domain.CheckIn, error) {
	return httpapi.Call[domain.CheckIn](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/check-ins",
		Body:   req,
		Auth:   true,
	})
}

func (g *HTTPGateway) ListByUser(ctx context.Context, userID int64) ([]domain.CheckIn, error) {
	return httpapi.Call[[]domain.CheckIn](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/check-ins?userId=%d", userID),
		Auth:   true,
	})
}
