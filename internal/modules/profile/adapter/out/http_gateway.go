package out

import (
	"context"
	"fmt"
	"net/http"

	"diagnocare/internal/modules/profile/domain"
	profileout "diagnocare/internal/modules/profile/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ profileout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Get(ctx context.Context, userID int64) (domain.Profile, error) {
	return httpapi.Call[domain.Profile](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/diagnocare/patient-profiles/user/%d", userID),
		Auth:   true,
	})
}

func (g *HTTPGateway) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	return httpapi.Call[domain.Profile](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/patient-profiles",
		Body:   profile,
		Auth:   true,
	})
}
