package out

import (
	"context"
	"fmt"
	"net/http"

	"diagnocare/internal/modules/auth/domain"
	authout "diagnocare/internal/modules/auth/port/out"
	"diagnocare/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

var _ authout.Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	return httpapi.Call[domain.AuthResult](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	})
}

func (g *HTTPGateway) Register(ctx context.Context, req authout.RegisterRequest) (domain.AuthResult, error) {
	return httpapi.Call[domain.AuthResult](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/register",
		Body:   req,
	})
}

func (g *HTTPGateway) Refresh(ctx context.Context, refreshToken string) (domain.AuthResult, error) {
	return httpapi.Call[domain.AuthResult](ctx, g.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/refresh-token",
		Body:   map[string]string{"refreshToken": refreshToken},
	})
}

func (g *HTTPGateway) Roles(ctx context.Context) ([]domain.Role, error) {
	return httpapi.Call[[]domain.Role](ctx, g.client, httpapi.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/auth/roles",
	})
}

func (g *HTTPGateway) UpdateUser(ctx context.Context, userID int64, patch domain.UserPatch) error {
	_, err := g.client.Do(ctx, httpapi.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/v1/auth/users/%d", userID),
		Body:   patch,
		Auth:   true,
	})
	return err
}

func (g *HTTPGateway) DeleteUser(ctx context.Context, userID int64) error {
	_, err := g.client.Do(ctx, httpapi.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/v1/auth/users/%d", userID),
		Auth:   true,
	})
	return err
}
