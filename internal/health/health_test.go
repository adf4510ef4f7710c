package health

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheck(t *testing.T) {
	srv := NewServer(testutil.SetupTestDB(t), logger.NewNop())

	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	_, err = srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "billing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCheckReportsDatabaseDown(t *testing.T) {
	srv := NewServer(pingFunc(func(context.Context) error { return errors.New("connection refused") }), logger.NewNop())

	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	r := testutil.SetupRouter()
	r.GET("/health", srv.GinHandler())
	w := testutil.DoRequest(r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"NOT_SERVING"}`, w.Body.String())
}
