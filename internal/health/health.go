package health

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name clients may pass in a health check request.
const ServiceName = "workshop"

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server reports SERVING while the database answers a ping.
type Server struct {
	healthpb.UnimplementedHealthServer
	db     Pinger
	logger logger.ZapLogger
}

func NewServer(db Pinger, log logger.ZapLogger) *Server {
	return &Server{db: db, logger: log}
}

func Register(grpcServer *grpc.Server, srv *Server) {
	healthpb.RegisterHealthServer(grpcServer, srv)
}

func (s *Server) status(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}
	return &healthpb.HealthCheckResponse{Status: s.status(ctx)}, nil
}

// GinHandler exposes the same check over HTTP.
func (s *Server) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := s.status(c.Request.Context())
		code := http.StatusOK
		if st != healthpb.HealthCheckResponse_SERVING {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": st.String()})
	}
}
