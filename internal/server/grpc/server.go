// Package grpc exposes the auth service over gRPC and guards its methods with
// bearer-token interceptors.
package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"
	"google.golang.org/grpc"
)

type authService interface {
	Login(ctx context.Context, id, password string) (*services.LoginResult, error)
	ChangePassword(ctx context.Context, claims *auth.Claims, in services.ChangePasswordInput) error
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address    string
	auth       authService
	authorizer *Authorizer
	policy     MethodPolicy
	validator  *validation.Validator
	logger     logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, as authService, cfg *config.Config) (*GRPCServer, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("validator init error: %w", err)
	}

	authorizer := NewAuthorizer(auth.NewSigner(), []byte(cfg.AccessTokenSecret))

	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		auth:       as,
		authorizer: authorizer,
		validator:  v,
		policy: MethodPolicy{
			pb.AuthService_Me_FullMethodName:             authorizer.Authorize(),
			pb.AuthService_ChangePassword_FullMethodName: authorizer.Authorize(models.RoleAdmin, models.RoleFaculty, models.RoleStudent),
		},
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.policy.Interceptor()))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
