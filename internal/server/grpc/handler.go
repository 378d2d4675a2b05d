package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	if err := s.validator.Login(req); err != nil {
		return nil, toStatus(err)
	}

	result, err := s.auth.Login(ctx, req.Id, req.Password)
	if err != nil {
		s.logFailure(ctx, "login rejected", err, "user_id", req.Id)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "User is logged in successfully", "user_id", req.Id)

	return &pb.LoginResponse{
		AccessToken:         result.AccessToken,
		RefreshToken:        result.RefreshToken,
		NeedsPasswordChange: result.NeedsPasswordChange,
	}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *pb.ChangePasswordRequest) (*emptypb.Empty, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgNotAuthorized)
	}

	if err := s.validator.ChangePassword(req); err != nil {
		return nil, toStatus(err)
	}

	err := s.auth.ChangePassword(ctx, claims, services.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		s.logFailure(ctx, "password change rejected", err, "user_id", claims.UserID)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Password is updated successfully", "user_id", claims.UserID)

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Me(ctx context.Context, req *pb.MeRequest) (*pb.MeResponse, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgNotAuthorized)
	}

	resp := &pb.MeResponse{UserId: claims.UserID, Role: string(claims.Role)}
	if claims.IssuedAt != nil {
		resp.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return resp, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

// logFailure logs expected rejections at warn level and everything else,
// including the hidden cause, at error level.
func (s *GRPCServer) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if common.KindOf(err) == common.KindInternal {
		s.logger.Error(ctx, msg, args...)
		return
	}
	s.logger.Warn(ctx, msg, args...)
}
