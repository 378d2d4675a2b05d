package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL    string
	requestTimeout time.Duration
	conn           *grpc.ClientConn
	client         pb.AuthServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
}

// accessTokenInterceptor attaches the current access token, if any. An expired
// token ends the session: the token is dropped and the caller has to log in
// again.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	if isExpired(err) {
		s.setToken("")
	}

	return err
}

func isExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func NewAuthClient(endpointURL string, requestTimeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, requestTimeout: requestTimeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

func (s *GRPCClient) Login(ctx context.Context, id, password string) (*Session, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Id: id, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.AccessToken)

	return &Session{NeedsPasswordChange: resp.NeedsPasswordChange}, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {

	if s.token() == "" {
		return ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.ChangePassword(ctx, &pb.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Me(ctx context.Context) (*Identity, error) {

	if s.token() == "" {
		return nil, ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Me(ctx, &pb.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &Identity{
		UserID:    resp.UserId,
		Role:      resp.Role,
		IssuedAt:  time.Unix(resp.IssuedAt, 0),
		ExpiresAt: time.Unix(resp.ExpiresAt, 0),
	}, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

// Logout forgets the access token held by the client. Tokens are not persisted
// server-side, so there is nothing to revoke.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	msg := st.Message()
	switch st.Code() {
	case codes.Unauthenticated:
		if msg == common.ErrTokenExpired.Error() {
			return ErrSessionExpired
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
