package grpc

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// RequestIDHeader is the response header carrying the per-call request id.
const RequestIDHeader = "x-request-id"

const msgNotAuthorized = "You are not authorized"

// ClaimsFromContext returns the verified claims attached by an Authorize gate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

type tokenVerifier interface {
	Verify(tokenString string, secretKey []byte) (*auth.Claims, error)
}

// Authorizer builds per-method gates that admit requests bearing a valid
// access token.
type Authorizer struct {
	verifier tokenVerifier
	secret   []byte
}

func NewAuthorizer(verifier tokenVerifier, accessTokenSecret []byte) *Authorizer {
	return &Authorizer{verifier: verifier, secret: accessTokenSecret}
}

// Authorize returns an interceptor admitting requests whose bearer token
// verifies against the access secret and, when roles are given, whose role
// claim is one of them. On success the claims are put on the context.
func (a *Authorizer) Authorize(roles ...models.Role) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		token := bearerToken(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, msgNotAuthorized)
		}

		claims, err := a.verifier.Verify(token, a.secret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
			}
			return nil, status.Error(codes.Unauthenticated, msgNotAuthorized)
		}

		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			return nil, status.Error(codes.Unauthenticated, msgNotAuthorized)
		}

		ctx = context.WithValue(ctx, claimsKey, claims)

		return handler(ctx, req)
	}
}

// bearerToken reads the authorization metadata. Both "Bearer <token>" and a
// bare token are accepted; a scheme with nothing after it yields "".
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}

	v := strings.TrimLeft(values[0], " \t")
	scheme := strings.TrimSpace(common.BearerPrefix)
	if len(v) >= len(scheme) && strings.EqualFold(v[:len(scheme)], scheme) {
		rest := v[len(scheme):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			v = rest
		}
	}
	return strings.TrimSpace(v)
}

// MethodPolicy maps full method names to gates. Methods without an entry are
// public.
type MethodPolicy map[string]grpc.UnaryServerInterceptor

func (p MethodPolicy) Interceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if gate, ok := p[info.FullMethod]; ok {
			return gate(ctx, req, info, handler)
		}
		return handler(ctx, req)
	}
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	requestID := uuid.NewString()

	// fails outside a real transport stream, e.g. in unit tests
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

	s.logger.Debug(ctx, "request received", "request_id", requestID, "method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{
		"request_id", requestID,
		"method", info.FullMethod,
		"code", code.String(),
		"duration", time.Since(start),
	}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "request failed", args...)
	} else {
		s.logger.Info(ctx, "request handled", args...)
	}

	return resp, err
}
