package grpc

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const testSecret = "access-secret"

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/gophauth.AuthService/Me"}

type countingVerifier struct {
	inner *auth.Signer
	calls int
}

func (v *countingVerifier) Verify(token string, secret []byte) (*auth.Claims, error) {
	v.calls++
	return v.inner.Verify(token, secret)
}

func newTestAuthorizer() (*Authorizer, *countingVerifier) {
	v := &countingVerifier{inner: auth.NewSigner()}
	return NewAuthorizer(v, []byte(testSecret)), v
}

func signToken(t *testing.T, id string, role models.Role, secret string, validity time.Duration) string {
	t.Helper()
	tok, err := auth.NewSigner().Sign(auth.NewClaims(id, role), []byte(secret), validity)
	require.NoError(t, err)
	return tok
}

func withAuthorization(value string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: value})
	return metadata.NewIncomingContext(context.Background(), md)
}

func mustNotRun(t *testing.T) grpc.UnaryHandler {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler must not be called")
		return nil, nil
	}
}

func requireUnauthenticated(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, msg, status.Convert(err).Message())
}

func TestAuthorize_MissingToken(t *testing.T) {
	a, v := newTestAuthorizer()

	_, err := a.Authorize()(context.Background(), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, "You are not authorized")
	assert.Zero(t, v.calls, "signature must not be checked without a token")
}

func TestAuthorize_EmptyBearer(t *testing.T) {
	a, v := newTestAuthorizer()

	_, err := a.Authorize()(withAuthorization("Bearer "), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, "You are not authorized")
	assert.Zero(t, v.calls)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"scheme only", "Bearer", ""},
		{"scheme and space", "Bearer ", ""},
		{"padded scheme", "  Bearer   ", ""},
		{"lower case scheme", "bearer abc", "abc"},
		{"padded token", "Bearer   abc  ", "abc"},
		{"bare token", "abc.def.ghi", "abc.def.ghi"},
		{"token starting with scheme letters", "Bearerabc", "Bearerabc"},
		{"blank", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bearerToken(withAuthorization(tc.header)))
		})
	}
}

func TestBearerToken_NoMetadata(t *testing.T) {
	assert.Empty(t, bearerToken(context.Background()))
}

func TestAuthorize_SchemeWithoutTokenNeverVerified(t *testing.T) {
	for _, header := range []string{"Bearer", "  Bearer   "} {
		a, v := newTestAuthorizer()

		_, err := a.Authorize()(withAuthorization(header), nil, testInfo, mustNotRun(t))

		requireUnauthenticated(t, err, "You are not authorized")
		assert.Zero(t, v.calls, "header %q", header)
	}
}

func TestAuthorize_InvalidToken(t *testing.T) {
	a, _ := newTestAuthorizer()

	_, err := a.Authorize()(withAuthorization("Bearer not-a-valid-jwt"), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, "You are not authorized")
}

func TestAuthorize_WrongSecret(t *testing.T) {
	a, _ := newTestAuthorizer()
	tok := signToken(t, "A-0001", models.RoleAdmin, "refresh-secret", time.Hour)

	_, err := a.Authorize()(withAuthorization("Bearer "+tok), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, "You are not authorized")
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	a, _ := newTestAuthorizer()
	tok := signToken(t, "A-0001", models.RoleAdmin, testSecret, -time.Second)

	_, err := a.Authorize()(withAuthorization("Bearer "+tok), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, common.ErrTokenExpired.Error())
}

func TestAuthorize_AnyRoleAdmitsValidToken(t *testing.T) {
	a, _ := newTestAuthorizer()

	for _, role := range []models.Role{models.RoleAdmin, models.RoleFaculty, models.RoleStudent} {
		t.Run(string(role), func(t *testing.T) {
			tok := signToken(t, "X-1", role, testSecret, time.Hour)

			var got *auth.Claims
			resp, err := a.Authorize()(withAuthorization("Bearer "+tok), "req", testInfo,
				func(ctx context.Context, req interface{}) (interface{}, error) {
					got, _ = ClaimsFromContext(ctx)
					return "ok", nil
				})

			require.NoError(t, err)
			assert.Equal(t, "ok", resp)
			require.NotNil(t, got)
			assert.Equal(t, "X-1", got.UserID)
			assert.Equal(t, role, got.Role)
		})
	}
}

func TestAuthorize_BareTokenAccepted(t *testing.T) {
	a, _ := newTestAuthorizer()
	tok := signToken(t, "A-0001", models.RoleAdmin, testSecret, time.Hour)

	resp, err := a.Authorize()(withAuthorization(tok), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestAuthorize_RoleNotPermitted(t *testing.T) {
	a, _ := newTestAuthorizer()
	tok := signToken(t, "S-1", models.RoleStudent, testSecret, time.Hour)

	_, err := a.Authorize(models.RoleAdmin)(withAuthorization("Bearer "+tok), nil, testInfo, mustNotRun(t))

	requireUnauthenticated(t, err, "You are not authorized")
}

func TestAuthorize_RoleInSet(t *testing.T) {
	a, _ := newTestAuthorizer()
	tok := signToken(t, "F-1", models.RoleFaculty, testSecret, time.Hour)

	_, err := a.Authorize(models.RoleAdmin, models.RoleFaculty)(withAuthorization("bearer "+tok), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) { return nil, nil })

	require.NoError(t, err)
}

func TestClaimsFromContext_Absent(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)
}

func TestMethodPolicy_RoutesByMethod(t *testing.T) {
	gated := false
	p := MethodPolicy{
		"/svc/Guarded": func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
			gated = true
			return nil, status.Error(codes.Unauthenticated, "no")
		},
	}
	ic := p.Interceptor()

	resp, err := ic(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Public"},
		func(ctx context.Context, req interface{}) (interface{}, error) { return "public", nil })
	require.NoError(t, err)
	assert.Equal(t, "public", resp)
	assert.False(t, gated)

	_, err = ic(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Guarded"}, mustNotRun(t))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.True(t, gated)
}

func TestLoggingInterceptor_LogsAtDebugAndInfo(t *testing.T) {
	var buf bytes.Buffer
	s := &GRPCServer{logger: logging.NewJSONLogger(&buf, slog.LevelDebug)}

	_, err := s.loggingInterceptor(context.Background(), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"request received"`)
	assert.Contains(t, out, `"msg":"request handled"`)
	assert.Contains(t, out, `"method":"/gophauth.AuthService/Me"`)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := &GRPCServer{logger: logging.Nop()}

	resp, err := s.loggingInterceptor(context.Background(), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	boom := status.Error(codes.Internal, "boom")
	_, err = s.loggingInterceptor(context.Background(), nil, testInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) { return nil, boom })
	assert.True(t, errors.Is(err, boom))
}
