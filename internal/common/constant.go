package common

const (
	// AuthorizationHeaderName is the gRPC metadata key carrying the bearer
	// access token on inbound and outbound requests.
	AuthorizationHeaderName = "authorization"

	// BearerPrefix precedes the token in the authorization header.
	BearerPrefix = "Bearer "
)
