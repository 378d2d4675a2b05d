// Package proto declares the gophauth.AuthService wire contract: request and
// response messages, the gRPC service descriptor, a client stub and the
// JSON codec the service is spoken with.
package proto

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Id       string `json:"id"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken         string `json:"accessToken"`
	RefreshToken        string `json:"refreshToken"`
	NeedsPasswordChange bool   `json:"needsPasswordChange"`
}

// ChangePasswordRequest carries the old and new passwords of the caller.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type MeRequest struct{}

// MeResponse echoes the verified access token claims.
type MeResponse struct {
	UserId    string `json:"userId"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
