package grpc

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC status codes. Internal failures keep
// their cause out of the response.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, common.ErrInvalidRequest) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	var e *common.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case common.KindNotFound:
			return status.Error(codes.NotFound, e.Error())
		case common.KindForbidden:
			return status.Error(codes.PermissionDenied, e.Error())
		case common.KindUnauthorized:
			return status.Error(codes.Unauthenticated, e.Error())
		}
	}

	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
