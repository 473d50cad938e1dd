package classifyrpc

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/aiorigin/model"
)

// toStatus maps a boundary error to a gRPC status. The status message is
// "<CODE>: <message>" so the client can restore the coded error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	code := model.CodeOf(err)
	msg := err.Error()
	if code == model.ErrInternal && !strings.HasPrefix(msg, string(model.ErrInternal)+": ") {
		msg = string(model.ErrInternal) + ": " + msg
	}
	return status.Error(grpcCode(code), msg)
}

func grpcCode(code model.ErrorCode) codes.Code {
	switch code {
	case model.ErrInvalidRequest, model.ErrInvalidCID, model.ErrMalformedManifest:
		return codes.InvalidArgument
	case model.ErrNotFound:
		return codes.NotFound
	case model.ErrCIDMismatch:
		return codes.DataLoss
	case model.ErrMissingCAS, model.ErrUnresolved:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// fromStatus is the inverse of toStatus. Errors that did not come from
// toStatus are returned unchanged.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	prefix, msg, ok := strings.Cut(st.Message(), ": ")
	if !ok {
		return err
	}
	code := model.ErrorCode(prefix)
	if !knownCode(code) || grpcCode(code) != st.Code() {
		return err
	}
	return model.NewError(code, msg)
}

func knownCode(code model.ErrorCode) bool {
	switch code {
	case model.ErrInvalidRequest, model.ErrInvalidCID, model.ErrMissingCAS, model.ErrNotFound,
		model.ErrCIDMismatch, model.ErrMalformedManifest, model.ErrUnresolved, model.ErrInternal:
		return true
	}
	return false
}
