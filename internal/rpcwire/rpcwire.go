// Package rpcwire holds the hand-written gRPC plumbing shared by the CAS and
// Classifier services. Both services exchange protobuf well-known wrapper
// types, so no generated code is needed.
package rpcwire

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
)

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// Unary describes a unary method served by implementations of S.
//
// call is normally a method expression such as CASServer.Get; the request
// message type is taken from its third parameter.
func Unary[S any, Req any, PReq interface {
	*Req
	proto.Message
}, Resp any](service, method string, call func(S, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	full := FullMethod(service, method)
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke calls a unary method and decodes the reply into out.
func Invoke[Resp proto.Message](ctx context.Context, cc grpc.ClientConnInterface, service, method string, in proto.Message, out Resp, opts ...grpc.CallOption) (Resp, error) {
	if err := cc.Invoke(ctx, FullMethod(service, method), in, out, opts...); err != nil {
		var zero Resp
		return zero, err
	}
	return out, nil
}

// DialOptions configures Dial.
type DialOptions struct {
	// Timeout bounds the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send and receive limits when non-zero.
	MaxMsgBytes int
}

// Dial connects to target without transport security.
func Dial(target string, opts DialOptions) (*grpc.ClientConn, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
			grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
		))
	}
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return grpc.DialContext(ctx, target, dialOpts...)
}
