package grpccas

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/aiorigin/internal/rpcwire"
)

// ServiceName is the fully qualified gRPC service name.
//
//	service CAS {
//	  rpc Put(google.protobuf.BytesValue) returns (google.protobuf.StringValue);
//	  rpc Get(google.protobuf.StringValue) returns (google.protobuf.BytesValue);
//	  rpc Has(google.protobuf.StringValue) returns (google.protobuf.BoolValue);
//	}
const ServiceName = "xdao.aiorigin.storage.v1.CAS"

// CASServer is the server side of the CAS service. CIDs travel as strings.
type CASServer interface {
	Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedCASServer answers every method with codes.Unimplemented.
type UnimplementedCASServer struct{}

func (UnimplementedCASServer) Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedCASServer) Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedCASServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// CAS_ServiceDesc describes the CAS service for grpc.ServiceRegistrar.
var CAS_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CASServer)(nil),
	Methods: []grpc.MethodDesc{
		rpcwire.Unary(ServiceName, "Put", CASServer.Put),
		rpcwire.Unary(ServiceName, "Get", CASServer.Get),
		rpcwire.Unary(ServiceName, "Has", CASServer.Has),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aiorigin/storage/v1/cas.proto",
}

func RegisterCASServer(s grpc.ServiceRegistrar, srv CASServer) {
	s.RegisterService(&CAS_ServiceDesc, srv)
}

// casStub is the raw client side of the CAS service.
type casStub struct{ cc grpc.ClientConnInterface }

func (c casStub) put(ctx context.Context, b []byte) (string, error) {
	out, err := rpcwire.Invoke(ctx, c.cc, ServiceName, "Put", wrapperspb.Bytes(b), new(wrapperspb.StringValue))
	return out.GetValue(), err
}

func (c casStub) get(ctx context.Context, id string) ([]byte, error) {
	out, err := rpcwire.Invoke(ctx, c.cc, ServiceName, "Get", wrapperspb.String(id), new(wrapperspb.BytesValue))
	return out.GetValue(), err
}

func (c casStub) has(ctx context.Context, id string) (bool, error) {
	out, err := rpcwire.Invoke(ctx, c.cc, ServiceName, "Has", wrapperspb.String(id), new(wrapperspb.BoolValue))
	return out.GetValue(), err
}
