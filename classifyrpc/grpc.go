// Package classifyrpc serves manifest-store classification over gRPC.
package classifyrpc

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
// Responses carry a JSON-encoded model.ClassifyResponse:
//
//	service Classifier {
//	  rpc Classify(google.protobuf.BytesValue) returns (google.protobuf.BytesValue);
//	  rpc ClassifyCID(google.protobuf.StringValue) returns (google.protobuf.BytesValue);
//	}
const ServiceName = "xdao.aiorigin.v1.Classifier"

// RequestIDHeader is the response header carrying the server's request id.
const RequestIDHeader = "x-request-id"

// ClassifierServer is the server side of the Classifier service.
type ClassifierServer interface {
	Classify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	ClassifyCID(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

type UnimplementedClassifierServer struct{}

func (UnimplementedClassifierServer) Classify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Classify not implemented")
}
func (UnimplementedClassifierServer) ClassifyCID(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ClassifyCID not implemented")
}

func RegisterClassifierServer(s grpc.ServiceRegistrar, srv ClassifierServer) {
	s.RegisterService(&Classifier_ServiceDesc, srv)
}

// Classifier_ServiceDesc describes the Classifier service for
// grpc.ServiceRegistrar.
var Classifier_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClassifierServer)(nil),
	Methods: []grpc.MethodDesc{
		rpcwire.Unary(ServiceName, "Classify", ClassifierServer.Classify),
		rpcwire.Unary(ServiceName, "ClassifyCID", ClassifierServer.ClassifyCID),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aiorigin/v1/classifier.proto",
}
