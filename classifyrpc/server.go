package classifyrpc

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/aiorigin/model"
	"xdao.co/aiorigin/storage"
)

// Server classifies manifest stores sent inline or hydrated from CAS.
// Handlers share no mutable state and run concurrently.
type Server struct {
	UnimplementedClassifierServer

	// CAS is required for ClassifyCID only.
	CAS        storage.CAS
	Compliance model.ComplianceMode
	Logger     *zap.Logger
}

func (s *Server) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Server) Classify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	doc := in.GetValue()
	if doc == nil {
		doc = []byte{}
	}
	return s.classify(ctx, "Classify", model.BlobRef{Bytes: doc})
}

func (s *Server) ClassifyCID(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return s.classify(ctx, "ClassifyCID", model.BlobRef{CID: in.GetValue()})
}

func (s *Server) classify(ctx context.Context, method string, ref model.BlobRef) (*wrapperspb.BytesValue, error) {
	if s == nil {
		return nil, toStatus(model.NewError(model.ErrInternal, "nil server"))
	}
	reqID := uuid.NewString()
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, reqID))
	log := s.log().With(zap.String("request_id", reqID), zap.String("method", method))

	resp, err := model.Classify(
		model.ClassifyRequest{Store: ref, Compliance: s.Compliance},
		model.ClassifyOptions{CAS: s.CAS},
	)
	if err != nil {
		log.Info("classification failed", zap.String("code", string(model.CodeOf(err))), zap.Error(err))
		return nil, toStatus(err)
	}
	b, err := json.Marshal(resp)
	if err != nil {
		log.Error("encode response", zap.Error(err))
		return nil, toStatus(model.NewError(model.ErrInternal, err.Error()))
	}
	log.Info("classified",
		zap.String("store_cid", resp.StoreCID),
		zap.String("classification", resp.Classification),
		zap.String("vendor", resp.Vendor),
	)
	return wrapperspb.Bytes(b), nil
}
