package grpccas

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/storage"
)

// Server exposes a storage.CAS over the CAS gRPC service.
type Server struct {
	UnimplementedCASServer
	CAS    storage.CAS
	Logger *zap.Logger

	// Accept, when set, vets every Put payload. A non-nil error rejects the
	// payload with storage.ErrRejected and nothing is stored.
	Accept func([]byte) error
}

func (s *Server) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Server) Put(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.Unavailable, "missing CAS")
	}
	b := in.GetValue()
	if s.Accept != nil {
		if err := s.Accept(b); err != nil {
			s.log().Info("cas put rejected", zap.Int("bytes", len(b)), zap.Error(err))
			return nil, toStatus(fmt.Errorf("%w: %v", storage.ErrRejected, err))
		}
	}
	id, err := s.CAS.Put(b)
	if err != nil {
		s.log().Warn("cas put failed", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, toStatus(err)
	}
	// The backend must honour the CID contract even when it is remote.
	if !cidutil.Matches(id, b) {
		return nil, status.Error(codes.DataLoss, storage.ErrCIDMismatch.Error())
	}
	s.log().Debug("cas put", zap.String("cid", id.String()), zap.Int("bytes", len(b)))
	return wrapperspb.String(id.String()), nil
}

func (s *Server) Get(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.Unavailable, "missing CAS")
	}
	id, err := cidutil.Decode(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidCID.Error())
	}
	b, err := s.CAS.Get(id)
	if err != nil {
		return nil, toStatus(err)
	}
	if !cidutil.Matches(id, b) {
		return nil, status.Error(codes.DataLoss, storage.ErrCIDMismatch.Error())
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	if s == nil || s.CAS == nil {
		return nil, status.Error(codes.Unavailable, "missing CAS")
	}
	id, err := cidutil.Decode(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidCID.Error())
	}
	return wrapperspb.Bool(s.CAS.Has(id)), nil
}
