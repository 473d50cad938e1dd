package classifyrpc

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/aiorigin/internal/rpcwire"
	"xdao.co/aiorigin/model"
)

// Client calls a remote Classifier. Errors produced by the server are
// returned as *model.CodedError.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to target without transport security. timeout bounds the
// initial dial when non-zero.
func Dial(target string, timeout time.Duration) (*Client, error) {
	cc, err := rpcwire.Dial(target, rpcwire.DialOptions{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection. Close closes cc.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Classify sends a manifest-store JSON document for classification.
func (c *Client) Classify(ctx context.Context, doc []byte, opts ...grpc.CallOption) (*model.ClassifyResponse, error) {
	reply, err := rpcwire.Invoke(ctx, c.cc, ServiceName, "Classify", wrapperspb.Bytes(doc), new(wrapperspb.BytesValue), opts...)
	if err != nil {
		return nil, fromStatus(err)
	}
	return decode(reply.GetValue())
}

// ClassifyCID classifies a manifest store already held by the server's CAS.
func (c *Client) ClassifyCID(ctx context.Context, storeCID string, opts ...grpc.CallOption) (*model.ClassifyResponse, error) {
	reply, err := rpcwire.Invoke(ctx, c.cc, ServiceName, "ClassifyCID", wrapperspb.String(storeCID), new(wrapperspb.BytesValue), opts...)
	if err != nil {
		return nil, fromStatus(err)
	}
	return decode(reply.GetValue())
}

func decode(b []byte) (*model.ClassifyResponse, error) {
	var resp model.ClassifyResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, model.NewError(model.ErrInternal, "decode response: "+err.Error())
	}
	return &resp, nil
}
