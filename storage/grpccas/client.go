package grpccas

import (
	"context"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/internal/rpcwire"
	"xdao.co/aiorigin/storage"
)

// Client is a storage.CAS backed by a remote aiorigind. Every object it
// returns is re-hashed against the requested CID before use.
type Client struct {
	cc   *grpc.ClientConn
	stub casStub

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.CAS = (*Client)(nil)

// Dial connects to the CAS service at target.
func Dial(target string, opts rpcwire.DialOptions) (*Client, error) {
	cc, err := rpcwire.Dial(target, opts)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection. Close closes cc.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, stub: casStub{cc: cc}}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Put stores data remotely. The server's CID must equal the local one.
func (c *Client) Put(data []byte) (cid.Cid, error) {
	want, err := cidutil.Sum(data)
	if err != nil {
		return cid.Undef, err
	}
	ctx, cancel := c.rpcContext()
	defer cancel()

	got, err := c.stub.put(ctx, data)
	if err != nil {
		return cid.Undef, fromStatus(err)
	}
	id, err := cidutil.Decode(got)
	if err != nil {
		return cid.Undef, storage.ErrInvalidCID
	}
	if !id.Equals(want) {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return id, nil
}

func (c *Client) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	ctx, cancel := c.rpcContext()
	defer cancel()

	b, err := c.stub.get(ctx, id.String())
	if err != nil {
		return nil, fromStatus(err)
	}
	if !cidutil.Matches(id, b) {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

// Has reports false on any transport error.
func (c *Client) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	ctx, cancel := c.rpcContext()
	defer cancel()

	ok, err := c.stub.has(ctx, id.String())
	return err == nil && ok
}

func (c *Client) rpcContext() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
