package grpccas

import (
	"errors"
	"flag"
	"strings"
	"time"

	"xdao.co/aiorigin/internal/rpcwire"
	"xdao.co/aiorigin/storage"
	"xdao.co/aiorigin/storage/casregistry"
)

// remoteFlags holds the settings of the "grpc" backend.
type remoteFlags struct {
	target string
	dial   rpcwire.DialOptions
	rpc    time.Duration
}

func (f *remoteFlags) register(fs *flag.FlagSet) {
	*f = remoteFlags{}
	fs.StringVar(&f.target, "grpc-target", "", "aiorigind address host:port (for --backend=grpc)")
	fs.DurationVar(&f.dial.Timeout, "grpc-dial-timeout", 5*time.Second, "dial timeout (for --backend=grpc)")
	fs.DurationVar(&f.rpc, "grpc-timeout", 0, "per-RPC timeout; 0 disables (for --backend=grpc)")
	fs.IntVar(&f.dial.MaxMsgBytes, "grpc-max-msg-bytes", 0, "max message size in bytes; 0 keeps the grpc default")
}

func (f *remoteFlags) open() (storage.CAS, func() error, error) {
	target := strings.TrimSpace(f.target)
	if target == "" {
		return nil, nil, errors.New("grpc backend: --grpc-target is required")
	}
	client, err := Dial(target, f.dial)
	if err != nil {
		return nil, nil, err
	}
	client.Timeout = f.rpc
	return client, client.Close, nil
}

func init() {
	var f remoteFlags
	casregistry.MustRegister(casregistry.Backend{
		Name:          "grpc",
		Description:   "manifest and report store served by a remote aiorigind",
		Usage:         casregistry.UsageCLI,
		RegisterFlags: f.register,
		Open:          f.open,
	})
}
