package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"

	"xdao.co/aiorigin/classifyrpc"
	"xdao.co/aiorigin/model"
	"xdao.co/aiorigin/storage"
	"xdao.co/aiorigin/storage/casconfig"
	"xdao.co/aiorigin/storage/casregistry"
	"xdao.co/aiorigin/storage/grpccas"

	_ "xdao.co/aiorigin/storage/localfs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	listen       string
	backend      string
	casConfig    string
	mode         string
	accept       string
	verbose      bool
	listBackends bool

	// backendSet reports whether --backend was given explicitly.
	backendSet bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("aiorigind", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&o.listen, "listen", "127.0.0.1:7777", "listen address")
	fs.StringVar(&o.backend, "backend", "localfs", "CAS backend name; with --cas-config selects the write backend")
	fs.StringVar(&o.casConfig, "cas-config", "", "CAS config file (YAML or JSON) listing one or more backends")
	fs.StringVar(&o.mode, "mode", "permissive", "compliance mode for classification: permissive|strict")
	fs.StringVar(&o.accept, "accept", acceptAny, "content the CAS service stores: any|documents (manifest stores and reports)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&o.listBackends, "list-backends", false, "list supported backends and exit")

	gfs := flag.NewFlagSet("aiorigind", flag.ContinueOnError)
	casregistry.RegisterFlags(gfs, casregistry.UsageDaemon)
	fs.AddGoFlagSet(gfs)

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.backendSet = fs.Changed("backend")
	if fs.NArg() != 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch o.mode {
	case "permissive", "strict":
	default:
		return o, fmt.Errorf("invalid --mode %q (want permissive|strict)", o.mode)
	}
	if _, err := acceptPolicy(o.accept); err != nil {
		return o, err
	}
	return o, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func openCAS(o options) (storage.CAS, func() error, error) {
	if o.casConfig != "" {
		cfg, err := casconfig.LoadFile(o.casConfig)
		if err != nil {
			return nil, nil, err
		}
		preferred := ""
		if o.backendSet {
			preferred = o.backend
		}
		return cfg.Open(casregistry.UsageDaemon, preferred)
	}
	return casregistry.Open(o.backend, casregistry.UsageDaemon)
}

// newServer registers the CAS and classifier services on one gRPC server.
// accept filters CAS writes; nil stores anything.
func newServer(cas storage.CAS, mode model.ComplianceMode, accept func([]byte) error, log *zap.Logger) *grpc.Server {
	s := grpc.NewServer()
	grpccas.RegisterCASServer(s, &grpccas.Server{CAS: cas, Accept: accept, Logger: log.Named("cas")})
	classifyrpc.RegisterClassifierServer(s, &classifyrpc.Server{CAS: cas, Compliance: mode, Logger: log.Named("classifier")})
	return s
}

// serve runs s on lis until ctx is done, then stops gracefully.
func serve(ctx context.Context, s *grpc.Server, lis net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(lis) }()
	select {
	case <-ctx.Done():
		s.GracefulStop()
		<-errc
		return nil
	case err := <-errc:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	o, err := parseFlags(args, errOut)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, err)
		return 2
	}
	if o.listBackends {
		for _, b := range casregistry.List(casregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(out, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Description)
		}
		return 0
	}

	log, err := newLogger(o.verbose)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	cas, closeFn, err := openCAS(o)
	if err != nil {
		log.Error("open cas", zap.String("backend", o.backend), zap.String("cas_config", o.casConfig), zap.Error(err))
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", o.listen)
	if err != nil {
		log.Error("listen", zap.String("addr", o.listen), zap.Error(err))
		return 1
	}
	defer lis.Close()

	accept, _ := acceptPolicy(o.accept)
	s := newServer(cas, model.ComplianceMode(o.mode), accept, log)
	log.Info("aiorigind listening",
		zap.String("addr", lis.Addr().String()),
		zap.String("backend", o.backend),
		zap.String("cas_config", o.casConfig),
		zap.String("mode", o.mode),
		zap.String("accept", o.accept),
	)
	if err := serve(ctx, s, lis); err != nil {
		log.Error("serve", zap.Error(err))
		return 1
	}
	log.Info("aiorigind stopped")
	return 0
}
