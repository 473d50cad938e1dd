package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/storage"
	"xdao.co/aiorigin/storage/casconfig"
	"xdao.co/aiorigin/storage/casregistry"
)

// casFlags selects a CAS by backend name or config file. Backend-specific
// flags come from casregistry.
type casFlags struct {
	backend   string
	casConfig string
}

func (c *casFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.backend, "backend", "", "CAS backend name (see aiorigin backends); with --cas-config selects the write backend")
	cmd.Flags().StringVar(&c.casConfig, "cas-config", "", "CAS config file (YAML or JSON)")

	gfs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	casregistry.RegisterFlags(gfs, casregistry.UsageCLI)
	cmd.Flags().AddGoFlagSet(gfs)
}

func (c *casFlags) open() (storage.CAS, func() error, error) {
	if c.casConfig != "" {
		cfg, err := casconfig.LoadFile(c.casConfig)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(casregistry.UsageCLI, c.backend)
	}
	if c.backend == "" {
		return nil, nil, usageError(errors.New("one of --backend or --cas-config is required"))
	}
	return casregistry.Open(c.backend, casregistry.UsageCLI)
}

func newPutCmd() *cobra.Command {
	var cf casFlags
	cmd := &cobra.Command{
		Use:   "put (--backend <name> | --cas-config <file>) [backend flags] <file>",
		Short: "Store a document in a CAS and print its CID",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
			}
			cas, closeFn, err := cf.open()
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}
			id, err := cas.Put(b)
			if err != nil {
				return fmt.Errorf("put: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
	cf.bind(cmd)
	return cmd
}

func newGetCmd() *cobra.Command {
	var (
		cf      casFlags
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "get (--backend <name> | --cas-config <file>) [--out <file>] <cid>",
		Short: "Fetch an object from a CAS",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cidutil.Decode(args[0])
			if err != nil {
				return usageError(fmt.Errorf("invalid cid: %w", err))
			}
			cas, closeFn, err := cf.open()
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}
			b, err := cas.Get(id)
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(outPath, b, 0o644)
		},
	}
	cf.bind(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "write the object to this file instead of stdout")
	return cmd
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List CAS backends available to this binary",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, b := range casregistry.List(casregistry.UsageCLI) {
				if b.Description == "" {
					fmt.Fprintln(cmd.OutOrStdout(), b.Name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", b.Name, b.Description)
			}
			return nil
		},
	}
}
