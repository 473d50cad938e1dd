package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	_ "xdao.co/aiorigin/storage/grpccas"
	_ "xdao.co/aiorigin/storage/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries a process exit code through cobra's error return.
// Code 2 is a usage error, 1 a runtime failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: 2, err: err} }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(fmt.Errorf("usage: %s: %w", cmd.UseLine(), err))
		}
		return nil
	}
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(errOut, err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aiorigin",
		Short: "Classify the AI origin of C2PA manifest stores",
		Long: `aiorigin reads c2pa manifest-store JSON documents, walks their ingredient
graph and reports whether the asset is ai-generated, ai-assisted, non-ai or
unknown, together with the generator that produced it.

Documents can be classified directly from files or stored in a
content-addressed store (CAS) and classified by CID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usageError(errors.New("missing command"))
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newClassifyCmd(),
		newCIDCmd(),
		newPutCmd(),
		newGetCmd(),
		newClassifyCIDCmd(),
		newReportCmd(),
		newVendorsCmd(),
		newBundleCmd(),
		newBackendsCmd(),
	)
	return root
}
