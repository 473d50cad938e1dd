package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/model"
	"xdao.co/aiorigin/storage"
)

type outputFlags struct {
	json bool
	mode string
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "print one JSON response per input")
	cmd.Flags().StringVar(&o.mode, "mode", "permissive", "compliance mode: permissive|strict")
}

func (o *outputFlags) compliance() (model.ComplianceMode, error) {
	switch o.mode {
	case "", "permissive":
		return model.CompliancePermissive, nil
	case "strict":
		return model.ComplianceStrict, nil
	default:
		return "", usageError(fmt.Errorf("invalid --mode %q (want permissive|strict)", o.mode))
	}
}

// outcome is the classification of one input, kept in argument order.
type outcome struct {
	input string
	resp  *model.ClassifyResponse
	err   error
}

func newClassifyCmd() *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "classify [--json] [--mode permissive|strict] <store.json>...",
		Short: "Classify manifest-store documents",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := o.compliance()
			if err != nil {
				return err
			}
			results := classifyAll(args, func(path string) (*model.ClassifyResponse, error) {
				b, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				return model.ClassifyDocument(b, mode, model.ClassifyOptions{})
			})
			return printOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, o.json)
		},
	}
	o.bind(cmd)
	return cmd
}

// classifyAll runs classify over inputs concurrently. Per-input failures are
// recorded, not fatal.
func classifyAll(inputs []string, classify func(string) (*model.ClassifyResponse, error)) []outcome {
	results := make([]outcome, len(inputs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			resp, err := classify(in)
			results[i] = outcome{input: in, resp: resp, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func printOutcomes(out, errOut io.Writer, results []outcome, asJSON bool) error {
	failed := 0
	enc := json.NewEncoder(out)
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(errOut, "%s: %v\n", r.input, r.err)
			continue
		}
		if asJSON {
			if err := enc.Encode(r.resp); err != nil {
				return err
			}
			continue
		}
		line := r.input + "\t" + r.resp.Label
		if r.resp.Vendor != "" {
			line += "\t" + r.resp.Vendor
		}
		fmt.Fprintln(out, line)
	}
	if failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d of %d inputs failed", failed, len(results))}
	}
	return nil
}

func newCIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cid <file>",
		Short: "Print the CIDv1 (raw, sha2-256) of a document",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cidutil.String(b))
			return nil
		},
	}
}

func newClassifyCIDCmd() *cobra.Command {
	var (
		o  outputFlags
		cf casFlags
	)
	cmd := &cobra.Command{
		Use:   "classify-cid (--backend <name> | --cas-config <file>) [backend flags] <cid>...",
		Short: "Classify manifest-store documents held in a CAS",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := o.compliance()
			if err != nil {
				return err
			}
			cas, closeFn, err := cf.open()
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}
			results := classifyAll(args, func(id string) (*model.ClassifyResponse, error) {
				return classifyFromCAS(cas, id, mode)
			})
			return printOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, o.json)
		},
	}
	o.bind(cmd)
	cf.bind(cmd)
	return cmd
}

func classifyFromCAS(cas storage.CAS, id string, mode model.ComplianceMode) (*model.ClassifyResponse, error) {
	return model.Classify(model.ClassifyRequest{Store: model.BlobRef{CID: id}, Compliance: mode}, model.ClassifyOptions{CAS: cas})
}
