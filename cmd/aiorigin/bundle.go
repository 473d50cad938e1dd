package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"xdao.co/aiorigin/cidutil"
	"xdao.co/aiorigin/storage/bundle"
)

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Export or import deterministic TAR bundles of CAS objects",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usageError(fmt.Errorf("missing bundle subcommand"))
		},
	}
	cmd.AddCommand(newBundleExportCmd(), newBundleImportCmd())
	return cmd
}

func newBundleExportCmd() *cobra.Command {
	var (
		cf      casFlags
		outPath string
		labels  []string
		noIndex bool
	)
	cmd := &cobra.Command{
		Use:   "export (--backend <name> | --cas-config <file>) --out <bundle.tar> [--label name=<cid> ...] <cid>...",
		Short: "Write the named objects to a bundle",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return usageError(fmt.Errorf("--out is required"))
			}
			ids := make([]cid.Cid, 0, len(args))
			for _, a := range args {
				id, err := cidutil.Decode(a)
				if err != nil {
					return usageError(fmt.Errorf("invalid cid %q: %w", a, err))
				}
				ids = append(ids, id)
			}
			opts := bundle.ExportOptions{IncludeIndex: !noIndex, Labels: map[string]cid.Cid{}}
			for _, l := range labels {
				name, value, ok := strings.Cut(l, "=")
				if !ok {
					return usageError(fmt.Errorf("invalid --label %q (want name=<cid>)", l))
				}
				id, err := cidutil.Decode(value)
				if err != nil {
					return usageError(fmt.Errorf("invalid --label %q: %w", l, err))
				}
				opts.Labels[name] = id
			}

			cas, closeFn, err := cf.open()
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}
			var buf bytes.Buffer
			if err := bundle.Export(&buf, cas, ids, opts); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", filepath.Base(outPath), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cidutil.String(buf.Bytes()))
			return nil
		},
	}
	cf.bind(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "bundle file to write")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "name=<cid> label recorded in index.json (repeatable)")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "omit index.json")
	return cmd
}

func newBundleImportCmd() *cobra.Command {
	var (
		cf            casFlags
		ignoreUnknown bool
	)
	cmd := &cobra.Command{
		Use:   "import (--backend <name> | --cas-config <file>) <bundle.tar>",
		Short: "Store every block of a bundle and print the imported CIDs",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", filepath.Base(args[0]), err)
			}
			defer f.Close()

			cas, closeFn, err := cf.open()
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}
			ids, err := bundle.Import(f, cas, bundle.ImportOptions{IgnoreUnknown: ignoreUnknown})
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return nil
		},
	}
	cf.bind(cmd)
	cmd.Flags().BoolVar(&ignoreUnknown, "ignore-unknown", false, "skip entries other than blocks and index.json")
	return cmd
}
