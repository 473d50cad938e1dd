package main

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"xdao.co/aiorigin/keys"
	"xdao.co/aiorigin/model"
	"xdao.co/aiorigin/report"
)

func newReportCmd() *cobra.Command {
	var (
		seedHex     string
		role        string
		reporterID  string
		generatedAt string
		mode        string
		sigAlg      string
		hashAlg     string
	)
	cmd := &cobra.Command{
		Use:   "report [--seed-hex <64hex> [--role <role>] [--sig-alg ed25519|dilithium3]] [--generated-at <RFC3339|now>] <store.json>",
		Short: "Classify a document and print a canonical report",
		Long: `report classifies a manifest-store document and prints a canonical report
binding the result to the document's CID. With --seed-hex the report is signed
with the key derived from that seed: Ed25519 by default, or Dilithium3 with
--sig-alg dilithium3. --role derives a role-specific seed first.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := outputFlags{mode: mode}
			compliance, err := o.compliance()
			if err != nil {
				return err
			}
			opts := report.RenderOptions{ReporterID: reporterID}
			if generatedAt != "" {
				if generatedAt == "now" {
					opts.GeneratedAt = time.Now()
				} else {
					t, err := time.Parse(time.RFC3339, generatedAt)
					if err != nil {
						return usageError(fmt.Errorf("invalid --generated-at: %w", err))
					}
					opts.GeneratedAt = t
				}
			}
			if seedHex != "" {
				seed, err := keys.ParseSeedHex(seedHex)
				if err != nil {
					return usageError(fmt.Errorf("invalid --seed-hex: %w", err))
				}
				if role != "" {
					if seed, err = keys.DeriveRoleSeed(seed, role); err != nil {
						return usageError(err)
					}
				}
				if err := setSigningKey(&opts, sigAlg, hashAlg, seed); err != nil {
					return err
				}
			} else if role != "" || cmd.Flags().Changed("sig-alg") || hashAlg != "" {
				return usageError(fmt.Errorf("--role, --sig-alg and --hash-alg require --seed-hex"))
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
			}
			resp, err := model.ClassifyDocument(b, compliance, model.ClassifyOptions{})
			if err != nil {
				return err
			}
			out, err := report.Render(resp, opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&seedHex, "seed-hex", "", "32-byte Ed25519 seed (64 hex chars) used to sign the report")
	cmd.Flags().StringVar(&role, "role", "", "derive the signing key for this role from --seed-hex")
	cmd.Flags().StringVar(&reporterID, "reporter-id", "", "Reporter-ID written to META")
	cmd.Flags().StringVar(&generatedAt, "generated-at", "", "Generated-At written to META (RFC3339 or \"now\"); omitted by default")
	cmd.Flags().StringVar(&mode, "mode", "permissive", "compliance mode: permissive|strict")
	cmd.Flags().StringVar(&sigAlg, "sig-alg", "ed25519", "signature algorithm: ed25519|dilithium3")
	cmd.Flags().StringVar(&hashAlg, "hash-alg", "", "digest signed by dilithium3: sha256|sha512|sha3-256 (default sha3-256)")

	cmd.AddCommand(newReportVerifyCmd(), newReportCIDCmd())
	return cmd
}

// setSigningKey derives the key for sigAlg from seed and sets it on opts.
func setSigningKey(opts *report.RenderOptions, sigAlg, hashAlg string, seed []byte) error {
	switch sigAlg {
	case "ed25519":
		if hashAlg != "" && hashAlg != "sha256" {
			return usageError(fmt.Errorf("ed25519 reports are signed over sha256, not %s", hashAlg))
		}
		opts.PrivateKey = ed25519.NewKeyFromSeed(seed)
	case "dilithium3":
		if hashAlg != "" {
			if _, err := keys.Digest(hashAlg, nil); err != nil {
				return usageError(fmt.Errorf("invalid --hash-alg: %w", err))
			}
		}
		_, priv, err := keys.Dilithium3KeyFromSeed(seed)
		if err != nil {
			return err
		}
		opts.Dilithium3Key = priv
		opts.HashAlg = hashAlg
	default:
		return usageError(fmt.Errorf("invalid --sig-alg %q (want ed25519|dilithium3)", sigAlg))
	}
	return nil
}

func newReportVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <report>",
		Short: "Verify a signed report",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
			}
			signed, err := report.VerifySignature(b)
			if err != nil {
				return fmt.Errorf("invalid: %w", err)
			}
			if !signed {
				return fmt.Errorf("report is not signed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newReportCIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cid <report>",
		Short: "Print the CID of a canonical report",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(args[0]), err)
			}
			id, err := report.CID(b)
			if err != nil {
				return fmt.Errorf("invalid report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
