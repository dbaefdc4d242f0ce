package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/config"
	"github.com/schemaworks/theoria/export"
	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/universal"
)

// assembleCmd builds the one-shot assembly command. It runs the full
// pipeline on a single bundle file without NATS or any other component
// infrastructure.
func assembleCmd() *cobra.Command {
	var (
		universalPath string
		format        string
		outPath       string
		mergePolicy   string
	)

	cmd := &cobra.Command{
		Use:   "assemble <bundle-file>",
		Short: "Assemble one theory bundle without NATS",
		Long: `Assemble loads a staged theory bundle from a YAML file, runs the
assembly pipeline against the universal definition set, and writes the
assembled schema to stdout or a file.

A rejected assembly prints its diagnostics to stderr and exits with
status 1.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(args[0], universalPath, format, outPath, mergePolicy)
		},
	}

	cmd.Flags().StringVar(&universalPath, "universal", "", "Universal definition set YAML (defaults to the built-in set)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVar(&mergePolicy, "merge-policy", "", "Collision policy override (reject, prefer-universal, prefer-theory)")

	return cmd
}

func runAssemble(bundlePath, universalPath, format, outPath, mergePolicy string) error {
	cfg, err := config.NewLoader(nil).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if mergePolicy != "" {
		cfg.Assembly.MergePolicy = mergePolicy
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := os.ReadFile(bundlePath)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}
	bundle, err := staging.ParseBundle(data)
	if err != nil {
		return fmt.Errorf("parse bundle: %w", err)
	}

	set := universal.DefaultSet()
	if universalPath != "" {
		set, err = universal.Load(universalPath)
		if err != nil {
			return err
		}
	}

	assembler := assemble.New(set, cfg.Options())
	result := assembler.Assemble(*bundle)

	if !result.Ok() {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s %s: %s", d.Severity, d.Code, d.Message)
			if len(d.Terms) > 0 {
				fmt.Fprintf(os.Stderr, " [%s]", strings.Join(d.Terms, ", "))
			}
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("assembly of theory %q rejected (%d diagnostics)", result.TheoryID, len(result.Diagnostics))
	}

	output, err := renderSchema(result.Schema, format, cfg.Export.Profile)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	fmt.Print(output)
	return nil
}

// renderSchema serializes an assembled schema in the requested format.
// JSON uses the canonical encoding, so two runs over the same inputs
// write byte-identical files.
func renderSchema(schema *assemble.AssembledSchema, format, profile string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := schema.Canonical()
		if err != nil {
			return "", fmt.Errorf("encode schema: %w", err)
		}
		return string(data) + "\n", nil
	case "turtle", "ntriples", "jsonld":
		exporter := export.NewSchemaExporter(exportProfile(profile))
		return exporter.Export(schema, export.Format(strings.ToLower(format)))
	default:
		return "", fmt.Errorf("unsupported format %q (valid: json, turtle, ntriples, jsonld)", format)
	}
}

func exportProfile(name string) export.Profile {
	switch strings.ToLower(name) {
	case "bfo":
		return export.ProfileBFO
	case "cco":
		return export.ProfileCCO
	default:
		return export.ProfileMinimal
	}
}
