// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notemigrate/internal/render"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the front matter of a converted document",
	Long: `Inspect parses the front matter header of a document written by migrate
and prints it as YAML (or JSON with --json), followed by the body size.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print front matter as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	fm, body, err := render.ParseDocument(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fm.Map())
	}

	header, err := render.EncodeHeader(fm)
	if err != nil {
		return err
	}
	fmt.Fprint(out, header)
	fmt.Fprintf(out, "# %d fields, %d body bytes\n", fm.Len(), len(body))
	return nil
}
