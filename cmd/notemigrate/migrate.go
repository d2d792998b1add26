// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notemigrate/internal/logging"
	"github.com/pdiddy/notemigrate/internal/migrate"
	"github.com/pdiddy/notemigrate/pkg/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert an export directory and remove it",
	Long: `Migrate converts every note document in the input directory, writes the
results to the posts directory, copies media from every resource folder into
the media directory (never overwriting) and finally deletes the input
directory. All three directories must exist before the run starts.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

// migrateFlags maps viper keys to flag names; both default from
// types.DefaultMigrationConfig.
var migrateFlags = map[string]string{
	"input_dir":         "input-dir",
	"posts_dir":         "posts-dir",
	"media_dir":         "media-dir",
	"metadata":          "metadata",
	"media_ref":         "media-ref",
	"media_placeholder": "media-placeholder",
	"rewrite":           "rewrite",
	"pretty":            "pretty",
	"format":            "format",
	"index_policy":      "index-policy",
	"index_name":        "index-name",
	"on_error":          "on-error",
	"document_ext":      "document-ext",
	"resource_suffix":   "resource-suffix",
}

func init() {
	d := types.DefaultMigrationConfig()
	f := migrateCmd.Flags()
	f.String("input-dir", d.InputDir, "export directory holding notes and .resources folders")
	f.String("posts-dir", d.PostsDir, "directory receiving converted documents")
	f.String("media-dir", d.MediaDir, "directory receiving media files")
	f.String("metadata", string(d.Metadata), "front matter mode: none or yaml")
	f.String("media-ref", string(d.MediaRef), "rewrite media references to the media dir path or a placeholder: path or placeholder")
	f.String("media-placeholder", d.MediaPlaceholder, "token used when --media-ref=placeholder")
	f.String("rewrite", string(d.Rewrite), "reference matching: anchored or substring")
	f.Bool("pretty", d.Pretty, "pretty-print HTML bodies")
	f.String("format", string(d.Format), "body format: html or markdown")
	f.String("index-policy", string(d.IndexPolicy), "index document handling: exclude, discover or include")
	f.String("index-name", d.IndexName, "file name of the export's index document")
	f.String("on-error", string(d.OnError), "per-document failures: abort or continue")
	f.String("document-ext", d.DocumentExt, "extension of note documents")
	f.String("resource-suffix", d.ResourceSuffix, "name suffix of resource folders")

	for key, name := range migrateFlags {
		_ = viper.BindPFlag(key, f.Lookup(name))
	}

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := migrationConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), viper.GetString("log_level"))
	m, err := migrate.New(cfg, afero.NewOsFs(), logger)
	if err != nil {
		return err
	}
	return m.Run()
}

// migrationConfig assembles the run configuration from viper. The content
// container and the field table can only come from the config file.
func migrationConfig() (types.MigrationConfig, error) {
	cfg := types.DefaultMigrationConfig()
	cfg.InputDir = viper.GetString("input_dir")
	cfg.PostsDir = viper.GetString("posts_dir")
	cfg.MediaDir = viper.GetString("media_dir")
	cfg.Metadata = types.MetadataMode(viper.GetString("metadata"))
	cfg.MediaRef = types.MediaRefMode(viper.GetString("media_ref"))
	cfg.MediaPlaceholder = viper.GetString("media_placeholder")
	cfg.Rewrite = types.RewriteMode(viper.GetString("rewrite"))
	cfg.Pretty = viper.GetBool("pretty")
	cfg.Format = types.OutputFormat(viper.GetString("format"))
	cfg.IndexPolicy = types.IndexPolicy(viper.GetString("index_policy"))
	cfg.IndexName = viper.GetString("index_name")
	cfg.OnError = types.FailurePolicy(viper.GetString("on_error"))
	cfg.DocumentExt = viper.GetString("document_ext")
	cfg.ResourceSuffix = viper.GetString("resource_suffix")

	if viper.IsSet("content") {
		if err := viper.UnmarshalKey("content", &cfg.Content); err != nil {
			return cfg, fmt.Errorf("reading content: %w", err)
		}
	}
	if viper.IsSet("fields") {
		var fields []types.FieldSpec
		if err := viper.UnmarshalKey("fields", &fields); err != nil {
			return cfg, fmt.Errorf("reading fields: %w", err)
		}
		cfg.Fields = fields
	}
	return cfg, nil
}
