package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentmarket/agent-market/internal/config"
	"github.com/agentmarket/agent-market/internal/content"
	"github.com/agentmarket/agent-market/internal/i18n"
	"github.com/agentmarket/agent-market/internal/manifest"
)

var (
	validatePlugin  bool
	validateLenient bool
	validateContent bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a marketplace or plugin directory",
	Long: `Validate the manifests of a marketplace directory, or a single
plugin directory with --plugin. All problems are collected and reported;
validation never stops at the first failure.

Entries may declare "strict": false in the marketplace manifest to have
their failures reported as warnings instead of errors. The default for
entries without a flag follows validation.strict in the configuration,
or --lenient.

Example:
  agent-market validate .
  agent-market validate path/to/marketplace
  agent-market validate --plugin path/to/plugin
  agent-market validate --content path/to/marketplace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validatePlugin, "plugin", "p", false, "validate a single plugin directory")
	validateCmd.Flags().BoolVar(&validateLenient, "lenient", false, "treat entries without a strict flag as non-strict")
	validateCmd.Flags().BoolVarP(&validateContent, "content", "c", false, "also check agent and skill documents")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir = filepath.Clean(dir)

	if validatePlugin {
		return validatePluginDir(dir)
	}
	return validateMarketplaceDir(dir)
}

func validateMarketplaceDir(dir string) error {
	opts := manifest.ValidateOptions{StrictDefault: config.GetStrictDefault()}
	if validateLenient {
		opts.StrictDefault = false
	}

	report, err := manifest.ValidateMarketplace(dir, opts)
	if err != nil {
		return err
	}

	var contentErrs []error
	if validateContent {
		for _, entry := range report.Entries {
			if entry.Dir == "" {
				continue
			}
			contentErrs = append(contentErrs, collectContentErrors(entry.Dir)...)
		}
	}

	for _, e := range report.Errors {
		fmt.Printf("error: %s\n", e)
	}
	for _, e := range contentErrs {
		fmt.Printf("error: %s\n", e)
	}
	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}

	errCount := len(report.Errors) + len(contentErrs)
	if errCount > 0 {
		return fmt.Errorf("%s", i18n.T("ValidateFailed", map[string]any{
			"Count": errCount,
		}, errCount))
	}

	fmt.Println(i18n.T("ValidateOK", map[string]any{
		"Name":     report.Manifest.Name,
		"Count":    len(report.Entries),
		"Warnings": len(report.Warnings),
	}, len(report.Entries)))
	return nil
}

func validatePluginDir(dir string) error {
	_, errs := manifest.ValidatePlugin(dir)

	if validateContent {
		errs = append(errs, collectContentErrors(dir)...)
	}

	for _, e := range errs {
		fmt.Printf("error: %s\n", e)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", i18n.T("ValidateFailed", map[string]any{
			"Count": len(errs),
		}, len(errs)))
	}

	fmt.Println(i18n.T("ValidatePluginOK", map[string]any{"Dir": dir}))
	return nil
}

// collectContentErrors enumerates the agent and skill documents of a plugin
// directory and returns their header errors.
func collectContentErrors(pluginDir string) []error {
	var errs []error

	_, agentErrs := content.CollectAgents(pluginDir)
	errs = append(errs, agentErrs...)

	_, skillErrs := content.CollectSkills(pluginDir)
	errs = append(errs, skillErrs...)

	return errs
}
