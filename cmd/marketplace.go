package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentmarket/agent-market/internal/config"
	"github.com/agentmarket/agent-market/internal/git"
	"github.com/agentmarket/agent-market/internal/i18n"
	"github.com/agentmarket/agent-market/internal/manifest"
	"github.com/agentmarket/agent-market/internal/registry"
)

var marketplaceCmd = &cobra.Command{
	Use:     "marketplace",
	Aliases: []string{"mp"},
	Short:   "Manage plugin marketplaces",
	Long: `Manage plugin marketplaces (similar to 'brew tap').

Commands:
  add     Add a new marketplace from a git URL or local directory
  del     Remove a registered marketplace
  list    List all registered marketplaces
  update  Update marketplace(s)`,
}

var marketplaceAddCmd = &cobra.Command{
	Use:   "add <git-url|directory>",
	Short: "Add a plugin marketplace",
	Long: `Add a plugin marketplace from a git URL or a local directory.

The marketplace manifest is validated before it is registered. A
marketplace whose manifest has blocking errors is not registered.

Example:
  agent-market marketplace add https://github.com/org/my-plugins
  agent-market mp add git@github.com:org/my-plugins.git
  agent-market mp add ./local-marketplace`,
	Args: cobra.ExactArgs(1),
	RunE: runMarketplaceAdd,
}

var marketplaceDelCmd = &cobra.Command{
	Use:     "del <name>",
	Aliases: []string{"delete", "remove", "rm"},
	Short:   "Remove a registered marketplace",
	Long: `Remove a registered marketplace.

Example:
  agent-market marketplace del my-marketplace`,
	Args: cobra.ExactArgs(1),
	RunE: runMarketplaceDel,
}

var marketplaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered marketplaces",
	Long: `List all registered marketplaces.

Example:
  agent-market marketplace list
  agent-market mp list --all  # Show available plugins`,
	RunE: runMarketplaceList,
}

var marketplaceUpdateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update marketplace(s)",
	Long: `Update all marketplaces or a specific marketplace.

Example:
  agent-market marketplace update                 # Update all
  agent-market marketplace update my-marketplace  # Update specific
  agent-market marketplace update --check         # Only report staleness`,
	RunE: runMarketplaceUpdate,
}

var (
	marketplaceListAll     bool
	marketplaceUpdateCheck bool
)

func init() {
	marketplaceListCmd.Flags().BoolVarP(&marketplaceListAll, "all", "a", false, "show available plugins from marketplaces")
	marketplaceUpdateCmd.Flags().BoolVar(&marketplaceUpdateCheck, "check", false, "check for updates without pulling")

	marketplaceCmd.AddCommand(marketplaceAddCmd)
	marketplaceCmd.AddCommand(marketplaceDelCmd)
	marketplaceCmd.AddCommand(marketplaceListCmd)
	marketplaceCmd.AddCommand(marketplaceUpdateCmd)
}

func runMarketplaceAdd(cmd *cobra.Command, args []string) error {
	source := args[0]

	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return addDirectoryMarketplace(source)
	}
	return addGitMarketplace(source)
}

func addGitMarketplace(url string) error {
	repoName := extractRepoName(url)
	if repoName == "" {
		return fmt.Errorf("failed to extract repository name from URL: %s", url)
	}

	reg := registry.GetRegistry()
	exists, err := reg.Exists(repoName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s", i18n.T("AlreadyExists", map[string]any{"Name": repoName}))
	}

	if err := config.EnsureDir(config.MarketplacesDir()); err != nil {
		return err
	}

	destPath := filepath.Join(config.MarketplacesDir(), repoName)
	gitClient := git.NewClient()

	fmt.Printf("Cloning %s...\n", url)
	if err := gitClient.Clone(url, destPath); err != nil {
		if authErr, ok := err.(*git.AuthError); ok {
			return fmt.Errorf("%s", i18n.T("GitAuthFailed", map[string]any{"URL": authErr.URL}))
		}
		return fmt.Errorf("%s", i18n.T("GitCloneFailed", map[string]any{"Error": err.Error()}))
	}

	name, err := registerMarketplace(destPath)
	if err != nil {
		// Rollback: remove cloned directory
		os.RemoveAll(destPath)
		return err
	}

	mpSource := config.MarketplaceSource{Source: "git", URL: url}
	if err := finishAdd(name, mpSource, destPath); err != nil {
		os.RemoveAll(destPath)
		return err
	}
	return nil
}

func addDirectoryMarketplace(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	// Cheap manifest load for the name so the duplicate check runs before
	// the full validation pass
	m, err := manifest.LoadMarketplace(absDir)
	if err != nil {
		return fmt.Errorf("%s", i18n.T("InvalidManifest", map[string]any{"Path": absDir}))
	}
	name := m.Name
	if name == "" {
		name = filepath.Base(absDir)
	}

	reg := registry.GetRegistry()
	exists, err := reg.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s", i18n.T("AlreadyExists", map[string]any{"Name": name}))
	}

	if _, err := registerMarketplace(absDir); err != nil {
		return err
	}

	mpSource := config.MarketplaceSource{Source: "directory", Path: absDir}
	return finishAdd(name, mpSource, absDir)
}

// registerMarketplace validates the marketplace at dir and returns the name
// it should be registered under.
func registerMarketplace(dir string) (string, error) {
	opts := manifest.ValidateOptions{StrictDefault: config.GetStrictDefault()}
	report, err := manifest.ValidateMarketplace(dir, opts)
	if err != nil {
		return "", fmt.Errorf("%s", i18n.T("InvalidManifest", map[string]any{"Path": dir}))
	}

	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !report.OK() {
		for _, e := range report.Errors {
			fmt.Printf("error: %s\n", e)
		}
		return "", fmt.Errorf("%s", i18n.T("ValidateFailed", map[string]any{
			"Count": len(report.Errors),
		}, len(report.Errors)))
	}

	name := report.Manifest.Name
	if name == "" {
		name = filepath.Base(dir)
	}
	return name, nil
}

func finishAdd(name string, source config.MarketplaceSource, installLocation string) error {
	reg := registry.GetRegistry()
	if err := reg.Add(name, source, installLocation); err != nil {
		return err
	}

	m, err := manifest.LoadMarketplace(installLocation)
	pluginCount := 0
	if err == nil {
		pluginCount = len(m.Plugins)
	}

	fmt.Println(i18n.T("AddSuccess", map[string]any{
		"Name":  name,
		"Count": pluginCount,
	}, pluginCount))
	return nil
}

func runMarketplaceDel(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg := registry.GetRegistry()
	mp, err := reg.Get(name)
	if err != nil {
		return err
	}
	if mp == nil {
		return fmt.Errorf("%s", i18n.T("MarketplaceNotFound", map[string]any{"Name": name}))
	}

	// Only git clones live under our marketplaces directory; directory
	// sources are registered in place and must not be deleted.
	if mp.Source.Source == "git" && mp.InstallLocation != "" {
		if err := os.RemoveAll(mp.InstallLocation); err != nil {
			fmt.Printf("Warning: failed to remove directory %s: %v\n", mp.InstallLocation, err)
		}
	}

	if err := reg.Remove(name); err != nil {
		return err
	}

	fmt.Println(i18n.T("MarketplaceRemoved", map[string]any{"Name": name}))
	return nil
}

func runMarketplaceList(cmd *cobra.Command, args []string) error {
	reg := registry.GetRegistry()
	marketplaces, err := reg.List()
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("ListMarketplacesHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	if len(marketplaces) == 0 {
		fmt.Println(i18n.T("NoMarketplaces", nil))
		return nil
	}

	for name, mp := range marketplaces {
		fmt.Printf("  %s\n", name)
		if mp.Source.URL != "" {
			fmt.Printf("    URL: %s\n", mp.Source.URL)
		}
		fmt.Printf("    Path: %s\n", mp.InstallLocation)
		fmt.Printf("    Updated: %s\n", mp.LastUpdated)

		if marketplaceListAll {
			m, err := manifest.LoadMarketplace(mp.InstallLocation)
			if err == nil && len(m.Plugins) > 0 {
				fmt.Println("    Plugins:")
				for _, p := range m.Plugins {
					version := p.Version
					if version == "" {
						version = "latest"
					}
					fmt.Printf("      - %s (v%s)\n", p.Name, version)
					if p.Description != "" {
						fmt.Printf("        %s\n", p.Description)
					}
				}
			}
		}
		fmt.Println()
	}

	return nil
}

func runMarketplaceUpdate(cmd *cobra.Command, args []string) error {
	gitClient := git.NewClient()
	reg := registry.GetRegistry()

	if len(args) == 0 {
		return updateAllMarketplaces(gitClient, reg)
	}

	return updateMarketplace(gitClient, reg, args[0])
}

// extractRepoName extracts the repository name from a git URL
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	// Handle various URL formats
	// https://github.com/org/repo
	// git@github.com:org/repo
	// github.com/org/repo

	parts := strings.Split(url, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return ""
}

func updateAllMarketplaces(gitClient *git.DefaultClient, reg *registry.Registry) error {
	marketplaces, err := reg.List()
	if err != nil {
		return err
	}

	if len(marketplaces) == 0 {
		fmt.Println(i18n.T("NoMarketplaces", nil))
		return nil
	}

	for name, mp := range marketplaces {
		if mp.Source.Source != "git" {
			continue
		}

		if marketplaceUpdateCheck {
			checkMarketplace(gitClient, name, mp.InstallLocation)
			continue
		}

		fmt.Printf("Updating %s...\n", name)
		if err := gitClient.Pull(mp.InstallLocation); err != nil {
			if authErr, ok := err.(*git.AuthError); ok {
				fmt.Printf("  Error: %s\n", i18n.T("GitAuthFailed", map[string]any{"URL": authErr.URL}))
			} else {
				fmt.Printf("  Error: %s\n", i18n.T("GitPullFailed", map[string]any{"Error": err.Error()}))
			}
			continue
		}
		reg.UpdateTimestamp(name)
		fmt.Printf("  Done\n")
	}

	if !marketplaceUpdateCheck {
		fmt.Println(i18n.T("UpdateAllSuccess", nil))
	}
	return nil
}

func updateMarketplace(gitClient *git.DefaultClient, reg *registry.Registry, name string) error {
	mp, err := reg.Get(name)
	if err != nil {
		return err
	}
	if mp == nil {
		return fmt.Errorf("%s", i18n.T("MarketplaceNotFound", map[string]any{"Name": name}))
	}

	if mp.Source.Source != "git" {
		fmt.Println(i18n.T("NotGitMarketplace", map[string]any{"Name": name}))
		return nil
	}

	if marketplaceUpdateCheck {
		checkMarketplace(gitClient, name, mp.InstallLocation)
		return nil
	}

	fmt.Printf("Updating %s...\n", name)
	if err := gitClient.Pull(mp.InstallLocation); err != nil {
		if authErr, ok := err.(*git.AuthError); ok {
			return fmt.Errorf("%s", i18n.T("GitAuthFailed", map[string]any{"URL": authErr.URL}))
		}
		return fmt.Errorf("%s", i18n.T("GitPullFailed", map[string]any{"Error": err.Error()}))
	}

	reg.UpdateTimestamp(name)
	fmt.Println(i18n.T("UpdateSuccess", map[string]any{"Target": name}))
	return nil
}

func checkMarketplace(gitClient *git.DefaultClient, name, location string) {
	hasUpdates, err := gitClient.HasUpdates(location)
	switch {
	case err != nil:
		fmt.Printf("  %s: check failed: %v\n", name, err)
	case hasUpdates:
		fmt.Printf("  %s: %s\n", name, i18n.T("UpdatesAvailable", nil))
	default:
		fmt.Printf("  %s: %s\n", name, i18n.T("UpToDate", nil))
	}
}
