package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentmarket/agent-market/internal/config"
	"github.com/agentmarket/agent-market/internal/content"
	"github.com/agentmarket/agent-market/internal/git"
	"github.com/agentmarket/agent-market/internal/i18n"
	"github.com/agentmarket/agent-market/internal/installed"
	"github.com/agentmarket/agent-market/internal/manifest"
	"github.com/agentmarket/agent-market/internal/registry"
	"github.com/agentmarket/agent-market/internal/search"
	"github.com/agentmarket/agent-market/internal/settings"
	"github.com/agentmarket/agent-market/internal/tui"
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Manage plugins",
	Long: `Manage plugins from registered marketplaces.

Commands:
  install    Install a plugin
  uninstall  Uninstall an installed plugin
  update     Update installed plugin(s)
  list       List installed plugins
  search     Search for plugins
  agents     List the agents a plugin provides
  skills     List the skills a plugin provides`,
}

var pluginInstallCmd = &cobra.Command{
	Use:   "install <plugin>@<marketplace>",
	Short: "Install a plugin from a marketplace",
	Long: `Install a plugin from a registered marketplace.

The plugin manifest is validated before installation. Validation
failures block the install unless the marketplace entry declares
"strict": false.

Example:
  agent-market plugin install my-plugin@my-marketplace
  agent-market plugin install my-plugin@my-marketplace -s project`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginInstall,
}

var pluginUninstallCmd = &cobra.Command{
	Use:     "uninstall <plugin>@<marketplace>",
	Aliases: []string{"remove", "rm"},
	Short:   "Uninstall an installed plugin",
	Long: `Uninstall an installed plugin.

Scope options:
  -s global   Remove from global installation only (default)
  -s project  Remove from current project only
  -s all      Remove from all installations

Example:
  agent-market plugin uninstall my-plugin@my-marketplace
  agent-market plugin uninstall my-plugin@my-marketplace -s all`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginUninstall,
}

var pluginUsageCmd = &cobra.Command{
	Use:   "usage <plugin>@<marketplace>",
	Short: "Show where a plugin is installed",
	Long: `Show all installation locations for a plugin.

Example:
  agent-market plugin usage my-plugin@my-marketplace`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginUsage,
}

var pluginUpdateCmd = &cobra.Command{
	Use:   "update [plugin@marketplace]",
	Short: "Update installed plugin(s)",
	Long: `Update all installed plugins or a specific plugin.

By default, only updates plugins with version changes.
Use --force to reinstall all plugins regardless of version.

Example:
  agent-market plugin update                           # Update plugins with changes
  agent-market plugin update --force                   # Force reinstall all plugins
  agent-market plugin update my-plugin@my-marketplace  # Update specific`,
	RunE: runPluginUpdate,
}

var pluginUpdateForce bool

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long: `List all installed plugins.

Example:
  agent-market plugin list`,
	RunE: runPluginList,
}

var pluginSearchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search for plugins across all marketplaces",
	Long: `Search for plugins using fuzzy matching across all registered marketplaces.

Without arguments, opens an interactive fuzzy finder (TUI mode).
With a keyword, performs a text-based search.

The search looks through plugin names, descriptions, tags, and keywords.

Example:
  agent-market plugin search              # Interactive TUI mode
  agent-market plugin search formatter    # Text search mode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPluginSearch,
}

var pluginAgentsCmd = &cobra.Command{
	Use:   "agents <plugin>@<marketplace>|<directory>",
	Short: "List the agents a plugin provides",
	Long: `List the agent documents of a plugin. Accepts either an installed
plugin identifier or a plugin directory path.

Example:
  agent-market plugin agents my-plugin@my-marketplace
  agent-market plugin agents ./path/to/plugin`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginAgents,
}

var pluginSkillsCmd = &cobra.Command{
	Use:   "skills <plugin>@<marketplace>|<directory>",
	Short: "List the skills a plugin provides",
	Long: `List the skill documents of a plugin. Accepts either an installed
plugin identifier or a plugin directory path.

Example:
  agent-market plugin skills my-plugin@my-marketplace
  agent-market plugin skills ./path/to/plugin`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginSkills,
}

var (
	pluginInstallScope   string
	pluginUninstallScope string
	pluginQuietMode      bool // Suppress output during batch operations
)

func init() {
	pluginInstallCmd.Flags().StringVarP(&pluginInstallScope, "scope", "s", "global", "install scope (global or project)")
	pluginUninstallCmd.Flags().StringVarP(&pluginUninstallScope, "scope", "s", "global", "uninstall scope (global, project, or all)")
	pluginUpdateCmd.Flags().BoolVarP(&pluginUpdateForce, "force", "f", false, "force reinstall regardless of version")

	pluginCmd.AddCommand(pluginInstallCmd)
	pluginCmd.AddCommand(pluginUninstallCmd)
	pluginCmd.AddCommand(pluginUpdateCmd)
	pluginCmd.AddCommand(pluginListCmd)
	pluginCmd.AddCommand(pluginSearchCmd)
	pluginCmd.AddCommand(pluginUsageCmd)
	pluginCmd.AddCommand(pluginAgentsCmd)
	pluginCmd.AddCommand(pluginSkillsCmd)
}

func runPluginInstall(cmd *cobra.Command, args []string) error {
	if cmd != nil {
		cmd.SilenceUsage = true
	}
	identifier := args[0]

	pluginName, marketplaceName, err := parsePluginID(identifier)
	if err != nil {
		return err
	}

	reg := registry.GetRegistry()
	mp, err := reg.Get(marketplaceName)
	if err != nil {
		return err
	}
	if mp == nil {
		return fmt.Errorf("%s", i18n.T("MarketplaceNotFound", map[string]any{"Name": marketplaceName}))
	}

	m, err := manifest.LoadMarketplace(mp.InstallLocation)
	if err != nil {
		return err
	}

	ref := m.FindPlugin(pluginName)
	if ref == nil {
		return fmt.Errorf("%s", i18n.T("PluginNotFound", map[string]any{
			"Plugin":      pluginName,
			"Marketplace": marketplaceName,
		}))
	}

	// Resolve the plugin source. Remote sources are cloned to a temp
	// directory first.
	var sourcePath string
	if ref.IsRemoteSource() {
		tempCloneDir, err := os.MkdirTemp("", "agent-market-plugin-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempCloneDir)

		if !pluginQuietMode {
			fmt.Printf("Cloning %s...\n", ref.Source)
		}

		gitClient := git.NewClient()
		if err := gitClient.Clone(ref.Source, tempCloneDir); err != nil {
			return fmt.Errorf("failed to clone plugin repository: %w", err)
		}
		sourcePath = tempCloneDir
	} else {
		sourcePath = m.ResolveSource(mp.InstallLocation, ref)
		if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
			return &manifest.SourceNotFoundError{Source: ref.Source, Resolved: sourcePath}
		}
	}

	// Validate the plugin manifest before touching anything
	strict := config.GetStrictDefault()
	if ref.Strict != nil {
		strict = *ref.Strict
	}

	plugin, validationErrs := manifest.ValidatePlugin(sourcePath)
	if plugin != nil && plugin.Name != "" && plugin.Name != ref.Name {
		validationErrs = append(validationErrs, &manifest.NameMismatchError{
			Source:   ref.Source,
			Declared: ref.Name,
			Actual:   plugin.Name,
		})
	}
	if len(validationErrs) > 0 {
		if strict {
			for _, e := range validationErrs {
				fmt.Printf("error: %s\n", e)
			}
			return fmt.Errorf("%s", i18n.T("ValidateFailed", map[string]any{
				"Count": len(validationErrs),
			}, len(validationErrs)))
		}
		if !pluginQuietMode {
			for _, e := range validationErrs {
				fmt.Printf("warning: %s\n", e)
			}
		}
	}

	// Determine version
	version := ref.Version
	if version == "" && plugin != nil && plugin.Version != "" {
		version = plugin.Version
	}
	if version == "" {
		gitClient := git.NewClient()
		commit, err := gitClient.GetCurrentCommit(mp.InstallLocation)
		if err == nil && len(commit) > 12 {
			version = commit[:12]
		} else {
			version = "latest"
		}
	}

	pluginID := fmt.Sprintf("%s@%s", pluginName, marketplaceName)

	var projectPath string
	if pluginInstallScope == "project" {
		projectPath, _ = os.Getwd()
	}
	existingEntries, err := installed.GetManager().GetByScope(pluginID, pluginInstallScope, projectPath)
	if err != nil {
		return fmt.Errorf("failed to check installed plugins: %w", err)
	}
	if len(existingEntries) > 0 {
		return fmt.Errorf("%s", i18n.T("AlreadyInstalled", map[string]any{
			"Plugin": pluginID,
			"Scope":  pluginInstallScope,
		}))
	}

	if !pluginQuietMode {
		fmt.Printf("Installing %s...\n", pluginID)
	}

	// Copy the plugin into the install tree
	installPath := filepath.Join(config.PluginsDir(), marketplaceName, pluginName)
	if err := config.EnsureDir(filepath.Dir(installPath)); err != nil {
		return err
	}
	if err := installed.CopyDir(sourcePath, installPath); err != nil {
		os.RemoveAll(installPath)
		return fmt.Errorf("failed to copy plugin files: %w", err)
	}

	// Record the installation
	now := time.Now().Format(time.RFC3339)
	entry := installed.InstalledPluginEntry{
		Scope:       pluginInstallScope,
		Version:     version,
		InstalledAt: now,
		LastUpdated: now,
		Source: installed.PluginSource{
			Marketplace: marketplaceName,
			Source:      ref.Source,
			CachePath:   sourcePath,
		},
		InstallPath: installPath,
	}

	if pluginInstallScope == "project" {
		entry.ProjectPath = projectPath
	}

	if err := installed.GetManager().Add(pluginID, entry); err != nil {
		os.RemoveAll(installPath)
		return err
	}

	// Enable the plugin in the host's settings
	settingsPath := config.HostSettingsPath()
	if pluginInstallScope == "project" {
		if p := config.ProjectSettingsPath(); p != "" {
			settingsPath = p
		}
	}
	if err := settings.EnablePlugin(settingsPath, pluginID); err != nil && !pluginQuietMode {
		fmt.Printf("Warning: failed to enable plugin in host settings: %v\n", err)
	}

	if !pluginQuietMode {
		fmt.Println(i18n.T("InstallSuccess", map[string]any{
			"Plugin":      pluginName,
			"Marketplace": marketplaceName,
			"Version":     version,
		}))

		agents, _ := content.CollectAgents(installPath)
		if len(agents) > 0 {
			names := make([]string, len(agents))
			for i, a := range agents {
				names[i] = a.Name
			}
			fmt.Printf("  Agents: %s\n", strings.Join(names, ", "))
		}

		skills, _ := content.CollectSkills(installPath)
		if len(skills) > 0 {
			names := make([]string, len(skills))
			for i, s := range skills {
				names[i] = s.Name
			}
			fmt.Printf("  Skills: %s\n", strings.Join(names, ", "))
		}

		fmt.Printf("  Location: %s\n", installPath)
	}

	return nil
}

func runPluginUninstall(cmd *cobra.Command, args []string) error {
	pluginID := args[0]

	scope := pluginUninstallScope
	if scope != "global" && scope != "project" && scope != "all" {
		return fmt.Errorf("invalid scope: %s (must be global, project, or all)", scope)
	}

	cwd, _ := os.Getwd()

	mgr := installed.GetManager()
	entries, err := mgr.GetByScope(pluginID, scope, cwd)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		if scope == "all" {
			return fmt.Errorf("%s", i18n.T("NotInstalled", map[string]any{"Plugin": pluginID}))
		}
		return fmt.Errorf("plugin %s is not installed with scope '%s'", pluginID, scope)
	}

	removed, err := mgr.RemoveByScope(pluginID, scope, cwd)
	if err != nil {
		return err
	}

	for _, entry := range removed {
		if !pluginQuietMode {
			scopeInfo := entry.Scope
			if entry.Scope == "project" {
				scopeInfo = fmt.Sprintf("project:%s", entry.ProjectPath)
			}
			fmt.Printf("Removing from %s...\n", scopeInfo)
		}

		// Disable in the host's settings
		settingsPath := config.HostSettingsPath()
		if entry.Scope == "project" {
			if p := config.ProjectSettingsPath(); p != "" {
				settingsPath = p
			}
		}
		if err := settings.DisablePlugin(settingsPath, pluginID); err != nil && !pluginQuietMode {
			fmt.Printf("  Warning: failed to disable plugin in host settings: %v\n", err)
		}

		// Remove installed files
		if entry.InstallPath != "" {
			if err := os.RemoveAll(entry.InstallPath); err != nil {
				if !pluginQuietMode {
					fmt.Printf("  Warning: failed to remove %s: %v\n", entry.InstallPath, err)
				}
			} else if !pluginQuietMode {
				fmt.Printf("  Removed: %s\n", entry.InstallPath)
			}
		}
	}

	if !pluginQuietMode {
		fmt.Printf("\n%s\n", i18n.T("RemoveSuccess", map[string]any{"Plugin": pluginID}))
		fmt.Printf("Removed %d installation(s)\n", len(removed))
	}

	return nil
}

func runPluginUsage(cmd *cobra.Command, args []string) error {
	pluginID := args[0]

	entries, err := installed.GetManager().Get(pluginID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("%s", i18n.T("NotInstalled", map[string]any{"Plugin": pluginID}))
	}

	fmt.Printf("Plugin: %s\n", pluginID)
	fmt.Println(strings.Repeat("-", 40))

	for i, entry := range entries {
		fmt.Printf("\n[%d] Scope: %s\n", i+1, entry.Scope)
		if entry.Scope == "project" {
			fmt.Printf("    Project: %s\n", entry.ProjectPath)
		}
		fmt.Printf("    Version: %s\n", entry.Version)
		fmt.Printf("    Source: %s\n", entry.Source.Source)
		fmt.Printf("    Location: %s\n", entry.InstallPath)
		fmt.Printf("    Installed: %s\n", entry.InstalledAt)
	}

	fmt.Printf("\nTotal: %d installation(s)\n", len(entries))
	return nil
}

// pluginUpdateItem holds info about a plugin to update
type pluginUpdateItem struct {
	pluginID   string
	entry      installed.InstalledPluginEntry
	newVersion string
	isForce    bool
}

func runPluginUpdate(cmd *cobra.Command, args []string) error {
	mgr := installed.GetManager()
	installedPlugins, err := mgr.List()
	if err != nil {
		return err
	}

	gitClient := git.NewClient()
	reg := registry.GetRegistry()

	if len(args) == 0 {
		// Update all installed plugins
		if len(installedPlugins.Plugins) == 0 {
			fmt.Println(i18n.T("NoPluginsInstalled", nil))
			return nil
		}

		fmt.Println("Updating marketplaces...")
		if err := updateAllMarketplaces(gitClient, reg); err != nil {
			return err
		}

		fmt.Println("\nChecking for plugin updates...")
		var toUpdate []pluginUpdateItem
		var warnings []string

		for pluginID, entries := range installedPlugins.Plugins {
			for _, entry := range entries {
				needsUpdate, newVersion, err := checkPluginNeedsUpdate(pluginID, entry, reg, gitClient)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("  %s: %v", pluginID, err))
					continue
				}

				if !needsUpdate && !pluginUpdateForce {
					continue
				}

				toUpdate = append(toUpdate, pluginUpdateItem{
					pluginID:   pluginID,
					entry:      entry,
					newVersion: newVersion,
					isForce:    pluginUpdateForce,
				})
			}
		}

		for _, w := range warnings {
			fmt.Println(w)
		}

		if len(toUpdate) == 0 {
			fmt.Println("\n" + i18n.T("NoUpdates", nil))
			return nil
		}

		fmt.Println()
		for _, item := range toUpdate {
			if item.isForce {
				fmt.Printf("  • %s (force reinstall)\n", item.pluginID)
			} else {
				fmt.Printf("  • %s: %s → %s\n", item.pluginID, item.entry.Version, item.newVersion)
			}
		}
		fmt.Println()

		updatedCount := 0
		for _, item := range toUpdate {
			fmt.Printf("Updating %s...\n", item.pluginID)
			if err := reinstallPlugin(item.pluginID, item.entry); err != nil {
				fmt.Printf("  Error: %v\n", err)
				continue
			}
			updatedCount++
		}

		fmt.Printf("\n%d plugin(s) updated\n", updatedCount)
		return nil
	}

	// Update specific plugin
	pluginID := args[0]
	pluginName, marketplaceName, err := parsePluginID(pluginID)
	if err != nil {
		return err
	}

	entries, err := mgr.Get(pluginID)
	if err != nil || len(entries) == 0 {
		return fmt.Errorf("%s", i18n.T("NotInstalled", map[string]any{"Plugin": pluginID}))
	}

	fmt.Printf("Updating marketplace %s...\n", marketplaceName)
	if err := updateMarketplace(gitClient, reg, marketplaceName); err != nil {
		return err
	}

	for _, entry := range entries {
		needsUpdate, newVersion, err := checkPluginNeedsUpdate(pluginID, entry, reg, gitClient)
		if err != nil {
			return err
		}

		if !needsUpdate && !pluginUpdateForce {
			fmt.Printf("%s is already up to date (v%s)\n", pluginID, entry.Version)
			continue
		}

		fmt.Println()
		if pluginUpdateForce {
			fmt.Printf("  • %s (force reinstall)\n", pluginID)
		} else {
			fmt.Printf("  • %s@%s: %s → %s\n", pluginName, marketplaceName, entry.Version, newVersion)
		}
		fmt.Println()

		if err := reinstallPlugin(pluginID, entry); err != nil {
			return err
		}
	}

	return nil
}

// checkPluginNeedsUpdate checks if a plugin has a newer version available
func checkPluginNeedsUpdate(pluginID string, entry installed.InstalledPluginEntry, reg *registry.Registry, gitClient git.Client) (bool, string, error) {
	pluginName, marketplaceName, err := parsePluginID(pluginID)
	if err != nil {
		return false, "", err
	}

	mp, err := reg.Get(marketplaceName)
	if err != nil || mp == nil {
		return false, "", fmt.Errorf("marketplace not found: %s", marketplaceName)
	}

	m, err := manifest.LoadMarketplace(mp.InstallLocation)
	if err != nil {
		return false, "", err
	}

	ref := m.FindPlugin(pluginName)
	if ref == nil {
		return false, "", fmt.Errorf("%s", i18n.T("PluginNotFound", map[string]any{
			"Plugin":      pluginName,
			"Marketplace": marketplaceName,
		}))
	}

	newVersion := ref.Version
	if newVersion == "" {
		commit, err := gitClient.GetCurrentCommit(mp.InstallLocation)
		if err == nil && len(commit) > 12 {
			newVersion = commit[:12]
		} else {
			newVersion = "latest"
		}
	}

	return entry.Version != newVersion, newVersion, nil
}

// reinstallPlugin uninstalls and reinstalls a plugin (quiet mode)
func reinstallPlugin(pluginID string, entry installed.InstalledPluginEntry) error {
	originalScope := entry.Scope
	originalProjectPath := entry.ProjectPath

	pluginQuietMode = true
	defer func() { pluginQuietMode = false }()

	pluginUninstallScope = entry.Scope
	if err := runPluginUninstall(nil, []string{pluginID}); err != nil {
		return fmt.Errorf("uninstall failed: %w", err)
	}

	pluginInstallScope = originalScope
	if originalScope == "project" && originalProjectPath != "" {
		oldDir, _ := os.Getwd()
		os.Chdir(originalProjectPath)
		defer os.Chdir(oldDir)
	}

	if err := runPluginInstall(nil, []string{pluginID}); err != nil {
		return fmt.Errorf("reinstall failed: %w", err)
	}

	return nil
}

func runPluginList(cmd *cobra.Command, args []string) error {
	installedPlugins, err := installed.GetManager().List()
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("ListPluginsHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	if len(installedPlugins.Plugins) == 0 {
		fmt.Println(i18n.T("NoPluginsInstalled", nil))
		return nil
	}

	for id, entries := range installedPlugins.Plugins {
		for _, entry := range entries {
			fmt.Printf("  %s (v%s)\n", id, entry.Version)
			fmt.Printf("    Scope: %s\n", entry.Scope)
			fmt.Printf("    Source: %s\n", entry.Source.Source)
			fmt.Printf("    Location: %s\n", entry.InstallPath)
			fmt.Printf("    Installed: %s\n", entry.InstalledAt)
			fmt.Println()
		}
	}

	return nil
}

func runPluginSearch(cmd *cobra.Command, args []string) error {
	reg := registry.GetRegistry()
	knownMarketplaces, err := reg.List()
	if err != nil {
		return err
	}

	if len(knownMarketplaces) == 0 {
		fmt.Println(i18n.T("NoMarketplaces", nil))
		return nil
	}

	manifests, err := reg.LoadManifests()
	if err != nil {
		return err
	}

	// Branch: TUI mode (no args) or text mode (with keyword)
	if len(args) == 0 {
		return runInteractiveSearch(manifests)
	}

	return runTextSearch(manifests, args[0])
}

// runInteractiveSearch runs the TUI fuzzy finder with install/uninstall support
func runInteractiveSearch(manifests map[string]*manifest.MarketplaceManifest) error {
	result, err := tui.RunPluginFinder(manifests)
	if err != nil {
		return err
	}

	if result.Cancelled {
		fmt.Println(i18n.T("SearchCancelled", nil))
		return nil
	}

	if len(result.ToInstall) == 0 && len(result.ToUninstall) == 0 {
		fmt.Println(i18n.T("NoChanges", nil))
		return nil
	}

	if len(result.ToInstall) > 0 {
		fmt.Println()
		fmt.Println(i18n.T("InstallingPlugins", map[string]any{"Count": len(result.ToInstall)}, len(result.ToInstall)))
		for _, item := range result.ToInstall {
			pluginID := fmt.Sprintf("%s@%s", item.Plugin.Name, item.Marketplace)
			if err := runPluginInstall(nil, []string{pluginID}); err != nil {
				fmt.Printf("  %s: %v\n", i18n.T("InstallFailed", map[string]any{"Plugin": pluginID}), err)
			}
		}
	}

	if len(result.ToUninstall) > 0 {
		fmt.Println()
		fmt.Println(i18n.T("UninstallingPlugins", map[string]any{"Count": len(result.ToUninstall)}, len(result.ToUninstall)))
		for _, item := range result.ToUninstall {
			pluginID := fmt.Sprintf("%s@%s", item.Plugin.Name, item.Marketplace)
			// Use global scope for uninstall
			pluginUninstallScope = "global"
			if err := runPluginUninstall(nil, []string{pluginID}); err != nil {
				fmt.Printf("  %s: %v\n", i18n.T("UninstallFailed", map[string]any{"Plugin": pluginID}), err)
			}
		}
	}

	fmt.Println()
	return nil
}

// runTextSearch performs the existing text-based search
func runTextSearch(manifests map[string]*manifest.MarketplaceManifest, keyword string) error {
	results := search.FuzzySearch(manifests, keyword)

	if len(results) == 0 {
		fmt.Println(i18n.T("NoResults", map[string]any{"Keyword": keyword}))
		return nil
	}

	fmt.Println(i18n.T("SearchResults", map[string]any{"Count": len(results)}, len(results)))
	fmt.Println()

	for _, r := range results {
		version := r.Plugin.Version
		if version == "" {
			version = "latest"
		}

		fmt.Printf("  %s@%s (v%s)\n", r.Plugin.Name, r.Marketplace, version)

		if r.Plugin.Description != "" {
			fmt.Printf("    %s\n", r.Plugin.Description)
		}

		if len(r.Plugin.Tags) > 0 {
			fmt.Printf("    Tags: %s\n", strings.Join(r.Plugin.Tags, ", "))
		}

		if r.Plugin.Category != "" {
			fmt.Printf("    Category: %s\n", r.Plugin.Category)
		}

		fmt.Println()
	}

	return nil
}

func runPluginAgents(cmd *cobra.Command, args []string) error {
	dir, err := resolvePluginDir(args[0])
	if err != nil {
		return err
	}

	agents, errs := content.CollectAgents(dir)

	for _, e := range errs {
		fmt.Printf("error: %s\n", e)
	}

	if len(agents) == 0 {
		fmt.Println(i18n.T("NoAgents", map[string]any{"Dir": dir}))
		return nil
	}

	for _, a := range agents {
		fmt.Printf("  %s\n", a.Name)
		fmt.Printf("    %s\n", a.Description)
		if a.Model != "" {
			fmt.Printf("    Model: %s\n", a.Model)
		}
		fmt.Printf("    Path: %s\n", a.Path)
		fmt.Println()
	}

	return nil
}

func runPluginSkills(cmd *cobra.Command, args []string) error {
	dir, err := resolvePluginDir(args[0])
	if err != nil {
		return err
	}

	skills, errs := content.CollectSkills(dir)

	for _, e := range errs {
		fmt.Printf("error: %s\n", e)
	}

	if len(skills) == 0 {
		fmt.Println(i18n.T("NoSkills", map[string]any{"Dir": dir}))
		return nil
	}

	for _, s := range skills {
		fmt.Printf("  %s\n", s.Name)
		fmt.Printf("    %s\n", s.Description)
		fmt.Printf("    Path: %s\n", s.Path)
		fmt.Println()
	}

	return nil
}

// resolvePluginDir turns a plugin identifier or directory path into a plugin
// directory. Identifiers resolve through the installed records first, then
// through the marketplace manifest.
func resolvePluginDir(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg, nil
	}

	pluginName, marketplaceName, err := parsePluginID(arg)
	if err != nil {
		return "", err
	}

	entries, err := installed.GetManager().Get(arg)
	if err == nil && len(entries) > 0 && entries[0].InstallPath != "" {
		return entries[0].InstallPath, nil
	}

	reg := registry.GetRegistry()
	mp, err := reg.Get(marketplaceName)
	if err != nil {
		return "", err
	}
	if mp == nil {
		return "", fmt.Errorf("%s", i18n.T("MarketplaceNotFound", map[string]any{"Name": marketplaceName}))
	}

	m, err := manifest.LoadMarketplace(mp.InstallLocation)
	if err != nil {
		return "", err
	}

	ref := m.FindPlugin(pluginName)
	if ref == nil {
		return "", fmt.Errorf("%s", i18n.T("PluginNotFound", map[string]any{
			"Plugin":      pluginName,
			"Marketplace": marketplaceName,
		}))
	}
	if ref.IsRemoteSource() {
		return "", fmt.Errorf("plugin %s has a remote source, install it first", arg)
	}

	return m.ResolveSource(mp.InstallLocation, ref), nil
}

// parsePluginID parses "plugin@marketplace" format
func parsePluginID(identifier string) (string, string, error) {
	parts := strings.Split(identifier, "@")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%s", i18n.T("InvalidPluginIdentifier", map[string]any{
			"Identifier": identifier,
		}))
	}
	return parts[0], parts[1], nil
}
