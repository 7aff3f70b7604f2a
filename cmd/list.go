package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentmarket/agent-market/internal/i18n"
	"github.com/agentmarket/agent-market/internal/installed"
	"github.com/agentmarket/agent-market/internal/manifest"
	"github.com/agentmarket/agent-market/internal/registry"
)

var (
	listAll bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered marketplaces and installed plugins",
	Long: `List all registered marketplaces and installed plugins.

Example:
  agent-market list
  agent-market list --all  # Also show available plugins`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show available plugins from marketplaces")
}

func runList(cmd *cobra.Command, args []string) error {
	reg := registry.GetRegistry()
	marketplaces, err := reg.List()
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("ListMarketplacesHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	if len(marketplaces) == 0 {
		fmt.Println(i18n.T("NoMarketplaces", nil))
	} else {
		for name, mp := range marketplaces {
			fmt.Printf("  %s\n", name)
			if mp.Source.URL != "" {
				fmt.Printf("    URL: %s\n", mp.Source.URL)
			}
			fmt.Printf("    Path: %s\n", mp.InstallLocation)
			fmt.Printf("    Updated: %s\n", mp.LastUpdated)

			if listAll {
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
	}

	fmt.Println()
	fmt.Println(i18n.T("ListPluginsHeader", nil))
	fmt.Println(strings.Repeat("-", 40))

	installedPlugins, err := installed.GetManager().List()
	if err != nil {
		return err
	}

	if len(installedPlugins.Plugins) == 0 {
		fmt.Println(i18n.T("NoPluginsInstalled", nil))
	} else {
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
	}

	return nil
}
