package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentmarket/agent-market/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage agent-market configuration",
	Long: `Manage agent-market configuration settings.

Example:
  agent-market config show
  agent-market config set host.registry.share sync`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  locale               - Language setting
                         Values: auto, en-US, etc.
  host.registry.share  - How to share the registry with the host
                         Values: sync, merge, ignore
  validation.strict    - Default strictness for marketplace entries
                         Values: true, false

Example:
  agent-market config set locale en-US
  agent-market config set host.registry.share sync
  agent-market config set validation.strict false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Configuration:")
	fmt.Println("----------------------------------------")
	fmt.Printf("  locale: %s\n", cfg.Locale)
	fmt.Printf("  host.registry.share: %s\n", cfg.Host.Registry.Share)
	fmt.Printf("  validation.strict: %t\n", cfg.Validation.StrictDefault)
	fmt.Println()
	fmt.Printf("  Marketplaces: %d registered\n", len(cfg.Marketplaces))

	// Explain current settings
	fmt.Println()
	fmt.Println("Locale:")
	if cfg.Locale == "auto" {
		fmt.Println("  auto: System locale is auto-detected")
	} else {
		fmt.Printf("  %s: Using fixed locale\n", cfg.Locale)
	}

	fmt.Println()
	fmt.Println("Share mode:")
	switch cfg.Host.Registry.Share {
	case config.ShareSync:
		fmt.Println("  sync: Changes are synced to the host's settings.json")
	case config.ShareMerge:
		fmt.Println("  merge: Lists show agent-market + host marketplaces combined")
	case config.ShareIgnore:
		fmt.Println("  ignore: Only agent-market's own marketplaces are used")
	}

	fmt.Println()
	fmt.Println("Validation:")
	if cfg.Validation.StrictDefault {
		fmt.Println("  strict: Entries without a strict flag block on validation failures")
	} else {
		fmt.Println("  lenient: Entries without a strict flag report failures as warnings")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	switch key {
	case "locale":
		if err := config.SetLocale(value); err != nil {
			return err
		}
		fmt.Printf("Locale set to '%s'. Restart agent-market to apply.\n", value)
		return nil
	case "host.registry.share":
		switch value {
		case "sync":
			return config.SetShareMode(config.ShareSync)
		case "merge":
			return config.SetShareMode(config.ShareMerge)
		case "ignore":
			return config.SetShareMode(config.ShareIgnore)
		default:
			return fmt.Errorf("invalid value '%s' for %s. Valid values: sync, merge, ignore", value, key)
		}
	case "validation.strict":
		switch value {
		case "true":
			return config.SetStrictDefault(true)
		case "false":
			return config.SetStrictDefault(false)
		default:
			return fmt.Errorf("invalid value '%s' for %s. Valid values: true, false", value, key)
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
