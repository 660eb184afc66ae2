package cmd

import (
	"fmt"

	"github.com/brogergvhs/toond/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.ListConfigs()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no configs available, run `toond config init`")
			}

			items := make([]string, 0, len(list))
			for _, c := range list {
				items = append(items, profileItem(c))
			}

			prompt := promptui.Select{
				Label: "Select config",
				Items: items,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}

			label = list[idx].Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)
		if cfg, err := config.LoadProfile(label); err == nil {
			fmt.Println("  ", cfg.Summary())
		}
		return nil
	},
}

// profileItem labels a profile with the site it points at, so profiles for
// different locales can be told apart in the picker.
func profileItem(c config.ConfigInfo) string {
	item := c.Label
	if cfg, err := config.LoadProfile(c.Label); err == nil {
		item += "  [" + cfg.Summary() + "]"
	} else {
		item += "  [unreadable]"
	}
	if c.Active {
		item += "  (active)"
	}

	return item
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
