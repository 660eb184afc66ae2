package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/toond/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset [label]",
	Short: "Reset the active (or named) config to default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = config.CurrentLabel(); err != nil {
				return fmt.Errorf("%w, run `toond config init`", err)
			}
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("config %q does not exist", label)
		}

		def := config.DefaultConfig()
		if err := config.SaveYAML(def, path); err != nil {
			return err
		}

		fmt.Printf("Reset config %q: %s\n", label, path)
		fmt.Println("  ", def.Summary())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
