package cmd

import (
	"fmt"

	"github.com/brogergvhs/toond/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename <old_label> <new_label>",
	Short: "Rename a profile, keeping it active if it was",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldLabel, newLabel := args[0], args[1]

		if err := config.RenameConfig(oldLabel, newLabel); err != nil {
			return err
		}

		path, _ := config.ConfigPathByLabel(newLabel)
		fmt.Printf("Renamed config %q to %q\n  %s\n", oldLabel, newLabel, path)

		if active, _ := config.CurrentLabel(); active == newLabel {
			fmt.Println("It is still the active config.")
		}

		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
