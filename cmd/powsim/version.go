package powsim

import (
	"github.com/spf13/cobra"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of powsim",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("powsim", Version)
	},
}
