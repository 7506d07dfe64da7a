package cmd

import (
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kamalx",
		Long:  `Print the version number of kamalx. Use 'kamalx -- version' for kamal's.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("kamalx version %s\n", rootCmd.Version)
		},
	}
}
