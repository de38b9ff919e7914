package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:           "video-tutor",
		Short:         "Video tutor: watch a lesson and chat with an AI tutor about it",
		Long:          "video-tutor serves lesson videos from a local cache next to a chat panel backed by a remote tutor API. It can also list the lesson catalog and run the chat from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load before reading the environment (default .env)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(&envFiles),
		newCatalogCmd(),
		newChatCmd(&envFiles),
	)

	return rootCmd
}
