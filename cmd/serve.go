package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"video-tutor/utils"
	"video-tutor/work-flows/gateway"
	"video-tutor/work-flows/managers"

	"github.com/spf13/cobra"
)

func newServeCmd(envFiles *[]string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web tutor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(*envFiles)
			if err != nil {
				return err
			}
			if port != "" {
				a.cfg.Port = port
			}

			if err := a.resolver.EnsureCacheDir(); err != nil {
				return err
			}
			utils.PrintInfo(fmt.Sprintf("Video cache: %s (max %d GB)", a.resolver.CacheDir(), a.resolver.MaxVideoSizeGB()))
			utils.PrintInfo(fmt.Sprintf("Chat API: %s", a.cfg.ChatAPIEndpoint))

			web := gateway.NewTutorWeb(managers.NewSessionStore(), a.manager, a.resolver, gateway.WebOptions{
				Translator:  a.translator,
				ExportDir:   a.cfg.ExportDir,
				IdleTimeout: a.cfg.SessionIdleTimeout,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return web.StartWebServer(ctx, a.cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	return cmd
}
