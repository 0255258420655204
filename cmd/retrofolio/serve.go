package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/mmcdole/retrofolio/internal/adapter"
	"github.com/mmcdole/retrofolio/internal/web"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sections over HTTP",
	Long: `Serve renders every section to HTML and serves it, along with a JSON API
under /api/sections. The port comes from --port, then $PORT (a .env file in
the working directory is honored), then the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		gin.SetMode(gin.ReleaseMode)
		srv, err := web.NewServer(a.registry, web.WithVisits(a.prefs), web.WithLogger(a.logger))
		if err != nil {
			return err
		}

		port := a.cfg.Server.Port
		if env := os.Getenv("PORT"); env != "" {
			if port, err = strconv.Atoi(env); err != nil {
				return fmt.Errorf("invalid PORT %q: %w", env, err)
			}
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(port))
		url := "http://" + addr + "/"

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "serving %s\n", url)
		if serveOpen {
			launcher := adapter.NewLauncher(a.cfg.Browser, a.logger)
			time.AfterFunc(300*time.Millisecond, func() {
				if err := launcher.Open(url); err != nil {
					fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
				}
			})
		}

		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the page in a browser")
	rootCmd.AddCommand(serveCmd)
}
