package api

import (
	"github.com/travigo/railrouter/pkg/config"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the routing web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config",
					},
					&cli.StringFlag{
						Name:    "config",
						Usage:   "path to the YAML configuration",
						EnvVars: []string{"RAILROUTER_CONFIG"},
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					p, err := planner.Load(c.Context, cfg)
					if err != nil {
						return err
					}

					listen := cfg.Server.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					return SetupServer(listen, p)
				},
			},
		},
	}
}
