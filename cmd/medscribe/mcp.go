package main

import (
	"github.com/jwulff/medscribe/internal/logging"
	"github.com/jwulff/medscribe/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve template and report tools over MCP stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, logCloser, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}
		archive, err := openArchive(cfg)
		if err != nil {
			return err
		}
		if archive != nil {
			defer archive.Close()
		}

		return mcpserver.New(lib, archive, logging.WithComponent(log, "mcp")).ServeStdio(version)
	},
}
