// Command itinera-mcp serves the trip planner as an MCP server over stdio,
// so MCP clients can call plan_trip as a tool.
//
// Provider credentials are read from the environment (or a .env file).
//
// Configuration for an MCP client:
//
//	{
//	    "mcpServers": {
//	        "itinera": {
//	            "command": "itinera-mcp"
//	        }
//	    }
//	}
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mstrand/itinera/client"
	"github.com/mstrand/itinera/mcp"
	"github.com/mstrand/itinera/planner"
)

func main() {
	_ = godotenv.Load()

	// Stdout carries the MCP protocol, so all logging goes to stderr.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c, err := client.FromEnv(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure chat client")
	}

	p := planner.New(c)
	if err := mcp.ServeStdio(p); err != nil {
		log.Fatal().Err(err).Msg("mcp server exited")
	}
}
