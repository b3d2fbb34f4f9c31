package main

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/galeri/internal/clock"
	"github.com/smallbiznis/galeri/internal/config"
	"github.com/smallbiznis/galeri/internal/migration"
	"github.com/smallbiznis/galeri/internal/observability"
	"github.com/smallbiznis/galeri/internal/ratelimit"
	"github.com/smallbiznis/galeri/internal/server"
	"github.com/smallbiznis/galeri/pkg/db"
	"go.uber.org/fx"
)

func newSnowflakeNode() (*snowflake.Node, error) {
	nodeID := int64(1)
	if raw := os.Getenv("SNOWFLAKE_NODE_ID"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			nodeID = parsed
		}
	}
	return snowflake.NewNode(nodeID)
}

func main() {
	fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		ratelimit.Module,
		migration.Module,
		server.Module,
	).Run()
}
