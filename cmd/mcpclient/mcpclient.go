package main

import (
	"os"

	"github.com/kiosk404/echoweather/internal/mcpclient/cmd"
	"github.com/kiosk404/echoweather/pkg/logger"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Debug)); err != nil {
		logger.Warn("failed to set GOMAXPROCS: %v", err)
	}

	command := cmd.NewDefaultMCPClientCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
