// Package main is the entry point of the covidash CLI.
package main

import (
	"github.com/huangsam/covidash/cmd"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/iostore"
	"go.uber.org/zap"
)

func main() {
	cmd.SetDatasetManager(iostore.Manager)
	defer iostore.CloseStores()
	defer func() { _ = zap.L().Sync() }()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iostore.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
