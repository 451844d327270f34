// Package config loads and caches named rule presets for Sudoku Arena.
//
// Presets are JSON files in a configuration directory, each describing one
// engine.Rules value: generation parameters (seed cells, removed cells) and
// scoring (correct points, wrong penalty, finish bonus). A built-in default
// matching the classic rules is always available, so a missing or empty
// directory still yields a working server.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.Load("blitz")
//	presets, _ := manager.List()
//	defaults := manager.Default()
package config
