// Package services implements the driving port interfaces.
// Services contain the core storage logic and orchestrate
// calls to driven ports (adapters).
//
//   - JSONStorage: Load/default/backup/save protocol for one JSON file
//   - BackupService: Listing and pruning of backup copies
//   - ConfigService: Validated host settings over a ConfigStore
//
// Services are pure Go with no CGO or external dependencies.
package services
