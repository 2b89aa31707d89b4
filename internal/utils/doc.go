// Package utils hosts shared infrastructure for the zen CLI: the zap logger
// factory, the viper configuration loader, and small I/O helpers.
package utils
