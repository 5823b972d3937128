// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the daemon configuration structure:
// the target URL and its transport settings, the ping schedule, the status
// server and logging.
package config
