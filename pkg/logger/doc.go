// Package logger builds the structured slog logger shared by the daemon and
// the prober. Production environments log JSON; everything else logs text.
package logger
