// Package config reads process configuration from the environment, the
// way the teacher's db package reads its Postgres settings, but for the
// engine binary rather than a player database.
package config

import "os"

const defaultEnginePath = "stockfish"

// EnginePath returns the chess engine binary to launch: UQCHESS_ENGINE_PATH
// if set, otherwise "stockfish" resolved against $PATH.
func EnginePath() string {
	if v, ok := os.LookupEnv("UQCHESS_ENGINE_PATH"); ok && v != "" {
		return v
	}
	return defaultEnginePath
}
