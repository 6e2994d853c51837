package rpc_test

import "github.com/rs/zerolog"

func mockLogger() zerolog.Logger {
	return zerolog.Nop()
}
