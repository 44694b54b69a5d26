package main

import (
	"moim-api/core/logger"
	"moim-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
