package main

import (
	"github.com/spotilove/core/internal/app"
	"github.com/spotilove/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
