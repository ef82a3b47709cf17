//go:build tinygo

package main

import (
	"fortuna/app"
	"fortuna/hal"
)

func main() {
	app.Run(hal.New())
}
