// cmd/mmcount/main.go
package main

import (
	"mmcount/internal/app"
	"mmcount/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
