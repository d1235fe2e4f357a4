// cmd/teahigh/main.go
package main

import "teahigh/internal/cli"

func main() {
	cli.Execute()
}
