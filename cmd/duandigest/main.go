package main

import (
	"context"

	"duandigest/cmd/duandigest/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
