package main

import (
	"context"
	"os"
	"cardbinder-backend/cmd/binder-cli/commands"
	"cardbinder-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "binder-cli")
	telemetry.InitSlog(false)

	if baseUrl, ok := os.LookupEnv("BINDERD_BASE_URL"); ok {
		commands.BaseUrl = baseUrl
	}
	commands.ExecuteContext(context.Background())
}
