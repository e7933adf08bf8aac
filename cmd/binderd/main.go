package main

import (
	"context"
	"net/http"
	"cardbinder-backend/lib/configutil"
	configsqlite "cardbinder-backend/lib/configutil/sqlite"
	"cardbinder-backend/lib/osutil"
	"cardbinder-backend/lib/scrapers/pricecharting"
	"cardbinder-backend/lib/serviceutil"
	"cardbinder-backend/lib/telemetry"
	"cardbinder-backend/services/catalog"
	catalogdb "cardbinder-backend/services/catalog/db"
	"cardbinder-backend/services/collection"
	collectiondb "cardbinder-backend/services/collection/db"
	"cardbinder-backend/services/importer"
)

type Config struct {
	Port        int                 `json:"port"`
	Verbose     bool                `json:"verbose"`
	Database    configsqlite.Struct `json:"database"`
	DataDir     string              `json:"data_dir"`
	ImageDir    string              `json:"image_dir"`
	BrowserPath string              `json:"browser_path"`
}

func main() {
	ctx := osutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8787
	}

	telemetry.InitSlog(config.Verbose)
	err = telemetry.SetupFromEnv(ctx, "binderd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	db, err := config.Database.OpenDB(catalogdb.Schema + "\n" + collectiondb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	renderer, err := pricecharting.NewClient(pricecharting.ClientOptions{
		ExecPath: config.BrowserPath,
		DataDir:  config.DataDir,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize browser client", err)
	}

	catalogService, err := catalog.NewService(db, catalog.Options{
		ImageDir: config.ImageDir,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize catalog service", err)
	}
	collectionService := collection.NewService(db, collection.Options{
		DataDir: config.DataDir,
	})
	importerService := importer.NewService(renderer, catalogService, collectionService)

	server := Server{
		importer:   importerService,
		catalog:    catalogService,
		collection: collectionService,
	}
	mux := http.NewServeMux()
	server.Register(mux)
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
