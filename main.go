package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/db"
	"github.com/danielhkuo/biryani-lagbe/filestore"
	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/reports"
	"github.com/danielhkuo/biryani-lagbe/router"
	"github.com/danielhkuo/biryani-lagbe/sqlstore"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("store unavailable", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Store ready", "store", cfg.StoreType, "timezone", cfg.Timezone)

	// Create router
	mux := router.NewRouter(store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore opens the backend selected by cfg.StoreType.
func openStore(cfg cliparse.Config) (reports.Store, error) {
	clock := reports.NewClock(cfg.Location)

	switch cfg.StoreType {
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		conn, err := db.Open(cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return sqlstore.New(conn, clock), nil
	default:
		store, err := filestore.Open(cfg.DataFile, clock)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
