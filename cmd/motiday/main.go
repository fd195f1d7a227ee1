package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danhyun/motiday/internal/database"
	"github.com/danhyun/motiday/internal/logging"
	"github.com/danhyun/motiday/internal/metrics"
	"github.com/danhyun/motiday/internal/push"
	"github.com/danhyun/motiday/internal/server"
	"github.com/danhyun/motiday/internal/snapshot"
	"github.com/danhyun/motiday/internal/state"
)

func main() {
	port := os.Getenv("MOTIDAY_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("MOTIDAY_DB_PATH")
	if dbPath == "" {
		dbPath = "motiday.db"
	}

	logger := logging.Setup(os.Getenv("MOTIDAY_LOG_LEVEL"), os.Getenv("MOTIDAY_LOG_FORMAT"))
	metrics.Register()

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	snapshots := snapshot.New(db)
	st := state.New(snapshots, logger.With("component", "state"))
	st.Rollover(time.Now())

	pushCfg := push.Config{
		VAPIDPublicKey:  os.Getenv("MOTIDAY_VAPID_PUBLIC"),
		VAPIDPrivateKey: os.Getenv("MOTIDAY_VAPID_PRIVATE"),
	}
	if !pushCfg.Enabled() {
		logger.Warn("VAPID keys not configured, push reminders disabled")
	}

	srv := server.New(db, st, pushCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if sched := srv.Scheduler(); sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Motiday running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
