package main

import (
	"context"
	"fmt"
	"os"
	"time"

	accounts "art-auction/internal/accountService"
	"art-auction/internal/auth"
	bidding "art-auction/internal/biddingService"
	catalog "art-auction/internal/catalogService"
	"art-auction/internal/config"
	"art-auction/internal/live"
	payments "art-auction/internal/paymentService"
	"art-auction/internal/repository"
	"art-auction/internal/repository/sqlite"
	sellers "art-auction/internal/sellerService"
	"art-auction/internal/server"
	"art-auction/utils"
)

// auctionSweepInterval bounds how stale a stored auction status can get
// between requests.
const auctionSweepInterval = 30 * time.Second

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := live.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	broker, err := openBroker(ctx, cfg, hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect broker: %v\n", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	accountSvc := accounts.NewAccountService(store, tokens, nil)
	biddingSvc := bidding.NewBiddingService(store, broker, nil)
	catalogSvc := catalog.NewCatalogService(store, nil)
	paymentSvc := payments.NewPaymentService(store, nil)
	sellerSvc := sellers.NewSellerService(store, nil)

	go sweepAuctionStatuses(ctx, catalogSvc)

	router := server.SetupRouter(server.Deps{
		Accounts: accountSvc,
		Bidding:  biddingSvc,
		Catalog:  catalogSvc,
		Payments: paymentSvc,
		Sellers:  sellerSvc,
		Tokens:   tokens,
		Hub:      hub,
	})

	fmt.Printf("Starting auction server on %s...\n", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore selects SQLite when a database path is configured, otherwise the
// in-memory repo.
func openStore(cfg config.Config) (repository.Store, error) {
	if cfg.DBPath == "" {
		utils.Info("main: using in-memory store", nil)
		return repository.NewMemoryRepo(), nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	utils.Info("main: using sqlite store", map[string]any{"path": cfg.DBPath})
	return store, nil
}

// openBroker wires Redis fan-out when configured and falls back to in-process
// delivery otherwise.
func openBroker(ctx context.Context, cfg config.Config, hub *live.Hub) (live.Broker, error) {
	if cfg.RedisAddr == "" {
		return live.NewLocalBroker(hub), nil
	}

	broker, err := live.NewRedisBroker(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := broker.Bridge(ctx, hub); err != nil && ctx.Err() == nil {
			utils.Error("main: redis bridge stopped", map[string]any{"error": err.Error()})
		}
	}()

	utils.Info("main: redis bid fan-out enabled", map[string]any{"addr": cfg.RedisAddr})
	return broker, nil
}

// sweepAuctionStatuses periodically re-derives stored auction statuses so
// listings flip to started/ended without waiting for a request to touch them.
func sweepAuctionStatuses(ctx context.Context, svc *catalog.CatalogService) {
	ticker := time.NewTicker(auctionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := svc.RefreshAuctionStatuses()
			if err != nil {
				utils.Warn("main: auction status sweep failed", map[string]any{"error": err.Error()})
				continue
			}
			if changed > 0 {
				utils.Info("main: auction statuses refreshed", map[string]any{"changed": changed})
			}
		}
	}
}
