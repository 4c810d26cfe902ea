package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"nftdesigner/internal/http/handlers"
	httpapi "nftdesigner/internal/http/httpapi"
	"nftdesigner/internal/imaging"
	"nftdesigner/internal/infra"
	"nftdesigner/internal/middleware"
	"nftdesigner/internal/minting"
	"nftdesigner/internal/providers/chain"
	"nftdesigner/internal/providers/enrich"
	"nftdesigner/internal/providers/ipfs"
)

// mockSigner owns the in-process ledger when MOCK_MINTING is enabled.
const mockSigner = "0x00000000000000000000000000000000DeaDBeef"

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	// Configuration & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Metadata enrichment: OpenAI when a key is present, passthrough otherwise.
	enricher := buildEnricher(cfg, logger)

	// IPFS pinning: nft.storage, a local dev store, or placeholder-only.
	store := buildStore(cfg, logger)

	// Minter: in-process ledger for mock mode, JSON-RPC contract otherwise.
	minter, cleanup, err := buildMinter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise minter")
	}
	defer cleanup()

	pipeline := minting.NewOrchestrator(minting.Options{
		Normalizer: imaging.NewNormalizer(),
		Enricher:   enricher,
		Store:      store,
		Minter:     minter,
		Policy:     minting.DefaultPolicy(),
		Logger:     logger,
	})

	// App container and router
	app := handlers.NewApp(logger, pipeline)
	router := httpapi.NewRouter(app, logger, middleware.DefaultAllowedOrigins())

	// HTTP server wrapper from infra
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func buildEnricher(cfg *infra.Config, logger zerolog.Logger) enrich.Enricher {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY not set, using passthrough metadata enrichment")
		return enrich.NewPassthrough()
	}
	enricher, err := enrich.NewOpenAIEnricher(enrich.OpenAIOptions{
		APIKey:   cfg.OpenAIAPIKey,
		Model:    cfg.OpenAIModel,
		BaseURL:  cfg.OpenAIBaseURL,
		Fallback: enrich.NewPassthrough(),
		OnFallback: func(reason string, err error) {
			logger.Warn().Err(err).Str("reason", reason).Msg("AI enrichment fell back to draft metadata")
		},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("OpenAI enricher unavailable, using passthrough")
		return enrich.NewPassthrough()
	}
	return enricher
}

func buildStore(cfg *infra.Config, logger zerolog.Logger) ipfs.Uploader {
	if cfg.StorageAPIKey != "" {
		client, err := ipfs.NewClient(ipfs.ClientOptions{
			APIKey:  cfg.StorageAPIKey,
			BaseURL: cfg.StorageBaseURL,
		})
		if err == nil {
			return client
		}
		logger.Warn().Err(err).Msg("nft.storage client unavailable")
	}
	if cfg.LocalStorageDir != "" {
		store, err := ipfs.NewFileStore(cfg.LocalStorageDir)
		if err == nil {
			logger.Info().Str("dir", cfg.LocalStorageDir).Msg("using local file store for assets")
			return store
		}
		logger.Warn().Err(err).Msg("local file store unavailable")
	}
	logger.Warn().Msg("no storage configured, minting with placeholder identifiers")
	return ipfs.Unconfigured{}
}

func buildMinter(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (chain.Minter, func(), error) {
	if cfg.MockMinting {
		logger.Info().Msg("MOCK_MINTING enabled, using in-process ledger")
		minter := chain.NewMockMinter(chain.MockOptions{
			Signer: common.HexToAddress(mockSigner),
			Logger: logger,
		})
		return minter, func() {}, nil
	}
	minter, err := chain.NewEthereumMinter(ctx, chain.EthereumOptions{
		RPCURL:          cfg.RPCURL,
		PrivateKey:      cfg.PrivateKey,
		ContractAddress: cfg.ContractAddress,
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return minter, minter.Close, nil
}
