package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"auth-sdk/flow/weblink"
	"auth-sdk/internal/config"
	"auth-sdk/internal/logger"
	"auth-sdk/internal/state"
	"auth-sdk/oauth"
)

func main() {
	logger.Init()
	defer func() { _ = logger.Sync() }()

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	provider, err := oauth.NewProvider(cfg.ProviderID,
		oauth.WithScopes(cfg.Scopes...),
		oauth.WithCustomParameters(map[string]string{
			"access_type": "offline",
		}),
	)
	if err != nil {
		logger.Fatal("failed to build provider", map[string]any{
			"error": err.Error(),
		})
	}

	var flows state.Store
	if cfg.RedisAddr != "" {
		rs, err := state.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("redis unavailable", map[string]any{
				"error": err.Error(),
			})
		}
		defer rs.Close()
		flows = rs
	}

	relay := weblink.New(weblink.Config{
		Addr:        cfg.ListenAddr,
		RedirectURL: cfg.RedirectURL,
		Flows:       flows,
		Providers: map[string]weblink.ProviderConfig{
			cfg.ProviderID: {
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				Issuer:       cfg.Issuer,
				Endpoint: oauth2.Endpoint{
					AuthURL:  cfg.AuthURL,
					TokenURL: cfg.TokenURL,
				},
				Scopes:       cfg.Scopes,
				ExchangeCode: cfg.ClientSecret != "",
			},
		},
		OnAuthURL: func(url string) {
			fmt.Fprintf(os.Stderr, "open this URL to sign in:\n\n  %s\n\n", url)
		},
	})
	oauth.RegisterInteractive(relay)

	go func() {
		if err := relay.Run(); err != nil {
			logger.Fatal("relay failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	cred, err := provider.SignIn(ctx, nil)
	if err != nil {
		logger.Error("sign-in failed", map[string]any{
			"error": err.Error(),
		})
	} else {
		data, merr := oauth.MarshalCredential(cred)
		if merr != nil {
			logger.Error("failed to serialize credential", map[string]any{
				"error": merr.Error(),
			})
		} else {
			fmt.Println(string(data))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := relay.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("signin-demo stopped cleanly", nil)
}
