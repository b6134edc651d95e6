// Command mint-token signs a JWT accepted by the local identity strategy, for
// exercising the API by hand:
//
//	go run ./cmd/mint-token -user 123
//	curl -H "Authorization: Bearer $(go run ./cmd/mint-token -user 123)" localhost:8080/columns
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chxlky/trello-clone-api/config"
	"github.com/chxlky/trello-clone-api/internal/identity"
	"go.uber.org/zap"
)

func main() {
	userID := flag.Int64("user", 0, "user id to put in the token")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if *userID <= 0 {
		zap.L().Fatal("-user must be a positive id")
	}

	cfg, err := config.Load(".")
	if err != nil {
		zap.L().Fatal("Error loading config", zap.Error(err))
	}
	if cfg.Auth.Strategy != config.StrategyLocal {
		zap.L().Warn("Configured strategy is not local; the server will not accept this token",
			zap.String("strategy", cfg.Auth.Strategy))
	}

	token, err := identity.SignToken(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Claim, *userID, *ttl)
	if err != nil {
		zap.L().Fatal("Failed to sign token", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, token)
}
