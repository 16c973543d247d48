package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokerdesk/club_ledger/internal/billing"
	"github.com/pokerdesk/club_ledger/internal/cache"
	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/database"
	"github.com/pokerdesk/club_ledger/internal/notify"
	"github.com/pokerdesk/club_ledger/internal/ranking"
	"github.com/pokerdesk/club_ledger/internal/repositories"
	"github.com/pokerdesk/club_ledger/internal/security"
	"github.com/pokerdesk/club_ledger/internal/services"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

var (
	flagToken string
	flagActor string
)

var rootCmd = &cobra.Command{
	Use:   "clubledger",
	Short: "Player-balance ledger, session settlement, and rankings for a poker club",
	Long: `clubledger manages the club's player balances as an append-only
transaction ledger, runs the buy-in/cash-out settlement for table sessions,
and computes leaderboards from the settled session history.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "operator token (JWT) identifying the acting operator")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "operator name, accepted instead of --token outside production")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired services a command works against. Each invocation
// builds one and closes it on the way out.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	hub        *services.OutcomeHub
	cache      *cache.RankingCache
	players    *services.PlayerService
	ledger     *services.LedgerService
	settlement *services.SettlementService
	rankings   *services.RankingService
	outcomes   *repositories.OutcomeRepository
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv == "development")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return nil, err
	}

	var rankingCache *cache.RankingCache
	if cfg.RedisURL != "" {
		rankingCache, err = cache.New(cfg.RedisURL, cfg.RankingCacheTTL())
		if err != nil {
			log.Warn("Ranking cache unavailable, running without it", "error", err)
			rankingCache = nil
		}
	}

	playerRepo := repositories.NewPlayerRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	outcomeRepo := repositories.NewOutcomeRepository(db)

	hub := services.NewOutcomeHub(log)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Warn("Telegram notifier unavailable", "error", err)
		} else {
			notifier = tn
		}
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		hub:      hub,
		cache:    rankingCache,
		players:  services.NewPlayerService(playerRepo, log),
		ledger:   services.NewLedgerService(ledgerRepo, log),
		outcomes: outcomeRepo,
	}

	a.settlement = services.NewSettlementService(
		sessionRepo, playerRepo, hub, billing.NewLogReporter(log), notifier,
		cfg.DeductionBilling, log,
	)
	a.rankings = services.NewRankingService(outcomeRepo, playerRepo, rankingCache, ranking.Options{
		MinGames:    cfg.RankingMinGames,
		MaxWinFloor: cfg.RankingMaxWinFloor,
		MinStreak:   cfg.RankingMinStreak,
		BoardSize:   cfg.RankingBoardSize,
	}, log)

	return a, nil
}

func (a *app) close() {
	a.hub.Close()
	if a.cache != nil {
		_ = a.cache.Close()
	}
	a.log.Sync()
}

// actor resolves the operator name recorded as CreatedBy. A token always
// wins; a bare --actor name is a development convenience.
func (a *app) actor() (string, error) {
	if flagToken != "" {
		claims, err := security.ValidateActorToken(flagToken, a.cfg.JWTSecret)
		if err != nil {
			return "", fmt.Errorf("invalid operator token: %w", err)
		}
		return claims.OperatorName, nil
	}
	if flagActor != "" {
		if a.cfg.AppEnv == "production" {
			return "", fmt.Errorf("--actor is not accepted in production, use --token")
		}
		return flagActor, nil
	}
	return "", fmt.Errorf("an operator identity is required (--token or --actor)")
}
