package main

import (
	"os"
	"time"

	"github.com/zwelix28/canna-bomb-sub001/config"
	"github.com/zwelix28/canna-bomb-sub001/internal/cache"
	"github.com/zwelix28/canna-bomb-sub001/internal/hashing"
	"github.com/zwelix28/canna-bomb-sub001/internal/notify"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"
	"github.com/zwelix28/canna-bomb-sub001/internal/token"
	"github.com/zwelix28/canna-bomb-sub001/internal/transport/httpapi"
	"github.com/zwelix28/canna-bomb-sub001/pkg/database"
	"github.com/zwelix28/canna-bomb-sub001/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	tokens := token.NewHSProvider(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(0)

	mailer, err := notify.NewSMTPMailer(cfg.SMTP, log)
	if err != nil {
		log.Fatal("failed to build mailer", zap.Error(err))
	}
	pushSender := notify.NewWebPushSender(cfg.Push)
	notifier := notify.NewOrderNotifier(repos.PushSubs, pushSender, mailer, cfg.SMTP.AdminTo, log)

	if !mailer.Enabled() {
		log.Warn("SMTP not configured, order emails disabled")
	}
	if !pushSender.Enabled() {
		log.Warn("VAPID keys not configured, push notifications disabled")
	}

	var statsCache service.DashboardCache
	if cfg.Redis.Configured() {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			statsCache = rdb
		}
	}

	accessTTL := time.Duration(cfg.JWT.AccessTTLHours) * time.Hour

	r := httpapi.Router(httpapi.Services{
		Auth:    service.NewAuthService(repos, tokens, hasher, accessTTL),
		Catalog: service.NewCatalogService(repos),
		Cart:    service.NewCartService(repos),
		Orders:  service.NewOrderService(repos, notifier),
		Stats:   service.NewStatsService(repos, statsCache),
		Tokens:  tokens,
		Subs:    repos.PushSubs,
		Push:    cfg.Push,
	}, log)

	log.Info("starting HTTP server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run http server", zap.Error(err))
	}
}
