package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/conference-companion/internal/config"
	"github.com/iliyamo/conference-companion/internal/database"
	"github.com/iliyamo/conference-companion/internal/handler"
	appmw "github.com/iliyamo/conference-companion/internal/middleware"
	"github.com/iliyamo/conference-companion/internal/queue"
	"github.com/iliyamo/conference-companion/internal/realtime"
	"github.com/iliyamo/conference-companion/internal/repository"
	"github.com/iliyamo/conference-companion/internal/router"
	"github.com/iliyamo/conference-companion/internal/status"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProd() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	halls := repository.NewHallRepo(db)
	sessions := repository.NewSessionRepo(db)
	announcements := repository.NewAnnouncementRepo(db)
	events := repository.NewEventRepo(db)
	menus := repository.NewMenuRepo(db)
	complaints := repository.NewComplaintRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	audits := repository.NewAuditRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	// Real-time fan-out: relay to an external socket server when one is
	// configured, otherwise host the websocket hub in-process.
	var broadcast realtime.Broadcaster
	if cfg.SocketServerURL != "" {
		broadcast = realtime.NewRelay(cfg.SocketServerURL)
		log.Info().Str("url", cfg.SocketServerURL).Msg("relaying realtime events to socket server")
	} else {
		hub := realtime.NewHub()
		go hub.Run()
		e.GET("/ws", hub.ServeWS)
		broadcast = hub
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	sweeper := status.NewSweeper(sessions, broadcast, clock)
	go sweeper.Run(ctx)

	if cfg.AMQPURL != "" {
		go queue.StartAuditConsumer(cfg.AMQPURL, audits)
	}

	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		e.Use(appmw.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Warn().Msg("redis unreachable, rate limiting and response cache disabled")
	}

	fx := &handler.Effects{AMQPURL: cfg.AMQPURL, Broadcast: broadcast}
	resolver := status.NewResolver(halls, sessions, clock)

	hallH := handler.NewHallHandler(halls, resolver, fx)
	scheduleH := handler.NewScheduleHandler(sessions, halls, sweeper, fx)
	announcementH := handler.NewAnnouncementHandler(announcements, fx)
	eventH := handler.NewEventHandler(events, fx)
	menuH := handler.NewMenuHandler(menus, fx)
	complaintH := handler.NewComplaintHandler(complaints, users, fx)
	exportH := handler.NewExportHandler(sessions, complaints)
	auditH := handler.NewAuditHandler(audits)
	userH := handler.NewUserHandler(users, fx)
	authH := handler.NewAuthHandler(cfg, users, tokens)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, hallH, scheduleH, announcementH, eventH, menuH, complaintH)
	router.RegisterStaff(e, announcementH, complaintH, cfg.JWTSecret)
	router.RegisterAdmin(e, hallH, scheduleH, eventH, menuH, complaintH, exportH, auditH, userH, cfg.JWTSecret)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
