package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/conference-companion/internal/realtime"
)

// The socket server is the standalone fan-out tier: the API relays entity
// change events here over HTTP and connected clients receive them over
// websockets.  It holds no state beyond the open connections.
func main() {
	_ = godotenv.Load()

	port := os.Getenv("SOCKET_PORT")
	if port == "" {
		port = "3001"
	}

	hub := realtime.NewHub()
	go hub.Run()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{origin}}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":           "ok",
			"connectedClients": hub.ClientCount(),
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
		})
	})

	// The API posts envelopes here; the ack reports how many clients the
	// event reached.
	e.POST("/api/emit", func(c echo.Context) error {
		var env realtime.Envelope
		if err := c.Bind(&env); err != nil || env.Event == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is required"})
		}
		hub.Emit(env.Event, env.Data)
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "clients": hub.ClientCount()})
	})

	e.GET("/api/socket", hub.ServeWS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", port).Msg("socket server listening")
	if err := e.Start(":" + port); err != nil {
		log.Info().Err(err).Msg("socket server stopped")
	}
}
