package http

import (
	"context"
	"net/http"
	"time"

	"github.com/findthisfit/go-backend/pkg/clients"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const healthCheckTimeout = 2 * time.Second

// SystemHandler обслуживает health-check и метрики пулов соединений.
type SystemHandler struct {
	pool   *pgxpool.Pool
	redis  *clients.RedisClient
	logger logger.Logger
}

func NewSystemHandler(pool *pgxpool.Pool, redis *clients.RedisClient, logger logger.Logger) *SystemHandler {
	return &SystemHandler{pool: pool, redis: redis, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type metricsResponse struct {
	PgTotalConns    int32 `json:"pg_total_conns"`
	PgIdleConns     int32 `json:"pg_idle_conns"`
	PgAcquiredConns int32 `json:"pg_acquired_conns"`
	PgMaxConns      int32 `json:"pg_max_conns"`
}

// health
//
//	@Summary	Состояние сервиса и его зависимостей
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Router		/health [get]
func (h *SystemHandler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	res := healthResponse{Status: "ok", Postgres: "ok", Redis: "ok"}
	status := http.StatusOK

	if err := h.pool.Ping(ctx); err != nil {
		h.logger.Warnf("health: postgres ping failed: %v", err)
		res.Postgres = "unavailable"
		res.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if err := h.redis.Client.Ping(ctx).Err(); err != nil {
		h.logger.Warnf("health: redis ping failed: %v", err)
		res.Redis = "unavailable"
		res.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	WriteSuccess(w, status, res)
}

// metrics
//
//	@Summary	Метрики пула соединений PostgreSQL
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	metricsResponse
//	@Router		/metrics [get]
func (h *SystemHandler) metrics(w http.ResponseWriter, _ *http.Request) {
	stat := h.pool.Stat()
	WriteSuccess(w, http.StatusOK, metricsResponse{
		PgTotalConns:    stat.TotalConns(),
		PgIdleConns:     stat.IdleConns(),
		PgAcquiredConns: stat.AcquiredConns(),
		PgMaxConns:      stat.MaxConns(),
	})
}
