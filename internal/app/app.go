package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findthisfit/go-backend/internal/analysis"
	config "github.com/findthisfit/go-backend/internal/cfg"
	v1Http "github.com/findthisfit/go-backend/internal/delivery/v1/http"
	"github.com/findthisfit/go-backend/internal/infrastructure/embedding"
	"github.com/findthisfit/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/findthisfit/go-backend/internal/infrastructure/minio"
	"github.com/findthisfit/go-backend/internal/infrastructure/vision"
	s3Repo "github.com/findthisfit/go-backend/internal/repository/minio"
	"github.com/findthisfit/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/findthisfit/go-backend/internal/repository/pgdb/converter"
	qdrantRepo "github.com/findthisfit/go-backend/internal/repository/qdrant"
	"github.com/findthisfit/go-backend/internal/repository/redis"
	redisConv "github.com/findthisfit/go-backend/internal/repository/redis/converter"
	"github.com/findthisfit/go-backend/internal/usecase"
	"github.com/findthisfit/go-backend/pkg/clients"
	"github.com/findthisfit/go-backend/pkg/closer"
	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/findthisfit/go-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	registryTimeout = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// embeddingBackend объединяет векторизацию запросов и построение
// векторов текстовых меток для реестра.
type embeddingBackend interface {
	usecase.EmbeddingProvider
	analysis.TextEmbedder
}

type App struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	return &App{cfg: cfg, logger: logger}, nil
}

func (a *App) Run() error {
	cfg := a.cfg
	log := a.logger

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	itemConv := pgdbConv.NewItemConverter()
	outboxConv := pgdbConv.NewOutboxEventConverter()
	infoConv := redisConv.NewItemInfoConverter()

	itemRepo := pgdb.NewItemRepo(db.Pool, itemConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(rootCtx, initTimeout)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		log.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		log.Errorf(err, "failed to initialize qdrant")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	qdrantCtx, qdrantCancel := context.WithTimeout(rootCtx, initTimeout)
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		log.Errorf(err, "failed to initialize qdrant collection")
		return err
	}
	qdrantCancel()

	catalogRepo := qdrantRepo.NewCatalogRepo(qdrantClient.Client, cfg.Qdrant)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(rootCtx, initTimeout)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		log.Errorf(err, "failed to connect to redis")
		return err
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	embedder := a.newEmbeddingBackend()

	// Векторы текстовых меток считаются один раз при старте
	regCtx, regCancel := context.WithTimeout(rootCtx, registryTimeout)
	registry, err := analysis.NewLabelRegistry(regCtx, embedder)
	regCancel()
	if err != nil {
		log.Errorf(err, "failed to build label registry")
		return err
	}

	classifier := analysis.NewClassifier(registry)
	brandResolver := analysis.NewBrandResolver(registry)
	aggregator := analysis.NewAggregator()
	visionSvc := vision.NewVisionService(cfg.OpenAI)

	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, rootCtx)
	cl.Add(func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	if err := producer.EnsureTopic(initTimeout); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return err
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	outboxWorker.Start(rootCtx)
	cl.Add(func(ctx context.Context) error {
		rootCancel()
		outboxWorker.Stop()
		return nil
	})

	searchUC := usecase.NewSearchUC(
		embedder,
		catalogRepo,
		classifier,
		brandResolver,
		aggregator,
		visionSvc,
		log,
	)

	itemUC := usecase.NewItemUC(
		itemRepo,
		db.Pool,
		embedder,
		imagesInfra,
		catalogRepo,
		outboxRepo,
		cacheRepo,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(searchUC, itemUC, v1Http.NewSystemHandler(db.Pool, redisClient, log))

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		log.Warnf("shutdown finished with errors: %v", err)
	} else {
		log.Infof("Application shutdown complete")
	}

	return appErr
}

// newEmbeddingBackend выбирает провайдера эмбеддингов по конфигурации.
func (a *App) newEmbeddingBackend() embeddingBackend {
	if a.cfg.Embedding.Provider == config.EmbeddingProviderOpenAI {
		return embedding.NewOpenAIEmbedder(a.cfg.OpenAI)
	}

	return embedding.NewCLIPService(a.cfg.Embedding, a.logger)
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
