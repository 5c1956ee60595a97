package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/findthisfit/go-backend/pkg/e"
	"github.com/findthisfit/go-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	// EmbeddingProviderCLIP — мультимодальный CLIP-сервис (изображения и текст).
	EmbeddingProviderCLIP = "clip"
	// EmbeddingProviderOpenAI — текстовые эмбеддинги OpenAI.
	EmbeddingProviderOpenAI = "openai"
)

type Config struct {
	Minio     *MinIOCfg
	Http      *HTTPConfig
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Kafka     *KafkaCfg
	Embedding *EmbeddingCfg
	OpenAI    *OpenAICfg
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	Endpoint     string // Адрес конечной точки Minio
	BucketName   string // Название конкретного бакета в Minio
	RootUser     string // Имя пользователя для доступа к Minio
	RootPassword string // Пароль для доступа к Minio
	UseSSL       bool
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QdrantCfg struct {
	Port           int
	Host           string
	ApiKey         string
	CollectionName string // имя коллекции в Qdrant
	UseTLS         bool
	VectorSize     uint64
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ItemTTL     time.Duration
}

type EmbeddingCfg struct {
	Provider      string // clip или openai
	ClipURL       string
	MaxConcurrent int
	MaxRetries    int
	Timeout       time.Duration
}

type OpenAICfg struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	VisionModel    string
	Dimensions     int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	embedding, err := loadEmbeddingCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Minio:     minio,
		Http:      http,
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Kafka:     kafka,
		Embedding: embedding,
		OpenAI:    loadOpenAICfg(),
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	networkMode := getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode)

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       networkMode,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		Endpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:   getEnv("BUCKET_NAME"),
		RootUser:     getEnv("MINIO_ROOT_USER"),
		RootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		UseSSL:       useSSL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadQdrantCfg(logger logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultVectorSize     = "768"
	)

	strPort := getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	port, err := strconv.Atoi(strPort)
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	strVectorSize := getEnvOrDefault("VECTOR_SIZE", defaultVectorSize)
	vectorSize, err := strconv.ParseUint(strVectorSize, 10, 64)
	if err != nil {
		logger.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:           getEnv("QDRANT_HOST"),
		Port:           port,
		ApiKey:         getEnv("QDRANT__SERVICE__API_KEY"),
		CollectionName: getEnv("COLLECTION_NAME"),
		UseTLS:         useTLS,
		VectorSize:     vectorSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultItemTTL      = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	itemTTL, err := parseDurationEnv("ITEM_TTL", defaultItemTTL)
	if err != nil {
		log.Errorf(err, "invalid ITEM_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ItemTTL:     itemTTL,
	}, nil
}

func loadEmbeddingCfg(log logger.Logger) (*EmbeddingCfg, error) {
	const (
		defaultProvider      = EmbeddingProviderCLIP
		defaultClipURL       = "http://clip-service:8000"
		defaultMaxConcurrent = 8
		defaultMaxRetries    = 3
		defaultTimeout       = 30 * time.Second
	)

	provider := getEnvOrDefault("EMBEDDING_PROVIDER", defaultProvider)
	if provider != EmbeddingProviderCLIP && provider != EmbeddingProviderOpenAI {
		err := fmt.Errorf("unknown EMBEDDING_PROVIDER %q", provider)
		log.Errorf(err, "invalid EMBEDDING_PROVIDER")
		return nil, err
	}

	maxConcurrent, err := parseIntEnv("EMBEDDING_MAX_CONCURRENT", defaultMaxConcurrent)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_MAX_CONCURRENT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("EMBEDDING_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_MAX_RETRIES")
		return nil, err
	}

	timeout, err := parseDurationEnv("EMBEDDING_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_TIMEOUT")
		return nil, err
	}

	return &EmbeddingCfg{
		Provider:      provider,
		ClipURL:       getEnvOrDefault("CLIP_SERVICE_URL", defaultClipURL),
		MaxConcurrent: maxConcurrent,
		MaxRetries:    maxRetries,
		Timeout:       timeout,
	}, nil
}

func loadOpenAICfg() *OpenAICfg {
	const (
		defaultEmbeddingModel = "text-embedding-3-small"
		defaultVisionModel    = "gpt-4o"
		defaultDimensions     = "768"
	)

	dimensions, _ := strconv.Atoi(getEnvOrDefault("OPENAI_EMBEDDING_DIMENSIONS", defaultDimensions))

	return &OpenAICfg{
		APIKey:         getEnv("OPENAI_API_KEY"),
		BaseURL:        getEnv("OPENAI_BASE_URL"),
		EmbeddingModel: getEnvOrDefault("OPENAI_EMBEDDING_MODEL", defaultEmbeddingModel),
		VisionModel:    getEnvOrDefault("OPENAI_VISION_MODEL", defaultVisionModel),
		Dimensions:     dimensions,
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
