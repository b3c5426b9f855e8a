package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	LLM      LLMConfig      `mapstructure:"llm"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Storage  StorageConfig  `mapstructure:"storage"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JobStore JobStoreConfig `mapstructure:"job_store"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// LLMConfig 情感/情绪分类模型配置
type LLMConfig struct {
	URL       string `mapstructure:"url"`
	Model     string `mapstructure:"model"`
	ApiKey    string `mapstructure:"api_key"`
	BatchSize int    `mapstructure:"batch_size"`
}

// YouTubeConfig YouTube Data API配置
type YouTubeConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

// StorageConfig 导出文件存储配置
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// MinIOConfig MinIO配置，Enable 为 false 时导出文件只落本地磁盘
type MinIOConfig struct {
	Enable    bool   `mapstructure:"enable"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type KafkaConfig struct {
	Enable     bool       `mapstructure:"enable"`
	Brokers    []string   `mapstructure:"brokers"`
	Sasl       SaslConfig `mapstructure:"sasl"`
	AlertTopic string     `mapstructure:"alert_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// JobStoreConfig 任务注册表配置，backend 可选 memory 或 redis
type JobStoreConfig struct {
	Backend string `mapstructure:"backend"`
	TTL     int    `mapstructure:"ttl"`
}
