// 프로세스 기동 시 1회 로드되는 불변 설정
// 비즈니스 로직에서는 os.Getenv를 직접 읽지 않고 이 구조체만 전달받아 사용

package config

import "os"

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Slack    SlackConfig
	EventBus EventBusConfig
	Workflow WorkflowConfig
	Cluster  ClusterConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Addr string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type SlackConfig struct {
	BotToken  string
	ChannelID string
}

type EventBusConfig struct {
	URL string
}

type WorkflowConfig struct {
	BaseURL      string
	StateMachine string
}

// ClusterConfig - 조치 대상 클러스터/디플로이먼트 좌표
// 조치 호출마다 설정에서 읽어 사용하며, 이 시스템이 값을 변경하지 않음
type ClusterConfig struct {
	Name          string
	Region        string
	Namespace     string
	Deployment    string
	DegradedParam string
}

type AuthConfig struct {
	JWTSecret    string
	AccessTTL    string
	ClientID     string
	ClientSecret string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr: getenv("SERVER_ADDR", ":8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Slack: SlackConfig{
			BotToken:  os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		EventBus: EventBusConfig{
			URL: os.Getenv("EVENT_BUS_URL"),
		},
		Workflow: WorkflowConfig{
			BaseURL:      os.Getenv("WORKFLOW_URL"),
			StateMachine: getenv("RUNBOOK_WORKFLOW", "checkout-runbook"),
		},
		Cluster: ClusterConfig{
			Name:          os.Getenv("CLUSTER_NAME"),
			Region:        getenv("REGION", getenv("AWS_REGION", "us-east-1")),
			Namespace:     getenv("TARGET_NAMESPACE", "apps"),
			Deployment:    getenv("TARGET_DEPLOYMENT", "checkout"),
			DegradedParam: getenv("DEGRADED_PARAM", "/checkout/degraded_mode"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			AccessTTL:    getenv("JWT_ACCESS_TTL", "15m"),
			ClientID:     os.Getenv("AUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("AUTH_CLIENT_SECRET"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
