package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/checkout-sre/backend/internal/client"
	"github.com/checkout-sre/backend/internal/config"
	"github.com/checkout-sre/backend/internal/db"
	"github.com/checkout-sre/backend/internal/handler"
	"github.com/checkout-sre/backend/internal/service"
)

func main() {
	// .env 파일이 있으면 로드 (없어도 무시)
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// PostgreSQL 연결 및 스키마 생성
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect postgres: %v", err)
	}
	database := &db.Postgres{Pool: pool}
	if err := database.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// 외부 클라이언트 생성
	slackClient := client.NewSlackClient(cfg.Slack)
	busClient := client.NewEventBusClient(cfg.EventBus)
	workflowClient := client.NewWorkflowClient(cfg.Workflow)

	// 서비스 레이어 조립
	dispatcher := service.NewDispatcher(database, busClient, slackClient, workflowClient)
	ingestService := service.NewIngestService(dispatcher)

	// 컨트롤 플레인 클라이언트는 조치마다 새로 생성 (단기 자격 증명)
	connector := func(ctx context.Context, clusterName, region string) (service.ControlPlane, error) {
		return client.NewControlPlaneClient(ctx, clusterName, region)
	}
	executor := service.NewRemediationExecutor(connector, database, cfg.Cluster)

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to init auth service: %v", err)
	}

	// 핸들러 생성
	ingestHandler := handler.NewIngestHandler(ingestService)
	remediateHandler := handler.NewRemediateHandler(executor)
	incidentHandler := handler.NewIncidentHandler(database)
	authHandler := handler.NewAuthHandler(authService)

	// 라우팅
	router := gin.Default()

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)

	// 수집 웹훅은 Alertmanager receiver처럼 열어둠
	router.POST("/webhook/alerts", ingestHandler.Webhook)

	// 조치 콜백은 워크플로우 엔진만 호출하므로 서비스 토큰 필수
	router.POST("/remediate", handler.AuthMiddleware(authService), remediateHandler.Remediate)

	api := router.Group("/api/v1")
	api.POST("/auth/token", authHandler.Token)

	protected := api.Group("", handler.AuthMiddleware(authService))
	protected.GET("/incidents", incidentHandler.List)
	protected.GET("/incidents/:id", incidentHandler.Detail)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
