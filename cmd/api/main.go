package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	"blog-fusion/billing"
	"blog-fusion/cmd/api/event/dispatcher"
	"blog-fusion/cmd/api/router"
	"blog-fusion/cmd/api/services"
	"blog-fusion/internal/logger"
	"blog-fusion/config"
	"blog-fusion/db"
	_ "blog-fusion/docs" // swag will generate this package
	"blog-fusion/eventbus"
	"blog-fusion/generator"
	"blog-fusion/repositories"
	"blog-fusion/sources"
)

// @title           Blog Fusion API
// @version         1.0
// @description     API for publishing, reading and engaging with blogs
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")
	cfg := config.GetConfig()

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal(err)
	}

	blogRepo := repositories.NewBlogRepository(db.Database())
	userRepo := repositories.NewUserRepository(db.Database())

	watcher := repositories.NewBlogWatcher(db.Database())
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.WarnWithFields("blog change stream stopped", logger.Fields{
				"error": err.Error(),
			})
		}
	}()

	// Kafka 는 브로커가 설정된 경우에만 연결한다.
	var eventDispatcher *dispatcher.EventDispatcher
	if brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); brokers != "" {
		if err := eventbus.EnsureTopics(brokers, eventbus.TopicBlogEvents, 3); err != nil {
			log.Fatal(err)
		}
		bus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			log.Fatal(err)
		}
		defer bus.Close()
		eventDispatcher = dispatcher.NewEventDispatcher(bus)
	}

	authSvc, err := services.NewAuthServiceFromEnv(userRepo)
	if err != nil {
		log.Fatal(err)
	}

	blogSvc := services.NewBlogService(blogRepo, userRepo, watcher, eventDispatcher, cfg.PublishQuota)
	saveSvc := services.NewSaveService(userRepo, blogRepo)

	quota := generator.NewQuotaLimiterFromConfig(cfg)

	// Gemini 키가 없으면 분석/생성 라우트는 비활성화된다.
	var analyzerSvc *services.AnalyzerService
	var generatorSvc *services.GeneratorService
	if os.Getenv("GEMINI_API_KEY") != "" {
		gen, err := generator.NewGenerator(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		gatherer := sources.NewGatherer(cfg.Analyzer.MaxSources)
		analyzerSvc = services.NewAnalyzerService(gen, quota, gatherer, cfg.Analyzer)
		generatorSvc = services.NewGeneratorService(gen, quota)
	}

	// Stripe 키가 없으면 결제 라우트는 비활성화된다.
	var billingSvc *services.BillingService
	if os.Getenv("STRIPE_SECRET_KEY") != "" {
		checkout, err := billing.NewCheckout()
		if err != nil {
			log.Fatal(err)
		}
		billingSvc = services.NewBillingService(checkout, userRepo, eventDispatcher)
	}

	r := router.New(router.Deps{
		Auth:      authSvc,
		Blogs:     blogSvc,
		Saves:     saveSvc,
		Analyzer:  analyzerSvc,
		Generator: generatorSvc,
		Billing:   billingSvc,
		Watcher:   watcher,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":8080",
		Handler: corsHandler.Handler(r),
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000"}
}
