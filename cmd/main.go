package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"godonaciones/config"
	"godonaciones/internal/pkg/cache"
	"godonaciones/internal/pkg/database"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/password"
	"godonaciones/internal/pkg/token"

	// Camadas por entidade para Injeção de Dependências
	"godonaciones/internal/api/contact"
	"godonaciones/internal/api/donation"
	"godonaciones/internal/api/event"
	"godonaciones/internal/api/router"
	"godonaciones/internal/api/user"
	"godonaciones/internal/repository/contactrepo"
	"godonaciones/internal/repository/donationrepo"
	"godonaciones/internal/repository/eventrepo"
	"godonaciones/internal/repository/userrepo"
	"godonaciones/internal/service/contactservice"
	"godonaciones/internal/service/donationservice"
	"godonaciones/internal/service/eventservice"
	"godonaciones/internal/service/userservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Se o arquivo .env não existir, seguimos: as variáveis essenciais podem
	// estar no ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	// LoadConfig encerra o processo se DATABASE_URL ou JWT_SECRET_KEY faltarem.
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Cliente Redis inicializado.", nil)

	// C. Serviços de segurança: tokens e hashing de senha.
	// Segredo e custo são lidos uma única vez; ficam imutáveis até o shutdown.
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	hasher := password.NewHasher(cfg.BcryptCost)
	log.Debug("Serviços de Token e Password inicializados.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, hasher, log)
	userHandler := user.NewHandler(userSvc, log)

	contactRepo := contactrepo.NewContactRepository(db, cacheClient, cfg.DBTimeout, log)
	contactSvc := contactservice.NewService(contactRepo, log)
	contactHandler := contact.NewHandler(contactSvc, log)

	donationRepo := donationrepo.NewDonationRepository(db, cfg.DBTimeout, log)
	donationSvc := donationservice.NewService(donationRepo, log)
	donationHandler := donation.NewHandler(donationSvc, log)

	eventRepo := eventrepo.NewEventRepository(db, cfg.DBTimeout, log)
	eventSvc := eventservice.NewService(eventRepo, log)
	eventHandler := event.NewHandler(eventSvc, log)

	log.Debug("Camadas de repositório, serviço e handler inicializadas.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(userHandler, contactHandler, donationHandler, eventHandler, tokenSvc, cacheClient, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
