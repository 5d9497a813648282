package main

import (
	"context"
	"log"
	"time"

	"app/internal/ai"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/chatmem"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/nlp"
	"app/internal/server"
	"app/internal/translate"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くても起動する
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Supplier{},
		&model.SupplierContact{},
		&model.Sale{},
		&model.SalesItem{},
		&model.PurchaseOrder{},
		&model.InventoryAlert{},
		&model.Return{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	contactRepo := infraRepo.NewSupplierContactGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	itemRepo := infraRepo.NewSalesItemGormRepository(gormDB)
	poRepo := infraRepo.NewPurchaseOrderGormRepository(gormDB)
	alertRepo := infraRepo.NewInventoryAlertGormRepository(gormDB)
	returnRepo := infraRepo.NewReturnGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//チャットの外部サービス
	var translator translate.Translator
	if cfg.TranslateURL != "" {
		translator = translate.NewClient(cfg.TranslateURL, cfg.TranslateAPIKey, cfg.TranslateTimeout)
	}
	var llm ai.CompletionClient
	if cfg.LLMBaseURL != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}

	//会話履歴（redis未設定なら履歴なし）
	var history chatmem.ConversationStore = chatmem.NoopConversationStore{}
	if cfg.RedisAddr != "" {
		store := chatmem.NewRedisConversationStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ChatHistoryTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := store.Ping(ctx); err != nil {
			log.Printf("redis unavailable, chat history disabled: %v", err)
		} else {
			history = store
		}
		cancel()
	}

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}
	extractor := nlp.NewQueryParamExtractor(llm)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	supplierUC := usecase.NewSupplierUsecase(txManager, supplierRepo, contactRepo)
	saleUC := usecase.NewSaleUsecase(txManager, saleRepo, itemRepo)
	poUC := usecase.NewPurchaseOrderUsecase(txManager, poRepo, productRepo, supplierRepo)
	returnUC := usecase.NewReturnUsecase(txManager, returnRepo)
	reportUC := usecase.NewReportUsecase(productRepo, supplierRepo, saleRepo, alertRepo)
	chatbotUC := usecase.NewChatbotUsecase(translator, llm, extractor, productRepo, supplierRepo, history)

	//Handler生成とServer起動
	h := server.Handlers{
		Auth:          handler.NewAuthHandler(registerUC, loginUC),
		User:          handler.NewUserHandler(userRepo),
		Product:       handler.NewProductHandler(productUC),
		Supplier:      handler.NewSupplierHandler(supplierUC),
		Sale:          handler.NewSaleHandler(saleUC),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poUC),
		Return:        handler.NewReturnHandler(returnUC),
		Report:        handler.NewReportHandler(reportUC),
		Chatbot:       handler.NewChatbotHandler(chatbotUC),
	}

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, h); err != nil {
		log.Fatalf("server: %v", err)
	}
}
