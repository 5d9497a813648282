package usecase

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"app/internal/ai"
	"app/internal/infra/chatmem"
	"app/internal/nlp"
	repo "app/internal/repository"
	"app/internal/translate"

	"github.com/google/uuid"
)

const chatSystemPrompt = "You are a helpful assistant for an inventory management system. " +
	"Answer briefly and stick to inventory, sales and supplier topics."

const historyLimit = 10

type ChatbotUsecase struct {
	translator   translate.Translator
	llm          ai.CompletionClient
	extractor    *nlp.QueryParamExtractor
	productRepo  repo.ProductRepository
	supplierRepo repo.SupplierRepository
	history      chatmem.ConversationStore
}

// DI。translatorとllmはnil可（その経路は素通し/定型文に落ちる）
func NewChatbotUsecase(
	translator translate.Translator,
	llm ai.CompletionClient,
	extractor *nlp.QueryParamExtractor,
	productRepo repo.ProductRepository,
	supplierRepo repo.SupplierRepository,
	history chatmem.ConversationStore,
) *ChatbotUsecase {
	if history == nil {
		history = chatmem.NoopConversationStore{}
	}
	return &ChatbotUsecase{
		translator:   translator,
		llm:          llm,
		extractor:    extractor,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		history:      history,
	}
}

type ChatInput struct {
	ConversationID string
	UserID         *int64
	Message        string
}

type ChatOutput struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id"`
}

// 受信→言語判定＋英訳→意図分類→処理→整形→逆翻訳。
// 翻訳/LLMの失敗はここで吸収して、呼び出し元へはエラーを返さない
func (u *ChatbotUsecase) Handle(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ChatOutput{}, NewHTTPError(http.StatusBadRequest, "message required")
	}

	conversationID := strings.TrimSpace(in.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	lang, english := u.toEnglish(ctx, message)

	intent := nlp.Classify(english)
	reply := u.dispatch(ctx, conversationID, intent, english)

	if lang != "en" {
		reply = u.fromEnglish(ctx, reply, lang)
	}

	// 履歴はベストエフォート。失敗しても返信は返す
	if err := u.history.Append(ctx, conversationID,
		chatmem.Turn{Role: "user", Content: english, UserID: in.UserID},
		chatmem.Turn{Role: "assistant", Content: reply},
	); err != nil {
		log.Printf("chatbot: failed to append history: %v", err)
	}

	return ChatOutput{Reply: reply, ConversationID: conversationID}, nil
}

// 判定/翻訳に失敗したら英語扱いで原文のまま進める
func (u *ChatbotUsecase) toEnglish(ctx context.Context, message string) (string, string) {
	if u.translator == nil {
		return "en", message
	}

	lang, err := u.translator.Detect(ctx, message)
	if err != nil || lang == "" {
		return "en", message
	}
	if lang == "en" {
		return "en", message
	}

	english, err := u.translator.Translate(ctx, message, lang, "en")
	if err != nil {
		return "en", message
	}
	return lang, english
}

// 逆翻訳に失敗したら英語のまま返す
func (u *ChatbotUsecase) fromEnglish(ctx context.Context, reply string, lang string) string {
	if u.translator == nil {
		return reply
	}
	translated, err := u.translator.Translate(ctx, reply, "en", lang)
	if err != nil {
		return reply
	}
	return translated
}

func (u *ChatbotUsecase) dispatch(ctx context.Context, conversationID string, intent nlp.Intent, english string) string {
	switch intent {
	case nlp.IntentGreeting:
		return nlp.MsgGreeting
	case nlp.IntentProductCount:
		return u.productCount(ctx)
	case nlp.IntentSupplierCount:
		return u.supplierCount(ctx)
	case nlp.IntentProductNamesOnly:
		return u.productNames(ctx)
	case nlp.IntentProductSearch:
		return u.productSearch(ctx, english)
	default:
		return u.generalChat(ctx, conversationID, english)
	}
}

// DBエラーでも返信チャネルは空にしない
func (u *ChatbotUsecase) productCount(ctx context.Context) string {
	n, err := u.productRepo.Count(ctx)
	if err != nil {
		return nlp.MsgApology
	}
	return fmt.Sprintf("There are %d products in the inventory.", n)
}

func (u *ChatbotUsecase) supplierCount(ctx context.Context) string {
	n, err := u.supplierRepo.Count(ctx)
	if err != nil {
		return nlp.MsgApology
	}
	return fmt.Sprintf("There are %d suppliers on record.", n)
}

func (u *ChatbotUsecase) productNames(ctx context.Context) string {
	names, err := u.productRepo.ListNames(ctx)
	if err != nil {
		return nlp.MsgApology
	}

	rows := make([]nlp.Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, nlp.Row{{Key: "name", Value: name}})
	}
	return nlp.FormatRows(rows, true)
}

func (u *ChatbotUsecase) productSearch(ctx context.Context, english string) string {
	// 抽出はどう失敗しても全nil条件になる
	filter := u.extractor.Extract(ctx, english)

	products, err := u.productRepo.Search(ctx, repo.ProductSearchFilter{
		Name:     filter.ProductName,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
		Category: filter.ProductCategory,
	})
	if err != nil {
		return nlp.MsgApology
	}

	rows := make([]nlp.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, nlp.Row{
			{Key: "name", Value: p.Name},
			{Key: "price", Value: p.Price.StringFixed(2)},
			{Key: "stock", Value: fmt.Sprintf("%d", p.Stock)},
		})
	}
	return nlp.FormatRows(rows, false)
}

func (u *ChatbotUsecase) generalChat(ctx context.Context, conversationID string, english string) string {
	if u.llm == nil {
		return nlp.MsgApology
	}

	messages := []ai.Message{{Role: "system", Content: chatSystemPrompt}}

	turns, err := u.history.Recent(ctx, conversationID, historyLimit)
	if err != nil {
		// 履歴が読めなくても今回の質問だけで続ける
		turns = nil
	}
	for _, t := range turns {
		messages = append(messages, ai.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: english})

	reply, err := u.llm.Complete(ctx, messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		return nlp.MsgApology
	}
	return reply
}
