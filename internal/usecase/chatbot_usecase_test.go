package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/ai"
	"app/internal/domain/model"
	"app/internal/infra/chatmem"
	"app/internal/nlp"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type TranslatorMock struct{ mock.Mock }

func (m *TranslatorMock) Detect(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *TranslatorMock) Translate(ctx context.Context, text string, source string, target string) (string, error) {
	args := m.Called(ctx, text, source, target)
	return args.String(0), args.Error(1)
}

type CompletionMock struct{ mock.Mock }

func (m *CompletionMock) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

type ConversationStoreMock struct{ mock.Mock }

func (m *ConversationStoreMock) Recent(ctx context.Context, conversationID string, limit int) ([]chatmem.Turn, error) {
	args := m.Called(ctx, conversationID, limit)
	return args.Get(0).([]chatmem.Turn), args.Error(1)
}

func (m *ConversationStoreMock) Append(ctx context.Context, conversationID string, turns ...chatmem.Turn) error {
	args := m.Called(ctx, conversationID, turns)
	return args.Error(0)
}

func TestChatbotUsecase_Handle_EmptyMessage(t *testing.T) {
	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	_, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "   "})
	assertHTTPStatus(t, err, 400)
}

func TestChatbotUsecase_Handle_Greeting(t *testing.T) {
	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "hello"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgGreeting, out.Reply)
	assert.NotEmpty(t, out.ConversationID)
}

// conversation_id指定時はそのまま引き回す
func TestChatbotUsecase_Handle_KeepsConversationID(t *testing.T) {
	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{ConversationID: "conv-1", Message: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "conv-1", out.ConversationID)
}

func TestChatbotUsecase_Handle_ProductCount(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Count", mock.Anything).Return(int64(7), nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), products, new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "how many products do we have?"})
	assert.NoError(t, err)
	assert.Equal(t, "There are 7 products in the inventory.", out.Reply)
}

func TestChatbotUsecase_Handle_SupplierCount(t *testing.T) {
	suppliers := new(SupplierRepoMock)
	suppliers.On("Count", mock.Anything).Return(int64(3), nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), suppliers, nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "how many suppliers do we have"})
	assert.NoError(t, err)
	assert.Equal(t, "There are 3 suppliers on record.", out.Reply)
}

// DBエラーでも返信チャネルは空にならない
func TestChatbotUsecase_Handle_CountDBError(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), products, new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "how many products do we have?"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgApology, out.Reply)
}

func TestChatbotUsecase_Handle_ProductNames(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("ListNames", mock.Anything).Return([]string{"Mouse", "Keyboard"}, nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), products, new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "list product names"})
	assert.NoError(t, err)
	assert.Equal(t, "Product Name: Mouse\n\nProduct Name: Keyboard", out.Reply)
}

// 抽出器がLLMなしでも検索経路は全nil条件で成立する
func TestChatbotUsecase_Handle_ProductSearch(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Search", mock.Anything, repo.ProductSearchFilter{}).Return([]model.Product{
		{ID: 1, Name: "Mouse", Price: decimal.NewFromInt(10), Stock: 4},
	}, nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), products, new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "show me products under $10"})
	assert.NoError(t, err)
	assert.Contains(t, out.Reply, "Name: Mouse")
	assert.Contains(t, out.Reply, "Price: 10.00")
	assert.Contains(t, out.Reply, "Stock: 4")
}

func TestChatbotUsecase_Handle_ProductSearch_NoMatch(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Search", mock.Anything, mock.Anything).Return([]model.Product{}, nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), products, new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "find products cheaper than 1"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgNoData, out.Reply)
}

// LLM未設定の一般質問は謝罪文
func TestChatbotUsecase_Handle_GeneralWithoutLLM(t *testing.T) {
	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "what should I restock next month?"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgApology, out.Reply)
}

func TestChatbotUsecase_Handle_GeneralWithLLM(t *testing.T) {
	llm := new(CompletionMock)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(messages []ai.Message) bool {
		return len(messages) >= 2 &&
			messages[0].Role == "system" &&
			messages[len(messages)-1].Content == "what should I restock next month?"
	})).Return("Consider restocking your top sellers.", nil)

	uc := usecase.NewChatbotUsecase(nil, llm, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "what should I restock next month?"})
	assert.NoError(t, err)
	assert.Equal(t, "Consider restocking your top sellers.", out.Reply)
}

func TestChatbotUsecase_Handle_LLMFailureAbsorbed(t *testing.T) {
	llm := new(CompletionMock)
	llm.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("upstream timeout"))

	uc := usecase.NewChatbotUsecase(nil, llm, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "any advice for the warehouse?"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgApology, out.Reply)
}

// user_idは発話者のターンと一緒に履歴へ残る
func TestChatbotUsecase_Handle_PersistsUserIDWithTurn(t *testing.T) {
	userID := int64(42)

	history := new(ConversationStoreMock)
	history.On("Append", mock.Anything, "conv-1", mock.MatchedBy(func(turns []chatmem.Turn) bool {
		return len(turns) == 2 &&
			turns[0].Role == "user" &&
			turns[0].UserID != nil && *turns[0].UserID == userID &&
			turns[1].Role == "assistant" &&
			turns[1].UserID == nil
	})).Return(nil)

	uc := usecase.NewChatbotUsecase(nil, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), history)

	_, err := uc.Handle(context.Background(), usecase.ChatInput{
		ConversationID: "conv-1",
		UserID:         &userID,
		Message:        "hello",
	})
	assert.NoError(t, err)

	history.AssertExpectations(t)
}

// 非英語は英訳して分類し、返信を逆翻訳する
func TestChatbotUsecase_Handle_TranslationRoundTrip(t *testing.T) {
	translator := new(TranslatorMock)
	translator.On("Detect", mock.Anything, "hola").Return("es", nil)
	translator.On("Translate", mock.Anything, "hola", "es", "en").Return("hello", nil)
	translator.On("Translate", mock.Anything, nlp.MsgGreeting, "en", "es").Return("¡Hola! ¿En qué puedo ayudarte?", nil)

	uc := usecase.NewChatbotUsecase(translator, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "hola"})
	assert.NoError(t, err)
	assert.Equal(t, "¡Hola! ¿En qué puedo ayudarte?", out.Reply)

	translator.AssertExpectations(t)
}

// 言語判定が落ちたら英語扱いで続行
func TestChatbotUsecase_Handle_DetectFailureFallsBackToEnglish(t *testing.T) {
	translator := new(TranslatorMock)
	translator.On("Detect", mock.Anything, "hello").Return("", errors.New("service down"))

	uc := usecase.NewChatbotUsecase(translator, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "hello"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgGreeting, out.Reply)
}

// 逆翻訳が落ちたら英語のまま返す
func TestChatbotUsecase_Handle_BackTranslationFailure(t *testing.T) {
	translator := new(TranslatorMock)
	translator.On("Detect", mock.Anything, "hola").Return("es", nil)
	translator.On("Translate", mock.Anything, "hola", "es", "en").Return("hello", nil)
	translator.On("Translate", mock.Anything, nlp.MsgGreeting, "en", "es").Return("", errors.New("service down"))

	uc := usecase.NewChatbotUsecase(translator, nil, nlp.NewQueryParamExtractor(nil), new(ProductRepoMock), new(SupplierRepoMock), nil)

	out, err := uc.Handle(context.Background(), usecase.ChatInput{Message: "hola"})
	assert.NoError(t, err)
	assert.Equal(t, nlp.MsgGreeting, out.Reply)
}
