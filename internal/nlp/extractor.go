package nlp

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"app/internal/ai"

	"github.com/shopspring/decimal"
)

// 抽出済みの検索条件。埋まらなかった項目はnil
type ProductFilter struct {
	ProductName     *string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	ProductCategory *string
}

func (f ProductFilter) IsEmpty() bool {
	return f.ProductName == nil && f.MinPrice == nil && f.MaxPrice == nil && f.ProductCategory == nil
}

const extractorSystemPrompt = `You extract product search filters from a user message about an inventory.
Respond with JSON only, no prose, exactly this shape:
{"product_name": string or null, "min_price": number or null, "max_price": number or null, "product_category": string or null}
Use null for anything the message does not mention.`

// モデルの出力からJSONオブジェクトだけを拾う
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

type QueryParamExtractor struct {
	llm ai.CompletionClient
}

// DI
func NewQueryParamExtractor(llm ai.CompletionClient) *QueryParamExtractor {
	return &QueryParamExtractor{llm: llm}
}

// LLM呼び出し・JSONパース・型検証のどこで失敗しても全nilで返す。
// モデル出力は信用しない
func (e *QueryParamExtractor) Extract(ctx context.Context, message string) ProductFilter {
	if e.llm == nil {
		return ProductFilter{}
	}

	raw, err := e.llm.Complete(ctx, []ai.Message{
		{Role: "system", Content: extractorSystemPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return ProductFilter{}
	}

	return parseFilter(raw)
}

func parseFilter(raw string) ProductFilter {
	payload := jsonObjectRe.FindString(raw)
	if payload == "" {
		return ProductFilter{}
	}

	var loose struct {
		ProductName     interface{} `json:"product_name"`
		MinPrice        interface{} `json:"min_price"`
		MaxPrice        interface{} `json:"max_price"`
		ProductCategory interface{} `json:"product_category"`
	}
	if err := json.Unmarshal([]byte(payload), &loose); err != nil {
		return ProductFilter{}
	}

	f := ProductFilter{
		ProductName:     cleanString(loose.ProductName),
		MinPrice:        cleanPrice(loose.MinPrice),
		MaxPrice:        cleanPrice(loose.MaxPrice),
		ProductCategory: cleanString(loose.ProductCategory),
	}

	// min > max は矛盾なので両方捨てる
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		f.MinPrice = nil
		f.MaxPrice = nil
	}

	return f
}

// 文字列以外・空文字はnil
func cleanString(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// 数値/数値文字列を受け、負値や変換不能はnil
func cleanPrice(v interface{}) *decimal.Decimal {
	var d decimal.Decimal

	switch t := v.(type) {
	case float64:
		d = decimal.NewFromFloat(t)
	case string:
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "$"))
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			return nil
		}
		d = parsed
	default:
		return nil
	}

	if d.IsNegative() {
		return nil
	}
	return &d
}
