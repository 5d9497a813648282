package nlp

import "strings"

// チャット1通の振り分け先
type Intent string

const (
	IntentGreeting         Intent = "greeting"
	IntentProductCount     Intent = "product_count"
	IntentProductNamesOnly Intent = "product_names_only"
	IntentSupplierCount    Intent = "supplier_count"
	IntentProductSearch    Intent = "product_search"
	IntentGeneral          Intent = "general"
)

var greetingWords = map[string]struct{}{
	"hello":   {},
	"hi":      {},
	"hey":     {},
	"hiya":    {},
	"morning": {},
	"evening": {},
}

var greetingPhrases = []string{
	"good morning",
	"good afternoon",
	"good evening",
	"how are you",
}

var productCountPhrases = []string{
	"how many products",
	"number of products",
	"product count",
	"count of products",
	"total products",
}

var productNamesPhrases = []string{
	"product names",
	"names of products",
	"names of the products",
	"name of each product",
	"list product names",
	"only the names",
	"just the names",
}

var supplierCountPhrases = []string{
	"how many suppliers",
	"number of suppliers",
	"supplier count",
	"count of suppliers",
	"total suppliers",
}

var searchPhrases = []string{
	"show me products",
	"show products",
	"find products",
	"search products",
	"search for products",
	"looking for products",
	"products under",
	"products over",
	"products between",
	"cheaper than",
}

// 先勝ちの順序が仕様。件数/名前系の狭い判定を、
// price/categoryトークンの緩い検索判定より先に通す
func Classify(message string) Intent {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return IntentGeneral
	}

	if isGreeting(text) {
		return IntentGreeting
	}

	if containsAny(text, productCountPhrases) {
		return IntentProductCount
	}
	if containsAny(text, productNamesPhrases) {
		return IntentProductNamesOnly
	}
	if containsAny(text, supplierCountPhrases) {
		return IntentSupplierCount
	}

	if containsAny(text, searchPhrases) || hasToken(text, "price") || hasToken(text, "category") {
		return IntentProductSearch
	}

	return IntentGeneral
}

func isGreeting(text string) bool {
	if containsAny(text, greetingPhrases) {
		return true
	}
	// "hi"などは単語単位で見る（shippingに反応しない）
	for _, tok := range tokens(text) {
		if _, ok := greetingWords[tok]; ok {
			return true
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func hasToken(text string, want string) bool {
	for _, tok := range tokens(text) {
		if tok == want || tok == want+"s" {
			return true
		}
	}
	return false
}

func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
