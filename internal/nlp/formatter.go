package nlp

import "strings"

// チャット返信の定型文
const (
	MsgGreeting = "Hello! How can I help you with your inventory today?"
	MsgNoData   = "Sorry, I could not find any matching data."
	MsgApology  = "Sorry, I could not look that up right now. Please try again later."
)

// 表示順を保つためmapではなくスライス
type Field struct {
	Key   string
	Value string
}

type Row []Field

// 行ごとに「Key: Value」を並べ、行間は空行。
// namesOnlyのときはnameフィールドだけを1行で出す（投影のみ変える）。
// 空の結果でも必ず文言を返す
func FormatRows(rows []Row, namesOnly bool) string {
	if len(rows) == 0 {
		return MsgNoData
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if namesOnly {
			b.WriteString("Product Name: " + nameOf(row))
			continue
		}
		for j, f := range row {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(humanizeKey(f.Key) + ": " + f.Value)
		}
	}

	out := b.String()
	if strings.TrimSpace(out) == "" {
		return MsgNoData
	}
	return out
}

func nameOf(row Row) string {
	for _, f := range row {
		if f.Key == "name" || f.Key == "product_name" {
			return f.Value
		}
	}
	if len(row) > 0 {
		return row[0].Value
	}
	return ""
}

// "unit_price" -> "Unit Price"
func humanizeKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
