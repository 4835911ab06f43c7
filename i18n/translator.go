// Package i18n renders human messages for issue codes.
package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates may
// reference data entries as {name}.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":       "required property {key} missing",
		"uninitialized":  "field {field} read before it was set",
		"invalid_type":   "invalid type: expected {expected}, got {actual}",
		"invalid_format": "malformed {format} value",
		"invalid_enum":   "value is not a member of enum {enum}",
		"invalid_union":  "value does not match the union shape",
		"unknown_key":    "unknown key",
		"duplicate_key":  "duplicate key",
		"parse_error":    "parse error",
		"truncated":      "truncated",
	},
	"ja": {
		"required":       "必須プロパティ {key} が不足しています",
		"uninitialized":  "フィールド {field} は未設定のまま読み出されました",
		"invalid_type":   "型が不正です ({expected} を期待しましたが {actual} でした)",
		"invalid_format": "{format} の形式が不正です",
		"invalid_enum":   "列挙型 {enum} に含まれない値です",
		"invalid_union":  "ユニオンの形に一致しません",
		"unknown_key":    "未知のキーです",
		"duplicate_key":  "キーが重複しています",
		"parse_error":    "解析エラー",
		"truncated":      "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {name} placeholders; placeholders without data are
// dropped together with a preceding space.
func expand(tmpl string, data map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	b := &strings.Builder{}
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			b.WriteString(tmpl)
			break
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			b.WriteString(tmpl)
			break
		}
		b.WriteString(tmpl[:i])
		if v, ok := data[tmpl[i+1:i+j]]; ok {
			b.WriteString(v)
		} else {
			s := strings.TrimSuffix(b.String(), " ")
			b.Reset()
			b.WriteString(s)
		}
		tmpl = tmpl[i+j+1:]
	}
	return b.String()
}

// holder keeps the stored type fixed whatever Translator is installed.
type holder struct{ tr Translator }

var currentTranslator atomic.Pointer[holder]

func init() { currentTranslator.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().tr.Message(code, data)
}
