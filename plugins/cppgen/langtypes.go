package cppgen

import "regexp"

// langTypes は固定幅整数の型名を C++ の綴りに置き換える表。
var langTypes = map[string]string{
	"int64": "int64_t",
	"int32": "int32_t",
	"int16": "int16_t",
	"int8":  "int8_t",

	"uint64": "uint64_t",
	"uint32": "uint32_t",
	"uint16": "uint16_t",
	"uint8":  "uint8_t",
}

var identifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// ToLangType は型参照中の識別子を langTypes に従って置き換える。
// 識別子全体が一致した場合だけ置き換えるので、uint8_t や Fint32Wrapper はそのまま残る。
//
//	"TArray<uint8>" -> "TArray<uint8_t>"
//	"int32*"        -> "int32_t*"
func ToLangType(typ string) string {
	return identifier.ReplaceAllStringFunc(typ, func(tok string) string {
		if lt, ok := langTypes[tok]; ok {
			return lt
		}
		return tok
	})
}
