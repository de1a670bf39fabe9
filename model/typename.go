package model

import "strings"

var typeQualifiers = []string{"const ", "volatile ", "class ", "struct ", "enum ", "union "}

// DependencyNames は型参照文字列から、完全な定義を必要とする型名を抽出する。
//
// 配列次元とビットフィールド幅は取り除かれる。ポインタと参照は前方宣言で足りるため
// 何も返さない。テンプレート引数は再帰的に解析され、値として保持される引数の型名も返す。
//
//	"TArray<struct FVector>" -> ["TArray", "FVector"]
//	"FName[0x4]"             -> ["FName"]
//	"uint8 : 1"              -> ["uint8"]
//	"class UObject*"         -> []
func DependencyNames(typ string) []string {
	var names []string
	collectTypeNames(typ, &names)
	return names
}

func collectTypeNames(typ string, names *[]string) {
	t := CleanTypeName(typ)
	if t == "" || strings.HasSuffix(t, "*") || strings.HasSuffix(t, "&") {
		return
	}

	open := strings.IndexByte(t, '<')
	if open < 0 {
		*names = append(*names, t)
		return
	}

	if outer := strings.TrimSpace(t[:open]); outer != "" {
		*names = append(*names, outer)
	}

	closing := strings.LastIndexByte(t, '>')
	if closing < open {
		return
	}

	for _, arg := range splitTemplateArgs(t[open+1 : closing]) {
		collectTypeNames(arg, names)
	}
}

// CleanTypeName strips qualifiers, array dimensions and bitfield widths from a type reference.
func CleanTypeName(typ string) string {
	t := strings.TrimSpace(typ)

	if i := indexTopLevel(t, '['); i >= 0 {
		t = t[:i]
	}
	if i := bitfieldColon(t); i >= 0 {
		t = t[:i]
	}

	t = strings.TrimSpace(t)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, q := range typeQualifiers {
			if strings.HasPrefix(t, q) {
				t = strings.TrimSpace(t[len(q):])
				trimmed = true
			}
		}
	}
	t = strings.TrimSpace(strings.TrimSuffix(t, " const"))

	return t
}

// StripMemberSuffix はメンバ名から配列次元とビットフィールド幅を取り除く。
func StripMemberSuffix(name string) string {
	name, _, _ = strings.Cut(name, "[")
	if i := bitfieldColon(name); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// indexTopLevel returns the index of the first c outside template brackets.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case c:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// bitfieldColon returns the index of a single ':' that is not part of a "::" scope operator.
func bitfieldColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 < len(s) && s[i+1] == ':' {
			i++
			continue
		}
		return i
	}
	return -1
}

func splitTemplateArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}
