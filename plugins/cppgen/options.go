package cppgen

// Options は変換の振る舞いを切り替える設定。変換中に変更されることはない。
type Options struct {
	// PrecompileSyntax はパッケージヘッダが "pch.h" をインクルードするようにする。
	PrecompileSyntax bool
	// OffsetsOnly はメソッドを出力せずレイアウトだけを残す。
	OffsetsOnly bool
	// LazyFindObject は UFunction / UClass の検索を初回呼び出しまで遅延させる。
	LazyFindObject bool
	// GenerateParametersFile はメソッドごとの <Class>_<Func>_Params 構造体を別ファイルに出力する。
	GenerateParametersFile bool
	// ShouldUseStrings はオブジェクトを名前で検索する。false の場合はオブジェクトのインデックスを使う。
	// インデックスはゲームの更新や起動ごとに変わりうる。
	ShouldUseStrings bool
	// ShouldXorStrings は検索に使う文字列リテラルを XorFuncName で包む。
	ShouldXorStrings bool
	XorFuncName      string
	// ConvertStaticMethods は static メソッドを STATIC_ 接頭辞付きのインスタンスメソッドとして出力する。
	ConvertStaticMethods bool
}

// DefaultOptions returns the options used when a config file leaves them unset.
func DefaultOptions() Options {
	return Options{
		PrecompileSyntax:       true,
		OffsetsOnly:            false,
		LazyFindObject:         true,
		GenerateParametersFile: true,
		ShouldUseStrings:       true,
		ShouldXorStrings:       false,
		XorFuncName:            "_xor_",
		ConvertStaticMethods:   true,
	}
}

// stringLiteral は name を C++ の文字列リテラルにする。XOR が有効なら XorFuncName で包む。
func (o Options) stringLiteral(name string) string {
	if o.ShouldXorStrings {
		return o.XorFuncName + `("` + name + `")`
	}
	return `"` + name + `"`
}
