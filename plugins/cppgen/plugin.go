// Package cppgen は逆解析されたエンティティグラフを C++ 出力用の AST に変換する。
//
// 変換はエンティティをその場で変更する。組み込みでないメソッドには本体が設定され、
// クラスには StaticClass アクセサが追加される。変換結果は cppast の型として返され、
// C++ テキストへの整形は出力段に任せる。
package cppgen

import (
	"github.com/cgsdk/cppsdkgen/model"
)

// Plugin converts the packages of one SDK.
type Plugin struct {
	sdk  *model.SDK
	opts Options
}

// New は cppgen プラグインを作成する。
//
// パラメータ:
//   - sdk: 変換するエンティティダンプ
//   - opts: 変換の設定
func New(sdk *model.SDK, opts Options) *Plugin {
	return &Plugin{
		sdk:  sdk,
		opts: opts,
	}
}

// Name returns the plugin name used in logs and error messages.
func (p *Plugin) Name() string {
	return "cppgen"
}

// Options returns the options the plugin was created with.
func (p *Plugin) Options() Options {
	return p.opts
}
