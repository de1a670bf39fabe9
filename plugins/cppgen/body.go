package cppgen

import (
	"fmt"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

// nativeFunctionFlag は UE4 の FUNC_Native。
const nativeFunctionFlag = 0x400

// BodyBuilder はメソッド本体のステートメントを順に組み立てる。
//
// 本体は次の順で構成される:
//  1. UFunction の取得
//  2. パラメータ構造体の宣言とデフォルト値のコピー
//  3. フラグを保存して ProcessEvent を呼び、フラグを戻す
//  4. out パラメータの書き戻し
//  5. 戻り値の返却
type BodyBuilder struct {
	opts  Options
	owner *model.Struct
	fn    *model.Function
}

// NewBodyBuilder creates a builder for fn declared on owner.
func NewBodyBuilder(opts Options, owner *model.Struct, fn *model.Function) *BodyBuilder {
	return &BodyBuilder{opts: opts, owner: owner, fn: fn}
}

// BuildMethodBody は fn の本体を行のリストとして返す。
func BuildMethodBody(opts Options, owner *model.Struct, fn *model.Function) []string {
	return cppast.Lines(NewBodyBuilder(opts, owner, fn).Build())
}

// Build returns the statements of the method body.
func (b *BodyBuilder) Build() []cppast.Statement {
	var stmts []cppast.Statement

	stmts = append(stmts, b.resolveFunction()...)
	stmts = append(stmts, cppast.BlankLine{})

	stmts = append(stmts, b.declareParams())
	stmts = append(stmts, b.copyDefaults()...)
	stmts = append(stmts, cppast.BlankLine{})

	stmts = append(stmts, b.dispatch()...)
	stmts = append(stmts, b.writeBackOuts()...)
	stmts = append(stmts, b.returnValue()...)

	return stmts
}

// ParamsTypeName は関数ごとのパラメータ構造体の名前を返す。
func ParamsTypeName(owner *model.Struct, fn *model.Function) string {
	return fmt.Sprintf("%s_%s_Params", owner.NameCpp, fn.Name)
}

// 1. UFunction の取得
func (b *BodyBuilder) resolveFunction() []cppast.Statement {
	if !b.opts.ShouldUseStrings {
		return []cppast.Statement{
			&cppast.VariableDecl{
				Static: true,
				Type:   "UFunction*",
				Name:   "fn",
				Value:  fmt.Sprintf("UObject::GetObjectCasted<UFunction>(%d)", b.fn.Index),
			},
		}
	}

	find := fmt.Sprintf("UObject::FindObject<UFunction>(%s)", b.opts.stringLiteral(b.fn.FullName))
	return lazyStatic(b.opts.LazyFindObject, "UFunction*", "fn", find)
}

// 2. パラメータ構造体
func (b *BodyBuilder) declareParams() cppast.Statement {
	if b.opts.GenerateParametersFile {
		return &cppast.VariableDecl{Type: ParamsTypeName(b.owner, b.fn), Name: "params", Braced: true}
	}

	decl := &cppast.StructDecl{Name: "params"}
	for _, p := range b.fn.Parameters {
		if p.IsReturn() || p.IsPadding() {
			continue
		}
		decl.Fields = append(decl.Fields, cppast.StructSlot{Type: p.Type, Name: p.Name})
	}
	return decl
}

func (b *BodyBuilder) copyDefaults() []cppast.Statement {
	var stmts []cppast.Statement
	for _, p := range b.fn.Parameters {
		if !p.IsDefault() || p.IsPadding() {
			continue
		}
		stmts = append(stmts, &cppast.Assignment{Target: "params." + p.Name, Value: p.Name})
	}
	return stmts
}

// 3. 呼び出し
func (b *BodyBuilder) dispatch() []cppast.Statement {
	stmts := []cppast.Statement{
		&cppast.VariableDecl{Type: "auto", Name: "flags", Value: "fn->FunctionFlags"},
	}

	if b.fn.Native {
		stmts = append(stmts, &cppast.Assignment{
			Target: "fn->FunctionFlags",
			Op:     "|=",
			Value:  fmt.Sprintf("0x%X", nativeFunctionFlag),
		})
	}

	if b.fn.Static && !b.opts.ConvertStaticMethods {
		create := fmt.Sprintf("StaticClass()->CreateDefaultObject<%s>()", b.owner.NameCpp)
		stmts = append(stmts, lazyStatic(b.opts.LazyFindObject, "UObject*", "defaultObj", create)...)
		stmts = append(stmts, &cppast.ExprStatement{Expr: "defaultObj->ProcessEvent(fn, &params)"})
	} else {
		stmts = append(stmts, &cppast.ExprStatement{Expr: "UObject::ProcessEvent(fn, &params)"})
	}

	stmts = append(stmts, &cppast.Assignment{Target: "fn->FunctionFlags", Value: "flags"})

	return stmts
}

// 4. out パラメータ
func (b *BodyBuilder) writeBackOuts() []cppast.Statement {
	var stmts []cppast.Statement
	for _, p := range b.fn.Parameters {
		if !p.IsOut() {
			continue
		}
		stmts = append(stmts, &cppast.IfStatement{
			Condition: p.Name + " != nullptr",
			Body:      []cppast.Statement{&cppast.Assignment{Target: "*" + p.Name, Value: "params." + p.Name}},
		})
	}

	if len(stmts) == 0 {
		return nil
	}
	return append([]cppast.Statement{cppast.BlankLine{}}, stmts...)
}

// 5. 戻り値
func (b *BodyBuilder) returnValue() []cppast.Statement {
	// 名前のない戻り値は関数宣言の型を表すだけで、パラメータ構造体には含まれない
	ret := b.fn.ReturnParameter()
	if ret == nil || ret.Type == "void" || ret.Name == "" {
		return nil
	}

	return []cppast.Statement{
		cppast.BlankLine{},
		&cppast.ReturnStatement{Value: "params." + ret.Name},
	}
}

// lazyStatic は static ポインタの初期化を組み立てる。lazy の場合は初回だけ代入する。
func lazyStatic(lazy bool, typ, name, value string) []cppast.Statement {
	if !lazy {
		return []cppast.Statement{
			&cppast.VariableDecl{Static: true, Type: typ, Name: name, Value: value},
		}
	}

	return []cppast.Statement{
		&cppast.VariableDecl{Static: true, Type: typ, Name: name, Value: "nullptr"},
		&cppast.IfStatement{
			Condition: "!" + name,
			Body:      []cppast.Statement{&cppast.Assignment{Target: name, Value: value}},
		},
	}
}
