package cppast

import (
	"fmt"
	"strings"
)

// Statement は C++ のメソッド本体におけるステートメントを表す。
//
// String メソッドは指定されたインデントレベルで文字列表現を返す。
// 複数行になるステートメントは、2 行目以降に自分でインデントを付ける。
type Statement interface {
	String(indent int) string
}

// VariableDecl は変数宣言を表す。
//
// 例:
//
//	static UFunction* fn = nullptr;
//	AActor_GetTransform_Params params {};
type VariableDecl struct {
	Static bool   // static 修飾子を付ける
	Type   string // 変数の型
	Name   string // 変数名
	Value  string // 初期化式（空の場合は初期化しない）
	Braced bool   // 値初期化 {} を使う
}

// String は変数宣言の文字列表現を返す。
func (v *VariableDecl) String(_ int) string {
	var buf strings.Builder

	if v.Static {
		buf.WriteString("static ")
	}
	buf.WriteString(v.Type)
	buf.WriteString(" ")
	buf.WriteString(v.Name)

	switch {
	case v.Braced:
		buf.WriteString(" {}")
	case v.Value != "":
		buf.WriteString(" = ")
		buf.WriteString(v.Value)
	}
	buf.WriteString(";")

	return buf.String()
}

// IfStatement は波括弧を持たない if 文を表す。
//
// 例:
//
//	if (!fn)
//		fn = UObject::FindObject<UFunction>("Function Engine.Actor.K2_DestroyActor");
type IfStatement struct {
	Condition string      // 条件式
	Body      []Statement // 条件が成り立つときに実行するステートメント
}

// String は if 文の文字列表現を返す。
func (i *IfStatement) String(indent int) string {
	var buf strings.Builder
	tabs := strings.Repeat("\t", indent)

	buf.WriteString(fmt.Sprintf("if (%s)", i.Condition))
	for _, stmt := range i.Body {
		buf.WriteString("\n")
		buf.WriteString(tabs + "\t")
		buf.WriteString(stmt.String(indent + 1))
	}

	return buf.String()
}

// Assignment は代入文を表す。
//
// 例: fn->FunctionFlags |= 0x400;
type Assignment struct {
	Target string // 代入先
	Op     string // 代入演算子（空の場合は =）
	Value  string // 代入する値
}

// String は代入文の文字列表現を返す。
func (a *Assignment) String(_ int) string {
	op := a.Op
	if op == "" {
		op = "="
	}
	return fmt.Sprintf("%s %s %s;", a.Target, op, a.Value)
}

// ExprStatement は式文を表す。
//
// 例: UObject::ProcessEvent(fn, &params);
type ExprStatement struct {
	Expr string
}

func (e *ExprStatement) String(_ int) string {
	return e.Expr + ";"
}

// ReturnStatement は return 文を表す。
//
// 例: return params.ReturnValue;
type ReturnStatement struct {
	Value string // 返す値（空の場合は単なる return）
}

// String は return 文の文字列表現を返す。
func (r *ReturnStatement) String(_ int) string {
	if r.Value == "" {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

// StructDecl は無名構造体型の変数宣言を表す。
//
// 例:
//
//	struct
//	{
//		int32_t                                            Count;
//	} params;
type StructDecl struct {
	Name   string       // 宣言する変数名
	Fields []StructSlot // メンバ
}

// StructSlot is one member of a StructDecl.
type StructSlot struct {
	Type string
	Name string
}

// String は構造体宣言の文字列表現を返す。型は 50 桁に揃える。
func (s *StructDecl) String(indent int) string {
	var buf strings.Builder
	tabs := strings.Repeat("\t", indent)

	buf.WriteString("struct\n")
	buf.WriteString(tabs + "{\n")
	for _, f := range s.Fields {
		buf.WriteString(tabs + "\t")
		buf.WriteString(fmt.Sprintf("%-50s %s;", f.Type, f.Name))
		buf.WriteString("\n")
	}
	buf.WriteString(tabs + "} " + s.Name + ";")

	return buf.String()
}

// RawStatement は生の C++ コードを表す。
type RawStatement struct {
	Code string
}

// String は生のコードをそのまま返す。
func (r *RawStatement) String(_ int) string {
	return r.Code
}

// BlankLine は段落を区切る空行。
type BlankLine struct{}

func (BlankLine) String(_ int) string {
	return ""
}

// Lines はステートメント列を本体の行リストに変換する。
func Lines(stmts []Statement) []string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, strings.Split(stmt.String(0), "\n")...)
	}
	return lines
}
