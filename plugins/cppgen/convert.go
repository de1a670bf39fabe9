package cppgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

const staticPrefix = "STATIC_"

// ConvertStruct は構造体またはクラスを AST に変換する。
//
// 組み込みでないメソッドには本体を合成してエンティティに書き戻す。
// フィールドの型は ToLangType で置き換えられ、メソッドには !OffsetsOnly 条件が付く。
func (p *Plugin) ConvertStruct(s *model.Struct) *cppast.Struct {
	for _, m := range s.Methods {
		if !m.Predefined {
			m.Body = BuildMethodBody(p.opts, s, m)
		}
	}

	cs := &cppast.Struct{
		Name:           s.NameCpp,
		IsClass:        s.IsClass,
		Supers:         make([]string, 0, len(s.Supers)),
		Fields:         make([]*cppast.Field, 0, len(s.Fields)),
		Methods:        make([]*cppast.Function, 0, len(s.Methods)),
		TemplateParams: slices.Clone(s.TemplateParams),
		Friends:        slices.Clone(s.Friends),
		Conditions:     slices.Clone(s.Conditions),
		Comments:       []string{s.FullName, sizeComment(s)},
	}

	for _, super := range s.Supers {
		cs.Supers = append(cs.Supers, super.CppName)
	}

	for _, f := range s.Fields {
		cf := ConvertField(f)
		cf.Type = ToLangType(cf.Type)
		cs.Fields = append(cs.Fields, cf)
	}

	for _, m := range s.Methods {
		cf := ConvertFunction(m)
		cf.Conditions = append(cf.Conditions, "!OffsetsOnly")
		if p.opts.ConvertStaticMethods && m.Static && !m.Predefined {
			cf.Name = staticPrefix + cf.Name
			cf.Static = false
		}
		cs.Methods = append(cs.Methods, cf)
	}

	return cs
}

// sizeComment は構造体のサイズを説明するコメントを返す。
// 継承部分がある場合は差し引きを明示する。
func sizeComment(s *model.Struct) string {
	if s.InheritedSize > 0 {
		return fmt.Sprintf("Size -> 0x%04X (FullSize[0x%04X] - InheritedSize[0x%04X])",
			s.Size-s.InheritedSize, s.Size, s.InheritedSize)
	}
	return fmt.Sprintf("Size -> 0x%04X", s.Size)
}

// ConvertField converts a struct member. The inline comment carries offset, size, comment and flags.
func ConvertField(f *model.Field) *cppast.Field {
	var inline strings.Builder
	fmt.Fprintf(&inline, "0x%04X(0x%04X)", f.Offset, f.Size)
	if f.Comment != "" {
		inline.WriteString(" " + f.Comment)
	}
	if f.FlagsString != "" {
		inline.WriteString(" " + f.FlagsString)
	}

	return &cppast.Field{
		Name:          f.Name,
		Type:          f.Type,
		Value:         f.Value,
		ArrayDim:      f.ArrayDim,
		Bitfield:      f.Bitfield,
		Private:       f.Private,
		Static:        f.Static,
		Const:         f.Const,
		Constexpr:     f.Constexpr,
		Friend:        f.Friend,
		Union:         f.Union,
		InlineComment: inline.String(),
		Conditions:    slices.Clone(f.Conditions),
		Comments:      slices.Clone(f.Comments),
	}
}

// ConvertParameter は参照渡しを const 参照に、out パラメータをポインタにする。
func ConvertParameter(p *model.Parameter) *cppast.Parameter {
	typ := p.Type
	switch {
	case p.PassByReference:
		typ = "const " + typ + "&"
	case p.IsOut():
		typ += "*"
	}

	return &cppast.Parameter{
		Name:       p.Name,
		Type:       typ,
		Conditions: slices.Clone(p.Conditions),
		Comments:   slices.Clone(p.Comments),
	}
}

// ConvertFunction は関数を AST に変換する。
//
// 戻り値と詰め物のパラメータは宣言から除かれる。コメントがない関数には
// RVA、名前、フラグ、パラメータを並べたコメントを付ける。
func ConvertFunction(fn *model.Function) *cppast.Function {
	params := make([]*model.Parameter, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		if p.IsReturn() || p.IsPadding() {
			continue
		}
		params = append(params, p)
	}

	comments := slices.Clone(fn.Comments)
	if len(comments) == 0 {
		comments = functionComment(fn, params)
	}

	cf := &cppast.Function{
		Name:           fn.Name,
		Type:           fn.ReturnType(),
		TemplateParams: slices.Clone(fn.TemplateParams),
		Params:         make([]*cppast.Parameter, 0, len(params)),
		Body:           slices.Clone(fn.Body),
		Private:        fn.Private,
		Static:         fn.Static,
		Const:          fn.Const,
		Friend:         fn.Friend,
		Inline:         fn.Inline,
		Conditions:     slices.Clone(fn.Conditions),
		Comments:       comments,
	}
	for _, p := range params {
		cf.Params = append(cf.Params, ConvertParameter(p))
	}

	return cf
}

func functionComment(fn *model.Function, params []*model.Parameter) []string {
	comments := []string{
		"Function:",
		fmt.Sprintf("\t\tRVA    -> 0x%08X", fn.RVA),
		fmt.Sprintf("\t\tName   -> %s", fn.FullName),
		fmt.Sprintf("\t\tFlags  -> (%s)", fn.FlagsString),
	}

	if len(params) > 0 {
		comments = append(comments, "Parameters:")
	}
	for _, p := range params {
		if strings.TrimSpace(p.FlagsString) == "" {
			comments = append(comments, fmt.Sprintf("\t\t%-50s %s", p.Type, p.Name))
			continue
		}
		comments = append(comments, fmt.Sprintf("\t\t%-50s %-58s (%s)", p.Type, p.Name, p.FlagsString))
	}

	return comments
}

// ConvertEnum converts an enumeration to a scoped enum commented with its full name.
func ConvertEnum(e *model.Enum) *cppast.Enum {
	ce := &cppast.Enum{
		Name:       e.Name,
		Type:       e.Type,
		IsClass:    true,
		Values:     make([]cppast.NameValue, 0, len(e.Values)),
		Conditions: slices.Clone(e.Conditions),
		Comments:   []string{e.FullName},
	}
	for _, v := range e.Values {
		ce.Values = append(ce.Values, cppast.NameValue{Name: v.Name, Value: v.Value})
	}
	return ce
}

func ConvertConstant(c *model.Constant) *cppast.Constant {
	return &cppast.Constant{
		Name:       c.Name,
		Type:       c.Type,
		Value:      c.Value,
		Conditions: slices.Clone(c.Conditions),
		Comments:   slices.Clone(c.Comments),
	}
}

func ConvertDefine(d *model.Define) *cppast.Define {
	return &cppast.Define{
		Name:       d.Name,
		Value:      d.Value,
		Conditions: slices.Clone(d.Conditions),
		Comments:   slices.Clone(d.Comments),
	}
}
