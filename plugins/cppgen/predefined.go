package cppgen

import (
	"fmt"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

const staticClassName = "StaticClass"

// AddPredefinedMethods は組み込みでない全パッケージのクラスに StaticClass アクセサを追加する。
// すでに追加済みのクラスには何もしない。
func (p *Plugin) AddPredefinedMethods() {
	for _, pack := range p.sdk.Packages {
		if pack.IsPredefined {
			continue
		}
		for _, c := range pack.Classes {
			if hasPredefined(c, staticClassName) {
				continue
			}
			c.Methods = append(c.Methods, p.staticClassMethod(c))
		}
	}
}

func hasPredefined(s *model.Struct, name string) bool {
	for _, m := range s.Methods {
		if m.Predefined && m.Name == name {
			return true
		}
	}
	return false
}

// staticClassMethod はクラスの UClass を返す static メソッドを作る。
func (p *Plugin) staticClassMethod(c *model.Struct) *model.Function {
	var find string
	if p.opts.ShouldUseStrings {
		find = fmt.Sprintf("UObject::FindClass(%s)", p.opts.stringLiteral(c.FullName))
	} else {
		find = fmt.Sprintf("UObject::GetObjectCasted<UClass>(%d)", c.ObjectIndex)
	}

	stmts := lazyStatic(p.opts.LazyFindObject, "UClass*", "ptr", find)
	stmts = append(stmts, &cppast.ReturnStatement{Value: "ptr"})

	return &model.Function{
		Name:        staticClassName,
		FullName:    fmt.Sprintf("PredefinedFunction %s.%s", c.NameCpp, staticClassName),
		Static:      true,
		Predefined:  true,
		FlagsString: "Predefined, Static",
		Parameters: []*model.Parameter{
			{Kind: model.ParamReturn, Type: "UClass*"},
		},
		Body: cppast.Lines(stmts),
	}
}
