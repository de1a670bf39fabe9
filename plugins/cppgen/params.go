package cppgen

import (
	"fmt"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

// FunctionParamStructs はパッケージ内の各クラスメソッドについて <Class>_<Func>_Params 構造体を作る。
// 組み込みメソッドは対象外。
func FunctionParamStructs(pack *model.Package) []*cppast.Struct {
	var structs []*cppast.Struct

	for _, c := range pack.Classes {
		for _, fn := range c.Methods {
			if fn.Predefined {
				continue
			}
			structs = append(structs, functionParamStruct(c, fn))
		}
	}

	return structs
}

func functionParamStruct(owner *model.Struct, fn *model.Function) *cppast.Struct {
	ps := &cppast.Struct{
		Name:     ParamsTypeName(owner, fn),
		Comments: []string{fn.FullName},
	}

	for _, p := range fn.Parameters {
		// 名前のない戻り値は関数宣言の型であり、構造体のメンバではない
		if p.IsReturn() && (p.Type == "void" || p.Name == "") {
			continue
		}

		ps.Fields = append(ps.Fields, &cppast.Field{
			Name:          p.Name,
			Type:          p.Type,
			InlineComment: fmt.Sprintf("0x%04X(0x%04X) %s (%s)", p.Offset, p.Size, p.Comment, p.FlagsString),
		})
	}

	return ps
}
