package cppgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

const basicTypesPackage = "BasicTypes"

// PackageOutput is the conversion result of one package.
type PackageOutput struct {
	// Package はパッケージ本体の AST。
	Package *cppast.Package
	// Params はパラメータ構造体のファイル。出力しない場合は nil。
	Params *cppast.Package
}

// ConvertPackage はパッケージ全体を AST に変換する。
//
// 構造体、クラスの順に変換し、ヘッダ情報を設定する。組み込みでないパッケージで
// GenerateParametersFile が有効かつ OffsetsOnly が無効の場合は、パラメータ構造体の
// ファイルも作り、パッケージヘッダからインクルードする。
func (p *Plugin) ConvertPackage(pack *model.Package) *PackageOutput {
	structs := make([]*cppast.Struct, 0, len(pack.Structs)+len(pack.Classes))
	for _, s := range pack.Structs {
		structs = append(structs, p.ConvertStruct(s))
	}
	for _, c := range pack.Classes {
		structs = append(structs, p.ConvertStruct(c))
	}

	cp := &cppast.Package{
		Name:            pack.Name,
		HeadingComment:  p.headingComment(),
		NameSpace:       p.sdk.Namespace,
		Pragmas:         []string{"once"},
		BeforeNameSpace: p.packStart(),
		AfterNameSpace:  packEnd(),
		Conditions:      slices.Clone(pack.Conditions),
		Defines:         make([]*cppast.Define, 0, len(pack.Defines)),
		Constants:       make([]*cppast.Constant, 0, len(pack.Constants)),
		Enums:           make([]*cppast.Enum, 0, len(pack.Enums)),
		Structs:         structs,
		Functions:       make([]*cppast.Function, 0, len(pack.Functions)),
	}

	for _, d := range pack.Defines {
		cp.Defines = append(cp.Defines, ConvertDefine(d))
	}
	for _, c := range pack.Constants {
		cp.Constants = append(cp.Constants, ConvertConstant(c))
	}
	for _, e := range pack.Enums {
		cp.Enums = append(cp.Enums, ConvertEnum(e))
	}
	for _, fn := range pack.Functions {
		cp.Functions = append(cp.Functions, ConvertFunction(fn))
	}

	if p.opts.PrecompileSyntax {
		cp.Includes = append(cp.Includes, `"pch.h"`)
	} else {
		cp.Includes = append(cp.Includes, `"../SDK.h"`)
	}

	p.PreparePackage(cp, pack)

	out := &PackageOutput{Package: cp}

	if !pack.IsPredefined && p.opts.GenerateParametersFile && !p.opts.OffsetsOnly {
		out.Params = p.paramsPackage(cp, pack)
		cp.PackageHeaderIncludes = append(cp.PackageHeaderIncludes, fmt.Sprintf(`"%s.h"`, out.Params.Name))
	}

	return out
}

// PreparePackage はオプションと組み込みパッケージに応じてパッケージの AST を調整する。
func (p *Plugin) PreparePackage(cp *cppast.Package, pack *model.Package) {
	if p.opts.OffsetsOnly {
		cp.Conditions = append(cp.Conditions, "OffsetsOnly")
	}

	if !pack.IsPredefined || pack.Name != basicTypesPackage {
		return
	}

	cp.Forwards = []string{"class UObject"}

	initFunc := cp.Function("InitSdk")
	if initFunc == nil {
		return
	}

	r := strings.NewReplacer(
		"MODULE_NAME", p.sdk.GameModule,
		"GOBJ_OFFSET", fmt.Sprintf("0x%06X", p.sdk.GObjectsOffset),
		"GNAME_OFFSET", fmt.Sprintf("0x%06X", p.sdk.GNamesOffset),
		"GWORLD_OFFSET", fmt.Sprintf("0x%06X", p.sdk.GWorldOffset),
	)
	for i, line := range initFunc.Body {
		initFunc.Body[i] = r.Replace(line)
	}
}

func (p *Plugin) paramsPackage(cp *cppast.Package, pack *model.Package) *cppast.Package {
	params := &cppast.Package{
		Name:            pack.Name + "_Params",
		HeadingComment:  slices.Clone(cp.HeadingComment),
		NameSpace:       cp.NameSpace,
		Pragmas:         []string{"once"},
		BeforeNameSpace: cp.BeforeNameSpace,
		AfterNameSpace:  cp.AfterNameSpace,
		Structs:         FunctionParamStructs(pack),
	}
	if !p.opts.PrecompileSyntax {
		params.Includes = []string{`"../SDK.h"`}
	}
	return params
}

func (p *Plugin) headingComment() []string {
	return []string{
		"Name: " + p.sdk.GameName,
		"Version: " + p.sdk.GameVersion,
	}
}

func (p *Plugin) packStart() string {
	return fmt.Sprintf("#ifdef _MSC_VER\n\t#pragma pack(push, 0x%02X)\n#endif", p.sdk.GlobalMemberAlignment)
}

func packEnd() string {
	return "#ifdef _MSC_VER\n\t#pragma pack(pop)\n#endif"
}
