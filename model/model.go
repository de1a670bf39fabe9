// Package model は逆解析されたバイナリから得られる型メタデータ（エンティティグラフ）を表す。
//
// エンティティグラフは生成の実行ごとに一度だけ構築され、依存関係の抽出と
// コンバータによってその場で変更された後、出力段から読み取り専用で参照される。
package model

import "strings"

// Key はエンティティの同一性を表す。
// 同じ論理エンティティが複数のオブジェクトとして現れても、Key が同じなら同一とみなす。
type Key string

// SDK is the root of an entity dump.
type SDK struct {
	GameName              string     `json:"gameName"`
	GameVersion           string     `json:"gameVersion"`
	Namespace             string     `json:"namespace"`
	GameModule            string     `json:"gameModule,omitempty"`
	GObjectsOffset        uint64     `json:"gObjectsOffset,omitempty"`
	GNamesOffset          uint64     `json:"gNamesOffset,omitempty"`
	GWorldOffset          uint64     `json:"gWorldOffset,omitempty"`
	GlobalMemberAlignment int        `json:"globalMemberAlignment,omitempty"`
	Packages              []*Package `json:"packages"`
	MissedStructs         []*Struct  `json:"missedStructs,omitempty"`
}

// Package は依存スコープを共有する型と関数のまとまり。
type Package struct {
	Name         string      `json:"name"`
	CppName      string      `json:"cppName"`
	IsPredefined bool        `json:"isPredefined,omitempty"`
	Classes      []*Struct   `json:"classes,omitempty"`
	Structs      []*Struct   `json:"structs,omitempty"`
	Enums        []*Enum     `json:"enums,omitempty"`
	Functions    []*Function `json:"functions,omitempty"`
	Constants    []*Constant `json:"constants,omitempty"`
	Defines      []*Define   `json:"defines,omitempty"`
	// Dependencies は他パッケージの識別名、またはそのパッケージが持つ型名のリスト。
	Dependencies []string `json:"dependencies,omitempty"`
	Conditions   []string `json:"conditions,omitempty"`
}

// Key returns the identity of the package.
func (p *Package) Key() Key {
	return Key(p.CppName)
}

// AddDependency records name unless it is already present or names the package itself.
func (p *Package) AddDependency(name string) {
	if name == "" || name == p.CppName {
		return
	}
	for _, dep := range p.Dependencies {
		if dep == name {
			return
		}
	}
	p.Dependencies = append(p.Dependencies, name)
}

// Super is one entry of a struct's inheritance list.
type Super struct {
	Name    string `json:"name"`
	CppName string `json:"cppName"`
}

// Struct は逆解析された構造体を表す。IsClass が true の場合はクラス。
type Struct struct {
	Name           string      `json:"name"`
	NameCpp        string      `json:"nameCpp"`
	FullName       string      `json:"fullName"`
	IsClass        bool        `json:"isClass,omitempty"`
	Size           int         `json:"size"`
	InheritedSize  int         `json:"inheritedSize,omitempty"`
	ObjectIndex    int         `json:"objectIndex,omitempty"`
	Supers         []Super     `json:"supers,omitempty"`
	Fields         []*Field    `json:"fields,omitempty"`
	Methods        []*Function `json:"methods,omitempty"`
	TemplateParams []string    `json:"templateParams,omitempty"`
	Friends        []string    `json:"friends,omitempty"`
	Comments       []string    `json:"comments,omitempty"`
	Conditions     []string    `json:"conditions,omitempty"`

	// Dependencies は抽出処理で設定される。生のダンプには含まれない。
	Dependencies []Key `json:"-"`
}

// Key returns the identity of the struct.
func (s *Struct) Key() Key {
	return Key(s.NameCpp)
}

// AddDependency records k as a dependency of s. Self edges and duplicates are ignored.
func (s *Struct) AddDependency(k Key) {
	if k == "" || k == s.Key() {
		return
	}
	for _, dep := range s.Dependencies {
		if dep == k {
			return
		}
	}
	s.Dependencies = append(s.Dependencies, k)
}

// Field is a struct member with its raw layout.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Offset      int      `json:"offset"`
	Size        int      `json:"size"`
	ArrayDim    string   `json:"arrayDim,omitempty"`
	BitField    bool     `json:"bitField,omitempty"`
	Bitfield    string   `json:"bitfield,omitempty"`
	Value       string   `json:"value,omitempty"`
	Static      bool     `json:"static,omitempty"`
	Const       bool     `json:"const,omitempty"`
	Constexpr   bool     `json:"constexpr,omitempty"`
	Union       bool     `json:"union,omitempty"`
	Private     bool     `json:"private,omitempty"`
	Friend      bool     `json:"friend,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	FlagsString string   `json:"flagsString,omitempty"`
	Comments    []string `json:"comments,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
}

// IsBitField reports whether the field occupies only part of a byte range.
func (f *Field) IsBitField() bool {
	return f.BitField || f.Bitfield != ""
}

// ParamKind はパラメータの役割を表す。
type ParamKind string

const (
	ParamNormal  ParamKind = "normal"
	ParamOut     ParamKind = "out"
	ParamDefault ParamKind = "default"
	ParamReturn  ParamKind = "return"
)

// Parameter is one slot of a function's parameter bundle.
type Parameter struct {
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Kind            ParamKind `json:"kind,omitempty"`
	PassByReference bool      `json:"passByReference,omitempty"`
	Offset          int       `json:"offset,omitempty"`
	Size            int       `json:"size,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	FlagsString     string    `json:"flagsString,omitempty"`
	Comments        []string  `json:"comments,omitempty"`
	Conditions      []string  `json:"conditions,omitempty"`
}

func (p *Parameter) IsOut() bool     { return p.Kind == ParamOut }
func (p *Parameter) IsDefault() bool { return p.Kind == ParamDefault }
func (p *Parameter) IsReturn() bool  { return p.Kind == ParamReturn }

// IsPadding reports whether the parameter is an unnamed filler slot of the bundle.
func (p *Parameter) IsPadding() bool {
	return strings.HasPrefix(p.Name, "UnknownData_") && p.Type == "unsigned char"
}

// Function は関数またはメソッドを表す。Body はコンバータが設定するまで空。
type Function struct {
	Name           string       `json:"name"`
	FullName       string       `json:"fullName"`
	Parameters     []*Parameter `json:"parameters,omitempty"`
	Static         bool         `json:"static,omitempty"`
	Const          bool         `json:"const,omitempty"`
	Inline         bool         `json:"inline,omitempty"`
	Native         bool         `json:"native,omitempty"`
	Predefined     bool         `json:"predefined,omitempty"`
	Private        bool         `json:"private,omitempty"`
	Friend         bool         `json:"friend,omitempty"`
	Index          int          `json:"index,omitempty"`
	RVA            uint64       `json:"rva,omitempty"`
	FlagsString    string       `json:"flagsString,omitempty"`
	TemplateParams []string     `json:"templateParams,omitempty"`
	Body           []string     `json:"body,omitempty"`
	Comments       []string     `json:"comments,omitempty"`
	Conditions     []string     `json:"conditions,omitempty"`
}

// ReturnParameter returns the first parameter with the return role, or nil.
func (f *Function) ReturnParameter() *Parameter {
	for _, p := range f.Parameters {
		if p.IsReturn() {
			return p
		}
	}
	return nil
}

// ReturnType は関数宣言の戻り値型を返す。戻り値パラメータがなければ void。
func (f *Function) ReturnType() string {
	if ret := f.ReturnParameter(); ret != nil && ret.Type != "" {
		return ret.Type
	}
	return "void"
}

// Enum is an enumeration with ordered name/value pairs.
type Enum struct {
	Name       string      `json:"name"`
	FullName   string      `json:"fullName,omitempty"`
	Type       string      `json:"type"`
	Values     []EnumValue `json:"values,omitempty"`
	Comments   []string    `json:"comments,omitempty"`
	Conditions []string    `json:"conditions,omitempty"`
}

type EnumValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Constant struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	Comments   []string `json:"comments,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

type Define struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Comments   []string `json:"comments,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}
