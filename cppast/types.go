// Package cppast は C++ 出力段に渡す AST を表す。
//
// ここでの AST は整形済みのテキストではなく、出力段がテンプレートで描画するためのデータ。
// メソッド本体だけは行単位の文字列として保持し、Statement で組み立てる。
package cppast

// Package is the output model of one entity package.
type Package struct {
	Name                  string      `json:"name"`
	HeadingComment        []string    `json:"headingComment,omitempty"`
	NameSpace             string      `json:"nameSpace,omitempty"`
	Pragmas               []string    `json:"pragmas,omitempty"`
	Includes              []string    `json:"includes,omitempty"`
	PackageHeaderIncludes []string    `json:"packageHeaderIncludes,omitempty"`
	Forwards              []string    `json:"forwards,omitempty"`
	BeforeNameSpace       string      `json:"beforeNameSpace,omitempty"`
	AfterNameSpace        string      `json:"afterNameSpace,omitempty"`
	Conditions            []string    `json:"conditions,omitempty"`
	Defines               []*Define   `json:"defines,omitempty"`
	Constants             []*Constant `json:"constants,omitempty"`
	Enums                 []*Enum     `json:"enums,omitempty"`
	Structs               []*Struct   `json:"structs,omitempty"`
	Functions             []*Function `json:"functions,omitempty"`
}

// Function returns the first free function named name that takes no parameters, or nil.
func (p *Package) Function(name string) *Function {
	for _, fn := range p.Functions {
		if fn.Name == name && len(fn.Params) == 0 {
			return fn
		}
	}
	return nil
}

// Struct は構造体またはクラスの宣言。
type Struct struct {
	Name           string      `json:"name"`
	IsClass        bool        `json:"isClass,omitempty"`
	Supers         []string    `json:"supers,omitempty"`
	Fields         []*Field    `json:"fields,omitempty"`
	Methods        []*Function `json:"methods,omitempty"`
	TemplateParams []string    `json:"templateParams,omitempty"`
	Friends        []string    `json:"friends,omitempty"`
	Conditions     []string    `json:"conditions,omitempty"`
	Comments       []string    `json:"comments,omitempty"`
}

type Field struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Value         string   `json:"value,omitempty"`
	ArrayDim      string   `json:"arrayDim,omitempty"`
	Bitfield      string   `json:"bitfield,omitempty"`
	Private       bool     `json:"private,omitempty"`
	Static        bool     `json:"static,omitempty"`
	Const         bool     `json:"const,omitempty"`
	Constexpr     bool     `json:"constexpr,omitempty"`
	Friend        bool     `json:"friend,omitempty"`
	Union         bool     `json:"union,omitempty"`
	InlineComment string   `json:"inlineComment,omitempty"`
	Conditions    []string `json:"conditions,omitempty"`
	Comments      []string `json:"comments,omitempty"`
}

type Parameter struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Conditions []string `json:"conditions,omitempty"`
	Comments   []string `json:"comments,omitempty"`
}

// Function は関数またはメソッドの宣言と本体。Type は戻り値型。
type Function struct {
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	TemplateParams []string     `json:"templateParams,omitempty"`
	Params         []*Parameter `json:"params,omitempty"`
	Body           []string     `json:"body,omitempty"`
	Private        bool         `json:"private,omitempty"`
	Static         bool         `json:"static,omitempty"`
	Const          bool         `json:"const,omitempty"`
	Friend         bool         `json:"friend,omitempty"`
	Inline         bool         `json:"inline,omitempty"`
	Conditions     []string     `json:"conditions,omitempty"`
	Comments       []string     `json:"comments,omitempty"`
}

type Enum struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	IsClass    bool        `json:"isClass,omitempty"`
	Values     []NameValue `json:"values,omitempty"`
	Conditions []string    `json:"conditions,omitempty"`
	Comments   []string    `json:"comments,omitempty"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Constant struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	Conditions []string `json:"conditions,omitempty"`
	Comments   []string `json:"comments,omitempty"`
}

type Define struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Conditions []string `json:"conditions,omitempty"`
	Comments   []string `json:"comments,omitempty"`
}
