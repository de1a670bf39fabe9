package cppgen

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

// ErrStructNotFound は変換した構造体に対応するエンティティが見つからないことを表す。
var ErrStructNotFound = errors.New("struct not found")

// MissingPackageName is the name of the package holding placeholder structs.
const MissingPackageName = "MISSING"

// GenerateMissing はダンプ中で参照されているが定義の得られなかった構造体のプレースホルダを作る。
//
// 各構造体にはサイズ分の UnknownData 配列が追加される。欠けた構造体がなければ nil を返す。
func (p *Plugin) GenerateMissing() (*cppast.Package, error) {
	if len(p.sdk.MissedStructs) == 0 {
		return nil, nil
	}

	structs := make([]*cppast.Struct, 0, len(p.sdk.MissedStructs))
	for _, s := range p.sdk.MissedStructs {
		structs = append(structs, p.ConvertStruct(s))
	}

	if err := padMissing(structs, p.sdk.MissedStructs); err != nil {
		return nil, err
	}

	return &cppast.Package{
		Name:      MissingPackageName,
		NameSpace: p.sdk.Namespace,
		Pragmas:   []string{"once"},
		Structs:   structs,
	}, nil
}

// padMissing は変換済みの構造体に、名前で引いたエンティティのサイズ分の詰め物を追加する。
func padMissing(structs []*cppast.Struct, missed []*model.Struct) error {
	byName := make(map[model.Key]*model.Struct, len(missed))
	for _, s := range missed {
		if _, ok := byName[s.Key()]; !ok {
			byName[s.Key()] = s
		}
	}

	for _, cs := range structs {
		es, ok := byName[model.Key(cs.Name)]
		if !ok {
			return fmt.Errorf("missing struct '%s': %w", cs.Name, ErrStructNotFound)
		}

		size, err := safecast.Conv[uint32](es.Size)
		if err != nil {
			return fmt.Errorf("missing struct '%s' size %d: %w", cs.Name, es.Size, err)
		}

		cs.Fields = append(cs.Fields, &cppast.Field{
			Name:     "UnknownData",
			Type:     "unsigned char",
			ArrayDim: fmt.Sprintf("0x%X", size),
		})
	}

	return nil
}
