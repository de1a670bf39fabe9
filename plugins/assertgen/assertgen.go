// Package assertgen はエンティティのレイアウトからコンパイル時に検証できるサイズとオフセットの表明を作る。
//
// 表明はエンティティモデルのオフセットとサイズだけから導出され、cppgen の変換結果には依存しない。
package assertgen

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/cgsdk/cppsdkgen/model"
)

// ErrOutOfRange は uint32 に収まらないサイズまたはオフセットを表す。
var ErrOutOfRange = errors.New("value out of range")

// OffsetAssertion checks the byte offset of one field.
type OffsetAssertion struct {
	Field  string
	Offset uint32
}

// TypeAssertion は一つの型についての表明。
type TypeAssertion struct {
	// FullName はエンティティの完全名。
	FullName string
	// TestName はテストメソッド名として使える識別子。
	TestName string
	// QualifiedName は名前空間付きの C++ の型名。
	QualifiedName string
	Size          uint32
	Offsets       []OffsetAssertion
}

// Collect は組み込みでないパッケージのクラスを全て並べ、その後に構造体を並べる。
func Collect(packages []*model.Package) []*model.Struct {
	var classes, structs []*model.Struct
	for _, pack := range packages {
		if pack.IsPredefined {
			continue
		}
		classes = append(classes, pack.Classes...)
		structs = append(structs, pack.Structs...)
	}
	return append(classes, structs...)
}

// Generate は各型について一つのサイズ表明と、static でもビットフィールドでもないフィールドごとの
// オフセット表明を作る。
func Generate(namespace string, structs []*model.Struct) ([]TypeAssertion, error) {
	assertions := make([]TypeAssertion, 0, len(structs))

	for _, s := range structs {
		a, err := generate(namespace, s)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, a)
	}

	return assertions, nil
}

func generate(namespace string, s *model.Struct) (TypeAssertion, error) {
	size, err := safecast.Conv[uint32](s.Size)
	if err != nil {
		return TypeAssertion{}, fmt.Errorf("%s size 0x%X: %w", s.NameCpp, s.Size, ErrOutOfRange)
	}

	a := TypeAssertion{
		FullName:      s.FullName,
		TestName:      testName(s.FullName),
		QualifiedName: qualifiedName(namespace, s.NameCpp),
		Size:          size,
	}

	for _, f := range s.Fields {
		if f.Static || f.IsBitField() {
			continue
		}

		offset, err := safecast.Conv[uint32](f.Offset)
		if err != nil {
			return TypeAssertion{}, fmt.Errorf("%s.%s offset 0x%X: %w", s.NameCpp, f.Name, f.Offset, ErrOutOfRange)
		}

		a.Offsets = append(a.Offsets, OffsetAssertion{
			Field:  model.StripMemberSuffix(f.Name),
			Offset: offset,
		})
	}

	return a, nil
}

var testNameReplacer = strings.NewReplacer(" ", "__", ".", "__", "-", "_")

func testName(fullName string) string {
	return testNameReplacer.Replace(fullName)
}

func qualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}
