package codegen

import (
	"slices"

	"github.com/cgsdk/cppsdkgen/model"
)

// ExtractDependencies populates Struct.Dependencies and Package.Dependencies in place.
//
// 対象はユーザーが逆解析したパッケージのみ。組み込みパッケージの型は完全であるとみなす。
// 名前が解決できない参照はスコープ外の型を指しているとみなし、黙って無視する。
func ExtractDependencies(packages []*model.Package) {
	idx := model.NewIndex(packages)

	for _, pack := range packages {
		if pack.IsPredefined {
			continue
		}

		// 自分自身の名前は依存として扱わない
		pack.Dependencies = slices.DeleteFunc(pack.Dependencies, func(name string) bool {
			return name == pack.CppName
		})

		// クラスはクラスを優先して解決する
		for _, c := range pack.Classes {
			extractStructDependencies(idx, pack, c, idx.ClassOrStruct)
		}

		// 構造体は構造体を優先して解決する
		for _, s := range pack.Structs {
			extractStructDependencies(idx, pack, s, idx.StructOrClass)
		}
	}
}

func extractStructDependencies(idx *model.Index, pack *model.Package, s *model.Struct, resolve func(string) *model.Struct) {
	add := func(name string) {
		dep := resolve(name)
		if dep == nil || dep.Key() == s.Key() {
			return
		}
		s.AddDependency(dep.Key())

		// 他パッケージの型に依存する場合はパッケージ間の依存も記録する
		if owner := idx.OwnerOf(dep); owner != nil && owner != pack {
			pack.AddDependency(owner.CppName)
		}
	}

	for _, super := range s.Supers {
		add(super.CppName)
	}

	for _, field := range s.Fields {
		for _, name := range model.DependencyNames(field.Type) {
			add(name)
		}
	}

	for _, method := range s.Methods {
		for _, param := range method.Parameters {
			for _, name := range model.DependencyNames(param.Type) {
				add(name)
			}
		}
	}
}

// PackageDependencies resolves the declared dependency names of pack to packages.
//
// 自分自身と解決できない名前は除かれ、同じパッケージに解決された名前は最初の一つだけが残る。
func PackageDependencies(idx *model.Index, pack *model.Package) []*model.Package {
	deps := make([]*model.Package, 0, len(pack.Dependencies))
	seen := make(map[model.Key]struct{}, len(pack.Dependencies))

	for _, name := range pack.Dependencies {
		dep := idx.PackageByTypeName(name)
		if dep == nil || dep.Key() == pack.Key() {
			continue
		}
		if _, ok := seen[dep.Key()]; ok {
			continue
		}
		seen[dep.Key()] = struct{}{}
		deps = append(deps, dep)
	}

	return deps
}
