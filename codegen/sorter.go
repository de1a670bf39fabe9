package codegen

import (
	"github.com/cgsdk/cppsdkgen/graph"
	"github.com/cgsdk/cppsdkgen/model"
)

// StructSortResult is the per-package outcome of SortStructsClassesInPackages.
type StructSortResult struct {
	Package *model.Package
	Classes *graph.Result[*model.Struct, model.Key]
	Structs *graph.Result[*model.Struct, model.Key]
}

// SortStructsClassesInPackages はパッケージ内のクラスと構造体を依存順に並べ替える。
//
// クラスは同じパッケージ内のクラスへの依存だけ、構造体は同じパッケージ内の構造体への依存だけを
// 辺として扱う。重複した名前は最初の一つにまとめられ、結果は依存先が先に並ぶ
// （Sorted の後ろに循環した要素が続く）。組み込みパッケージは並べ替えない。
func SortStructsClassesInPackages(packages []*model.Package) []StructSortResult {
	results := make([]StructSortResult, 0, len(packages))

	for _, pack := range packages {
		if pack.IsPredefined {
			continue
		}

		classes := sortLocal(pack.Classes)
		pack.Classes = classes.Full()

		structs := sortLocal(pack.Structs)
		pack.Structs = structs.Full()

		results = append(results, StructSortResult{
			Package: pack,
			Classes: classes,
			Structs: structs,
		})
	}

	return results
}

func sortLocal(items []*model.Struct) *graph.Result[*model.Struct, model.Key] {
	unique := graph.Unique(items, (*model.Struct).Key)

	local := make(map[model.Key]*model.Struct, len(unique))
	for _, s := range unique {
		local[s.Key()] = s
	}

	return graph.Sort(unique, (*model.Struct).Key, func(s *model.Struct) []*model.Struct {
		deps := make([]*model.Struct, 0, len(s.Dependencies))
		for _, k := range s.Dependencies {
			if dep, ok := local[k]; ok {
				deps = append(deps, dep)
			}
		}
		return deps
	})
}

// IncludeEntry is one package of the aggregate include order.
type IncludeEntry struct {
	Package *model.Package
	// Partner は循環のため非巡回の順序に置けなかったパッケージの衝突相手。それ以外は nil。
	Partner *model.Package
}

// PackageOrder is the ordered package list used to build the aggregate header.
type PackageOrder struct {
	Entries     []IncludeEntry
	SortedCount int
	CycleCount  int
}

// Packages returns the packages of o in include order.
func (o *PackageOrder) Packages() []*model.Package {
	packs := make([]*model.Package, 0, len(o.Entries))
	for _, e := range o.Entries {
		packs = append(packs, e.Package)
	}
	return packs
}

// Cycles returns the user package entries that carry a cycle partner.
// 組み込みパッケージは循環していても先頭の位置に残るため含まれない。
func (o *PackageOrder) Cycles() []IncludeEntry {
	var cycles []IncludeEntry
	for _, e := range o.Entries {
		if e.Partner != nil && !e.Package.IsPredefined {
			cycles = append(cycles, e)
		}
	}
	return cycles
}

// SortPackages はパッケージ間の依存に従ってインクルード順を決める。
//
// 組み込みパッケージは循環に含まれていても常に先頭に置かれる。続いてユーザーのパッケージが依存先から順に並び、
// 最後に循環のため順序付けできなかったパッケージが衝突相手とともに並ぶ。
func SortPackages(packages []*model.Package) *PackageOrder {
	idx := model.NewIndex(packages)

	result := graph.Sort(packages, (*model.Package).Key, func(p *model.Package) []*model.Package {
		return PackageDependencies(idx, p)
	})

	order := &PackageOrder{
		Entries:     make([]IncludeEntry, 0, len(packages)),
		SortedCount: len(result.Sorted),
		CycleCount:  len(result.Cycles),
	}

	entry := func(p *model.Package) IncludeEntry {
		partner, _ := result.Partner(p)
		return IncludeEntry{Package: p, Partner: partner}
	}

	for _, p := range result.Full() {
		if p.IsPredefined {
			order.Entries = append(order.Entries, entry(p))
		}
	}

	for _, p := range result.Sorted {
		if !p.IsPredefined {
			order.Entries = append(order.Entries, entry(p))
		}
	}

	for _, c := range result.Cycles {
		if !c.Item.IsPredefined {
			order.Entries = append(order.Entries, IncludeEntry{Package: c.Item, Partner: c.Dependency})
		}
	}

	return order
}
