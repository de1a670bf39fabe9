package model

// Index は名前からエンティティを引くための索引。
// 同じ Key を持つエンティティが複数ある場合は最初に現れたものが代表になる。
type Index struct {
	packages map[Key]*Package
	structs  map[Key]*Struct
	classes  map[Key]*Struct
	owners   map[Key]*Package

	// 名前が衝突しても個々のエンティティの所属は失われない
	structOwners map[*Struct]*Package
}

// NewIndex builds an index over packages in their collection order.
func NewIndex(packages []*Package) *Index {
	idx := &Index{
		packages: make(map[Key]*Package, len(packages)),
		structs:  make(map[Key]*Struct),
		classes:  make(map[Key]*Struct),
		owners:   make(map[Key]*Package),

		structOwners: make(map[*Struct]*Package),
	}

	for _, pack := range packages {
		if _, ok := idx.packages[pack.Key()]; !ok {
			idx.packages[pack.Key()] = pack
		}
		for _, c := range pack.Classes {
			idx.addStruct(idx.classes, pack, c)
		}
		for _, s := range pack.Structs {
			idx.addStruct(idx.structs, pack, s)
		}
		for _, e := range pack.Enums {
			if _, ok := idx.owners[Key(e.Name)]; !ok {
				idx.owners[Key(e.Name)] = pack
			}
		}
	}

	return idx
}

func (idx *Index) addStruct(m map[Key]*Struct, pack *Package, s *Struct) {
	if _, ok := m[s.Key()]; !ok {
		m[s.Key()] = s
	}
	if _, ok := idx.owners[s.Key()]; !ok {
		idx.owners[s.Key()] = pack
	}
	if _, ok := idx.structOwners[s]; !ok {
		idx.structOwners[s] = pack
	}
}

// Struct returns the struct named name, or nil.
func (idx *Index) Struct(name string) *Struct {
	return idx.structs[Key(name)]
}

// Class returns the class named name, or nil.
func (idx *Index) Class(name string) *Struct {
	return idx.classes[Key(name)]
}

// StructOrClass は構造体を優先して名前を解決し、見つからなければクラスを探す。
func (idx *Index) StructOrClass(name string) *Struct {
	if s := idx.Struct(name); s != nil {
		return s
	}
	return idx.Class(name)
}

// ClassOrStruct はクラスを優先して名前を解決し、見つからなければ構造体を探す。
func (idx *Index) ClassOrStruct(name string) *Struct {
	if c := idx.Class(name); c != nil {
		return c
	}
	return idx.Struct(name)
}

// Owner returns the package that declares the type named name, or nil.
func (idx *Index) Owner(name string) *Package {
	return idx.owners[Key(name)]
}

// OwnerOf returns the package that declares s itself, or nil if s is not indexed.
// 同名のクラスと構造体が別のパッケージにある場合も、名前ではなく s の所属を返す。
func (idx *Index) OwnerOf(s *Struct) *Package {
	return idx.structOwners[s]
}

// PackageByTypeName はパッケージ識別名、またはパッケージが宣言する型名からパッケージを解決する。
// 解決できない場合は nil を返す。
func (idx *Index) PackageByTypeName(name string) *Package {
	if pack, ok := idx.packages[Key(name)]; ok {
		return pack
	}
	return idx.Owner(name)
}
