// Package graph はグラフに依存しないトポロジカルソートを提供する。
//
// 順序の規約: Sorted と Full が返すリストはどちらも依存先が先に並ぶ。
// リストの後ろにある要素は前にある要素を参照してよいが、その逆は成り立たない。
// 呼び出し側でリストを反転してはならない。
package graph

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// Cycle は非巡回の順序に置けなかった要素と、それが衝突した依存先の一つを表す。
type Cycle[T any] struct {
	Item       T
	Dependency T
}

// Result is the outcome of one Sort call.
type Result[T any, K comparable] struct {
	// Sorted is a dependency-first order of every item that could be placed acyclically.
	Sorted []T
	// Cycles lists the items that closed a cycle, in detection order.
	Cycles []Cycle[T]

	key    func(T) K
	cycles map[K]int
}

// Full returns Sorted followed by the items of Cycles.
func (r *Result[T, K]) Full() []T {
	full := make([]T, 0, len(r.Sorted)+len(r.Cycles))
	full = append(full, r.Sorted...)
	for _, c := range r.Cycles {
		full = append(full, c.Item)
	}
	return full
}

// InCycle reports whether item was placed through the cycle report.
func (r *Result[T, K]) InCycle(item T) bool {
	_, ok := r.cycles[r.key(item)]
	return ok
}

// Partner returns the conflicting dependency recorded for item.
func (r *Result[T, K]) Partner(item T) (T, bool) {
	i, ok := r.cycles[r.key(item)]
	if !ok {
		var zero T
		return zero, false
	}
	return r.Cycles[i].Dependency, true
}

type sorter[T any, K comparable] struct {
	key     func(T) K
	deps    func(T) []T
	members map[K]T
	states  map[K]visitState
	result  *Result[T, K]
}

// Sort は items を依存先が先に来るよう並べ、循環を報告する。
//
// key は要素の同一性を返す。同じ key を持つ要素は最初のものだけが出力に現れる。
// deps が items に含まれない要素を返した場合、その辺は無視される。
// 入力と依存の列挙順は保たれるため、同じ入力からは常に同じ結果が得られる。
func Sort[T any, K comparable](items []T, key func(T) K, deps func(T) []T) *Result[T, K] {
	s := &sorter[T, K]{
		key:     key,
		deps:    deps,
		members: make(map[K]T, len(items)),
		states:  make(map[K]visitState, len(items)),
		result: &Result[T, K]{
			Sorted: make([]T, 0, len(items)),
			key:    key,
			cycles: make(map[K]int),
		},
	}

	for _, item := range items {
		if _, ok := s.members[key(item)]; !ok {
			s.members[key(item)] = item
		}
	}

	for _, item := range items {
		s.visit(s.members[key(item)])
	}

	return s.result
}

// visit は item が処理中（後退辺）の場合だけ false を返す。
func (s *sorter[T, K]) visit(item T) bool {
	k := s.key(item)

	switch s.states[k] {
	case inProgress:
		return false
	case done:
		return true
	case unvisited:
	}

	s.states[k] = inProgress

	for _, d := range s.deps(item) {
		dk := s.key(d)
		// deps が返した別のインスタンスではなく入力の要素を使う
		dep, ok := s.members[dk]
		if !ok {
			continue
		}
		// 循環が既知の要素は再処理しない
		if _, ok := s.result.cycles[dk]; ok {
			continue
		}
		if s.visit(dep) {
			continue
		}

		s.result.cycles[k] = len(s.result.Cycles)
		s.result.Cycles = append(s.result.Cycles, Cycle[T]{Item: item, Dependency: dep})
		break
	}

	s.states[k] = done

	if _, ok := s.result.cycles[k]; !ok {
		s.result.Sorted = append(s.result.Sorted, item)
	}

	return true
}

// Unique は key が重複する要素を取り除く。最初に現れた要素が残る。
func Unique[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
