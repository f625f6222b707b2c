package parser

import (
	"go/types"
	"sort"

	"github.com/toyz/dogen/internal/mirror"
)

// linkImplementedInterfaces adds to every data object struct the data object
// interfaces its pointer type implements and that are not already reachable
// through an embedded field.
func (sc *scan) linkImplementedInterfaces(decls []*mirror.Declaration) {
	var ifaces []*mirror.Declaration
	for _, d := range decls {
		if d.Kind == mirror.KindInterface && len(d.TypeParams) == 0 {
			ifaces = append(ifaces, d)
		}
	}
	sortByName(ifaces)

	for _, d := range decls {
		if d.Kind != mirror.KindClass || len(d.TypeParams) > 0 {
			continue
		}
		ptr := types.NewPointer(sc.named[d])
		var superPtr types.Type
		if sup := d.SuperclassDecl(); sup != nil && sc.named[sup] != nil {
			superPtr = types.NewPointer(sc.named[sup])
		}
		for _, i := range ifaces {
			iface, ok := sc.named[i].Underlying().(*types.Interface)
			if !ok || hasInterface(d, i) || !types.Implements(ptr, iface) {
				continue
			}
			if superPtr != nil && types.Implements(superPtr, iface) {
				continue
			}
			d.Interfaces = append(d.Interfaces, mirror.Ref(i))
		}
	}
}

func hasInterface(d *mirror.Declaration, iface *mirror.Declaration) bool {
	for _, ref := range d.Interfaces {
		if ref.Decl == iface {
			return true
		}
	}
	return false
}

// sortAncestorsFirst orders declarations so that every ancestor within the
// set precedes its descendants. Unrelated declarations are ordered by
// qualified name.
func sortAncestorsFirst(decls []*mirror.Declaration) []*mirror.Declaration {
	sorted := append([]*mirror.Declaration(nil), decls...)
	sortByName(sorted)

	in := make(map[*mirror.Declaration]bool, len(sorted))
	for _, d := range sorted {
		in[d] = true
	}

	out := make([]*mirror.Declaration, 0, len(sorted))
	visited := make(map[*mirror.Declaration]bool, len(sorted))
	var visit func(d *mirror.Declaration)
	visit = func(d *mirror.Declaration) {
		if visited[d] {
			return
		}
		visited[d] = true
		var parents []*mirror.Declaration
		if sup := d.SuperclassDecl(); sup != nil && in[sup] {
			parents = append(parents, sup)
		}
		for _, ref := range d.Interfaces {
			if ref.Decl != nil && in[ref.Decl] {
				parents = append(parents, ref.Decl)
			}
		}
		sortByName(parents)
		for _, p := range parents {
			visit(p)
		}
		out = append(out, d)
	}
	for _, d := range sorted {
		visit(d)
	}
	return out
}

func sortByName(decls []*mirror.Declaration) {
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].QualifiedName() < decls[j].QualifiedName()
	})
}
