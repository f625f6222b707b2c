package parser

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
)

// declaration converts a named type into a mirror declaration. Declarations
// are cached before their members are filled so that self and mutually
// referencing types terminate. Types outside the loaded root packages get a
// shallow declaration with no members or ancestors.
func (sc *scan) declaration(obj *types.TypeName) *mirror.Declaration {
	if d, ok := sc.decls[obj]; ok {
		return d
	}

	d := &mirror.Declaration{
		Name: obj.Name(),
		Kind: mirror.KindOther,
		Pos:  sc.position(obj.Pos()),
	}
	if obj.Pkg() != nil {
		d.Package = obj.Pkg().Path()
	}
	sc.decls[obj] = d

	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return d
	}
	sc.named[d] = named

	if tparams := named.TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			d.TypeParams = append(d.TypeParams, tparams.At(i).Obj().Name())
		}
	}

	if ann, ok := sc.typeDocs[obj]; ok {
		d.Doc = ann.doc
		d.API = ann.api
		if ann.dataObject != nil {
			d.DataObject = &mirror.DataObjectAnnotation{
				GenerateConverter: ann.dataObject.GetBool(GenerateConverterParam),
				InheritConverter:  ann.dataObject.GetBool(InheritConverterParam),
			}
		}
	}
	d.Module = sc.resolveModule(d.Package)

	_, root := sc.roots[d.Package]
	switch under := named.Underlying().(type) {
	case *types.Struct:
		d.Kind = mirror.KindClass
		if ann, ok := sc.typeDocs[obj]; ok && ann.dataObject != nil {
			d.Abstract = ann.dataObject.GetBool(AbstractParam)
		}
		if root {
			sc.fillClass(d, named, under)
		}
	case *types.Interface:
		d.Kind = mirror.KindInterface
		d.Abstract = true
		if root {
			sc.fillInterface(d, under)
		}
	case *types.Basic:
		if hasConstants(obj) {
			d.Kind = mirror.KindEnum
			d.Underlying = mirror.Basic(under.Name())
		}
	}
	return d
}

// fillClass converts the embedded fields, methods and constructors of a struct.
// An embedded struct is the class ancestor. An embedded interface is an
// interface ancestor.
func (sc *scan) fillClass(d *mirror.Declaration, named *types.Named, st *types.Struct) {
	var supers []*types.Named
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		t := types.Unalias(f.Type())
		if ptr, ok := t.(*types.Pointer); ok {
			t = types.Unalias(ptr.Elem())
		}
		n, ok := t.(*types.Named)
		if !ok {
			continue
		}
		switch n.Underlying().(type) {
		case *types.Struct:
			supers = append(supers, n)
		case *types.Interface:
			d.Interfaces = append(d.Interfaces, sc.typeRef(n))
		}
	}

	switch {
	case len(supers) == 1:
		d.Superclass = sc.typeRef(supers[0])
	case len(supers) > 1:
		names := make([]string, len(supers))
		for i, n := range supers {
			names[i] = n.Obj().Name()
		}
		if d.IsDataObject() {
			sc.fail(d, errors.NewStructuralError(d.QualifiedName(), errors.MultipleClassAncestors,
				fmt.Sprintf("data object %s embeds more than one struct (%s)", d.QualifiedName(), strings.Join(names, ", "))).
				WithLocation(d.Pos).
				WithSuggestion("embed a single struct and turn the others into named fields"))
		}
		d.Superclass = sc.typeRef(supers[0])
	}

	for i := 0; i < named.NumMethods(); i++ {
		d.AddMember(sc.method(named.Method(i), false))
	}
	sc.addConstructors(d, named)
}

func (sc *scan) fillInterface(d *mirror.Declaration, iface *types.Interface) {
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if n, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named); ok {
			d.Interfaces = append(d.Interfaces, sc.typeRef(n))
		}
	}
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		d.AddMember(sc.method(iface.ExplicitMethod(i), true))
	}
}

// addConstructors adds every package function named New<Type>... whose single
// result is the type or a pointer to it.
func (sc *scan) addConstructors(d *mirror.Declaration, named *types.Named) {
	obj := named.Obj()
	scope := obj.Pkg().Scope()
	prefix := ConstructorPrefix + obj.Name()
	for _, name := range scope.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if sig.TypeParams() != nil || sig.Results().Len() != 1 || !returns(sig.Results().At(0).Type(), obj) {
			continue
		}
		ctor := sc.method(fn, false)
		ctor.Kind = mirror.MemberConstructor
		ctor.Static = true
		d.AddMember(ctor)
	}
}

func returns(t types.Type, obj *types.TypeName) bool {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}
	n, ok := t.(*types.Named)
	return ok && n.Obj() == obj
}

// method converts a method or function signature
func (sc *scan) method(fn *types.Func, abstract bool) *mirror.Member {
	sig := fn.Type().(*types.Signature)
	m := &mirror.Member{
		Name:     fn.Name(),
		Kind:     mirror.MemberMethod,
		Public:   fn.Exported(),
		Abstract: abstract,
		Pos:      sc.position(fn.Pos()),
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		m.Params = append(m.Params, mirror.Param{Name: p.Name(), Type: sc.typeRef(p.Type())})
	}
	switch sig.Results().Len() {
	case 0:
	case 1:
		m.Result = sc.typeRef(sig.Results().At(0).Type())
	default:
		m.Result = mirror.Other(types.TypeString(sig.Results(), nil))
	}
	if info, ok := sc.methods[fn]; ok {
		m.Doc = info.doc
		m.Ignored = info.ignored
	}
	return m
}

// typeRef converts a go/types type into a mirror reference
func (sc *scan) typeRef(t types.Type) *mirror.TypeRef {
	switch t := types.Unalias(t).(type) {
	case *types.Basic:
		return mirror.Basic(t.Name())
	case *types.Pointer:
		return mirror.Pointer(sc.typeRef(t.Elem()))
	case *types.Slice:
		return mirror.Slice(sc.typeRef(t.Elem()))
	case *types.Map:
		return mirror.Map(sc.typeRef(t.Key()), sc.typeRef(t.Elem()))
	case *types.TypeParam:
		return mirror.TypeParam(t.Obj().Name())
	case *types.Interface:
		if t.Empty() {
			return mirror.Any()
		}
		return mirror.Other(types.TypeString(t, nil))
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return mirror.Other(obj.Name())
		}
		ref := &mirror.TypeRef{
			Kind:    mirror.RefNamed,
			Name:    obj.Name(),
			Package: obj.Pkg().Path(),
			Decl:    sc.declaration(obj),
		}
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				ref.Args = append(ref.Args, sc.typeRef(args.At(i)))
			}
		}
		return ref
	default:
		return mirror.Other(types.TypeString(t, nil))
	}
}

// hasConstants reports whether the package declaring obj declares constants of that type
func hasConstants(obj *types.TypeName) bool {
	if obj.Pkg() == nil {
		return false
	}
	scope := obj.Pkg().Scope()
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), obj.Type()) {
			return true
		}
	}
	return false
}

func (sc *scan) fail(d *mirror.Declaration, err error) {
	sc.failed[d] = true
	sc.errs = multierror.Append(sc.errs, err)
}
