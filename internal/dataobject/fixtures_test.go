package dataobject

import (
	"github.com/toyz/dogen/internal/mirror"
)

const testPkg = "example.com/app/model"

var testModule = &mirror.ModuleInfo{Name: "app", Package: "example.com/app"}

func jsonObjectRef() *mirror.TypeRef {
	return mirror.Named("github.com/toyz/dogen/pkg/dogen", "JsonObject")
}

func jsonArrayRef() *mirror.TypeRef {
	return mirror.Named("github.com/toyz/dogen/pkg/dogen", "JsonArray")
}

func newDataObject(name string, kind mirror.ElementKind) *mirror.Declaration {
	return &mirror.Declaration{
		Name:       name,
		Package:    testPkg,
		Kind:       kind,
		DataObject: &mirror.DataObjectAnnotation{GenerateConverter: true},
		Module:     testModule,
	}
}

// newConcrete creates a data object class with the default, copy and JSON constructors
func newConcrete(name string) *mirror.Declaration {
	d := newDataObject(name, mirror.KindClass)
	addConstructor(d)
	addConstructor(d, mirror.Ref(d))
	addConstructor(d, jsonObjectRef())
	return d
}

func addConstructor(d *mirror.Declaration, params ...*mirror.TypeRef) *mirror.Member {
	m := &mirror.Member{Name: d.Name, Kind: mirror.MemberConstructor, Public: true}
	for _, p := range params {
		m.Params = append(m.Params, mirror.Param{Name: "other", Type: p})
	}
	return d.AddMember(m)
}

func addMutator(d *mirror.Declaration, name string, param *mirror.TypeRef) *mirror.Member {
	return d.AddMember(&mirror.Member{
		Name:     name,
		Kind:     mirror.MemberMethod,
		Public:   true,
		Abstract: d.Kind == mirror.KindInterface,
		Params:   []mirror.Param{{Name: "v", Type: param}},
	})
}

func addReader(d *mirror.Declaration, name string, result *mirror.TypeRef) *mirror.Member {
	return d.AddMember(&mirror.Member{
		Name:     name,
		Kind:     mirror.MemberMethod,
		Public:   true,
		Abstract: d.Kind == mirror.KindInterface,
		Result:   result,
	})
}

func addToJSON(d *mirror.Declaration, name string) *mirror.Member {
	return addReader(d, name, jsonObjectRef())
}
