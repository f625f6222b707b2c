package dataobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/typeinfo"
)

// propertyGettersSetters is a data object interface exercising every
// representable kind with a matching reader.
func propertyGettersSetters() *mirror.Declaration {
	api := &mirror.Declaration{Name: "ApiObject", Package: testPkg, Kind: mirror.KindInterface, API: true}
	empty := newDataObject("EmptyDataObject", mirror.KindClass)
	toJSON := newDataObject("ToJsonDataObject", mirror.KindClass)
	addToJSON(toJSON, "toJson")
	enumerated := &mirror.Declaration{Name: "Enumerated", Package: testPkg, Kind: mirror.KindEnum, Underlying: mirror.Basic("string")}

	d := newDataObject("PropertyGettersSetters", mirror.KindInterface)
	d.AddMember(&mirror.Member{Name: "dataObject", Kind: mirror.MemberMethod, Public: true, Static: true, Result: mirror.Ref(d)})
	d.AddMember(&mirror.Member{Name: "dataObjectFromJson", Kind: mirror.MemberMethod, Public: true, Static: true,
		Result: mirror.Ref(d), Params: []mirror.Param{{Name: "obj", Type: jsonObjectRef()}}})

	pairs := []struct {
		suffix string
		ref    *mirror.TypeRef
		reader string
	}{
		{"String", mirror.Basic("string"), "get"},
		{"BoxedInteger", mirror.Pointer(mirror.Basic("int32")), "get"},
		{"PrimitiveInteger", mirror.Basic("int32"), "get"},
		{"BoxedBoolean", mirror.Pointer(mirror.Basic("bool")), "is"},
		{"PrimitiveBoolean", mirror.Basic("bool"), "is"},
		{"BoxedLong", mirror.Pointer(mirror.Basic("int64")), "get"},
		{"PrimitiveLong", mirror.Basic("int64"), "get"},
		{"ApiObject", mirror.Ref(api), "get"},
		{"DataObject", mirror.Ref(empty), "get"},
		{"ToJsonDataObject", mirror.Ref(toJSON), "get"},
		{"JsonObject", jsonObjectRef(), "get"},
		{"JsonArray", jsonArrayRef(), "get"},
		{"Enumerated", mirror.Ref(enumerated), "get"},
	}
	for _, p := range pairs {
		addMutator(d, "set"+p.suffix, p.ref).Result = mirror.Ref(d)
		addReader(d, p.reader+p.suffix, p.ref)
	}
	return d
}

func TestProcess_PropertyGettersSetters(t *testing.T) {
	model, err := NewProcessor().Process(propertyGettersSetters())
	require.NoError(t, err)

	assert.False(t, model.IsClass())
	assert.False(t, model.IsConcrete())

	expected := []struct {
		name   string
		kind   typeinfo.Kind
		getter string
	}{
		{"apiObject", typeinfo.API, "getApiObject"},
		{"boxedBoolean", typeinfo.BoxedPrimitive, "isBoxedBoolean"},
		{"boxedInteger", typeinfo.BoxedPrimitive, "getBoxedInteger"},
		{"boxedLong", typeinfo.BoxedPrimitive, "getBoxedLong"},
		{"enumerated", typeinfo.Enum, "getEnumerated"},
		{"jsonArray", typeinfo.JSONArray, "getJsonArray"},
		{"jsonObject", typeinfo.JSONObject, "getJsonObject"},
		{"primitiveBoolean", typeinfo.Primitive, "isPrimitiveBoolean"},
		{"primitiveInteger", typeinfo.Primitive, "getPrimitiveInteger"},
		{"primitiveLong", typeinfo.Primitive, "getPrimitiveLong"},
		{"string", typeinfo.String, "getString"},
		{"toJsonDataObject", typeinfo.DataObject, "getToJsonDataObject"},
	}

	props := model.Properties()
	require.Len(t, props, len(expected))
	for i, want := range expected {
		p := props[i]
		assert.Equal(t, want.name, p.Name())
		assert.Equal(t, want.kind, p.Type().Kind, want.name)
		assert.Equal(t, want.getter, p.GetterMethod(), want.name)
		assert.Equal(t, "set"+p.Field(), p.SetterMethod(), want.name)
		assert.False(t, p.IsArray(), want.name)
		assert.True(t, p.DeclaredHere(), want.name)
		assert.True(t, p.IsJSONRepresentable(), want.name)
	}

	_, ok := model.Property("dataObject")
	assert.False(t, ok, "EmptyDataObject has no toJson")

	enum, _ := model.Property("enumerated")
	assert.Equal(t, "string", enum.Type().Basic)
}
