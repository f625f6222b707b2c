package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		name     string
		ref      *TypeRef
		expected string
	}{
		{"basic", Basic("int"), "int"},
		{"pointer", Pointer(Basic("bool")), "*bool"},
		{"slice of named", Slice(Named("example.com/a/b", "Item")), "[]b.Item"},
		{"map", Map(Basic("string"), Any()), "map[string]any"},
		{"generic", Named("example.com/x", "Box", Basic("int"), TypeParam("T")), "x.Box[int, T]"},
		{"local", Named("", "Local"), "Local"},
		{"other", Other("func()"), "func()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ref.String())
		})
	}
}

func TestTypeRefEqual(t *testing.T) {
	decl := &Declaration{Name: "Item", Package: "example.com/a"}

	assert.True(t, Basic("int").Equal(Basic("int")))
	assert.False(t, Basic("int").Equal(Basic("int64")))
	assert.True(t, Slice(Pointer(Basic("int"))).Equal(Slice(Pointer(Basic("int")))))
	assert.False(t, Slice(Basic("int")).Equal(Pointer(Basic("int"))))
	assert.True(t, Ref(decl).Equal(Named("example.com/a", "Item")))
	assert.False(t, Named("example.com/a", "Item").Equal(Named("example.com/b", "Item")))
	assert.True(t, Map(Basic("string"), Any()).Equal(Map(Basic("string"), Any())))

	var nilRef *TypeRef
	assert.True(t, nilRef.Equal(nil))
	assert.False(t, nilRef.Equal(Basic("int")))
}

func TestHasTypeParams(t *testing.T) {
	assert.True(t, TypeParam("T").HasTypeParams())
	assert.True(t, Slice(TypeParam("T")).HasTypeParams())
	assert.True(t, Named("p", "Box", TypeParam("T")).HasTypeParams())
	assert.True(t, Map(Basic("string"), TypeParam("V")).HasTypeParams())
	assert.False(t, Map(Basic("string"), Any()).HasTypeParams())
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "example.com/a.Item", Named("example.com/a", "Item").QualifiedName())
	assert.Equal(t, "[]int", Slice(Basic("int")).QualifiedName())
}
