package typeinfo

import (
	"fmt"

	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/utils"
)

const (
	// DefaultJSONObjectType is the runtime JSON object type recognized by default
	DefaultJSONObjectType = "github.com/toyz/dogen/pkg/dogen.JsonObject"
	// DefaultJSONArrayType is the runtime JSON array type recognized by default
	DefaultJSONArrayType = "github.com/toyz/dogen/pkg/dogen.JsonArray"
)

// Classifier maps a raw type handle to its classification
type Classifier interface {
	Classify(ref *mirror.TypeRef) (*TypeInfo, error)
}

// Option configures a Factory
type Option func(*Factory)

// WithJSONObjectTypes registers additional qualified type names treated as JSON objects
func WithJSONObjectTypes(names ...string) Option {
	return func(f *Factory) {
		for _, n := range names {
			f.jsonObjects[n] = true
		}
	}
}

// WithJSONArrayTypes registers additional qualified type names treated as JSON arrays
func WithJSONArrayTypes(names ...string) Option {
	return func(f *Factory) {
		for _, n := range names {
			f.jsonArrays[n] = true
		}
	}
}

// Factory is the default Classifier. Results are memoized per type handle.
type Factory struct {
	jsonObjects map[string]bool
	jsonArrays  map[string]bool
	cache       *utils.Cache[*mirror.TypeRef, *TypeInfo]
}

// NewFactory creates a classifier recognizing the runtime JSON types plus any configured ones
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		jsonObjects: map[string]bool{DefaultJSONObjectType: true},
		jsonArrays:  map[string]bool{DefaultJSONArrayType: true},
		cache:       utils.NewCache[*mirror.TypeRef, *TypeInfo](),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Classify returns the classification of ref
func (f *Factory) Classify(ref *mirror.TypeRef) (*TypeInfo, error) {
	if ref == nil {
		return nil, errors.NewTypeResolutionError("<nil>", "missing type")
	}
	return f.cache.GetOrCompute(ref, func() (*TypeInfo, error) {
		return f.classify(ref)
	})
}

func (f *Factory) classify(ref *mirror.TypeRef) (*TypeInfo, error) {
	switch ref.Kind {
	case mirror.RefTypeParam:
		return nil, errors.NewTypeResolutionError(ref.Name,
			fmt.Sprintf("type parameter %s cannot be classified", ref.Name))

	case mirror.RefBasic:
		kind := Primitive
		if ref.Name == "string" {
			kind = String
		}
		return &TypeInfo{Kind: kind, Name: ref.Name, SimpleName: ref.Name, Basic: ref.Name, Ref: ref}, nil

	case mirror.RefPointer:
		switch ref.Elem.Kind {
		case mirror.RefBasic:
			name := ref.String()
			return &TypeInfo{Kind: BoxedPrimitive, Name: name, SimpleName: name, Basic: ref.Elem.Name, Pointer: true, Ref: ref}, nil
		case mirror.RefNamed:
			inner, err := f.Classify(ref.Elem)
			if err != nil {
				return nil, err
			}
			pointed := *inner
			pointed.Pointer = true
			pointed.Ref = ref
			return &pointed, nil
		}
		if ref.HasTypeParams() {
			return nil, errors.NewTypeResolutionError(ref.String(), "generic types cannot be classified")
		}
		return f.other(ref), nil

	case mirror.RefSlice:
		if ref.Elem.Kind == mirror.RefInterface {
			return &TypeInfo{Kind: JSONArray, Name: ref.String(), SimpleName: ref.String(), Ref: ref}, nil
		}
		elem, err := f.Classify(ref.Elem)
		if err != nil {
			return nil, err
		}
		return &TypeInfo{Kind: List, Name: ref.String(), SimpleName: ref.String(), Elem: elem, Ref: ref}, nil

	case mirror.RefMap:
		if ref.Key.IsBasic("string") && ref.Elem.Kind == mirror.RefInterface {
			return &TypeInfo{Kind: JSONObject, Name: ref.String(), SimpleName: ref.String(), Ref: ref}, nil
		}
		if ref.HasTypeParams() {
			return nil, errors.NewTypeResolutionError(ref.String(), "generic types cannot be classified")
		}
		return f.other(ref), nil

	case mirror.RefNamed:
		return f.classifyNamed(ref)
	}

	return f.other(ref), nil
}

func (f *Factory) classifyNamed(ref *mirror.TypeRef) (*TypeInfo, error) {
	if ref.HasTypeParams() {
		return nil, errors.NewTypeResolutionError(ref.String(),
			fmt.Sprintf("generic type %s cannot be classified", ref.String()))
	}

	info := &TypeInfo{
		Kind:       Other,
		Name:       ref.QualifiedName(),
		SimpleName: ref.Name,
		Package:    ref.Package,
		Ref:        ref,
		Decl:       ref.Decl,
	}

	switch {
	case f.jsonObjects[info.Name]:
		info.Kind = JSONObject
	case f.jsonArrays[info.Name]:
		info.Kind = JSONArray
	case ref.Decl == nil:
	case ref.Decl.IsDataObject():
		info.Kind = DataObject
	case ref.Decl.API:
		info.Kind = API
	case ref.Decl.Kind == mirror.KindEnum:
		info.Kind = Enum
		if ref.Decl.Underlying != nil {
			info.Basic = ref.Decl.Underlying.Name
		}
	}
	return info, nil
}

func (f *Factory) other(ref *mirror.TypeRef) *TypeInfo {
	return &TypeInfo{Kind: Other, Name: ref.QualifiedName(), SimpleName: ref.String(), Ref: ref}
}
