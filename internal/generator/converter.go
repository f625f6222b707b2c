package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/templates"
	"github.com/toyz/dogen/internal/typeinfo"
)

var numericBasics = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"byte": true, "rune": true, "float32": true, "float64": true,
}

// converter renders the statements of one converter file
type converter struct {
	model      *models.DataObjectModel
	registry   *models.Registry
	imports    *templates.ImportManager
	runtime    string
	boxedLists bool
	logger     *slog.Logger
}

func newConverter(g *Generator, model *models.DataObjectModel) *converter {
	im := templates.NewImportManager(model.Package())
	return &converter{
		model:      model,
		registry:   g.registry,
		imports:    im,
		runtime:    im.AddImport(RuntimePackage),
		boxedLists: g.boxedAdderReaders,
		logger:     g.logger.With("type", model.FQN()),
	}
}

// data collects the template input. Properties the converter cannot handle
// in one direction are left out of that direction and logged.
func (c *converter) data(packageName string) templates.ConverterData {
	d := templates.ConverterData{
		FQN:         c.model.FQN(),
		PackageName: packageName,
		TypeName:    c.model.SimpleName(),
		ObjectType:  c.model.SimpleName(),
		Runtime:     c.runtime,
	}
	if c.model.IsClass() {
		d.ObjectType = "*" + d.ObjectType
	}

	for _, p := range c.properties() {
		if code, ok := c.decoder(p); ok {
			d.Decoders = append(d.Decoders, templates.PropertyCode{Name: p.Name(), Code: code})
		} else {
			c.logger.Debug("property not decoded", "property", p.Name(), "kind", p.Type().Kind.String())
		}
		if !p.IsReadable() {
			continue
		}
		if code, ok := c.encoder(p); ok {
			d.Encoders = append(d.Encoders, templates.PropertyCode{Name: p.Name(), Code: code})
		} else {
			c.logger.Debug("property not encoded", "property", p.Name(), "kind", p.Type().Kind.String())
		}
	}
	d.Imports = c.imports.GenerateImports()
	return d
}

// properties returns the JSON representable properties handled by the
// converter. Inherited ones are included only when the model inherits its
// ancestors' converters.
func (c *converter) properties() []*models.PropertyInfo {
	var out []*models.PropertyInfo
	for _, p := range c.model.Properties() {
		if !p.IsJSONRepresentable() {
			continue
		}
		if !p.DeclaredHere() && !c.model.InheritConverter() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *converter) decoder(p *models.PropertyInfo) (string, bool) {
	var lines []string
	emit := func(depth int, format string, args ...interface{}) {
		lines = append(lines, strings.Repeat("\t", depth)+fmt.Sprintf(format, args...))
	}

	emit(1, "if v, ok := json[%s]; ok && v != nil {", templates.Quote(p.Name()))
	if !p.IsArray() {
		value, ok := c.decodeValue(p.Type(), "v", "val", p.Name())
		if !ok {
			return "", false
		}
		for _, l := range value {
			emit(2, "%s", l)
		}
		emit(2, "obj.%s(val)", p.SetterMethod())
		emit(1, "}")
		return strings.Join(lines, "\n"), true
	}

	value, ok := c.decodeValue(p.Type(), "item", "val", p.Name())
	if !ok {
		return "", false
	}
	emit(2, "arr, ok := %s.AsArray(v)", c.runtime)
	emit(2, "if !ok {")
	emit(3, "%s", c.conversionError(p.Name(), "array", "v"))
	emit(2, "}")
	if !p.IsAdder() {
		emit(2, "list := make([]%s, 0, len(arr))", c.typeExpr(p.Type().Ref))
	}
	emit(2, "for _, item := range arr {")
	emit(3, "if item == nil {")
	emit(4, "continue")
	emit(3, "}")
	for _, l := range value {
		emit(3, "%s", l)
	}
	if p.IsAdder() {
		emit(3, "obj.%s(val)", p.SetterMethod())
		emit(2, "}")
	} else {
		emit(3, "list = append(list, val)")
		emit(2, "}")
		emit(2, "obj.%s(list)", p.SetterMethod())
	}
	emit(1, "}")
	return strings.Join(lines, "\n"), true
}

func (c *converter) encoder(p *models.PropertyInfo) (string, bool) {
	key := templates.Quote(p.Name())
	getter := "obj." + p.GetterMethod() + "()"

	if !p.IsArray() {
		v, ok := c.encodeValue(p.Type(), "val")
		if !ok {
			return "", false
		}
		switch {
		case v.guard != "":
			return fmt.Sprintf("\tif val := %s; %s {\n\t\tjson[%s] = %s\n\t}", getter, v.guard, key, v.expr), true
		case v.addressable:
			return fmt.Sprintf("\t{\n\t\tval := %s\n\t\tjson[%s] = %s\n\t}", getter, key, v.expr), true
		default:
			direct, _ := c.encodeValue(p.Type(), getter)
			return fmt.Sprintf("\tjson[%s] = %s", key, direct.expr), true
		}
	}

	elem := p.Type()
	if p.IsAdder() && c.boxedLists && elem.Kind == typeinfo.Primitive {
		boxed := *elem
		boxed.Kind = typeinfo.BoxedPrimitive
		boxed.Pointer = true
		elem = &boxed
	}
	v, ok := c.encodeValue(elem, "item")
	if !ok {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\tif list := %s; list != nil {\n", getter)
	fmt.Fprintf(&b, "\t\tarr := make(%s.JsonArray, 0, len(list))\n", c.runtime)
	b.WriteString("\t\tfor _, item := range list {\n")
	if v.guard != "" {
		b.WriteString("\t\t\tif item == nil {\n")
		b.WriteString("\t\t\t\tarr = append(arr, nil)\n")
		b.WriteString("\t\t\t\tcontinue\n")
		b.WriteString("\t\t\t}\n")
	}
	fmt.Fprintf(&b, "\t\t\tarr = append(arr, %s)\n", v.expr)
	b.WriteString("\t\t}\n")
	fmt.Fprintf(&b, "\t\tjson[%s] = arr\n", key)
	b.WriteString("\t}")
	return b.String(), true
}

// decodeValue returns the statements declaring dst from the JSON value src
func (c *converter) decodeValue(ti *typeinfo.TypeInfo, src, dst, prop string) ([]string, bool) {
	switch ti.Kind {
	case typeinfo.String, typeinfo.Primitive:
		return c.decodeBasic(ti.Basic, src, dst, prop)

	case typeinfo.BoxedPrimitive:
		lines, ok := c.decodeBasic(ti.Basic, src, dst+"Value", prop)
		if !ok {
			return nil, false
		}
		return append(lines, fmt.Sprintf("%s := &%sValue", dst, dst)), true

	case typeinfo.Enum:
		lines, ok := c.decodeBasic(ti.Basic, src, dst+"Raw", prop)
		if !ok {
			return nil, false
		}
		name := c.imports.Qualify(ti.Package, ti.SimpleName)
		if ti.Pointer {
			return append(lines,
				fmt.Sprintf("%sValue := %s(%sRaw)", dst, name, dst),
				fmt.Sprintf("%s := &%sValue", dst, dst)), true
		}
		return append(lines, fmt.Sprintf("%s := %s(%sRaw)", dst, name, dst)), true

	case typeinfo.API:
		t := c.typeExpr(ti.Ref)
		return c.checked(fmt.Sprintf("%s, ok := %s.(%s)", dst, src, t), src, prop, t), true

	case typeinfo.JSONObject, typeinfo.JSONArray:
		if ti.Pointer {
			return nil, false
		}
		fn, expected, runtimeType := "AsObject", "object", typeinfo.DefaultJSONObjectType
		if ti.Kind == typeinfo.JSONArray {
			fn, expected, runtimeType = "AsArray", "array", typeinfo.DefaultJSONArrayType
		}
		if ti.Name == runtimeType {
			return c.checked(fmt.Sprintf("%s, ok := %s.%s(%s)", dst, c.runtime, fn, src), src, prop, expected), true
		}
		lines := c.checked(fmt.Sprintf("%sRaw, ok := %s.%s(%s)", dst, c.runtime, fn, src), src, prop, expected)
		return append(lines, fmt.Sprintf("%s := %s(%sRaw)", dst, c.typeExpr(ti.Ref), dst)), true

	case typeinfo.DataObject:
		return c.decodeDataObject(ti, src, dst, prop)
	}
	return nil, false
}

// decodeDataObject builds a nested data object through its JSON constructor
func (c *converter) decodeDataObject(ti *typeinfo.TypeInfo, src, dst, prop string) ([]string, bool) {
	target, ok := c.registry.Lookup(ti.Name)
	if !ok || target.Constructors().JSON == "" || ti.Decl == nil {
		return nil, false
	}
	var ctor *mirror.Member
	for _, m := range ti.Decl.Constructors() {
		if m.Name == target.Constructors().JSON {
			ctor = m
			break
		}
	}
	if ctor == nil || len(ctor.Params) != 1 {
		return nil, false
	}

	lines := c.checked(fmt.Sprintf("%sRaw, ok := %s.AsObject(%s)", dst, c.runtime, src), src, prop, "object")
	arg := dst + "Raw"
	if param := ctor.Params[0].Type; param.Kind != mirror.RefMap && param.QualifiedName() != typeinfo.DefaultJSONObjectType {
		arg = fmt.Sprintf("%s(%s)", c.typeExpr(param), arg)
	}
	call := fmt.Sprintf("%s(%s)", c.imports.Qualify(ti.Package, ctor.Name), arg)

	returnsPointer := ctor.Result != nil && ctor.Result.Kind == mirror.RefPointer
	switch {
	case returnsPointer == ti.Pointer:
		lines = append(lines, fmt.Sprintf("%s := %s", dst, call))
	case returnsPointer:
		lines = append(lines, fmt.Sprintf("%s := *%s", dst, call))
	default:
		lines = append(lines,
			fmt.Sprintf("%sValue := %s", dst, call),
			fmt.Sprintf("%s := &%sValue", dst, dst))
	}
	return lines, true
}

func (c *converter) decodeBasic(basic, src, dst, prop string) ([]string, bool) {
	var call string
	switch {
	case basic == "string":
		call = fmt.Sprintf("%s.AsString(%s)", c.runtime, src)
	case basic == "bool":
		call = fmt.Sprintf("%s.AsBool(%s)", c.runtime, src)
	case numericBasics[basic]:
		call = fmt.Sprintf("%s.AsNumber[%s](%s)", c.runtime, basic, src)
	default:
		return nil, false
	}
	return c.checked(fmt.Sprintf("%s, ok := %s", dst, call), src, prop, basic), true
}

// checked follows an "x, ok :=" statement with the failure branch
func (c *converter) checked(stmt, src, prop, expected string) []string {
	return []string{
		stmt,
		"if !ok {",
		"\t" + c.conversionError(prop, expected, src),
		"}",
	}
}

func (c *converter) conversionError(prop, expected, src string) string {
	return fmt.Sprintf("return &%s.ConversionError{Property: %s, Expected: %s, Value: %s}",
		c.runtime, templates.Quote(prop), templates.Quote(expected), src)
}

// encoded is a JSON value expression over a Go value. guard, when set, must
// hold for expr to be evaluated. addressable means expr may call pointer
// methods on the value and needs it in a variable.
type encoded struct {
	expr        string
	guard       string
	addressable bool
}

func (c *converter) encodeValue(ti *typeinfo.TypeInfo, src string) (encoded, bool) {
	switch ti.Kind {
	case typeinfo.String, typeinfo.Primitive:
		return encoded{expr: src}, true

	case typeinfo.BoxedPrimitive:
		return encoded{expr: "*" + src, guard: src + " != nil"}, true

	case typeinfo.API:
		if ti.Pointer {
			return encoded{expr: src, guard: src + " != nil"}, true
		}
		return encoded{expr: src}, true

	case typeinfo.JSONObject, typeinfo.JSONArray:
		return encoded{expr: src, guard: src + " != nil"}, true

	case typeinfo.Enum:
		if ti.Basic == "" {
			return encoded{}, false
		}
		if ti.Pointer {
			return encoded{expr: fmt.Sprintf("%s(*%s)", ti.Basic, src), guard: src + " != nil"}, true
		}
		return encoded{expr: fmt.Sprintf("%s(%s)", ti.Basic, src)}, true

	case typeinfo.DataObject:
		target, ok := c.registry.Lookup(ti.Name)
		if !ok || target.ToJSONMethod() == "" {
			return encoded{}, false
		}
		expr := src + "." + target.ToJSONMethod() + "()"
		if ti.Pointer || !target.IsClass() {
			return encoded{expr: expr, guard: src + " != nil"}, true
		}
		return encoded{expr: expr, addressable: true}, true
	}
	return encoded{}, false
}

// typeExpr renders ref as it is spelled inside the generated file
func (c *converter) typeExpr(ref *mirror.TypeRef) string {
	switch ref.Kind {
	case mirror.RefPointer:
		return "*" + c.typeExpr(ref.Elem)
	case mirror.RefSlice:
		return "[]" + c.typeExpr(ref.Elem)
	case mirror.RefMap:
		return "map[" + c.typeExpr(ref.Key) + "]" + c.typeExpr(ref.Elem)
	case mirror.RefInterface:
		return "any"
	case mirror.RefNamed:
		name := c.imports.Qualify(ref.Package, ref.Name)
		if len(ref.Args) == 0 {
			return name
		}
		args := make([]string, len(ref.Args))
		for i, arg := range ref.Args {
			args[i] = c.typeExpr(arg)
		}
		return name + "[" + strings.Join(args, ", ") + "]"
	default:
		return ref.Name
	}
}
