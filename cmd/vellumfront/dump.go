package main

import (
	"fmt"
	"strings"

	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/intern"
)

// astDumper renders an ast.Context's tree as indented text, given the
// root NodeIds ParseAll returned. It exists purely for manual
// inspection during development, not as a serialization format.
type astDumper struct {
	tree     *ast.Context
	interner intern.Interner
	src      []byte
}

func (d *astDumper) name(id intern.StringID) string {
	b, ok := d.interner.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	return string(b)
}

func (d *astDumper) line(indent int, format string, args ...any) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func (d *astDumper) dump(id ast.NodeID, indent int) {
	if !id.IsValid() {
		d.line(indent, "<invalid>")
		return
	}
	node := d.tree.Node(id)

	switch node.Kind {
	case ast.KindAssignStatement:
		p := d.tree.AssignStatement(id)
		d.line(indent, "AssignStatement op=%s", p.Op)
		d.dump(p.Target, indent+1)
		if p.DeclaredType.IsValid() {
			d.dump(p.DeclaredType, indent+1)
		}
		d.dump(p.Value, indent+1)

	case ast.KindAttributeStatement:
		p := d.tree.AttributeStatement(id)
		d.line(indent, "AttributeStatement")
		for _, use := range d.tree.AttrUses(p.Attrs) {
			d.line(indent+1, "attr %s", d.name(use.Name))
			for _, a := range d.tree.NodeRangeSlice(use.Args) {
				d.dump(a, indent+2)
			}
		}

	case ast.KindUseStatement:
		p := d.tree.UseStatement(id)
		d.line(indent, "UseStatement")
		for _, path := range d.tree.NodeRangeSlice(p.Paths) {
			d.dump(path, indent+1)
		}

	case ast.KindExpressionStatement:
		p := d.tree.ExpressionStatement(id)
		d.line(indent, "ExpressionStatement semi=%v", p.HasSemicolon)
		d.dump(p.Expr, indent+1)

	case ast.KindLiteral:
		p := d.tree.Literal(id)
		d.line(indent, "Literal %s %q", p.Kind, p.LexemeRange.Slice(d.src))

	case ast.KindPath:
		p := d.tree.Path(id)
		segs := make([]string, 0, p.Segments.Size)
		for _, s := range d.tree.StringRangeSlice(p.Segments) {
			segs = append(segs, d.name(s))
		}
		prefix := ""
		if p.Absolute {
			prefix = "::"
		}
		d.line(indent, "Path %s%s", prefix, strings.Join(segs, "::"))

	case ast.KindUnaryOp:
		p := d.tree.UnaryOp(id)
		d.line(indent, "UnaryOp op=%s postfix=%v", p.Op, p.Postfix)
		d.dump(p.Operand, indent+1)

	case ast.KindBinaryOp:
		p := d.tree.BinaryOp(id)
		d.line(indent, "BinaryOp op=%s", p.Op)
		d.dump(p.Lhs, indent+1)
		d.dump(p.Rhs, indent+1)

	case ast.KindGrouped:
		p := d.tree.Grouped(id)
		d.line(indent, "Grouped")
		d.dump(p.Inner, indent+1)

	case ast.KindArray:
		p := d.tree.Array(id)
		d.line(indent, "Array")
		for _, e := range d.tree.NodeRangeSlice(p.Elements) {
			d.dump(e, indent+1)
		}
		if p.Repeat.IsValid() {
			d.line(indent+1, "repeat")
			d.dump(p.Repeat, indent+2)
		}

	case ast.KindTuple:
		p := d.tree.Tuple(id)
		d.line(indent, "Tuple")
		for _, e := range d.tree.NodeRangeSlice(p.Elements) {
			d.dump(e, indent+1)
		}

	case ast.KindIndex:
		p := d.tree.Index(id)
		d.line(indent, "Index")
		d.dump(p.Target, indent+1)
		d.dump(p.Index, indent+1)

	case ast.KindConstruct:
		p := d.tree.Construct(id)
		d.line(indent, "Construct")
		d.dump(p.Target, indent+1)
		for _, f := range d.tree.FieldInits(p.Fields) {
			d.line(indent+1, "field %s", d.name(f.Name))
			d.dump(f.Value, indent+2)
		}

	case ast.KindFunctionCall:
		p := d.tree.FunctionCall(id)
		d.line(indent, "FunctionCall")
		d.dump(p.Callee, indent+1)
		for _, a := range d.tree.NodeRangeSlice(p.Args) {
			d.dump(a, indent+1)
		}

	case ast.KindMethodCall:
		p := d.tree.MethodCall(id)
		d.line(indent, "MethodCall %s", d.name(p.Name))
		d.dump(p.Receiver, indent+1)
		for _, a := range d.tree.NodeRangeSlice(p.Args) {
			d.dump(a, indent+1)
		}

	case ast.KindFunctionMacroCall:
		p := d.tree.FunctionMacroCall(id)
		d.line(indent, "FunctionMacroCall")
		d.dump(p.Callee, indent+1)
		for _, a := range d.tree.NodeRangeSlice(p.Args) {
			d.dump(a, indent+1)
		}

	case ast.KindMethodMacroCall:
		p := d.tree.MethodMacroCall(id)
		d.line(indent, "MethodMacroCall %s", d.name(p.Name))
		d.dump(p.Receiver, indent+1)
		for _, a := range d.tree.NodeRangeSlice(p.Args) {
			d.dump(a, indent+1)
		}

	case ast.KindFieldAccess:
		p := d.tree.FieldAccess(id)
		d.line(indent, "FieldAccess %s", d.name(p.Name))
		d.dump(p.Target, indent+1)

	case ast.KindAwait:
		p := d.tree.Await(id)
		d.line(indent, "Await")
		d.dump(p.Target, indent+1)

	case ast.KindContinue:
		d.line(indent, "Continue")

	case ast.KindBreak:
		p := d.tree.Break(id)
		d.line(indent, "Break")
		if p.Value.IsValid() {
			d.dump(p.Value, indent+1)
		}

	case ast.KindRange:
		p := d.tree.Range(id)
		d.line(indent, "Range kind=%d", p.Kind)
		if p.Start.IsValid() {
			d.dump(p.Start, indent+1)
		}
		if p.End.IsValid() {
			d.dump(p.End, indent+1)
		}

	case ast.KindReturn:
		p := d.tree.Return(id)
		d.line(indent, "Return")
		if p.Value.IsValid() {
			d.dump(p.Value, indent+1)
		}

	case ast.KindBlock:
		p := d.tree.Block(id)
		d.line(indent, "Block")
		for _, s := range d.tree.NodeRangeSlice(p.Statements) {
			d.dump(s, indent+1)
		}

	case ast.KindConstBlock:
		p := d.tree.ConstBlock(id)
		d.line(indent, "ConstBlock")
		d.dumpBlock(p.Body, indent+1)

	case ast.KindUnsafe:
		p := d.tree.Unsafe(id)
		d.line(indent, "Unsafe")
		d.dumpBlock(p.Body, indent+1)

	case ast.KindFast:
		p := d.tree.Fast(id)
		d.line(indent, "Fast")
		d.dumpBlock(p.Body, indent+1)

	case ast.KindIf:
		p := d.tree.If(id)
		d.line(indent, "If")
		for _, b := range d.tree.IfBranches(p.Branches) {
			if b.Condition.IsValid() {
				d.line(indent+1, "branch")
				d.dump(b.Condition, indent+2)
			} else {
				d.line(indent+1, "else")
			}
			d.dumpBlock(b.Block, indent+2)
		}

	case ast.KindLoop:
		p := d.tree.Loop(id)
		d.line(indent, "Loop")
		d.dumpBlock(p.Body, indent+1)

	case ast.KindWhile:
		p := d.tree.While(id)
		d.line(indent, "While")
		d.dump(p.Condition, indent+1)
		d.dumpBlock(p.Body, indent+1)

	case ast.KindFor:
		p := d.tree.For(id)
		d.line(indent, "For iterator=%s", d.name(p.Iterator))
		d.dump(p.Range, indent+1)
		d.dumpBlock(p.Body, indent+1)

	case ast.KindMatch:
		p := d.tree.Match(id)
		d.line(indent, "Match")
		d.dump(p.Scrutinee, indent+1)
		for _, arm := range d.tree.MatchArms(p.Arms) {
			d.line(indent+1, "arm")
			d.dump(arm.Pattern, indent+2)
			if arm.Guard.IsValid() {
				d.line(indent+2, "guard")
				d.dump(arm.Guard, indent+3)
			}
			d.dump(arm.Body, indent+2)
		}

	case ast.KindClosure:
		p := d.tree.Closure(id)
		d.line(indent, "Closure")
		for _, c := range d.tree.Captures(p.Captures) {
			d.line(indent+1, "capture %s byRef=%v", d.name(c.Name), c.ByRef)
		}
		d.dumpParams(p.Params, indent+1)
		d.dumpBlock(p.Body, indent+1)

	case ast.KindFunction:
		p := d.tree.Function(id)
		d.line(indent, "Function %s", d.name(p.Name))
		d.dumpParams(p.Params, indent+1)
		if p.ReturnType.IsValid() {
			d.dump(p.ReturnType, indent+1)
		}
		if p.Body.IsValid() {
			d.dumpBlock(p.Body, indent+1)
		}

	case ast.KindStruct:
		p := d.tree.Struct(id)
		d.line(indent, "Struct %s", d.name(p.Name))
		d.dumpFields(p.Fields, indent+1)

	case ast.KindEnumeration:
		p := d.tree.Enumeration(id)
		d.line(indent, "Enumeration %s", d.name(p.Name))
		for _, v := range d.tree.EnumVariants(p.Variants) {
			d.line(indent+1, "variant %s kind=%d", d.name(v.Name), v.Kind)
			switch v.Kind {
			case ast.EnumVariantInteger:
				d.dump(v.Discriminant, indent+2)
			case ast.EnumVariantStructLike:
				d.dumpFields(v.Fields, indent+2)
			case ast.EnumVariantTupleLike:
				for _, t := range d.tree.NodeRangeSlice(v.TupleTypes) {
					d.dump(t, indent+2)
				}
			}
		}

	case ast.KindTrait:
		p := d.tree.Trait(id)
		d.line(indent, "Trait %s", d.name(p.Name))
		for _, fn := range d.tree.NodeRangeSlice(p.Functions) {
			d.dump(fn, indent+1)
		}

	case ast.KindImplementation:
		p := d.tree.Implementation(id)
		d.line(indent, "Implementation")
		if p.Trait.IsValid() {
			d.dump(p.Trait, indent+1)
		}
		d.dump(p.Target, indent+1)
		for _, fn := range d.tree.NodeRangeSlice(p.Functions) {
			d.dump(fn, indent+1)
		}

	case ast.KindUnion:
		p := d.tree.Union(id)
		d.line(indent, "Union %s", d.name(p.Name))
		d.dumpFields(p.Fields, indent+1)

	case ast.KindModule:
		p := d.tree.Module(id)
		d.line(indent, "Module %s", d.name(p.Name))
		for _, item := range d.tree.NodeRangeSlice(p.Items) {
			d.dump(item, indent+1)
		}

	case ast.KindRedirect:
		p := d.tree.Redirect(id)
		d.line(indent, "Redirect %s", d.name(p.Name))
		d.dump(p.Target, indent+1)

	default:
		d.line(indent, "<unknown kind %d>", node.Kind)
	}
}

func (d *astDumper) dumpBlock(id ast.PayloadID[ast.BlockPayload], indent int) {
	if !id.IsValid() {
		d.line(indent, "<no body>")
		return
	}
	p := d.tree.BlockByID(id)
	d.line(indent, "Block")
	for _, s := range d.tree.NodeRangeSlice(p.Statements) {
		d.dump(s, indent+1)
	}
}

func (d *astDumper) dumpParams(r ast.PayloadRange[ast.Param], indent int) {
	for _, param := range d.tree.Params(r) {
		d.line(indent, "param %s", d.name(param.Name))
		if param.Type.IsValid() {
			d.dump(param.Type, indent+1)
		}
	}
}

func (d *astDumper) dumpFields(r ast.PayloadRange[ast.Field], indent int) {
	for _, f := range d.tree.Fields(r) {
		d.line(indent, "field %s", d.name(f.Name))
		d.dump(f.Type, indent+1)
	}
}
