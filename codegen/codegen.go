// Package codegen generates standalone Go source for a single glob pattern.
//
// The generated file has no dependency on coreglob. It contains a
// backtracking matcher specialized to the pattern: one step function per
// pattern segment, runs of verbatim characters merged into a single
// strings.HasPrefix check, and a strings.Index jump to candidate starts when
// the pattern begins with a literal. Results are identical to
// coreglob.Pattern.FirstMatch.
//
// For a pattern compiled under the name Define, the file declares:
//
//	func DefineFirstMatch(input string) (begin, end int, groups []string, ok bool)
//	func DefineMatchString(input string) bool
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"os"
	"unicode/utf8"

	"github.com/coregx/coreglob/nfa"
	"github.com/coregx/coreglob/syntax"
	"github.com/dave/jennifer/jen"
)

// Options configures code generation.
type Options struct {
	// Pattern is the glob pattern to compile
	Pattern string

	// Name is the prefix for generated identifiers (e.g., "Define" generates "DefineFirstMatch")
	Name string

	// Package is the Go package name for the generated code
	Package string

	// EscapeAny makes a backslash escape any character, not only '*', '.' and '\'
	EscapeAny bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("name %q is not a Go identifier", o.Name)
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a Go identifier", o.Package)
	}
	return nil
}

// segmentKind classifies one step of the generated matcher.
type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segAnyChar
	segAnySeq
)

// segment is one step of the generated matcher. Adjacent valid UTF-8
// verbatim characters share a segment; an invalid byte gets its own so that
// the width check stays per character.
type segment struct {
	kind  segmentKind
	text  string
	group int
	// checkWidth is set for a single invalid byte, which must not match the
	// first byte of a longer character.
	checkWidth bool
}

func segmentsOf(parts syntax.Parts) []segment {
	var segs []segment
	group := 0
	for _, p := range parts {
		switch p.Kind {
		case syntax.VerbatimChar:
			valid := utf8.ValidString(p.Char)
			if n := len(segs); valid && n > 0 && segs[n-1].kind == segLiteral && !segs[n-1].checkWidth {
				segs[n-1].text += p.Char
				continue
			}
			segs = append(segs, segment{kind: segLiteral, text: p.Char, checkWidth: !valid})
		case syntax.AnyCharacter:
			segs = append(segs, segment{kind: segAnyChar, group: group})
			group++
		case syntax.AnySequence:
			segs = append(segs, segment{kind: segAnySeq, group: group})
			group++
		}
	}
	return segs
}

// generator holds the state of one Generate call.
type generator struct {
	opts      Options
	file      *jen.File
	segs      []segment
	numGroups int
	// memo is set when the pattern has a run, the only construct that lets
	// two paths reach the same step at the same position.
	memo bool
	// prefix is the leading literal used to jump to candidate starts.
	prefix string
}

// Generate returns gofmt-formatted Go source implementing the pattern.
//
// The only pattern error is nfa.ErrAdjacentWildcards, wrapped in an
// *nfa.CompileError.
func Generate(opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var flags syntax.Flags
	if opts.EscapeAny {
		flags |= syntax.EscapeAny
	}
	parts := syntax.ParseWithFlags(opts.Pattern, flags)
	// Compiling validates the pattern exactly as coreglob.Compile does.
	if _, err := nfa.Compile(parts); err != nil {
		return nil, err
	}

	g := &generator{
		opts:      opts,
		file:      jen.NewFile(opts.Package),
		segs:      segmentsOf(parts),
		numGroups: parts.CountWildcards(),
	}
	for _, s := range g.segs {
		if s.kind == segAnySeq {
			g.memo = true
		}
	}
	if len(g.segs) > 0 && g.segs[0].kind == segLiteral && !g.segs[0].checkWidth && utf8.RuneStart(g.segs[0].text[0]) {
		g.prefix = g.segs[0].text
	}

	g.generate()

	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render file: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile generates the source and writes it to path.
func WriteFile(opts Options, path string) error {
	src, err := Generate(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (g *generator) matcherType() string {
	return lowerFirst(g.opts.Name) + matcherSuffix
}

func (g *generator) generate() {
	g.file.HeaderComment(fmt.Sprintf("Code generated by coreglob gen for pattern %q. DO NOT EDIT.", g.opts.Pattern))

	g.file.Type().Id(g.matcherType()).Struct(
		jen.Id(inputName).String(),
		jen.Id(visitedName).Index().Bool(),
		jen.Id(capturesName).Index(jen.Lit(2*g.numGroups)).Int(),
		jen.Id(endName).Int(),
	)
	g.file.Line()

	g.generateFirstMatch()
	g.generateMatchString()
	for k := range g.segs {
		g.generateStep(k)
	}
	g.generateFinalStep()
}

func (g *generator) generateFirstMatch() {
	name := g.opts.Name + "FirstMatch"
	input := jen.Id(inputName)
	m := jen.Id(receiverName)

	body := []jen.Code{
		m.Clone().Op(":=").Op("&").Id(g.matcherType()).Values(jen.Dict{jen.Id(inputName): input.Clone()}),
	}
	if g.memo {
		body = append(body,
			m.Clone().Dot(visitedName).Op("=").Make(
				jen.Index().Bool(),
				jen.Lit(len(g.segs)).Op("*").Parens(jen.Len(input.Clone()).Op("+").Lit(1)),
			),
		)
	}

	var loop []jen.Code
	if g.prefix != "" {
		loop = append(loop,
			jen.Id("i").Op(":=").Qual("strings", "Index").Call(
				input.Clone().Index(jen.Id(startName).Op(":")),
				jen.Lit(g.prefix),
			),
			jen.If(jen.Id("i").Op("<").Lit(0)).Block(jen.Break()),
			jen.Id(startName).Op("+=").Id("i"),
		)
	}
	loop = append(loop,
		jen.If(m.Clone().Dot(stepName(0)).Call(jen.Id(startName))).Block(
			jen.Id("groups").Op("=").Make(jen.Index().String(), jen.Lit(g.numGroups)),
			jen.For(jen.Id("k").Op(":=").Range().Id("groups")).Block(
				jen.Id("groups").Index(jen.Id("k")).Op("=").Add(input.Clone()).Index(
					m.Clone().Dot(capturesName).Index(jen.Lit(2).Op("*").Id("k")).Op(":").
						Add(m.Clone()).Dot(capturesName).Index(jen.Lit(2).Op("*").Id("k").Op("+").Lit(1)),
				),
			),
			jen.Return(jen.Id(startName), m.Clone().Dot(endName), jen.Id("groups"), jen.True()),
		),
		jen.If(jen.Id(startName).Op("==").Len(input.Clone())).Block(jen.Break()),
		jen.List(jen.Id("_"), jen.Id("w")).Op(":=").Qual("unicode/utf8", "DecodeRuneInString").Call(
			input.Clone().Index(jen.Id(startName).Op(":")),
		),
		jen.Id(startName).Op("+=").Id("w"),
	)

	body = append(body,
		jen.For(
			jen.Id(startName).Op(":=").Lit(0),
			jen.Id(startName).Op("<=").Len(input.Clone()),
			jen.Empty(),
		).Block(loop...),
		jen.Return(jen.Lit(0), jen.Lit(0), jen.Nil(), jen.False()),
	)

	g.file.Comment(fmt.Sprintf("%s returns the leftmost match of the glob pattern %q in input:", name, g.opts.Pattern))
	g.file.Comment("the byte span [begin, end) and the text of each wildcard in pattern order.")
	g.file.Func().Id(name).
		Params(input.Clone().String()).
		Params(
			jen.List(jen.Id("begin"), jen.Id("end")).Int(),
			jen.Id("groups").Index().String(),
			jen.Id("ok").Bool(),
		).
		Block(body...)
	g.file.Line()
}

func (g *generator) generateMatchString() {
	name := g.opts.Name + "MatchString"
	g.file.Comment(fmt.Sprintf("%s reports whether input contains a match of %q.", name, g.opts.Pattern))
	g.file.Func().Id(name).
		Params(jen.Id(inputName).String()).
		Bool().
		Block(
			jen.List(jen.Id("_"), jen.Id("_"), jen.Id("_"), jen.Id("ok")).Op(":=").
				Id(g.opts.Name+"FirstMatch").Call(jen.Id(inputName)),
			jen.Return(jen.Id("ok")),
		)
	g.file.Line()
}

// method starts a step method declaration on the matcher type.
func (g *generator) method(name string) *jen.Statement {
	return g.file.Func().
		Params(jen.Id(receiverName).Op("*").Id(g.matcherType())).
		Id(name).
		Params(jen.Id(posName).Int()).
		Bool()
}

// memoCheck fails a step already tried at this position. Success ends the
// search, so a revisited (step, position) pair is known to fail.
func (g *generator) memoCheck(k int) []jen.Code {
	if !g.memo {
		return nil
	}
	m := jen.Id(receiverName)
	var idx *jen.Statement
	if k == 0 {
		idx = jen.Id(posName)
	} else {
		idx = jen.Lit(k).Op("*").Parens(jen.Len(m.Clone().Dot(inputName)).Op("+").Lit(1)).Op("+").Id(posName)
	}
	return []jen.Code{
		jen.Id("i").Op(":=").Add(idx),
		jen.If(m.Clone().Dot(visitedName).Index(jen.Id("i"))).Block(jen.Return(jen.False())),
		m.Clone().Dot(visitedName).Index(jen.Id("i")).Op("=").True(),
	}
}

func (g *generator) generateStep(k int) {
	s := g.segs[k]
	m := jen.Id(receiverName)
	rest := m.Clone().Dot(inputName).Index(jen.Id(posName).Op(":"))
	next := func(pos jen.Code) jen.Code {
		return m.Clone().Dot(stepName(k + 1)).Call(pos)
	}
	body := g.memoCheck(k)

	switch s.kind {
	case segLiteral:
		body = append(body,
			jen.If(jen.Op("!").Qual("strings", "HasPrefix").Call(rest.Clone(), jen.Lit(s.text))).Block(
				jen.Return(jen.False()),
			),
		)
		if s.checkWidth {
			body = append(body,
				jen.If(
					jen.List(jen.Id("_"), jen.Id("w")).Op(":=").Qual("unicode/utf8", "DecodeRuneInString").Call(rest.Clone()),
					jen.Id("w").Op("!=").Lit(len(s.text)),
				).Block(jen.Return(jen.False())),
			)
		}
		body = append(body, jen.Return(next(jen.Id(posName).Op("+").Lit(len(s.text)))))
		g.file.Comment(fmt.Sprintf("%s matches %q.", stepName(k), s.text))

	case segAnyChar:
		body = append(body,
			jen.If(jen.Id(posName).Op(">=").Len(m.Clone().Dot(inputName))).Block(jen.Return(jen.False())),
			jen.List(jen.Id("_"), jen.Id("w")).Op(":=").Qual("unicode/utf8", "DecodeRuneInString").Call(rest.Clone()),
			m.Clone().Dot(capturesName).Index(jen.Lit(2*s.group)).Op("=").Id(posName),
			m.Clone().Dot(capturesName).Index(jen.Lit(2*s.group+1)).Op("=").Id(posName).Op("+").Id("w"),
			jen.Return(next(jen.Id(posName).Op("+").Id("w"))),
		)
		g.file.Comment(fmt.Sprintf("%s matches any one character as group %d.", stepName(k), s.group+1))

	case segAnySeq:
		body = append(body,
			jen.Id("limit").Op(":=").Qual("strings", "IndexAny").Call(rest.Clone(), jen.Lit(nfa.Delimiters)),
			jen.If(jen.Id("limit").Op("<").Lit(0)).Block(
				jen.Id("limit").Op("=").Len(m.Clone().Dot(inputName)),
			).Else().Block(
				jen.Id("limit").Op("+=").Id(posName),
			),
			jen.Id(endName).Op(":=").Id("limit"),
			jen.For().Block(
				m.Clone().Dot(capturesName).Index(jen.Lit(2*s.group)).Op("=").Id(posName),
				m.Clone().Dot(capturesName).Index(jen.Lit(2*s.group+1)).Op("=").Id(endName),
				jen.If(next(jen.Id(endName))).Block(jen.Return(jen.True())),
				jen.If(jen.Id(endName).Op("==").Id(posName)).Block(jen.Return(jen.False())),
				jen.List(jen.Id("_"), jen.Id("w")).Op(":=").Qual("unicode/utf8", "DecodeLastRuneInString").Call(
					m.Clone().Dot(inputName).Index(jen.Id(posName).Op(":").Id(endName)),
				),
				jen.Id(endName).Op("-=").Id("w"),
			),
		)
		g.file.Comment(fmt.Sprintf("%s matches the longest run without %q that lets the rest match, as group %d.",
			stepName(k), nfa.Delimiters, s.group+1))
	}

	g.method(stepName(k)).Block(body...)
	g.file.Line()
}

func (g *generator) generateFinalStep() {
	k := len(g.segs)
	g.file.Comment(fmt.Sprintf("%s records the end of a successful match.", stepName(k)))
	g.method(stepName(k)).Block(
		jen.Id(receiverName).Dot(endName).Op("=").Id(posName),
		jen.Return(jen.True()),
	)
}
