package style

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/dmitrymomot/emailkit/pkg/slug"
)

// ClassPrefix is prepended to every generated class name.
const ClassPrefix = "email"

// MaxLabelLength caps the label part of a class name, in runes.
const MaxLabelLength = 24

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// String formats the declaration the way it is written into a style attribute.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// Rule is an immutable bundle of declarations addressed by a generated class.
// The class name depends only on the label and the declarations, so the same
// rule always renders to the same markup.
type Rule struct {
	label string
	class string
	decls []Declaration
}

// New parses declarations ("padding: 24px 0; font-size: 22px") into a Rule.
// The label ends up in the class name and helps to read rendered markup.
// Labels longer than MaxLabelLength are cut.
func New(label, declarations string) (Rule, error) {
	parsed, err := parser.ParseDeclarations(declarations)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidDeclarations, err)
	}
	if len(parsed) == 0 {
		return Rule{}, ErrEmptyRule
	}

	decls := make([]Declaration, 0, len(parsed))
	for _, d := range parsed {
		decls = append(decls, Declaration{
			Property:  strings.ToLower(strings.TrimSpace(d.Property)),
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}

	r := Rule{label: slug.Make(label, slug.MaxLength(MaxLabelLength)), decls: decls}
	r.class = r.makeClass()
	return r, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(label, declarations string) Rule {
	r, err := New(label, declarations)
	if err != nil {
		panic(fmt.Sprintf("style: rule %q: %v", label, err))
	}
	return r
}

func (r Rule) makeClass() string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(r.label))
	for _, d := range r.decls {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(d.String()))
	}
	class := ClassPrefix + "-" + strconv.FormatUint(uint64(h.Sum32()), 36)
	if r.label != "" {
		class += "-" + r.label
	}
	return class
}

// Class returns the generated class name.
func (r Rule) Class() string { return r.class }

// Label returns the sanitized label.
func (r Rule) Label() string { return r.label }

// IsZero reports whether r was never initialized.
func (r Rule) IsZero() bool { return r.class == "" }

// Declarations returns a copy of the rule declarations.
func (r Rule) Declarations() []Declaration {
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// CSS serializes the rule as a class selector block.
func (r Rule) CSS() string {
	var b strings.Builder
	b.WriteString(".")
	b.WriteString(r.class)
	b.WriteString("{")
	for _, d := range r.decls {
		b.WriteString(d.String())
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}
