// Package grammar models the command grammar a backend advertises for each
// player and synthesizes syntactically valid random commands from it. Specs
// are JSON-encodable so they pass opaquely through backend wire formats.
package grammar

// Spec is one node of a command grammar. Exactly one field should be set; a
// node with nothing set is invalid and fails synthesis.
type Spec struct {
	// Int accepts an integer in an inclusive range.
	Int *IntSpec `json:"int,omitempty"`
	// Token accepts a fixed keyword.
	Token string `json:"token,omitempty"`
	// Player accepts the name of any seated player.
	Player bool `json:"player,omitempty"`
	// Space accepts a single separating space.
	Space bool `json:"space,omitempty"`
	// Enum accepts one of a fixed set of values.
	Enum *EnumSpec `json:"enum,omitempty"`
	// OneOf accepts whichever alternative matches.
	OneOf []Spec `json:"one_of,omitempty"`
	// Chain accepts each part in sequence.
	Chain []Spec `json:"chain,omitempty"`
	// Opt accepts the inner grammar or nothing.
	Opt *Spec `json:"opt,omitempty"`
	// Many accepts a bounded repetition of the inner grammar.
	Many *ManySpec `json:"many,omitempty"`
}

// IntSpec bounds an integer argument. Nil bounds fall back to the
// synthesizer's defaults.
type IntSpec struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// EnumSpec lists the accepted values for an enumerated argument.
type EnumSpec struct {
	Values []string `json:"values"`
}

// ManySpec bounds a repeated grammar and names its delimiter.
type ManySpec struct {
	Spec  *Spec  `json:"spec"`
	Min   *int   `json:"min,omitempty"`
	Max   *int   `json:"max,omitempty"`
	Delim string `json:"delim,omitempty"`
}

// NewInt returns an integer spec bounded to [min, max].
func NewInt(min, max int) *Spec {
	return &Spec{Int: &IntSpec{Min: &min, Max: &max}}
}

// NewToken returns a fixed keyword spec.
func NewToken(token string) *Spec {
	return &Spec{Token: token}
}

// NewPlayer returns a player name spec.
func NewPlayer() *Spec {
	return &Spec{Player: true}
}

// NewSpace returns a separating space spec.
func NewSpace() *Spec {
	return &Spec{Space: true}
}

// NewEnum returns an enumerated value spec.
func NewEnum(values ...string) *Spec {
	return &Spec{Enum: &EnumSpec{Values: values}}
}

// NewOneOf returns an alternation over the given specs.
func NewOneOf(specs ...*Spec) *Spec {
	return &Spec{OneOf: deref(specs)}
}

// NewChain returns a sequence of the given specs.
func NewChain(specs ...*Spec) *Spec {
	return &Spec{Chain: deref(specs)}
}

// NewOpt returns an optional wrapper around spec.
func NewOpt(spec *Spec) *Spec {
	return &Spec{Opt: spec}
}

// NewMany returns a repetition of spec between min and max times.
func NewMany(spec *Spec, min, max int) *Spec {
	return &Spec{Many: &ManySpec{Spec: spec, Min: &min, Max: &max}}
}

func deref(specs []*Spec) []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
