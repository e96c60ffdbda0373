package token_test

import (
	"testing"

	"scadfmt/internal/source"
	"scadfmt/internal/token"
)

func TestHiddenKinds(t *testing.T) {
	hidden := []token.Kind{token.LineComment, token.BlockComment, token.BlankLines}
	for _, k := range hidden {
		if !k.Hidden() {
			t.Fatalf("%v should be hidden", k)
		}
	}
	visible := []token.Kind{token.Ident, token.KwModule, token.Semicolon, token.EOF}
	for _, k := range visible {
		if k.Hidden() {
			t.Fatalf("%v must NOT be hidden", k)
		}
	}
}

func TestKeywordLookup(t *testing.T) {
	cases := map[string]token.Kind{
		"module":           token.KwModule,
		"function":         token.KwFunction,
		"intersection_for": token.KwIntersectionFor,
		"undef":            token.KwUndef,
	}
	for text, want := range cases {
		got, ok := token.LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", text, got, ok, want)
		}
	}
	if _, ok := token.LookupKeyword("include"); ok {
		t.Error("include must only be a directive")
	}
	if k, ok := token.LookupDirective("use"); !ok || k != token.KwUse {
		t.Errorf("LookupDirective(use) = %v, %v", k, ok)
	}
	if _, ok := token.LookupKeyword("Module"); ok {
		t.Error("keywords are case sensitive")
	}
}

func TestKindString(t *testing.T) {
	if s := token.KwIntersectionFor.String(); s != "KwIntersectionFor" {
		t.Errorf("String = %q", s)
	}
	if s := token.Kind(250).String(); s != "Kind(?)" {
		t.Errorf("String for unknown = %q", s)
	}
}

func TestStreamGet(t *testing.T) {
	s := token.NewStream([]token.Token{
		{Kind: token.Ident, Text: "a"},
		{Kind: token.LineComment, Text: " // x\n"},
		{Kind: token.Semicolon, Text: ";"},
	}, source.Span{Start: 3, End: 3})

	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
	for i := range 3 {
		if got := s.Get(i).Index; got != i {
			t.Errorf("Get(%d).Index = %d", i, got)
		}
	}
	for _, i := range []int{-1, 3, 100} {
		if k := s.Get(i).Kind; k != token.EOF {
			t.Errorf("Get(%d).Kind = %v, want EOF", i, k)
		}
	}

	var texts []string
	for tok := range s.Default() {
		texts = append(texts, tok.Text)
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != ";" {
		t.Errorf("Default() = %q", texts)
	}
}

func TestIsOwnLine(t *testing.T) {
	own := token.Token{Kind: token.LineComment, Text: "\n// c\n"}
	trailing := token.Token{Kind: token.LineComment, Text: "// c\n"}
	blank := token.Token{Kind: token.BlankLines, Text: "\n"}
	if !own.IsOwnLine() || trailing.IsOwnLine() || blank.IsOwnLine() {
		t.Error("IsOwnLine mismatch")
	}
}
