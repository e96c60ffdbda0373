package token

var keywords = map[string]Kind{
	"module":           KwModule,
	"function":         KwFunction,
	"if":               KwIf,
	"else":             KwElse,
	"for":              KwFor,
	"intersection_for": KwIntersectionFor,
	"let":              KwLet,
	"each":             KwEach,
	"assert":           KwAssert,
	"echo":             KwEcho,
	"true":             KwTrue,
	"false":            KwFalse,
	"undef":            KwUndef,
}

// directives are keywords only when an include path follows them.
var directives = map[string]Kind{
	"include": KwInclude,
	"use":     KwUse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupDirective reports whether ident is include or use.
func LookupDirective(ident string) (Kind, bool) {
	k, ok := directives[ident]
	return k, ok
}
