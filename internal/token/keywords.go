package token

// keywords maps the C keywords the declaration layer cares about to their
// kinds. Every other keyword of the language stays an Ident; deptool never
// interprets it.
var keywords = map[string]Kind{
	"struct":   KwStruct,
	"union":    KwUnion,
	"enum":     KwEnum,
	"typedef":  KwTypedef,
	"const":    KwConst,
	"volatile": KwVolatile,
	"unsigned": KwUnsigned,
	"signed":   KwSigned,
	"static":   KwStatic,
	"extern":   KwExtern,
	"inline":   KwInline,
	"void":     KwVoid,
	"return":   KwReturn,
}

// LookupKeyword returns the keyword kind for text, or Ident if text is not
// a recognized keyword.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
