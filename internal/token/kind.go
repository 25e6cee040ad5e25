package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwVolatile represents the 'volatile' keyword.
	KwVolatile // volatile
	// KwUnsigned represents the 'unsigned' keyword.
	KwUnsigned // unsigned
	// KwSigned represents the 'signed' keyword.
	KwSigned // signed
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwInline represents the 'inline' keyword.
	KwInline // inline
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// Number represents an integer or floating literal token.
	Number
	// String represents a string literal token.
	String
	// Char represents a character literal token.
	Char

	// Comment represents a line or block comment token.
	Comment
	// Preproc represents a whole preprocessor line ('#' through end of line).
	Preproc

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the tilde operator token.
	Tilde // ~
	// Bang represents the bang operator token.
	Bang // !
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// Arrow represents the arrow operator token.
	Arrow // ->
	// Ellipsis represents the ellipsis operator token.
	Ellipsis // ... (vararg)
	// Lt represents the lt operator token.
	Lt // <
	// Gt represents the gt operator token.
	Gt // >
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwStruct:   "KwStruct",
	KwUnion:    "KwUnion",
	KwEnum:     "KwEnum",
	KwTypedef:  "KwTypedef",
	KwConst:    "KwConst",
	KwVolatile: "KwVolatile",
	KwUnsigned: "KwUnsigned",
	KwSigned:   "KwSigned",
	KwStatic:   "KwStatic",
	KwExtern:   "KwExtern",
	KwInline:   "KwInline",
	KwVoid:     "KwVoid",
	KwReturn:   "KwReturn",
	Number:     "Number",
	String:     "String",
	Char:       "Char",
	Comment:    "Comment",
	Preproc:    "Preproc",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Assign:     "Assign",
	Amp:        "Amp",
	Pipe:       "Pipe",
	Caret:      "Caret",
	Tilde:      "Tilde",
	Bang:       "Bang",
	Question:   "Question",
	Colon:      "Colon",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
	Dot:        "Dot",
	Arrow:      "Arrow",
	Ellipsis:   "Ellipsis",
	Lt:         "Lt",
	Gt:         "Gt",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
