// Package token defines lexical token kinds for the C-family token stream
// consumed by deptool.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments are ordinary tokens, never trivia: the directive scanner
//     filters the main stream for them.
//   - A preprocessor line is a single Preproc token covering '#' up to the
//     unescaped end of line.
//   - Built-in type names (int, char, unsigned, ...) that are not storage
//     or aggregate keywords are identifiers; the declaration layer sorts
//     them out.
package token
