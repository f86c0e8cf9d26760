// Package jsondoc parses JSON text into a navigable tree whose nodes carry
// their exact source offsets, and re-serializes that tree as pretty-printed
// or minified text.
//
// The parser is hand-rolled rather than built on encoding/json because the
// tree panel and the editor need the byte range of every value token, which
// the standard decoder does not expose. The tree is rebuilt wholesale on
// every edit; there is no incremental reparse.
package jsondoc
