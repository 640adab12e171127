// Package dotenv parses dotenv documents and models layered configuration.
//
// A document is a sequence of KEY=value lines. Values may be unquoted,
// single-quoted or double-quoted, may span lines when quoted, and may
// interpolate keys defined earlier in the same document with ${KEY}:
//
//	HOST=localhost
//	URL="http://${HOST}:8080" # trailing comment
//
// [Parse] returns the mapping or a *[LocatedError] that can be rendered
// against the source with [LocatedError.Format].
//
// An [Environment] is a mapping with an optional override layer. Lookups
// consult the deepest override first, so the usual arrangement is a file's
// values overridden by [Process]:
//
//	env, err := dotenv.Make(dotenv.DefaultPath, dotenv.Process())
package dotenv
