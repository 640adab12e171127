// Package eval evaluates expr-lang expressions against a dotenv
// environment.
//
// Every key of the flattened environment is bound as a string variable, so
// with a document defining HOST and PORT:
//
//	HOST + ":" + PORT
//
// evaluates to "localhost:8080". Keys shadow the built-ins below. Functions
// that work on PATH-like lists take the name of a key and split its value
// on the OS list separator, dropping duplicates and empty items:
//
//	env(key), defined(key)   value of key or "", whether key is set
//	layers                   own mapping of each layer, lowest priority first
//	origin(key)              index into layers supplying key, or -1
//	list(key)                items of a list
//	prefix(key, item...)     list with items prepended, last item first
//	prefixif(key, item...)   like prefix, keeping only existing directories
//	remove(key, item...)     list without items
//	platform                 host OS and Arch
//	exists(path), isDir(path)
//
// For example, with PATH=/usr/bin:/bin in the environment:
//
//	prefix("PATH", "/opt/bin")
//
// evaluates to "/opt/bin:/usr/bin:/bin".
package eval
