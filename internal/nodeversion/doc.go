// Package nodeversion keeps the Node.js version declared under engines.node
// in a package.json in step with the version pinned by an .nvmrc marker file.
//
// The manifest is rewritten by literal text substitution on its raw bytes
// rather than re-serialized, so formatting and key order survive untouched.
package nodeversion
