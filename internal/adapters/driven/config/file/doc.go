// Package file provides file-based configuration and prompt stores.
//
// Configuration lives in a TOML file and prompts in user-editable text
// files, both under the lorebase config directory (~/.lorebase by
// default).
package file
