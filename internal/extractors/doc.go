// Package extractors converts uploaded files into plain text.
//
// Each subpackage handles one file format (plaintext, pdf, docx); this
// package provides the registry that dispatches on the declared file
// extension. Extraction is the first pipeline stage and has no side
// effects beyond reading the file.
package extractors
