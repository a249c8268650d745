// Package parser turns syslog-ng configuration text into the model.
//
// Parsing is line driven. Each input line has its comment blanked out and is
// appended to a growing chunk, after which the parser attempts to recognise
// an annotation or a complete top-level object at the start of the chunk. A
// successful attempt consumes the recognised text and the loop continues on
// what is left; an incomplete attempt waits for the next line. This keeps
// diagnostics attributed to the lines that produced them and lets a
// declaration span any number of lines.
//
// Comment blanking replaces the comment bytes with spaces instead of removing
// them, so offsets inside a chunk map one-to-one onto document offsets.
package parser
