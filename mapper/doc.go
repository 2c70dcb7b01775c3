// Package mapper resolves the inputs of a mapping request and hands them to
// a transformation engine.
//
// Identifiers are either URLs, which are fetched, or literal content, whose
// XML declaration selects the byte encoding. The engine itself sits behind
// the Factory, Engine, Output and PolicyFactory interfaces.
package mapper
