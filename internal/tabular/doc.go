// Package tabular parses raw CSV bytes into domain frames. It handles
// charset decoding, delimiter configuration, and structural validation
// of the parsed table. Frame checks compose around a parse function so
// callers can bolt validation rules onto any parser without changing
// its implementation.
package tabular
