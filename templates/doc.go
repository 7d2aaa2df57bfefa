// Package templates defines image templates and the registry that serves them.
//
// A Template pairs a parameter Schema with a pure render function that turns
// validated parameters into a markup tree. Templates are registered once at
// startup and looked up by name for every request.
//
// Schemas are declared as a list of string Fields and compiled to JSON
// Schema. Validation strips unknown parameters, fills defaults for absent
// optional fields and reports one or more issues per field on failure. An
// empty string counts as a present value.
package templates
