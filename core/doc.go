// Package core defines the shared conversation data model (turns, tool calls,
// sources) and the narrow contracts of external collaborators (retriever,
// session store). It is imported by every other package and imports none of
// them, keeping the dependency graph acyclic.
package core
