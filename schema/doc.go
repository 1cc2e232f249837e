// Package schema implements the closed inductive description of
// serialisable types that every (de)serializer backend is specialised
// against: machine scalars, user-defined refinements, and the compound
// shapes (vector, list, tuple, record, map) wrapped in a nullability bit.
//
// # Value-types and maybe-nullables
//
// A ValueType is one of a fixed set of shapes (Scalar, User, Vec, List,
// Tup, Rec, Map). A MaybeNullable pairs a ValueType with a nullable bit;
// nullability is erased as soon as the generic machinery needs to do
// arithmetic on the underlying value, and is only meaningful again at
// (de)serialisation boundaries.
//
// # User types
//
// A user type is a named refinement of some underlying ValueType (its
// Def), registered once in a Catalogue. Two user types compare equal iff
// their names match — the catalogue is write-once, so their Defs are
// assumed consistent without comparing them structurally.
//
// # Paths
//
// A Path is a sequence of child indices addressing a subtree of a
// ValueType. Navigate walks a Path, crossing Nullable and user-type
// wrappers transparently and bounds-checking against static dimensions
// where they exist (Vec, Tup, Rec); List has no statically known extent
// so no bound is checked there, and Map/scalars are terminal — walking
// into either is an error.
//
// # Text form
//
// Print renders a MaybeNullable in the grammar documented on Parse;
// Parse is its inverse. For every constructible MaybeNullable,
// Parse(Print(mn)) reproduces mn under structural equality (Equal).
package schema
