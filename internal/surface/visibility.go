package surface

// IsPublic reports whether a declaration name is part of the public API.
// A name is public when it is absent (anonymous declarations) or when it
// does not start with the privacy marker '_'.
func IsPublic(name string) bool {
	return name == "" || name[0] != '_'
}
