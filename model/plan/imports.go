package plan

// Import declares a package alias for registered payload types
type Import struct {
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	PkgPath string `json:"pkgPath,omitempty" yaml:"pkgPath,omitempty"`
}

// Imports represents a collection of package imports
type Imports []*Import

// PkgPath returns the full package path registered for alias pkg
func (i Imports) PkgPath(pkg string) string {
	for _, item := range i {
		if item.Package == pkg {
			return item.PkgPath
		}
	}
	return ""
}

// HasPkgPath reports whether pkgPath is already imported
func (i Imports) HasPkgPath(pkgPath string) bool {
	for _, item := range i {
		if item.PkgPath == pkgPath {
			return true
		}
	}
	return false
}

// IsUnique reports whether every alias appears at most once
func (i Imports) IsUnique() bool {
	unique := make(map[string]bool)
	for _, item := range i {
		if unique[item.Package] {
			return false
		}
		unique[item.Package] = true
	}
	return true
}
