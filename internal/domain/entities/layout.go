package entities

// Layout is the directory convention generated files are placed by.
// All folders are absolute.
type Layout struct {
	SourceFolder     string
	BuildFolder      string
	GeneratorsFolder string
	BuildType        string
	MultiConfig      bool
}
