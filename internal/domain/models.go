package domain

// NoCategory is the reserved bucket for snippets without a category.
// It is always the first entry of the category index.
const NoCategory = "No category"

// Snippet represents a stored command snippet
type Snippet struct {
	Command     string  `toml:"command" json:"command"`
	Description string  `toml:"description" json:"description"`
	Category    *string `toml:"category,omitempty" json:"category,omitempty"` // nil when uncategorized
}

// NewSnippet builds a snippet; an empty category leaves it uncategorized
func NewSnippet(command, description, category string) Snippet {
	s := Snippet{
		Command:     command,
		Description: description,
	}
	if category != "" {
		s.Category = &category
	}
	return s
}

// CategoryName returns the name of the category index entry owning this snippet
func (s Snippet) CategoryName() string {
	if s.Category == nil {
		return NoCategory
	}
	return *s.Category
}

// HasCategory reports whether the snippet carries an explicit category
func (s Snippet) HasCategory() bool {
	return s.Category != nil
}

// Clone returns a copy that does not share the category pointer
func (s Snippet) Clone() Snippet {
	if s.Category != nil {
		name := *s.Category
		s.Category = &name
	}
	return s
}

// Normalize returns the snippet with an empty category treated as none,
// matching NewSnippet.
func (s Snippet) Normalize() Snippet {
	if s.Category != nil && *s.Category == "" {
		s.Category = nil
	}
	return s
}

// Category is one entry of the category index
type Category struct {
	Name      string
	Positions []int // indices into the snippet list, ascending
}
