package entities

// ShoppingList is a named batch of raw purchase lines, processed as one run
type ShoppingList struct {
	Name  string
	Lines []string
	// Source is the file the list was loaded from, empty for stdin or built-in lists
	Source string
}
