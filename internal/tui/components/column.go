package components

// ColumnType identifies where the items of a column come from
type ColumnType int

const (
	ColumnTypeCatalog         ColumnType = iota // A sidebar category
	ColumnTypeSearch                            // Search results
	ColumnTypeRecommendations                   // "More like this" for a title
	ColumnTypeKnownFor                          // Credits of a person
)
