package domain

// ProgressFunc reports export progress to the TUI.
// Called once per finished download: (1, 12), (2, 12), ...
type ProgressFunc func(done, total int)

// ExportResult summarizes an image export.
type ExportResult struct {
	Ref     ItemRef // Which item was exported
	Path    string  // Written archive
	Images  int     // Images in the archive
	Failed  int     // Images that could not be downloaded
	Bytes   int64   // Uncompressed bytes downloaded
	Skipped bool    // True if the item has no images
}
