package scan

// Candidate is a file that survived filtering. Hash carries the content
// digest computed while evaluating the unchanged-checksum rule so the read
// phase never hashes the same file twice; it is empty when checksum caching
// is disabled.
type Candidate struct {
	Path string
	Hash string
}

// FileRecord holds the text content of a successfully read file, plus the
// content digest to merge into the checksum cache after the pool drains.
type FileRecord struct {
	Path    string
	Content string
	Hash    string
}
