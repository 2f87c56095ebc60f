package scan

import "bytes"

// binarySniffLen bounds how much of a file's head is inspected for binary
// content.
const binarySniffLen = 512

// looksBinary checks if content appears to be binary by looking for null
// bytes in the first few hundred bytes. Text encodings never contain null
// bytes, so their presence marks the file as undecodable.
func looksBinary(data []byte) bool {
	head := data
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	return bytes.Contains(head, []byte{0})
}
