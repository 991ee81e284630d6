package models

// BatchItem is the per-image outcome of a batch run. Index is the zero-based
// position of the upload in the request; exactly one of Data and Err is set.
type BatchItem struct {
	Index int
	Data  []byte
	Err   error
}
