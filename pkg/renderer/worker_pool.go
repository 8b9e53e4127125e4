package renderer

// RowBand is the contiguous range of scanlines [Start, End) owned by one worker
type RowBand struct {
	WorkerID int
	Start    int
	End      int
}

// Rows returns the number of scanlines in the band
func (b RowBand) Rows() int {
	return b.End - b.Start
}

// PartitionRows splits height scanlines into contiguous blocks of ceil(height/numWorkers).
// Workers whose block would start past the last row get no band, so fewer than
// numWorkers bands may be returned.
func PartitionRows(height, numWorkers int) []RowBand {
	if height <= 0 || numWorkers <= 0 {
		return nil
	}

	blockSize := (height + numWorkers - 1) / numWorkers
	bands := make([]RowBand, 0, numWorkers)
	for id := 0; id < numWorkers; id++ {
		start := id * blockSize
		if start >= height {
			break
		}
		bands = append(bands, RowBand{
			WorkerID: id,
			Start:    start,
			End:      min(start+blockSize, height),
		})
	}
	return bands
}
