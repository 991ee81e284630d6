package processor

import (
	"sync"

	"github.com/MaorParienty/watermark-api/internal/models"
)

// ProcessBatch watermarks every upload with the same config. Images are
// processed by a small worker pool; results are written by index so output
// order always matches input order, and an undecodable image fails only its
// own slot.
func (p *ImageProcessor) ProcessBatch(images [][]byte, cfg *models.WatermarkConfig) []models.BatchItem {
	results := make([]models.BatchItem, len(images))
	jobs := make(chan int, len(images))

	numWorkers := DefaultWorkers
	if len(images) < numWorkers {
		numWorkers = len(images)
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				buffer, err := p.ProcessImage(images[i], cfg)
				if err != nil {
					results[i] = models.BatchItem{Index: i, Err: err}
					continue
				}
				results[i] = models.BatchItem{Index: i, Data: buffer.Bytes()}
			}
		}()
	}

	for i := range images {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
