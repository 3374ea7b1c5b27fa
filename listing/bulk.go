package listing

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
)

const bulkConcurrency = 8

type BulkFailure struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// BulkReport: các thao tác thành công được giữ nguyên, không hoàn tác
type BulkReport struct {
	Succeeded []int64       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r BulkReport) OK() bool { return len(r.Failed) == 0 }

func (r BulkReport) Message() string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf(constants.BULK_PARTIAL_FAILURE, len(r.Failed), len(r.Succeeded)+len(r.Failed))
}

// RunBulk gọi fn cho từng id (bỏ trùng), tối đa bulkConcurrency lời gọi cùng lúc.
// Lỗi của một id không huỷ các id còn lại.
func RunBulk(ctx context.Context, ids []int64, fn func(ctx context.Context, id int64) error) BulkReport {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var (
		mu     sync.Mutex
		report BulkReport
		g      errgroup.Group
	)
	g.SetLimit(bulkConcurrency)
	for _, id := range unique {
		id := id
		g.Go(func() error {
			err := fn(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, BulkFailure{ID: id, Message: client.Describe(err, constants.ERROR_UPDATE)})
			} else {
				report.Succeeded = append(report.Succeeded, id)
			}
			return nil
		})
	}
	g.Wait()

	slices.Sort(report.Succeeded)
	slices.SortFunc(report.Failed, func(a, b BulkFailure) int { return cmp.Compare(a.ID, b.ID) })
	return report
}
