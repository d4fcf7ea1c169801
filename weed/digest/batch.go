package digest

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/seaweedfs/md5stream/weed/glog"
	reqid "github.com/seaweedfs/md5stream/weed/util/request_id"
)

// SumAll hashes independent sources concurrently, each with its own hasher,
// at most opts.Concurrency at a time. Results keep the order of sources.
// The first failure cancels the remaining work and is returned.
func SumAll(ctx context.Context, sources []Source, opts ReaderOptions) ([]Result, error) {
	ctx = reqid.Ensure(ctx)
	batchID := reqid.Get(ctx)

	results := make([]Result, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, src := range sources {
		srcCtx := reqid.Set(gCtx, batchID+"."+strconv.Itoa(i))
		g.Go(func() error {
			res, err := SumSource(srcCtx, src, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		glog.ErrorfCtx(ctx, "hash %d sources: %v", len(sources), err)
		return nil, err
	}
	glog.V(1).InfofCtx(ctx, "hashed %d sources", len(sources))
	return results, nil
}
