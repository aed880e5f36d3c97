package tabular

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/countrydict/internal/fetcher"
	"github.com/sells-group/countrydict/pkg/dataset"
)

// FetchDataset downloads a dataset from an http(s) or ftp URL and loads it.
// The format comes from the extension of the URL path.
func FetchDataset(ctx context.Context, rawURL string, timeout time.Duration) (*dataset.Dataset, error) {
	f, err := fetcher.ForURL(rawURL, timeout)
	if err != nil {
		return nil, err
	}
	return fetchWith(ctx, f, rawURL)
}

func fetchWith(ctx context.Context, f fetcher.Fetcher, rawURL string) (*dataset.Dataset, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "tabular: parse dataset url")
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		name = "dataset.json"
	}

	dir, err := os.MkdirTemp("", "countrydict-*")
	if err != nil {
		return nil, eris.Wrap(err, "tabular: create temp dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	local := filepath.Join(dir, name)
	n, err := fetcher.DownloadToFile(ctx, f, rawURL, local)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: fetch %s", u.Redacted())
	}
	zap.L().Debug("fetched dataset",
		zap.String("url", u.Redacted()),
		zap.Int64("bytes", n),
	)

	return LoadDataset(local)
}
