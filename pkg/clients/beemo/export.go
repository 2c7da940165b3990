package beemo

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/text/encoding/charmap"

	"github.com/beemotools/beemo-exporter/pkg/logger"
	"github.com/beemotools/beemo-exporter/pkg/request"
)

// FetchExport downloads one CSV export over the authenticated session and
// transcodes it from the portal's ISO-8859-1 to UTF-8.
func (bc *BeemoClient) FetchExport(ctx context.Context, exportPath string) ([]byte, error) {
	log := logger.Logger(ctx).WithField("service", "beemo")

	exportURL := bc.config.URL + exportPath
	req, err := request.NewRequest(ctx, http.MethodGet, exportURL, []byte{})
	if err != nil {
		return nil, err
	}

	body, status, err := req.MakeRequest(bc.httpClient, "portal.beemo.FetchExport", "beemo")
	if err != nil {
		return nil, fmt.Errorf("fetching export %s: %w", exportPath, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching export %s", status, exportPath)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("transcoding export %s: %w", exportPath, err)
	}

	log.WithField("path", exportPath).WithField("bytes", len(decoded)).Info("export downloaded")
	return decoded, nil
}
