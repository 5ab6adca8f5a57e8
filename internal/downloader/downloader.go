// Package downloader fetches the source datasets from the ONS website.
package downloader

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Dataset is one downloadable source file.
type Dataset struct {
	Key         string
	Name        string
	URL         string
	Filename    string // local name under the download directory
	Description string
}

// Datasets lists the known ONS source files.
var Datasets = []Dataset{
	{
		Key:         "mortality_21st_century",
		Name:        "21st Century Mortality",
		URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/birthsdeathsandmarriages/deaths/datasets/the21stcenturymortalityfilesdeathsdataset/current/21stcenturymortality2023.xls",
		Filename:    "21stcenturymortality2023.xls",
		Description: "Deaths by ICD-10 code, sex and age group from 2001 on",
	},
	{
		Key:         "deaths_registered_2023",
		Name:        "Deaths registered in England and Wales 2023",
		URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/birthsdeathsandmarriages/deaths/datasets/deathsregisteredinenglandandwalesseriesdrreferencetables/2023/publishedtables2023.xlsx",
		Filename:    "publishedtables2023.xlsx",
		Description: "Annual death registration reference tables",
	},
	{
		Key:         "death_registrations_summary",
		Name:        "Death registrations summary tables",
		URL:         "https://www.ons.gov.uk/file?uri=/peoplepopulationandcommunity/birthsdeathsandmarriages/deaths/datasets/deathregistrationssummarytablesenglandandwalesreferencetables/2023/publishedweek522023.xlsx",
		Filename:    "publishedweek522023.xlsx",
		Description: "Summary of deaths by cause, age and sex",
	},
	{
		Key:         "public_sector_finances",
		Name:        "Public sector finances",
		URL:         "https://www.ons.gov.uk/file?uri=/economy/governmentpublicsectorandtaxes/publicsectorfinance/datasets/publicsectorfinances/current/publicsectorfinances.csv",
		Filename:    "publicsectorfinances.csv",
		Description: "Monthly public sector finance series",
	},
}

// DatasetByKey returns the dataset with the given key.
func DatasetByKey(key string) (Dataset, bool) {
	for _, d := range Datasets {
		if d.Key == key {
			return d, true
		}
	}
	return Dataset{}, false
}

// Downloader fetches datasets into a local directory.
type Downloader struct {
	dir    string
	client *http.Client
	logger *zap.SugaredLogger
}

// New creates a downloader saving into dir.
func New(dir string, logger *zap.SugaredLogger) *Downloader {
	return &Downloader{
		dir:    dir,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Fetch downloads one dataset. Existing files are kept unless force is
// set. Returns the local path.
func (d *Downloader) Fetch(ctx context.Context, dataset Dataset, force bool) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	localPath := filepath.Join(d.dir, dataset.Filename)
	if !force {
		if _, err := os.Stat(localPath); err == nil {
			d.logger.Infow("already downloaded", "dataset", dataset.Key, "path", localPath)
			return localPath, nil
		}
	}

	d.logger.Infow("downloading", "dataset", dataset.Key, "url", dataset.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dataset.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", dataset.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", dataset.Key, resp.StatusCode)
	}

	// write to a temp name so a failed download never half-replaces a file
	tmpPath := localPath + ".partial"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmpPath, err)
	}
	written, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close %s: %w", tmpPath, closeErr)
	}
	if err := os.Rename(tmpPath, localPath); err != nil {
		return "", fmt.Errorf("finalize %s: %w", localPath, err)
	}

	d.logger.Infow("saved", "dataset", dataset.Key, "path", localPath, "bytes", written)
	return localPath, nil
}

// FetchAll downloads every known dataset, continuing past individual
// failures. Returns the paths fetched and the first error encountered.
func (d *Downloader) FetchAll(ctx context.Context, force bool) ([]string, error) {
	var paths []string
	var firstErr error
	for _, dataset := range Datasets {
		path, err := d.Fetch(ctx, dataset, force)
		if err != nil {
			d.logger.Warnw("download failed", "dataset", dataset.Key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		paths = append(paths, path)
	}
	return paths, firstErr
}

// ExtractZip unpacks a downloaded archive into destDir and returns the
// extracted paths. Entries escaping destDir are rejected.
func ExtractZip(zipPath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create extract directory: %w", err)
	}

	var extracted []string
	for _, entry := range reader.File {
		target := filepath.Join(destDir, entry.Name)
		if !filepath.IsLocal(entry.Name) {
			return nil, fmt.Errorf("archive entry escapes target: %s", entry.Name)
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, err
		}
		src, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
		}
		dst, err := os.Create(target)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("create %s: %w", target, err)
		}
		_, copyErr := io.Copy(dst, src)
		src.Close()
		dst.Close()
		if copyErr != nil {
			return nil, fmt.Errorf("extract %s: %w", entry.Name, copyErr)
		}
		extracted = append(extracted, target)
	}
	return extracted, nil
}
