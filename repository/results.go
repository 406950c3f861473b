package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/originality-tools/oriscan/entity"
	"github.com/originality-tools/oriscan/utils"
	"github.com/originality-tools/oriscan/view"

	log "github.com/sirupsen/logrus"
)

const (
	resultPrefix    = "scan_result_"
	rawSuffix       = "_raw.json"
	reportSuffix    = ".txt"
	timestampLayout = "20060102_150405"
)

type SaveOptions struct {
	Basename string // overrides the timestamped default
	SkipRaw  bool
}

type ResultRepository interface {
	Save(env *view.ScanEnvelope, formatted string, opts SaveOptions) (*entity.ScanFiles, error)
	List() ([]entity.StoredScan, error)
	GetRaw(id string) (json.RawMessage, error)
	GetReport(id string) (string, error)
	Cleanup(maxAge time.Duration) (int, error)
}

func NewResultRepository(resultsDir string) ResultRepository {
	return &resultRepositoryImpl{resultsDir: resultsDir}
}

type resultRepositoryImpl struct {
	resultsDir string
}

func (f resultRepositoryImpl) Save(env *view.ScanEnvelope, formatted string, opts SaveOptions) (*entity.ScanFiles, error) {
	if err := os.MkdirAll(f.resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory %s: %w", f.resultsDir, err)
	}

	basename := opts.Basename
	if basename == "" {
		basename = resultPrefix + time.Now().Format(timestampLayout)
	}
	basename = f.freeBasename(basename)

	formattedPath := filepath.Join(f.resultsDir, basename+reportSuffix)
	if err := os.WriteFile(formattedPath, []byte(formatted), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write formatted result: %w", err)
	}

	files := entity.ScanFiles{Id: basename, FormattedPath: formattedPath}

	if !opts.SkipRaw {
		var indented bytes.Buffer
		if err := json.Indent(&indented, env.Raw, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to indent raw result: %w", err)
		}
		rawPath := filepath.Join(f.resultsDir, basename+rawSuffix)
		if err := os.WriteFile(rawPath, indented.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write raw result: %w", err)
		}
		files.RawPath = rawPath
	}

	return &files, nil
}

// freeBasename returns a basename that does not collide with an already
// stored pair (several timestamped scans may land within one second, and a
// caller-supplied basename may be reused).
func (f resultRepositoryImpl) freeBasename(base string) string {
	candidate := base
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(f.resultsDir, candidate+reportSuffix)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}

func (f resultRepositoryImpl) List() ([]entity.StoredScan, error) {
	entries, err := os.ReadDir(f.resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read results directory %s: %w", f.resultsDir, err)
	}

	var scans []entity.StoredScan
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, resultPrefix) || !strings.HasSuffix(name, reportSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, reportSuffix)
		scan := entity.StoredScan{
			Id:            id,
			CreatedAt:     parseCreatedAt(id),
			FormattedPath: filepath.Join(f.resultsDir, name),
		}

		rawPath := filepath.Join(f.resultsDir, id+rawSuffix)
		if raw, err := os.ReadFile(rawPath); err == nil {
			scan.RawPath = rawPath
			scan.ContentChecksum = utils.GetEncodedChecksum(raw)
			fillSummary(&scan, raw)
		}
		scans = append(scans, scan)
	}

	sort.Slice(scans, func(i, j int) bool {
		if scans[i].CreatedAt.Equal(scans[j].CreatedAt) {
			return scans[i].Id > scans[j].Id
		}
		return scans[i].CreatedAt.After(scans[j].CreatedAt)
	})
	return scans, nil
}

func parseCreatedAt(id string) time.Time {
	ts := strings.TrimPrefix(id, resultPrefix)
	// drop the collision counter if present: 20250115_104501_2
	if parts := strings.Split(ts, "_"); len(parts) > 2 {
		ts = parts[0] + "_" + parts[1]
	}
	createdAt, err := time.ParseInLocation(timestampLayout, ts, time.Local)
	if err != nil {
		return time.Time{}
	}
	return createdAt
}

func fillSummary(scan *entity.StoredScan, raw []byte) {
	var result view.ScanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Debugf("Failed to decode stored result %s: %v", scan.Id, err)
		return
	}
	if result.Properties != nil {
		scan.Title = result.Properties.Title
	}
	if result.AI != nil && result.AI.Confidence != nil {
		if ai, ok := result.AI.Confidence["AI"]; ok {
			p := ai * 100
			scan.AIProbability = &p
		}
	}
	if result.Plagiarism != nil {
		s := result.Plagiarism.Score
		scan.PlagiarismScore = &s
	}
}

func (f resultRepositoryImpl) GetRaw(id string) (json.RawMessage, error) {
	raw, err := os.ReadFile(filepath.Join(f.resultsDir, id+rawSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read raw result %s: %w", id, err)
	}
	return raw, nil
}

func (f resultRepositoryImpl) GetReport(id string) (string, error) {
	report, err := os.ReadFile(filepath.Join(f.resultsDir, id+reportSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read report %s: %w", id, err)
	}
	return string(report), nil
}

func (f resultRepositoryImpl) Cleanup(maxAge time.Duration) (int, error) {
	scans, err := f.List()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, scan := range scans {
		if scan.CreatedAt.IsZero() || !scan.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(scan.FormattedPath); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", scan.FormattedPath, err)
		}
		if scan.RawPath != "" {
			if err := os.Remove(scan.RawPath); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", scan.RawPath, err)
			}
		}
		removed++
	}
	return removed, nil
}
