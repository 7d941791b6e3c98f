package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"StockAnalyzer/internal/model"
)

var cacheHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// CacheStore keeps one CSV file per ticker under Dir.
type CacheStore struct {
	Dir string
}

// NewCacheStore creates a store rooted at dir. The directory is created on first write.
func NewCacheStore(dir string) *CacheStore {
	return &CacheStore{Dir: dir}
}

// Path returns the cache file for ticker.
func (c *CacheStore) Path(ticker string) string {
	return filepath.Join(c.Dir, ticker+"_stock_data.csv")
}

// Load reads the cached bars for ticker. The returned bool is false when no file exists.
func (c *CacheStore) Load(ticker string) ([]model.OHLCV, bool, error) {
	f, err := os.Open(c.Path(ticker))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()

	bars, err := readBars(f)
	if err != nil {
		return nil, true, fmt.Errorf("read cache %s: %w", c.Path(ticker), err)
	}
	return bars, true, nil
}

// Save replaces the cache file for ticker with bars.
func (c *CacheStore) Save(ticker string, bars []model.OHLCV) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir, ticker+"_*.csv.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeBars(tmp, bars); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(ticker)); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

func writeBars(w io.Writer, bars []model.OHLCV) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cacheHeader); err != nil {
		return err
	}
	for _, b := range bars {
		rec := []string{
			b.Time.Format("2006-01-02"),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatInt(b.Volume, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readBars(r io.Reader) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(cacheHeader)

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("header: %w", err)
	}

	var bars []model.OHLCV
	var prev time.Time
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		bar, err := parseBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(bars) > 0 && !bar.Time.After(prev) {
			return nil, fmt.Errorf("line %d: date %s not after %s", line, bar.Time.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
		prev = bar.Time
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(rec []string) (model.OHLCV, error) {
	var bar model.OHLCV
	t, err := time.ParseInLocation("2006-01-02", rec[0], time.UTC)
	if err != nil {
		return bar, fmt.Errorf("date: %w", err)
	}
	bar.Time = t

	prices := []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close}
	for i, dst := range prices {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return bar, fmt.Errorf("%s: %w", cacheHeader[i+1], err)
		}
		*dst = v
	}
	vol, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return bar, fmt.Errorf("Volume: %w", err)
	}
	bar.Volume = int64(vol)
	return bar, nil
}
