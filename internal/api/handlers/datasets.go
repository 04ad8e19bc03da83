package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"solar-savings/internal/api/models"
	"solar-savings/internal/config"
	"solar-savings/internal/data"
)

// DatasetsHandler lists the raw input files available to analyze.
type DatasetsHandler struct {
	cfg *config.Config
}

func NewDatasetsHandler(cfg *config.Config) *DatasetsHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &DatasetsHandler{cfg: cfg}
}

// ListDatasets handles GET /api/v1/datasets. A kind with no matching files
// is simply absent; the analysis endpoint reports that properly when a run
// actually needs the files.
func (h *DatasetsHandler) ListDatasets(c *gin.Context) {
	loc, err := h.cfg.Location()
	if err != nil {
		loc = time.UTC
	}

	var out []models.DatasetInfo
	if paths, err := data.Discover(h.cfg.DataDir, h.cfg.EnergyGlob); err == nil {
		for _, p := range paths {
			info, err := statFile(p)
			if err != nil {
				continue
			}
			info.Kind = "energy"
			if samples, _, err := data.LoadEnergyCSV(p, loc); err == nil && len(samples) > 0 {
				info.Rows = len(samples)
				info.From = samples[0].Time
				info.To = samples[len(samples)-1].Time
			}
			out = append(out, info)
		}
	}
	if paths, err := data.Discover(h.cfg.DataDir, h.cfg.PricesGlob); err == nil {
		for _, p := range paths {
			info, err := statFile(p)
			if err != nil {
				continue
			}
			info.Kind = "prices"
			if prices, _, err := data.LoadPriceCSV(p, loc); err == nil && len(prices) > 0 {
				info.Rows = len(prices)
				info.From = prices[0].ValidFrom
				info.To = prices[len(prices)-1].ValidTo
			}
			out = append(out, info)
		}
	}
	c.JSON(http.StatusOK, gin.H{"datasets": out})
}

func statFile(path string) (models.DatasetInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.DatasetInfo{}, err
	}
	return models.DatasetInfo{
		Name:     filepath.Base(path),
		Size:     fi.Size(),
		Modified: fi.ModTime(),
	}, nil
}
