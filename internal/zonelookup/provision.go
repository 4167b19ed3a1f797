package zonelookup

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// PointZone is a zone known only by its centre, such as a wave model grid
// point.
type PointZone struct {
	Code      string
	Name      string
	Latitude  float64
	Longitude float64
}

// pointZoneRadiusKm is the half-width of the bounding box stored for point
// zones.
const pointZoneRadiusKm = 5.0

// UpsertPointZones stores point zones, replacing zones with the same code.
func UpsertPointZones(db *sql.DB, zones []PointZone) (int, error) {
	if err := EnsureSchema(db); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.Prepare(upsertZoneSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, z := range zones {
		if z.Code == "" {
			continue
		}
		minLat, maxLat, minLon, maxLon := BoundingBox(z.Latitude, z.Longitude, pointZoneRadiusKm)
		if _, err := stmt.Exec(z.Code, z.Name, "wave", nil,
			minLat, maxLat, minLon, maxLon, z.Latitude, z.Longitude); err != nil {
			return count, fmt.Errorf("inserting zone %s: %w", z.Code, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

const upsertZoneSQL = `
	INSERT INTO forecast_zones (
		code, name, source, geometry,
		bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon,
		center_lat, center_lon
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(code) DO UPDATE SET
		name = excluded.name,
		source = excluded.source,
		geometry = excluded.geometry,
		bbox_min_lat = excluded.bbox_min_lat,
		bbox_max_lat = excluded.bbox_max_lat,
		bbox_min_lon = excluded.bbox_min_lon,
		bbox_max_lon = excluded.bbox_max_lon,
		center_lat = excluded.center_lat,
		center_lon = excluded.center_lon
`

// ImportShapefile loads polygon zones from a .shp file, a .zip containing
// one, or an http(s) URL to such a zip.
func ImportShapefile(db *sql.DB, source string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workDir, err := os.MkdirTemp("", "surf-zones")
	if err != nil {
		return 0, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		zipPath := filepath.Join(workDir, "zones.zip")
		logger.Info("downloading forecast zones", zap.String("url", source))
		if err := downloadFile(zipPath, source); err != nil {
			return 0, fmt.Errorf("downloading shapefile: %w", err)
		}
		source = zipPath
	}

	shpPath := source
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		if err := unzipFile(source, workDir); err != nil {
			return 0, fmt.Errorf("extracting shapefile: %w", err)
		}
		shpPath, err = findShapefile(workDir)
		if err != nil {
			return 0, err
		}
	}

	if err := EnsureSchema(db); err != nil {
		return 0, err
	}
	count, err := buildZones(db, shpPath, logger)
	if err != nil {
		return 0, fmt.Errorf("building zones: %w", err)
	}
	logger.Info("imported forecast zones", zap.Int("count", count), zap.String("source", shpPath))
	return count, nil
}

// downloadFile downloads a file from a URL to a local path
func downloadFile(filepath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// unzipFile extracts a zip file to a destination directory
func unzipFile(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)

		// Check for ZipSlip vulnerability
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, os.ModePerm)
			continue
		}

		if err = os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}

		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}
	return nil
}

func findShapefile(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".shp") {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no .shp file in archive")
	}
	return found, nil
}

// fieldIndex returns the first attribute column whose name matches one of
// names, or fallback.
func fieldIndex(fields []shp.Field, fallback int, names ...string) int {
	for i, f := range fields {
		for _, n := range names {
			if strings.EqualFold(f.String(), n) {
				return i
			}
		}
	}
	return fallback
}

// buildZones inserts every polygon of the shapefile as a zone
func buildZones(db *sql.DB, shapefilePath string, logger *zap.Logger) (int, error) {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return 0, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	codeIdx := fieldIndex(fields, 0, "CODE", "ID", "ZONE", "AREA_CODE", "LocCode")
	nameIdx := fieldIndex(fields, 1, "NAME", "ZONE_NAME", "AREA_NAME", "LocName")
	if nameIdx >= len(fields) {
		nameIdx = codeIdx
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.Prepare(upsertZoneSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for shape.Next() {
		n, p := shape.Shape()

		polygon, ok := p.(*shp.Polygon)
		if !ok || len(polygon.Parts) == 0 {
			continue
		}

		zoneCode := strings.TrimSpace(shape.ReadAttribute(n, codeIdx))
		zoneName := strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
		if zoneCode == "" {
			continue
		}

		coords := largestPart(polygon)
		geometryJSON, err := json.Marshal(coords)
		if err != nil {
			logger.Warn("skipping zone geometry", zap.String("code", zoneCode), zap.Error(err))
			continue
		}

		bbox := polygon.BBox()
		centerLat := (bbox.MinY + bbox.MaxY) / 2
		centerLon := (bbox.MinX + bbox.MaxX) / 2

		if _, err := stmt.Exec(zoneCode, zoneName, "shapefile", string(geometryJSON),
			bbox.MinY, bbox.MaxY, bbox.MinX, bbox.MaxX,
			centerLat, centerLon); err != nil {
			logger.Warn("skipping zone", zap.String("code", zoneCode), zap.Error(err))
			continue
		}

		count++
		if count%100 == 0 {
			logger.Debug("processed zones", zap.Int("count", count))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// largestPart returns the [lon, lat] ring of the polygon part with the most
// points, which is taken as the outer boundary.
func largestPart(polygon *shp.Polygon) [][]float64 {
	largestPartIdx := 0
	largestPartSize := 0

	for partIdx := 0; partIdx < len(polygon.Parts); partIdx++ {
		startIdx, endIdx := partBounds(polygon, partIdx)
		if size := endIdx - startIdx; size > largestPartSize {
			largestPartSize = size
			largestPartIdx = partIdx
		}
	}

	startIdx, endIdx := partBounds(polygon, largestPartIdx)
	coords := make([][]float64, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		point := polygon.Points[i]
		coords = append(coords, []float64{point.X, point.Y})
	}
	return coords
}

func partBounds(polygon *shp.Polygon, partIdx int) (int, int) {
	startIdx := int(polygon.Parts[partIdx])
	endIdx := len(polygon.Points)
	if partIdx+1 < len(polygon.Parts) {
		endIdx = int(polygon.Parts[partIdx+1])
	}
	return startIdx, endIdx
}
