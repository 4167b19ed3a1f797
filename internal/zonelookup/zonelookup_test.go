package zonelookup

import (
	"archive/zip"
	"database/sql"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return db
}

func TestDistance(t *testing.T) {
	// Taipei to Kaohsiung is roughly 300 km.
	d := Distance(25.0330, 121.5654, 22.6273, 120.3014)
	if d < 290 || d > 305 {
		t.Errorf("Distance = %.1f km, want ~297", d)
	}
	if Distance(24.87, 121.84, 24.87, 121.84) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestBoundingBox(t *testing.T) {
	minLat, maxLat, minLon, maxLon := BoundingBox(24.0, 121.0, 111.2)
	if math.Abs((maxLat-minLat)-2.0) > 0.05 {
		t.Errorf("lat span = %.3f, want ~2", maxLat-minLat)
	}
	if maxLon-minLon <= maxLat-minLat {
		t.Error("longitude span should exceed latitude span away from the equator")
	}
}

func TestGetNearbyZonesFromDB(t *testing.T) {
	db := openTestDB(t)

	n, err := UpsertPointZones(db, []PointZone{
		{Code: "O00400", Name: "烏石", Latitude: 24.87, Longitude: 121.84},
		{Code: "O00300", Name: "龍洞", Latitude: 25.10, Longitude: 121.92},
		{Code: "I00500", Name: "高雄", Latitude: 22.60, Longitude: 120.25},
		{Code: "", Name: "ignored"},
	})
	if err != nil {
		t.Fatalf("UpsertPointZones() error = %v", err)
	}
	if n != 3 {
		t.Errorf("inserted %d zones, want 3", n)
	}

	tests := []struct {
		name       string
		lat, lon   float64
		maxKm      float64
		wantZones  int
		targetZone string
	}{
		{"near wushi", 24.86, 121.83, 50, 2, "O00400"},
		{"tight radius", 24.86, 121.83, 5, 1, "O00400"},
		{"south", 22.61, 120.27, 20, 1, "I00500"},
		{"nothing", 0, 0, 100, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zones, err := getNearbyZonesFromDB(db, tt.lat, tt.lon, tt.maxKm)
			if err != nil {
				t.Fatalf("getNearbyZonesFromDB() error = %v", err)
			}
			if len(zones) != tt.wantZones {
				t.Errorf("got %d zones, want %d", len(zones), tt.wantZones)
			}
			if tt.wantZones > 0 && zones[0].Code != tt.targetZone {
				t.Errorf("got zone %s, want %s", zones[0].Code, tt.targetZone)
			}
		})
	}
}

func TestUpsertPointZones_Replaces(t *testing.T) {
	db := openTestDB(t)

	if _, err := UpsertPointZones(db, []PointZone{{Code: "X", Name: "old", Latitude: 24, Longitude: 121}}); err != nil {
		t.Fatal(err)
	}
	if _, err := UpsertPointZones(db, []PointZone{{Code: "X", Name: "new", Latitude: 24, Longitude: 121}}); err != nil {
		t.Fatal(err)
	}

	zone, err := getZoneByCodeFromDB(db, "X")
	if err != nil {
		t.Fatalf("getZoneByCodeFromDB() error = %v", err)
	}
	if zone.Name != "new" || zone.Source != "wave" {
		t.Errorf("zone = %+v", zone)
	}

	if _, err := getZoneByCodeFromDB(db, "Z999"); err == nil {
		t.Error("getZoneByCodeFromDB('Z999') expected error, got nil")
	}
}

// writeTestShapefile writes a single square zone spanning 25.0-25.1N,
// 121.9-122.0E.
func writeTestShapefile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "zones.shp")

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("shp.Create() error = %v", err)
	}
	if err := w.SetFields([]shp.Field{
		shp.StringField("CODE", 10),
		shp.StringField("NAME", 40),
	}); err != nil {
		t.Fatalf("SetFields() error = %v", err)
	}

	ring := []shp.Point{
		{X: 121.9, Y: 25.0},
		{X: 121.9, Y: 25.1},
		{X: 122.0, Y: 25.1},
		{X: 122.0, Y: 25.0},
		{X: 121.9, Y: 25.0},
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	row := w.Write(&poly)
	if err := w.WriteAttribute(int(row), 0, "NE01"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAttribute(int(row), 1, "Longdong"); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return path
}

func TestImportShapefile_AndZoneForPoint(t *testing.T) {
	db := openTestDB(t)
	path := writeTestShapefile(t, t.TempDir())

	n, err := ImportShapefile(db, path, nil)
	if err != nil {
		t.Fatalf("ImportShapefile() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d zones, want 1", n)
	}

	if _, err := UpsertPointZones(db, []PointZone{{Code: "O00400", Name: "烏石", Latitude: 24.87, Longitude: 121.84}}); err != nil {
		t.Fatal(err)
	}

	inside, err := zoneForPointFromDB(db, 25.05, 121.95, 50)
	if err != nil {
		t.Fatalf("zoneForPointFromDB() error = %v", err)
	}
	if inside == nil || inside.Code != "NE01" || inside.Name != "Longdong" || inside.Source != "shapefile" {
		t.Errorf("inside = %+v, want polygon NE01", inside)
	}

	near, err := zoneForPointFromDB(db, 24.88, 121.85, 50)
	if err != nil {
		t.Fatal(err)
	}
	if near == nil || near.Code != "O00400" {
		t.Errorf("near = %+v, want nearest centre O00400", near)
	}

	none, err := zoneForPointFromDB(db, 21.0, 119.0, 10)
	if err != nil || none != nil {
		t.Errorf("far point = %+v, %v, want nil", none, err)
	}
}

func TestImportShapefile_Zip(t *testing.T) {
	srcDir := t.TempDir()
	writeTestShapefile(t, srcDir)

	zipPath := filepath.Join(t.TempDir(), "zones.zip")
	out, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		addToZip(t, zw, filepath.Join(srcDir, "zones"+ext), "zones/zones"+ext)
	}
	zw.Close()
	out.Close()

	db := openTestDB(t)
	n, err := ImportShapefile(db, zipPath, nil)
	if err != nil {
		t.Fatalf("ImportShapefile(zip) error = %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d zones, want 1", n)
	}
}

func addToZip(t *testing.T, zw *zip.Writer, src, name string) {
	t.Helper()
	f, err := os.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(w, f); err != nil {
		t.Fatal(err)
	}
}

func TestUnzipFile_ZipSlip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	out, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	w, _ := zw.Create("../evil.txt")
	w.Write([]byte("x"))
	zw.Close()
	out.Close()

	if err := unzipFile(zipPath, t.TempDir()); err == nil {
		t.Error("expected illegal path error")
	}
}

func TestLoopFromGeometry_Invalid(t *testing.T) {
	if _, err := loopFromGeometry(`[[121,25],[122,25]]`); err == nil {
		t.Error("expected error for degenerate polygon")
	}
	if _, err := loopFromGeometry(`not json`); err == nil {
		t.Error("expected error for bad json")
	}
}
