package zonelookup

import (
	"database/sql"
	"testing"
)

func useTestDB(t *testing.T) {
	t.Helper()
	mem := openTestDB(t)
	old := GetDB
	GetDB = func(string) (*sql.DB, error) { return mem, nil }
	t.Cleanup(func() { GetDB = old })
}

func TestLookup(t *testing.T) {
	useTestDB(t)
	l := NewLookup("unused", 30)

	n, err := l.SyncPointZones([]PointZone{
		{Code: "O00400", Name: "烏石", Latitude: 24.87, Longitude: 121.84},
		{Code: "O00300", Name: "龍洞", Latitude: 25.10, Longitude: 121.92},
	})
	if err != nil || n != 2 {
		t.Fatalf("SyncPointZones() = %d, %v", n, err)
	}

	wave, err := l.NearestWaveZone(24.90, 121.86)
	if err != nil {
		t.Fatalf("NearestWaveZone() error = %v", err)
	}
	if wave == nil || wave.Code != "O00400" {
		t.Errorf("NearestWaveZone = %+v, want O00400", wave)
	}

	none, err := l.NearestWaveZone(22.0, 120.0)
	if err != nil || none != nil {
		t.Errorf("far point = %+v, %v", none, err)
	}

	zone, err := l.ZoneForPoint(25.09, 121.92)
	if err != nil || zone == nil || zone.Code != "O00300" {
		t.Errorf("ZoneForPoint = %+v, %v", zone, err)
	}

	if _, err := GetZoneByCode("unused", "O00300"); err != nil {
		t.Errorf("GetZoneByCode() error = %v", err)
	}
}

func TestLookup_ShapefileZonesAreNotWaveZones(t *testing.T) {
	useTestDB(t)
	l := NewLookup("unused", 30)

	if _, err := l.ImportShapefile(writeTestShapefile(t, t.TempDir())); err != nil {
		t.Fatalf("ImportShapefile() error = %v", err)
	}

	wave, err := l.NearestWaveZone(25.05, 121.95)
	if err != nil || wave != nil {
		t.Errorf("NearestWaveZone = %+v, %v, want nil", wave, err)
	}
	zone, err := l.ZoneForPoint(25.05, 121.95)
	if err != nil || zone == nil || zone.Code != "NE01" {
		t.Errorf("ZoneForPoint = %+v, %v", zone, err)
	}
}
