package spots

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ngmaloney/surf-terminal/internal/geocoding"
)

// useTestDB points GetDB at an in-memory database seeded with the catalog.
func useTestDB(t *testing.T) {
	t.Helper()
	mem, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	mem.SetMaxOpenConns(1)

	list, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if err := buildSpotsDatabase(mem, list, nil); err != nil {
		t.Fatalf("buildSpotsDatabase() error = %v", err)
	}

	old := GetDB
	GetDB = func(string) (*sql.DB, error) { return mem, nil }
	t.Cleanup(func() {
		GetDB = old
		mem.Close()
	})
}

func TestNeedsProvisioning(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	needs, err := NeedsProvisioning(dbPath)
	if err != nil || !needs {
		t.Errorf("missing file: needs=%v, err=%v", needs, err)
	}

	if err := ProvisionSpotsDatabase(dbPath, nil, nil); err != nil {
		t.Fatalf("ProvisionSpotsDatabase() error = %v", err)
	}

	needs, err = NeedsProvisioning(dbPath)
	if err != nil || needs {
		t.Errorf("after provisioning: needs=%v, err=%v", needs, err)
	}

	// Second call is a no-op.
	if err := ProvisionSpotsDatabase(dbPath, nil, nil); err != nil {
		t.Fatalf("second ProvisionSpotsDatabase() error = %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM surf_spots").Scan(&count); err != nil || count != 20 {
		t.Errorf("count = %d (err %v), want 20", count, err)
	}
}

func TestProvisionSpotsDatabase_Progress(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "spots.db")
	progress := make(chan string, 16)

	if err := ProvisionSpotsDatabase(dbPath, progress, nil); err != nil {
		t.Fatalf("ProvisionSpotsDatabase() error = %v", err)
	}
	close(progress)

	var msgs []string
	for m := range progress {
		msgs = append(msgs, m)
	}
	if len(msgs) < 3 {
		t.Errorf("progress messages = %v", msgs)
	}
}

func TestListSpots(t *testing.T) {
	useTestDB(t)

	list, err := ListSpots("unused")
	if err != nil {
		t.Fatalf("ListSpots() error = %v", err)
	}
	if len(list) != 20 || list[0].ID != "baishawan_shimen" || list[19].ID != "shanshui_penghu" {
		t.Errorf("ListSpots() order wrong: first=%s", list[0].ID)
	}
}

func TestGetSpotByID(t *testing.T) {
	useTestDB(t)

	spot, err := GetSpotByID("unused", "fulong")
	if err != nil {
		t.Fatalf("GetSpotByID() error = %v", err)
	}
	if spot.MarineStationID != "46694A" || spot.TideStationID != "C4A05" || spot.WaveLocationCode != "O00300" {
		t.Errorf("spot = %+v", spot)
	}

	cijin, err := GetSpotByID("unused", "cijin")
	if err != nil {
		t.Fatal(err)
	}
	if cijin.WaveLocationCode != "" || cijin.BackupStationID != "" {
		t.Errorf("cijin = %+v", cijin)
	}

	if _, err := GetSpotByID("unused", "nope"); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("error = %v, want ErrSpotNotFound", err)
	}
}

func TestSearchSpots(t *testing.T) {
	useTestDB(t)

	tests := []struct {
		query string
		want  int
		first string
	}{
		{"福隆", 1, "fulong"},
		{"KENTING", 2, "dawan_kenting"},
		{"屏東縣", 5, "nanwan"},
		{"墾丁", 2, "dawan_kenting"},
		{"", 0, ""},
		{"nothing", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := SearchSpots("unused", tt.query)
			if err != nil {
				t.Fatalf("SearchSpots() error = %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].ID != tt.first {
				t.Errorf("first = %s, want %s", got[0].ID, tt.first)
			}
		})
	}
}

func TestFindNearbySpots(t *testing.T) {
	useTestDB(t)

	// Between Wushi harbour and Waiao.
	nearby, err := FindNearbySpots("unused", 24.872, 121.840, 10)
	if err != nil {
		t.Fatalf("FindNearbySpots() error = %v", err)
	}
	if len(nearby) < 2 {
		t.Fatalf("len = %d, want at least 2", len(nearby))
	}
	for i := 1; i < len(nearby); i++ {
		if nearby[i].DistanceKm < nearby[i-1].DistanceKm {
			t.Error("results not sorted by distance")
		}
	}
	for _, s := range nearby {
		if s.Region != "宜蘭縣" {
			t.Errorf("unexpected spot %s within 10 km", s.ID)
		}
	}

	if _, err := FindNearbySpots("unused", 0, 0, 50); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("error = %v, want ErrSpotNotFound", err)
	}

	nearest, err := NearestSpot("unused", 22.614, 120.268, 20)
	if err != nil || nearest.ID != "cijin" {
		t.Errorf("NearestSpot = %+v, %v, want cijin", nearest, err)
	}
}

type fakeGeocoder struct {
	loc   *geocoding.Location
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(context.Context, string) (*geocoding.Location, error) {
	f.calls++
	return f.loc, f.err
}

func TestService_Resolve(t *testing.T) {
	useTestDB(t)
	geo := &fakeGeocoder{loc: &geocoding.Location{Latitude: 21.95, Longitude: 120.77, Name: "恆春"}}
	svc := NewService("unused", geo, 30)
	ctx := context.Background()

	byID, err := svc.Resolve(ctx, "  Jinzun ")
	if err != nil || byID.Spot.ID != "jinzun" || byID.MatchedBy != "id" {
		t.Errorf("id lookup = %+v, %v", byID, err)
	}

	byName, err := svc.Resolve(ctx, "都蘭")
	if err != nil || byName.Spot.ID != "dulan" || byName.MatchedBy != "name" {
		t.Errorf("name lookup = %+v, %v", byName, err)
	}
	if geo.calls != 0 {
		t.Error("geocoder should not be called for catalog matches")
	}

	byPlace, err := svc.Resolve(ctx, "恆春古城")
	if err != nil {
		t.Fatalf("geocode lookup error = %v", err)
	}
	if byPlace.MatchedBy != "geocode" || byPlace.Spot.ID != "nanwan" || byPlace.Location == nil {
		t.Errorf("geocode lookup = %+v", byPlace)
	}
}

func TestService_ResolveFailures(t *testing.T) {
	useTestDB(t)
	ctx := context.Background()

	if _, err := NewService("unused", nil, 0).Resolve(ctx, "台北101"); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("without geocoder: %v, want ErrSpotNotFound", err)
	}

	noHit := &fakeGeocoder{err: geocoding.ErrNoResults}
	if _, err := NewService("unused", noHit, 0).Resolve(ctx, "xyz"); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("no results: %v, want ErrSpotNotFound", err)
	}

	far := &fakeGeocoder{loc: &geocoding.Location{Latitude: 35, Longitude: 139}}
	if _, err := NewService("unused", far, 50).Resolve(ctx, "Tokyo"); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("far away: %v, want ErrSpotNotFound", err)
	}

	if _, err := NewService("unused", nil, 0).Resolve(ctx, " "); err == nil {
		t.Error("expected error for empty query")
	}
}
