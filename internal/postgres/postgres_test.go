package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	cl "media-catalog/pkg/catelog"

	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
)

// StatsClient implements the tools StatsClient interface for mocking purposes.
type StatsClient struct {
	CountFn     func(string, float64, []string)
	GaugeFn     func(string, float64, []string)
	HistogramFn func(string, float64, []string)
	HandlerFn   func() http.Handler
}

// Count calls the StatsClient's CountFn.
func (sc *StatsClient) Count(name string, incBy float64, labels []string) {
	sc.CountFn(name, incBy, labels)
}

// Gauge calls the StatsClient's GaugeFn.
func (sc *StatsClient) Gauge(name string, value float64, labels []string) {
	sc.GaugeFn(name, value, labels)
}

// Histogram calls the StatsClient's HistogramFn.
func (sc *StatsClient) Histogram(name string, value float64, labels []string) {
	sc.HistogramFn(name, value, labels)
}

// Handler calls the StatsClient's HandlerFn.
func (sc *StatsClient) Handler() http.Handler {
	return sc.HandlerFn()
}

// NopStatsClient implements the StatsClient interface where all funcions
// are no-ops.
var NopStatsClient = &StatsClient{
	CountFn:     func(string, float64, []string) {},
	GaugeFn:     func(string, float64, []string) {},
	HistogramFn: func(string, float64, []string) {},
	HandlerFn:   func() http.Handler { return nil },
}

const photoSelect = `SELECT photos."id", photos."title", photos."description", photos."date", ` +
	`photos."filename", photos."resolution", photos."tags", photos."albums", photos."owner" FROM photos`

func TestBuildQueries(t *testing.T) {
	table := []struct {
		label   string
		buildFn func() (QueryValues, error)
		expQ    string
		expArgs []interface{}
	}{
		{
			label:   "list albums",
			buildFn: buildListAlbumsQuery,
			expQ:    `SELECT albums."id", albums."name" FROM albums ORDER BY albums."id" ASC`,
		},
		{
			label:   "get album",
			buildFn: func() (QueryValues, error) { return buildGetAlbumQuery(3) },
			expQ:    `SELECT albums."id", albums."name" FROM albums WHERE albums."id" = $1`,
			expArgs: []interface{}{3},
		},
		{
			label:   "find album by name",
			buildFn: func() (QueryValues, error) { return buildFindAlbumByNameQuery("VACATION") },
			expQ:    `SELECT albums."id", albums."name" FROM albums WHERE LOWER(albums."name") = LOWER($1) ORDER BY albums."id" ASC LIMIT 1`,
			expArgs: []interface{}{"VACATION"},
		},
		{
			label:   "get photo",
			buildFn: func() (QueryValues, error) { return buildGetPhotoQuery(1) },
			expQ:    photoSelect + ` WHERE photos."id" = $1`,
			expArgs: []interface{}{1},
		},
		{
			label:   "list photos",
			buildFn: func() (QueryValues, error) { return buildListPhotosQuery(nil) },
			expQ:    photoSelect + ` ORDER BY photos."id" ASC`,
		},
		{
			label:   "lock photo",
			buildFn: func() (QueryValues, error) { return buildLockPhotoQuery(1) },
			expQ:    photoSelect + ` WHERE photos."id" = $1 FOR UPDATE`,
			expArgs: []interface{}{1},
		},
		{
			label:   "lock course",
			buildFn: func() (QueryValues, error) { return buildLockCourseQuery("CS101") },
			expQ:    `SELECT courses."code", courses."name", courses."capacity", courses."owner" FROM courses WHERE courses."code" = $1 FOR UPDATE`,
			expArgs: []interface{}{"CS101"},
		},
		{
			label: "get course",
			buildFn: func() (QueryValues, error) {
				return buildGetCourseQuery("CS101")
			},
			expQ:    `SELECT courses."code", courses."name", courses."capacity", courses."owner" FROM courses WHERE courses."code" = $1`,
			expArgs: []interface{}{"CS101"},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			qv, err := ts.buildFn()
			if err != nil {
				t.Fatalf("unexpected error building query: %s", err.Error())
			}
			if qv.query != ts.expQ {
				t.Fatalf("unexpected query returned: %s", cmp.Diff(ts.expQ, qv.query))
			}
			if len(qv.args) != len(ts.expArgs) || (len(ts.expArgs) > 0 && !cmp.Equal(qv.args, ts.expArgs)) {
				t.Fatalf("unexpected args returned: %s", cmp.Diff(ts.expArgs, qv.args))
			}
		})
	}
}

func TestBuildSavePhotoQuery(t *testing.T) {
	qv, err := buildSavePhotoQuery(cl.Photo{ID: 1, Title: "Beach", Albums: []int{10}, Owner: 7})
	if err != nil {
		t.Fatalf("unexpected error building query: %s", err.Error())
	}
	if !strings.HasPrefix(qv.query, "INSERT INTO photos ") {
		t.Fatalf("unexpected query returned: %s", qv.query)
	}
	for _, frag := range []string{
		`ON CONFLICT ("id") DO UPDATE SET`,
		`"title" = EXCLUDED."title"`,
		`"tags" = EXCLUDED."tags"`,
		`"owner" = EXCLUDED."owner"`,
	} {
		if !strings.Contains(qv.query, frag) {
			t.Fatalf("query %q does not contain %q", qv.query, frag)
		}
	}
	if strings.Contains(qv.query, `"id" = EXCLUDED."id"`) {
		t.Fatalf("query must not overwrite the key: %s", qv.query)
	}
	expArgs := []interface{}{1, "Beach", "", "", "", "", pq.StringArray{}, pq.Int64Array{10}, 7}
	if !cmp.Equal(qv.args, expArgs) {
		t.Fatalf("unexpected args returned: %s", cmp.Diff(expArgs, qv.args))
	}
}

func TestBuildSaveCourseQuery(t *testing.T) {
	qv, err := buildSaveCourseQuery(cl.Course{Code: "CS101", Name: "Intro", Capacity: 50, Owner: 7})
	if err != nil {
		t.Fatalf("unexpected error building query: %s", err.Error())
	}
	if !strings.Contains(qv.query, `ON CONFLICT ("code") DO UPDATE SET "name" = EXCLUDED."name", "capacity" = EXCLUDED."capacity", "owner" = EXCLUDED."owner"`) {
		t.Fatalf("unexpected query returned: %s", qv.query)
	}
	expArgs := []interface{}{"CS101", "Intro", 50, 7}
	if !cmp.Equal(qv.args, expArgs) {
		t.Fatalf("unexpected args returned: %s", cmp.Diff(expArgs, qv.args))
	}
}

func TestPhotoRowToPhoto(t *testing.T) {
	r := photoRow{
		Photo:  cl.Photo{ID: 1, Title: "Beach", Owner: 7},
		Albums: pq.Int64Array{10, 11},
	}
	exp := cl.Photo{ID: 1, Title: "Beach", Tags: []string{}, Albums: []int{10, 11}, Owner: 7}
	if res := r.toPhoto(); !cmp.Equal(res, exp) {
		t.Fatalf("unexpected photo returned: %s", cmp.Diff(exp, res))
	}
}

func TestStatsOnComplete(t *testing.T) {
	var hist, count []string
	sc := &StatsClient{
		CountFn:     func(name string, _ float64, labels []string) { count = append(count, name+":"+labels[0]) },
		HistogramFn: func(name string, _ float64, labels []string) { hist = append(hist, name+":"+labels[0]) },
	}
	fn := statsOnComplete(sc)
	errQuery := errors.New("boom")

	if err := fn(context.Background(), "save_photo", time.Now(), nil); err != nil {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
	if err := fn(context.Background(), "save_course", time.Now(), errQuery); err != errQuery {
		t.Fatalf("expected the query error to be passed through, got %v", err)
	}

	expHist := []string{"postgres_query_seconds:save_photo", "postgres_query_seconds:save_course"}
	if !cmp.Equal(hist, expHist) {
		t.Fatalf("unexpected histograms: %s", cmp.Diff(expHist, hist))
	}
	expCount := []string{"postgres_query_errors:save_course"}
	if !cmp.Equal(count, expCount) {
		t.Fatalf("unexpected counts: %s", cmp.Diff(expCount, count))
	}
}

func newPostgres(t *testing.T) *Postgres {
	dbHost := os.Getenv("POSTGRES_HOST")
	if dbHost == "" {
		t.Skip("POSTGRES_HOST not set")
	}
	dbPort, _ := strconv.Atoi(os.Getenv("POSTGRES_PORT"))
	if dbPort == 0 {
		dbPort = 5432
	}

	p, err := New(Config{
		DisableSSL: true,
		Host:       dbHost,
		Port:       dbPort,
		Name:       "media_catalog_test",
		Password:   os.Getenv("POSTGRES_PASS"),
		Username:   "postgres",
	}, NopStatsClient)
	if err != nil {
		t.Fatalf("Unable to create postgres instance: %s", err.Error())
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func clearPostgres(p *Postgres, t *testing.T) {
	_, err := p.sqldb.Exec(`
		TRUNCATE TABLE photos CASCADE;
		TRUNCATE TABLE albums CASCADE;
		TRUNCATE TABLE courses CASCADE;
		TRUNCATE TABLE users CASCADE;
	`)
	if err != nil {
		t.Fatalf("Unable to clear postgres: %s", err.Error())
	}
}

func TestPostgresPhotos(t *testing.T) {
	p := newPostgres(t)
	clearPostgres(p, t)
	ctx := context.Background()

	_, err := p.sqldb.Exec(`INSERT INTO albums ("id", "name") VALUES (10, 'Vacation')`)
	if err != nil {
		t.Fatalf("Unable to insert album: %s", err.Error())
	}
	photo := cl.Photo{ID: 1, Title: "Beach", Tags: []string{}, Albums: []int{10}, Owner: 7}
	if err := p.SavePhoto(ctx, photo); err != nil {
		t.Fatalf("unexpected error saving photo: %s", err.Error())
	}

	album, err := p.FindAlbumByName(ctx, "vacation")
	if err != nil {
		t.Fatalf("unexpected error finding album: %s", err.Error())
	}
	photos, err := p.ListPhotosInAlbum(ctx, album.ID)
	if err != nil {
		t.Fatalf("unexpected error listing photos: %s", err.Error())
	}
	if !cmp.Equal(photos, []cl.Photo{photo}) {
		t.Fatalf("unexpected photos returned: %s", cmp.Diff([]cl.Photo{photo}, photos))
	}

	photo.Tags = append(photo.Tags, "beach")
	if err := p.SavePhoto(ctx, photo); err != nil {
		t.Fatalf("unexpected error saving photo: %s", err.Error())
	}
	res, err := p.GetPhoto(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error getting photo: %s", err.Error())
	}
	if !cmp.Equal(res, photo) {
		t.Fatalf("unexpected photo returned: %s", cmp.Diff(photo, res))
	}

	if _, err := p.GetPhoto(ctx, 99); !errors.Is(err, cl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresConcurrentModifyPhoto(t *testing.T) {
	p := newPostgres(t)
	clearPostgres(p, t)
	ctx := context.Background()

	if err := p.SavePhoto(ctx, cl.Photo{ID: 1, Title: "Beach", Tags: []string{}, Albums: []int{}, Owner: 7}); err != nil {
		t.Fatalf("unexpected error saving photo: %s", err.Error())
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := p.ModifyPhoto(ctx, 1, func(ph *cl.Photo) (bool, error) {
				ph.Tags = append(ph.Tags, fmt.Sprintf("t%d", i))
				return true, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %s", err.Error())
			}
		}(i)
	}
	wg.Wait()

	res, err := p.GetPhoto(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error getting photo: %s", err.Error())
	}
	if len(res.Tags) != n {
		t.Fatalf("expected %d tags, got %d: %v", n, len(res.Tags), res.Tags)
	}

	if _, err := p.ModifyPhoto(ctx, 99, func(ph *cl.Photo) (bool, error) { return true, nil }); !errors.Is(err, cl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
