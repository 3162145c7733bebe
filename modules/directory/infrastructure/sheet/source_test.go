package sheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jacksonlee411/hcdash/pkg/serrors"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("\xEF\xBB\xBFnip,fullname\r\n1,A\r\n"))
	}))
	defer srv.Close()

	text, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "nip,fullname\r\n1,A\r\n", text)
	require.Len(t, Parse(text), 1)
}

func TestHTTPSource_NonSuccessIsOneFetchError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	text, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	require.Empty(t, text)
	require.Equal(t, int32(1), hits.Load())

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Contains(t, err.Error(), "HTTP 404 Not Found")
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.Equal(t, "DIRECTORY_SOURCE_UNAVAILABLE", serrors.CodeOf(ErrSourceUnavailable))
}

func TestHTTPSource_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, time.Second).Fetch(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Zero(t, fe.StatusCode)
	require.Error(t, fe.Unwrap())
}

func TestHTTPSource_MaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("nip,fullname\n1,A\n"))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, WithMaxBytes(4)).Fetch(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileSource(t *testing.T) {
	text, err := NewFileSource(filepath.Join("testdata", "directory.csv")).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, Parse(text), 2)

	_, err = NewFileSource(filepath.Join("testdata", "missing.csv")).Fetch(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestXLSXSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"NIP", "Full Name", "Unit Kerja", "Area"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"1001", "Siti", "Jakarta, Pusat", "Jawa"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"1002", `Budi "B"`}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := NewXLSXSource(path, "")
	text, err := src.Fetch(context.Background())
	require.NoError(t, err)

	records := Parse(text)
	require.Len(t, records, 2)
	require.Equal(t, "Jakarta, Pusat", records[0]["unitKerja"])
	require.Equal(t, `Budi "B"`, records[1]["fullName"])
	require.Equal(t, "", records[1]["area"])

	_, err = NewXLSXSource(path, "Missing").Fetch(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestXLSXSource_MultiLineCellsStayInOneRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Full Name", "NIP", "Unit, Kerja", "Area"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Siti", "1001", "Kantor Pusat\nLantai 3", "Jawa"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Budi", "1002", "Cabang\r\nBarat", "Sumatra"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, err := NewXLSXSource(path, "").Fetch(context.Background())
	require.NoError(t, err)

	records, stats := ParseWithStats(text)
	require.Len(t, records, 2)
	require.Equal(t, 2, stats.Records)
	require.Equal(t, "1001", records[0]["nip"])
	require.Equal(t, "Kantor Pusat Lantai 3", records[0]["unitKerja"])
	require.Equal(t, "Jawa", records[0]["area"])
	require.Equal(t, "1002", records[1]["nip"])
	require.Equal(t, "Cabang Barat", records[1]["unitKerja"])
	require.Equal(t, "Sumatra", records[1]["area"])
}

type countingSource struct {
	text  string
	err   error
	calls int
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Fetch(context.Context) (string, error) {
	s.calls++
	return s.text, s.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCachedSource(t *testing.T) {
	mr, client := newRedis(t)
	next := &countingSource{text: "nip,fullname\n1,A\n"}
	src := NewCachedSource(next, client, time.Minute, nil)
	ctx := context.Background()

	first, err := src.Fetch(ctx)
	require.NoError(t, err)
	second, err := src.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, next.calls)

	a, b := Parse(first), Parse(second)
	a[0]["nip"] = "x"
	require.Equal(t, "1", b[0]["nip"])

	mr.FastForward(2 * time.Minute)
	_, err = src.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)

	require.NoError(t, src.Invalidate(ctx))
	_, err = src.Fetch(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, next.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	_, client := newRedis(t)
	next := &countingSource{err: &FetchError{Source: "counting", StatusCode: 500}}
	src := NewCachedSource(next, client, time.Minute, nil)

	_, err := src.Fetch(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, next.calls)
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()
	next := &countingSource{text: "nip\n1\n"}

	text, err := NewCachedSource(next, client, time.Minute, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "nip\n1\n", text)
}
