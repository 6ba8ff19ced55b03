package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"real-estate-system/internal/contracts"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)                 {}
func (nopLogger) Warn(string, port.Fields)                 {}
func (nopLogger) Error(string, error, port.Fields)         {}
func (nopLogger) Debug(string, port.Fields)                {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort { return l }

type fakeResolveUC struct {
	got domain.ResolveRequest
	err error
}

func (f *fakeResolveUC) Execute(_ context.Context, req domain.ResolveRequest) (*domain.URLParams, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.URLParams{TypeID: req.TypeID, PriceMin: domain.IntPtr(200000)}, nil
}

type fakeSearchUC struct {
	got  domain.SearchRequest
	page *domain.ListingsPage
	err  error
}

func (f *fakeSearchUC) Execute(_ context.Context, req domain.SearchRequest) (*domain.ListingsPage, error) {
	f.got = req
	return f.page, f.err
}

type fakeSortUC struct {
	got domain.ApplySortRequest
	err error
}

func (f *fakeSortUC) Execute(_ context.Context, req domain.ApplySortRequest) (*domain.SortedListings, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	filters := req.Filters
	filters.Sort = req.Sort
	return &domain.SortedListings{
		Filters: filters,
		Page:    1,
		Result:  &domain.ListingsPage{CurrentPage: 1, ItemsPerPage: 20},
	}, nil
}

type fakeDevelopersUC struct {
	developers []domain.Developer
	err        error
}

func (f *fakeDevelopersUC) Execute(context.Context) ([]domain.Developer, error) {
	return f.developers, f.err
}

type testServer struct {
	handler    http.Handler
	resolve    *fakeResolveUC
	search     *fakeSearchUC
	sort       *fakeSortUC
	developers *fakeDevelopersUC
}

func newTestServer(t *testing.T, cfg ServerConfig) *testServer {
	t.Helper()
	validator, err := contracts.NewValidator()
	require.NoError(t, err)

	ts := &testServer{
		resolve:    &fakeResolveUC{},
		search:     &fakeSearchUC{page: &domain.ListingsPage{}},
		sort:       &fakeSortUC{},
		developers: &fakeDevelopersUC{},
	}
	ts.handler = NewRouter(cfg,
		NewSearchHandler(ts.resolve, ts.search, ts.sort, validator),
		NewDevelopersHandler(ts.developers),
		nopLogger{})
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestResolve_Post(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search/resolve",
		`{"pathname":"/buy/above-200000","type_id":1,"navigation_state":{"region_name":"Dubai Marina"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var params domain.URLParams
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &params))
	assert.Equal(t, 1, params.TypeID)
	assert.Equal(t, domain.IntPtr(200000), params.PriceMin)

	assert.Equal(t, "/buy/above-200000", ts.resolve.got.Pathname)
	require.NotNil(t, ts.resolve.got.NavigationState)
	assert.Equal(t, "Dubai Marina", ts.resolve.got.NavigationState.RegionName)
}

func TestResolve_PostSchemaViolation(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search/resolve", `{"pathname":"/buy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "does not match schema")
	assert.Empty(t, ts.resolve.got.Pathname)
}

func TestResolve_GetFromQuery(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodGet, "/api/v1/search/resolve?path=/rent/below-5000&type_id=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/rent/below-5000", ts.resolve.got.Pathname)
	assert.Equal(t, 2, ts.resolve.got.TypeID)
}

func TestResolve_GetInvalidTypeID(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodGet, "/api/v1/search/resolve?path=/rent&type_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_DomainErrorIsBadRequest(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.resolve.err = domain.ErrInvalidTypeID

	rec := ts.do(http.MethodGet, "/api/v1/search/resolve?path=/rent&type_id=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.ErrInvalidTypeID.Error(), decodeError(t, rec))
}

func TestSearch_Success(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.search.page = &domain.ListingsPage{
		Listings:     []domain.ListingCard{{ID: 5, TypeID: 1, Title: "Villa", Price: 250000}},
		TotalCount:   1,
		CurrentPage:  2,
		ItemsPerPage: 10,
	}

	rec := ts.do(http.MethodPost, "/api/v1/search", `{"pathname":"/buy","type_id":1,"page":2,"per_page":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Villa", resp.Data[0].Title)
	assert.Equal(t, []string{}, resp.Data[0].Images)

	assert.Equal(t, 2, ts.search.got.Page)
	assert.Equal(t, 10, ts.search.got.PerPage)
}

func TestSearch_StorageErrorIsInternal(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.search.err = errors.New("connection refused")

	rec := ts.do(http.MethodPost, "/api/v1/search", `{"pathname":"/buy","type_id":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve listings", decodeError(t, rec))
}

func TestSearch_PerPageOutOfRange(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search", `{"pathname":"/buy","type_id":1,"per_page":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplySort(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search/sort",
		`{"filters":{"type_id":1,"price_min":10},"type_id":1,"sort":"max","page_aware":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SortResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "max", resp.Filters.Sort)
	assert.Equal(t, 1, resp.Page)
	assert.True(t, ts.sort.got.PageAware)
	assert.Equal(t, domain.IntPtr(10), ts.sort.got.Filters.PriceMin)
}

func TestApplySort_UnknownSortRejectedBySchema(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search/sort", `{"type_id":1,"sort":"cheapest"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.sort.got.Sort)
}

func TestListDevelopers_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodGet, "/api/v1/developers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListDevelopers_Error(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})
	ts.developers.err = errors.New("db down")

	rec := ts.do(http.MethodGet, "/api/v1/developers", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodGet, "/api/v1/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTraceIDPropagation(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	const traceID = "0b5c7a52-3c3e-4a53-9f0e-2f2d1c6d9a11"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	req.Header.Set(traceIDHeader, traceID)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, traceID, rec.Header().Get(traceIDHeader))

	rec = ts.do(http.MethodGet, "/api/v1/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	assert.NotEqual(t, traceID, rec.Header().Get(traceIDHeader))
}

func TestRateLimitOnSearchRoutes(t *testing.T) {
	ts := newTestServer(t, ServerConfig{RateLimitRPS: 0.001, RateLimitBurst: 1})

	first := ts.do(http.MethodGet, "/api/v1/search/resolve?path=/buy&type_id=1", "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := ts.do(http.MethodGet, "/api/v1/search/resolve?path=/buy&type_id=1", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// маршруты вне /search не ограничиваются
	health := ts.do(http.MethodGet, "/api/v1/healthz", "")
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestSearch_ZeroPaginationMeansDefault(t *testing.T) {
	ts := newTestServer(t, ServerConfig{})

	rec := ts.do(http.MethodPost, "/api/v1/search", `{"pathname":"/buy","type_id":1,"page":0,"per_page":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, ts.search.got.Page)
	assert.Equal(t, 0, ts.search.got.PerPage)
}
