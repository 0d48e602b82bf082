package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newAnalyticsFixture(t *testing.T, handler http.HandlerFunc) (*AnalyticsClient, func()) {
	t.Helper()

	var exchanges int
	tokenServer := newTokenServer(t, &exchanges)

	source, err := NewGoogleTokenSource(testServiceAccountJSON(t), tokenServer.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewGoogleTokenSource: %v", err)
	}

	apiServer := httptest.NewServer(handler)
	client := NewAnalyticsClient(apiServer.URL, "460526176", source, 5*time.Second, testLogger, testMetrics)

	return client, func() {
		apiServer.Close()
		tokenServer.Close()
	}
}

func metricRow(dimensions []string, metrics []string) map[string]any {
	row := map[string]any{}
	var dims, mets []map[string]string
	for _, d := range dimensions {
		dims = append(dims, map[string]string{"value": d})
	}
	for _, m := range metrics {
		mets = append(mets, map[string]string{"value": m})
	}
	row["dimensionValues"] = dims
	row["metricValues"] = mets
	return row
}

func TestFetchSummaryMetrics(t *testing.T) {
	client, cleanup := newAnalyticsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/properties/460526176:runReport" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected Authorization %q", got)
		}

		var request struct {
			Metrics []struct {
				Name string `json:"name"`
			} `json:"metrics"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(request.Metrics) != 8 || request.Metrics[0].Name != "sessions" {
			t.Errorf("unexpected metrics request %+v", request.Metrics)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"rows": []map[string]any{
				metricRow(nil, []string{"1000", "4200", "310", "95.4", "820", "640", "0.412", "25"}),
			},
		})
	})
	defer cleanup()

	summary, err := client.FetchSummaryMetrics(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("FetchSummaryMetrics: %v", err)
	}
	if summary.Sessions != 1000 || summary.PageViews != 4200 || summary.NewUsers != 310 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.AvgSessionDuration != 95.4 {
		t.Errorf("expected duration 95.4, got %v", summary.AvgSessionDuration)
	}
	if summary.BounceRate != 0.412 {
		t.Errorf("expected bounce fraction 0.412, got %v", summary.BounceRate)
	}
	if summary.Conversions != 25 {
		t.Errorf("expected 25 conversions, got %d", summary.Conversions)
	}
}

func TestFetchSummaryMetricsNoRows(t *testing.T) {
	client, cleanup := newAnalyticsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})
	defer cleanup()

	if _, err := client.FetchSummaryMetrics(context.Background(), "2025-01-01", "2025-01-31"); err == nil {
		t.Fatal("expected error for empty report")
	}
}

func TestFetchTopPages(t *testing.T) {
	client, cleanup := newAnalyticsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Limit    int `json:"limit"`
			OrderBys []struct {
				Desc bool `json:"desc"`
			} `json:"orderBys"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if request.Limit != 10 {
			t.Errorf("expected limit 10, got %d", request.Limit)
		}
		if len(request.OrderBys) != 1 || !request.OrderBys[0].Desc {
			t.Errorf("expected descending order, got %+v", request.OrderBys)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"rows": []map[string]any{
				metricRow([]string{"/"}, []string{"900", "700"}),
				metricRow([]string{"/rooms"}, []string{"400", "350"}),
			},
		})
	})
	defer cleanup()

	pages, err := client.FetchTopPages(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("FetchTopPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Path != "/" || pages[0].Views != 900 || pages[0].Sessions != 700 {
		t.Errorf("unexpected first page %+v", pages[0])
	}
}

func TestFetchDailyTrend(t *testing.T) {
	client, cleanup := newAnalyticsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"rows": []map[string]any{
				metricRow([]string{"20250101"}, []string{"120", "400", "30"}),
				metricRow([]string{"20250102"}, []string{"140", "450", "25"}),
			},
		})
	})
	defer cleanup()

	trend, err := client.FetchDailyTrend(context.Background(), "2025-01-01", "2025-01-02")
	if err != nil {
		t.Fatalf("FetchDailyTrend: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend))
	}
	if trend[1].Date != "20250102" || trend[1].Sessions != 140 || trend[1].NewUsers != 25 {
		t.Errorf("unexpected second point %+v", trend[1])
	}
}

func TestAnalyticsErrorStatus(t *testing.T) {
	client, cleanup := newAnalyticsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	})
	defer cleanup()

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error on non-success report status")
	}
}
