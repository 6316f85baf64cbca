package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestExtractUpdateDate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "plain label and date",
			content: "Stand: 01.02.2024",
			want:    "01.02.2024",
		},
		{
			name:    "no whitespace after label",
			content: "<p>Stand:15.02.2024</p>",
			want:    "15.02.2024",
		},
		{
			name:    "extra whitespace after label",
			content: "Stand:   31.12.2025 und weitere Informationen",
			want:    "31.12.2025",
		},
		{
			name:    "date embedded in page text",
			content: "<html><body><p>Freie Wohnungen</p><p class=\"stand\">Stand: 07.03.2024</p></body></html>",
			want:    "07.03.2024",
		},
		{
			name:    "first occurrence wins",
			content: "Stand: 01.01.2024 ... Stand: 02.02.2024",
			want:    "01.01.2024",
		},
		{
			name:    "date returned verbatim without validation",
			content: "Stand: 99.99.9999",
			want:    "99.99.9999",
		},
		{
			name:    "single-digit day does not match",
			content: "Stand: 1.02.2024",
			wantErr: true,
		},
		{
			name:    "two-digit year does not match",
			content: "Stand: 01.02.24",
			wantErr: true,
		},
		{
			name:    "date without label does not match",
			content: "Aktualisiert am 01.02.2024",
			wantErr: true,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractUpdateDate(tt.content)
			if tt.wantErr {
				if err != ErrDateNotFound {
					t.Fatalf("ExtractUpdateDate(%q) error = %v, want ErrDateNotFound", tt.content, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractUpdateDate(%q) unexpected error: %v", tt.content, err)
			}
			if got != tt.want {
				t.Errorf("ExtractUpdateDate(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestExtractUpdateDate_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/housing_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	got, err := ExtractUpdateDate(string(data))
	if err != nil {
		t.Fatalf("ExtractUpdateDate failed: %v", err)
	}
	if got != "01.02.2024" {
		t.Errorf("ExtractUpdateDate = %q, want %q", got, "01.02.2024")
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("User-Agent = %q, want %q", got, UserAgent)
		}
		w.Write([]byte("<html><body>Stand: 01.02.2024</body></html>"))
	}))
	defer server.Close()

	s := NewWithURL(server.URL)
	body, err := s.Fetch()
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if body != "<html><body>Stand: 01.02.2024</body></html>" {
		t.Errorf("Fetch() body = %q", body)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewWithURL(server.URL)
	if _, err := s.Fetch(); err == nil {
		t.Error("Fetch() expected error for 503 response, got nil")
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the address refuses connections

	s := NewWithURL(server.URL)
	if _, err := s.Fetch(); err == nil {
		t.Error("Fetch() expected error for refused connection, got nil")
	}
}

func TestFetchUpdateDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Stand: 15.02.2024</p></body></html>`))
	}))
	defer server.Close()

	s := NewWithURL(server.URL)
	date, err := s.FetchUpdateDate()
	if err != nil {
		t.Fatalf("FetchUpdateDate() unexpected error: %v", err)
	}
	if date != "15.02.2024" {
		t.Errorf("FetchUpdateDate() = %q, want %q", date, "15.02.2024")
	}
}
