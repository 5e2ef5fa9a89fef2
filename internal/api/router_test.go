// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/config"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

type searchHit struct {
	models.SpotDocument
	Distance *float64 `json:"distance"`
}

func (s *testServer) search(query string) (*http.Response, []searchHit) {
	s.t.Helper()

	resp, env := s.do(http.MethodGet, "/api/v1/spot?"+query, nil, nil)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	var hits []searchHit
	if err := json.Unmarshal(env.Data, &hits); err != nil {
		s.t.Fatalf("decode search hits: %v", err)
	}
	return resp, hits
}

func TestSearchListsSpots(t *testing.T) {
	s := newTestServer(t, noneConfig())
	s.createSpot("Suzzallo", 47.6558, -122.3080)
	s.createSpot("Odegaard", 47.6564, -122.3103)
	s.createSpot("Allen", 47.6552, -122.3079)

	resp, hits := s.search("")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	for _, hit := range hits {
		if hit.Distance != nil {
			t.Fatal("centerless search must not report distances")
		}
	}
}

func TestSearchByName(t *testing.T) {
	s := newTestServer(t, noneConfig())
	s.createSpot("Suzzallo Reading Room", 47.6558, -122.3080)
	s.createSpot("Cafe Allegro", 47.6580, -122.3130)

	_, hits := s.search("name=reading")
	if len(hits) != 1 || hits[0].Name != "Suzzallo Reading Room" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestSearchCenteredOrdering(t *testing.T) {
	s := newTestServer(t, noneConfig())
	s.createSpot("Far", 47.6700, -122.3080)
	s.createSpot("Near", 47.6566, -122.3095)
	s.createSpot("Mid", 47.6600, -122.3095)

	q := url.Values{}
	q.Set("center_latitude", "47.6564")
	q.Set("center_longitude", "-122.3095")
	q.Set("distance", "5000")

	_, hits := s.search(q.Encode())
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	var names []string
	for _, hit := range hits {
		if hit.Distance == nil {
			t.Fatalf("centered hit %q has no distance", hit.Name)
		}
		names = append(names, hit.Name)
	}
	if strings.Join(names, ",") != "Near,Mid,Far" {
		t.Fatalf("order = %v", names)
	}
}

func TestSearchMalformedCenterMatchesNothing(t *testing.T) {
	s := newTestServer(t, noneConfig())
	s.createSpot("Suzzallo", 47.6558, -122.3080)

	resp, hits := s.search("center_latitude=abc&center_longitude=-122.3&distance=500")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(hits) != 0 {
		t.Fatalf("got %d hits, want 0", len(hits))
	}
}

func TestSearchMalformedValuesMatchNothing(t *testing.T) {
	s := newTestServer(t, noneConfig())
	s.createSpot("Suzzallo", 47.6558, -122.3080)

	cases := []string{
		"open_at=banana",
		"open_at=m,99:99",
		"fuzzy_hours_start=m,09:00&fuzzy_hours_end=nonsense",
		"capacity=abc",
	}
	for _, query := range cases {
		resp, hits := s.search(query)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%q: status = %d, want 200", query, resp.StatusCode)
		}
		if len(hits) != 0 {
			t.Fatalf("%q: got %d hits, want 0", query, len(hits))
		}
	}
}

func TestSearchLimitWithoutCenter(t *testing.T) {
	s := newTestServer(t, noneConfig())

	resp, env := s.do(http.MethodGet, "/api/v1/spot?limit=5", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "LIMIT_WITHOUT_CENTER" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestSearchIncompleteHoursRange(t *testing.T) {
	s := newTestServer(t, noneConfig())

	resp, env := s.do(http.MethodGet, "/api/v1/spot?open_until=m,14:00", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "INCOMPLETE_RANGE" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestSearchOpenAt(t *testing.T) {
	s := newTestServer(t, noneConfig())
	id, etag := s.createSpot("Open Mondays", 47.6558, -122.3080)
	s.createSpot("Never Open", 47.6560, -122.3090)

	resp, _ := s.do(http.MethodPost, "/api/v1/spot/"+id+"/hours",
		WindowRequest{Day: "m", Start: "09:00", End: "17:00"},
		map[string]string{"If-Match": etag})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add window: status %d", resp.StatusCode)
	}

	_, hits := s.search("open_at=" + url.QueryEscape("m,10:00"))
	if len(hits) != 1 || hits[0].Name != "Open Mondays" {
		t.Fatalf("hits = %+v", hits)
	}

	_, hits = s.search("open_at=" + url.QueryEscape("m,17:00"))
	if len(hits) != 0 {
		t.Fatalf("closing instant should not match, got %+v", hits)
	}
}

func jwtConfig() *config.Config {
	cfg := noneConfig()
	cfg.Security.AuthMode = "jwt"
	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	cfg.Security.SessionTimeout = time.Hour
	cfg.Security.AdminUsername = "admin"
	cfg.Security.AdminPassword = "correct-horse-battery"
	return cfg
}

func TestJWTWriteRequiresToken(t *testing.T) {
	s := newTestServer(t, jwtConfig())

	resp, _ := s.do(http.MethodPost, "/api/v1/spot", CreateSpotRequest{
		Name: "Suzzallo", Latitude: 47.65, Longitude: -122.30,
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	// Reads stay open.
	resp, _ = s.do(http.MethodGet, "/api/v1/spot", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("read: status = %d, want 200", resp.StatusCode)
	}
}

func TestLoginAndAuthenticatedWrite(t *testing.T) {
	s := newTestServer(t, jwtConfig())

	resp, env := s.do(http.MethodPost, "/api/v1/auth/login",
		LoginRequest{Username: "admin", Password: "wrong"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad credentials: status = %d, want 401", resp.StatusCode)
	}

	resp, env = s.do(http.MethodPost, "/api/v1/auth/login",
		LoginRequest{Username: "admin", Password: "correct-horse-battery"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status = %d, error %+v", resp.StatusCode, env.Error)
	}

	var login LoginResponse
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" || login.ExpiresIn != 3600 {
		t.Fatalf("login response = %+v", login)
	}

	s.token = login.Token
	id, _ := s.createSpot("Authenticated Spot", 47.65, -122.30)
	if id == "" {
		t.Fatal("create with bearer token failed")
	}
}

func TestLoginRouteAbsentWithoutJWT(t *testing.T) {
	s := newTestServer(t, noneConfig())

	req, err := http.NewRequest(http.MethodPost, s.http.URL+"/api/v1/auth/login",
		strings.NewReader(`{"username":"a","password":"b"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want the route to be unmounted", resp.StatusCode)
	}
}
