package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leetboard-backend/database"
	"leetboard-backend/leetcode"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// swapClient points the package client at a fake upstream for one test.
func swapClient(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	orig := lcClient
	client := leetcode.NewClient()
	client.GraphQLURL = srv.URL
	client.StatsBaseURL = srv.URL
	lcClient = client
	t.Cleanup(func() {
		lcClient = orig
		srv.Close()
	})
}

// swapDB replaces the global connection with a mock for one test. Any query
// the test did not expect errors out, so handlers that touch the database
// when they should not will fail their status assertion.
func swapDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	orig := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = orig
		db.Close()
	})
	return mock
}

func memberApp() *fiber.App {
	app := fiber.New()
	app.Post("/groups/:id/members", func(c *fiber.Ctx) error {
		c.Locals("user_id", 7)
		return AddMember(c)
	})
	app.Put("/members/:id", func(c *fiber.Ctx) error {
		c.Locals("user_id", 7)
		return UpdateMember(c)
	})
	return app
}

func memberBody() *strings.Reader {
	return strings.NewReader(`{"name":"Ghost","username":"ghost"}`)
}

func TestAddMemberRejectsUnknownUsername(t *testing.T) {
	swapClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"matchedUser":null}}`))
	})
	mock := swapDB(t)

	groupID := uuid.NewString()
	mock.ExpectQuery(`SELECT TRUE FROM groups`).
		WithArgs(groupID, 7).
		WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))

	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID+"/members", memberBody())
	req.Header.Set("Content-Type", "application/json")

	resp, err := memberApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for an unknown username, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("member must not be inserted: %v", err)
	}
}

func TestAddMemberReportsUnreachableUpstream(t *testing.T) {
	swapClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	mock := swapDB(t)

	groupID := uuid.NewString()
	mock.ExpectQuery(`SELECT TRUE FROM groups`).
		WithArgs(groupID, 7).
		WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))

	req := httptest.NewRequest(http.MethodPost, "/groups/"+groupID+"/members", memberBody())
	req.Header.Set("Content-Type", "application/json")

	resp, err := memberApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502 for an unreachable upstream, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("member must not be inserted: %v", err)
	}
}

func TestUpdateMemberRejectsUnknownUsername(t *testing.T) {
	swapClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"matchedUser":null}}`))
	})
	mock := swapDB(t)

	req := httptest.NewRequest(http.MethodPut, "/members/"+uuid.NewString(), memberBody())
	req.Header.Set("Content-Type", "application/json")

	resp, err := memberApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for an unknown username, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("member must not be updated: %v", err)
	}
}

func TestUpdateMemberMalformedID(t *testing.T) {
	swapDB(t)

	req := httptest.NewRequest(http.MethodPut, "/members/not-a-uuid", memberBody())
	req.Header.Set("Content-Type", "application/json")

	resp, err := memberApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for a malformed id, got %d", resp.StatusCode)
	}
}
