package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"prebook/pkg/model"
	"prebook/test/integration/testutil"
)

type rideEnvelope struct {
	Data struct {
		Ride     model.ScheduledRide `json:"ride"`
		Warnings []string            `json:"warnings"`
	} `json:"data"`
}

type listEnvelope struct {
	Data       []model.ScheduledRide `json:"data"`
	TotalCount int64                 `json:"total_count"`
}

func TestRideLifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	owner := fmt.Sprintf("it-user-%d", time.Now().UnixNano())

	// Create
	req := testutil.NewRideBuilder().WithOwner(owner).Build()
	resp := client.POST(t, "/api/v1/scheduled-rides", req)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created rideEnvelope
	if err := resp.UnmarshalJSON(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	rideID := created.Data.Ride.ID
	if rideID == "" {
		t.Fatal("create response missing ride id")
	}
	if created.Data.Ride.Status != model.StatusPending {
		t.Fatalf("new ride status = %s, want pending", created.Data.Ride.Status)
	}

	// Mirror insert happened
	if status, ok := mongo.MirrorStatus(t, rideID); !ok || status != "pending" {
		t.Errorf("mirror record = (%q, %v), want pending", status, ok)
	}

	// List by owner
	resp = client.GET(t, "/api/v1/scheduled-rides?owner_id="+owner)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var listed listEnvelope
	if err := resp.UnmarshalJSON(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if listed.TotalCount != 1 {
		t.Fatalf("total_count = %d, want 1", listed.TotalCount)
	}

	// Get by id
	resp = client.GET(t, "/api/v1/scheduled-rides/id/"+rideID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, rideID)

	// Cancel, twice: the second must also succeed
	resp = client.DELETE(t, "/api/v1/scheduled-rides/id/"+rideID)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)
	resp = client.DELETE(t, "/api/v1/scheduled-rides/id/"+rideID)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	if status, _ := mongo.MirrorStatus(t, rideID); status != "cancelled" {
		t.Errorf("mirror status after cancel = %q, want cancelled", status)
	}
}

func TestRideCreationRejections(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	tooSoon := testutil.NewRideBuilder().
		WithScheduledTime(time.Now().Add(10 * time.Minute).UTC()).
		Build()
	resp := client.POST(t, "/api/v1/scheduled-rides", tooSoon)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	tooFar := testutil.NewRideBuilder().
		WithScheduledTime(time.Now().Add(90 * 24 * time.Hour).UTC()).
		Build()
	resp = client.POST(t, "/api/v1/scheduled-rides", tooFar)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
}

func TestCancelUnknownRide(t *testing.T) {
	env := testutil.NewTestEnv(t)
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.DELETE(t, "/api/v1/scheduled-rides/id/00000000-0000-0000-0000-000000000000")
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
