package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iliyamo/dacha-booking/internal/logger"
	"github.com/iliyamo/dacha-booking/internal/model"
)

func TestListListingsMapsSnakeCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listings/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("size") != "24" || q.Get("region") != "chimgan" || q.Get("page") != "2" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get(logger.TraceHeader) != "trace-1" {
			t.Errorf("trace header = %q", r.Header.Get(logger.TraceHeader))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":3,"title":"Chimyon dacha","region":"chimgan","price_per_night":500000,"rating":4.7,
			 "guests_max":8,"rooms":3,"beds":4,"baths":2,"amenities":{"pool":true,"wifi":false},
			 "images":["a.jpg","b.jpg"],"video_url":"https://v/1.mp4","status":"active"},
			{"id":4,"title":"No rating","region":"chimgan","price_per_night":1,"guests_max":1,"rooms":1,
			 "beds":1,"baths":1,"amenities":null,"images":null,"video_url":null}
		],"pages":3}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := logger.WithTraceID(context.Background(), "trace-1")
	page, err := c.ListListings(ctx, model.ListingQuery{Page: 2, Size: 24, Region: model.RegionChimgan})
	if err != nil {
		t.Fatal(err)
	}
	if page.Pages != 3 || len(page.Items) != 2 {
		t.Fatalf("page = %+v", page)
	}
	l := page.Items[0]
	if l.PricePerNight != 500000 || l.GuestsMax != 8 || l.VideoURL != "https://v/1.mp4" || l.Rating != 4.7 {
		t.Errorf("listing = %+v", l)
	}
	if !l.Has(model.AmenityPool) || l.Has(model.AmenityWifi) || l.PrimaryImage() != "a.jpg" {
		t.Errorf("amenities/images = %v %v", l.Amenities, l.Images)
	}
	bare := page.Items[1]
	if bare.Rating != 0 || bare.VideoURL != "" || bare.Images == nil || bare.Amenities == nil {
		t.Errorf("absent fields not defaulted: %+v", bare)
	}
}

func TestGetListingNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"listing not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetListing(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateBooking(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":11,"listing_id":5,"check_in":"2024-03-01T00:00:00Z","check_out":"2024-03-03T00:00:00Z",
			"guests":2,"customer_name":"Aziz","customer_phone":"+998 90 123 45 67","total_price":1050000,"status":"new"}`))
	}))
	defer srv.Close()

	in := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b, err := New(srv.URL).CreateBooking(context.Background(), model.BookingRequest{
		ListingID: 5, CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Guests: 2,
		CustomerName: "Aziz", CustomerPhone: "+998 90 123 45 67", TotalPrice: 1050000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != 11 || b.Status != model.BookingNew || !b.CheckOut.Equal(in.AddDate(0, 0, 2)) {
		t.Errorf("booking = %+v", b)
	}
	for _, k := range []string{"listing_id", "check_in", "check_out", "guests", "customer_name", "customer_phone", "total_price"} {
		if _, ok := got[k]; !ok {
			t.Errorf("request body lacks %q", k)
		}
	}
	if got["check_in"] != "2024-03-01T00:00:00Z" {
		t.Errorf("check_in = %v", got["check_in"])
	}
}

func TestCreateBookingSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Bu sanalar allaqachon band"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateBooking(context.Background(), model.BookingRequest{ListingID: 1})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("err = %v", err)
	}
	if err.Error() != "Bu sanalar allaqachon band" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCreateBookingNotFoundKeepsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"listing not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateBooking(context.Background(), model.BookingRequest{ListingID: 99})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("err = %v", err)
	}
	if err.Error() != "listing not found" {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 must still match ErrNotFound")
	}
}

func TestAPIErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListAmenities(context.Background())
	if err == nil || err.Error() != "unexpected status 502" {
		t.Errorf("err = %v", err)
	}
}

func TestUpdateBookingStatusSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" || r.Method != http.MethodPut || r.URL.Path != "/bookings/7" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":7,"status":"confirmed"}`))
	}))
	defer srv.Close()

	if err := New(srv.URL, WithToken("tok")).UpdateBookingStatus(context.Background(), 7, model.BookingConfirmed); err != nil {
		t.Fatal(err)
	}
}
