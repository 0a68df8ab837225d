package validation

import (
	"errors"
	"testing"
)

const validBooking = `{"listing_id":5,"check_in":"2024-03-01T00:00:00Z","check_out":"2024-03-03T00:00:00Z",
	"guests":2,"customer_name":"Aziz","customer_phone":"+998 90 123 45 67","total_price":1050000}`

func TestBookingCreate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"valid", validBooking, ""},
		{"reversed dates allowed", `{"listing_id":5,"check_in":"2024-03-05T00:00:00Z","check_out":"2024-03-03T00:00:00Z",
			"guests":2,"customer_name":"A","customer_phone":"1","total_price":0}`, ""},
		{"zero guests", `{"listing_id":5,"check_in":"2024-03-01T00:00:00Z","check_out":"2024-03-03T00:00:00Z",
			"guests":0,"customer_name":"A","customer_phone":"1","total_price":0}`, "guests"},
		{"bad date", `{"listing_id":5,"check_in":"tomorrow","check_out":"2024-03-03T00:00:00Z",
			"guests":1,"customer_name":"A","customer_phone":"1","total_price":0}`, "check_in"},
		{"empty name", `{"listing_id":5,"check_in":"2024-03-01T00:00:00Z","check_out":"2024-03-03T00:00:00Z",
			"guests":1,"customer_name":"","customer_phone":"1","total_price":0}`, "customer_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(BookingCreate, []byte(tt.body))
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *Error
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q (%s)", ve.Field, tt.field, ve.Message)
			}
		})
	}
}

func TestMissingField(t *testing.T) {
	err := Validate(BookingCreate, []byte(`{"listing_id":5}`))
	var ve *Error
	if !errors.As(err, &ve) || ve.Message == "" {
		t.Fatalf("err = %v", err)
	}
}

func TestNotJSON(t *testing.T) {
	err := Validate(BookingStatus, []byte(`status=new`))
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v", err)
	}
}

func TestBookingStatus(t *testing.T) {
	if err := Validate(BookingStatus, []byte(`{"status":"confirmed"}`)); err != nil {
		t.Fatal(err)
	}
	if err := Validate(BookingStatus, []byte(`{"status":"paid"}`)); err == nil {
		t.Fatal("expected enum failure")
	}
}

func TestListingWrite(t *testing.T) {
	body := `{"title":"Villa","region":"charvak","price_per_night":400000,"guests_max":6,"rooms":2,"beds":3,"baths":1,
		"amenities":{"pool":true},"images":["a.jpg"],"video_url":null}`
	if err := Validate(ListingWrite, []byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := Validate(ListingWrite, []byte(`{"title":"Villa","region":"moon"}`)); err == nil {
		t.Fatal("expected failure")
	}
}

func TestUnknownSchema(t *testing.T) {
	if err := Validate("nope", []byte(`{}`)); err == nil {
		t.Fatal("expected error")
	}
}
