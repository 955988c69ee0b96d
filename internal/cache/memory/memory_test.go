package memory

import (
	"context"
	"testing"
	"time"

	"jobsift/internal/cache"
	"jobsift/internal/models"
)

func TestSetGet_RoundTripsRecords(t *testing.T) {
	c := New(cache.Options{DefaultTTL: time.Minute})
	ctx := context.Background()

	in := models.Record{"job_id": "abc", "title": "Go Engineer"}
	if err := c.Set(ctx, "k", in, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out models.Record
	if err := c.Get(ctx, "k", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out["title"] != "Go Engineer" {
		t.Errorf("title = %v, want Go Engineer", out["title"])
	}
}

func TestGet_MissingKey(t *testing.T) {
	c := New(cache.Options{})

	var out string
	if err := c.Get(context.Background(), "absent", &out); err != cache.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_ExpiredEntry(t *testing.T) {
	c := New(cache.Options{DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "k", "value", -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out string
	if err := c.Get(ctx, "k", &out); err != cache.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound for expired entry", err)
	}
}

func TestDelete(t *testing.T) {
	c := New(cache.Options{})
	ctx := context.Background()

	_ = c.Set(ctx, "k", "value", time.Minute)
	_ = c.Delete(ctx, "k")

	var out string
	if err := c.Get(ctx, "k", &out); err != cache.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}
