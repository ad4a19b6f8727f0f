package cache

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Fatalf("expected 1, got %v %v", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to be gone after Delete")
	}
}

func TestExpiration(t *testing.T) {
	c := New(20 * time.Millisecond)

	c.Set("a", "x")
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestSetRefreshesTTL(t *testing.T) {
	c := New(60 * time.Millisecond)

	c.Set("a", "x")
	time.Sleep(40 * time.Millisecond)
	c.Set("a", "x")
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected entry to survive after refresh")
	}
}
