package authcache

import (
	"testing"
	"time"

	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheHitWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cache := New(20*time.Second, clock.now)

	claims := &jwt.Claims{UserID: "u1", TokenType: jwt.TokenTypeAccess}
	cache.Put("tok", claims)

	clock.advance(19 * time.Second)
	got, ok := cache.Get("tok")
	if !ok {
		t.Fatal("entry should still be fresh")
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %s", got.UserID)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cache := New(20*time.Second, clock.now)

	cache.Put("tok", &jwt.Claims{UserID: "u1"})
	clock.advance(21 * time.Second)

	if _, ok := cache.Get("tok"); ok {
		t.Error("entry should have expired")
	}
	if cache.Len() != 0 {
		t.Errorf("expired lookup should evict, len = %d", cache.Len())
	}
}

func TestCacheMiss(t *testing.T) {
	cache := New(time.Second, nil)
	if _, ok := cache.Get("nope"); ok {
		t.Error("unexpected hit")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := New(time.Minute, nil)
	cache.Put("tok", &jwt.Claims{UserID: "u1"})

	cache.Invalidate("tok")
	if _, ok := cache.Get("tok"); ok {
		t.Error("invalidated entry still present")
	}
}

func TestCachePutOverwrites(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cache := New(10*time.Second, clock.now)

	cache.Put("tok", &jwt.Claims{UserID: "old"})
	clock.advance(8 * time.Second)
	cache.Put("tok", &jwt.Claims{UserID: "new"})

	// The rewrite restarts the TTL.
	clock.advance(8 * time.Second)
	got, ok := cache.Get("tok")
	if !ok {
		t.Fatal("rewritten entry should still be fresh")
	}
	if got.UserID != "new" {
		t.Errorf("UserID = %s, want new", got.UserID)
	}
}
