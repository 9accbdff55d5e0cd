package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

// --- bodyHash ---

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	got := bodyHash(data)

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

// --- buildKey ---

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/loans", "a@x.com", strings.Repeat("a", 32))
	wantPrefix := "idemp:ax:post:/loans:"
	if !strings.HasPrefix(k, wantPrefix) {
		t.Fatalf("buildKey prefix mismatch: got %q want prefix %q", k, wantPrefix)
	}
	if !strings.Contains(k, ":a@x.com:") || !strings.HasSuffix(k, strings.Repeat("a", 32)) {
		t.Fatalf("buildKey missing actor/request segments: %q", k)
	}
}

// --- validReqID ---

func Test_validReqID(t *testing.T) {
	valid := []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88", // UUID v4 (lowercase)
		strings.Repeat("a", 32),                // 32-char lowercase hex
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",     // 32-char hex, no dashes
	}
	for _, s := range valid {
		if !validReqID(s) {
			t.Fatalf("validReqID should accept %q", s)
		}
	}
	invalid := []string{"", "short", strings.Repeat("g", 32), "3F9A6A1B-3D54"}
	for _, s := range invalid {
		if validReqID(s) {
			t.Fatalf("validReqID should reject %q", s)
		}
	}
}

// --- actor email ---

func Test_actorEmail(t *testing.T) {
	if got := normalizeActor("  A@X.com "); got != "a@x.com" {
		t.Fatalf("normalizeActor = %q", got)
	}
	if !validActorEmail("a@x.com") {
		t.Fatalf("validActorEmail rejects plain address")
	}
	for _, s := range []string{"", "no-at-sign", "two@@x", "spaces in@x.com"} {
		if validActorEmail(s) {
			t.Fatalf("validActorEmail should reject %q", s)
		}
	}
}

// --- parseAxRequestAt ---

func Test_parseAxRequestAt(t *testing.T) {
	// epoch seconds
	got, err := parseAxRequestAt("1736123456")
	if err != nil || got.Unix() != 1736123456 {
		t.Fatalf("epoch seconds: got %v err %v", got, err)
	}
	// epoch millis
	got, err = parseAxRequestAt("1736123456789")
	if err != nil || got.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch millis: got %v err %v", got, err)
	}
	// RFC3339 with zone
	got, err = parseAxRequestAt("2025-09-05T10:00:00+07:00")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("parsed times must be UTC, got %v", got.Location())
	}
	// naive timestamp without zone is rejected
	if _, err := parseAxRequestAt("2025-09-05 10:00:00"); err == nil {
		t.Fatalf("naive timestamp should be rejected")
	}
	if _, err := parseAxRequestAt(""); err == nil {
		t.Fatalf("empty value should be rejected")
	}
}

// --- redis helpers (miniredis-backed) ---

func Test_provisionalSetAndLoad(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	ctx := context.Background()

	entry := idempEntry{InProgress: true, RequestID: strings.Repeat("a", 32), CreatedAt: nowUTC()}
	ok, err := provisionalSet(ctx, rdb, "k", entry)
	if err != nil || !ok {
		t.Fatalf("first SetNX: ok=%v err=%v", ok, err)
	}
	ok, err = provisionalSet(ctx, rdb, "k", entry)
	if err != nil || ok {
		t.Fatalf("second SetNX must not win: ok=%v err=%v", ok, err)
	}

	got, err := loadEntry(ctx, rdb, "k")
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if !got.InProgress || got.RequestID != entry.RequestID {
		t.Fatalf("loaded entry mismatch: %+v", got)
	}

	final := entry
	final.InProgress = false
	final.Code = 201
	final.Body = []byte(`{"ok":true}`)
	if err := saveFinal(ctx, rdb, "k", final, time.Minute); err != nil {
		t.Fatalf("saveFinal: %v", err)
	}
	got, _ = loadEntry(ctx, rdb, "k")
	if got.InProgress || got.Code != 201 {
		t.Fatalf("final entry not saved: %+v", got)
	}
}
