package utils

import (
	"database/sql"
	"testing"
)

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(25, 2, 10)
	if p.TotalPages != 3 || p.CurrentPage != 2 || p.PageSize != 10 || p.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	// Defaults kick in for invalid page and pageSize
	p = CreatePagination(5, 0, 0)
	if p.CurrentPage != 1 || p.PageSize != 10 {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestNullStringToStringPtr(t *testing.T) {
	ns := sql.NullString{String: "hello", Valid: true}
	p := NullStringToStringPtr(ns)
	if p == nil || *p != "hello" {
		t.Fatalf("expected pointer to 'hello', got %v", p)
	}

	ns2 := sql.NullString{Valid: false}
	if p2 := NullStringToStringPtr(ns2); p2 != nil {
		t.Fatalf("expected nil pointer, got %v", p2)
	}
}

func TestPointerToString(t *testing.T) {
	s := "world"
	if PointerToString(&s) != "world" {
		t.Fatalf("expected 'world'")
	}
	if PointerToString(nil) != "<nil>" {
		t.Fatalf("expected '<nil>' for nil pointer")
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("sk-live-abcd1234"); got != "****1234" {
		t.Fatalf("unexpected mask: %q", got)
	}
	if got := MaskKey("abc"); got != "****" {
		t.Fatalf("short keys must be fully masked, got %q", got)
	}
}
